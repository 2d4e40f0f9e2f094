// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidFriction is returned when friction would make the bounce divisor (1+f) non-positive.
var ErrInvalidFriction = errors.New("friction must be greater than -1")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Environment EnvironmentConfig `yaml:"environment"`
	Cannon      CannonConfig      `yaml:"cannon"`
	Pyramid     PyramidConfig     `yaml:"pyramid"`
	Particle    ParticleConfig    `yaml:"particle"`
	Presets     PresetsConfig     `yaml:"presets"`
	Viewer      ViewerConfig      `yaml:"viewer"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// EnvironmentConfig holds the environment parameters restored by a reset.
type EnvironmentConfig struct {
	Gravity         float64 `yaml:"gravity"`          // Subtracted from vertical speed every tick
	Friction        float64 `yaml:"friction"`         // Bounce damping, speed /= (1 + friction)
	RemoveParticles bool    `yaml:"remove_particles"` // Stationary particles decay and get removed
	Collisions      bool    `yaml:"collisions"`       // Interparticle collision
	Paths           bool    `yaml:"paths"`            // Draw particle path traces
	RefreshMillis   int     `yaml:"refresh_millis"`   // Host loop period between steps
}

// CannonConfig holds spawn parameters for the particle cannon.
type CannonConfig struct {
	FirePosition     [3]float64 `yaml:"fire_position"`
	SpreadRandomness float64    `yaml:"spread_randomness"` // Horizontal drift drawn from [-sr/2, sr/2]
	Scale            float64    `yaml:"scale"`             // Particle size
	ContinuousFire   bool       `yaml:"continuous_fire"`   // Spawn one particle per step
	RandomSpeed      bool       `yaml:"random_speed"`      // Randomize initial downward speed
	MoveStep         float64    `yaml:"move_step"`         // Cannon displacement per keypress
}

// PyramidConfig describes the stacked floor topology.
type PyramidConfig struct {
	Floors         int     `yaml:"floors"`
	MaxFloors      int     `yaml:"max_floors"`
	TopElevation   float64 `yaml:"top_elevation"`
	ElevationStep  float64 `yaml:"elevation_step"` // Each lower floor drops by this much
	TopHalfExtent  float64 `yaml:"top_half_extent"`
	HalfExtentStep float64 `yaml:"half_extent_step"` // Each lower floor widens by this much
}

// ParticleConfig holds per-particle constants.
type ParticleConfig struct {
	InitialLife       int     `yaml:"initial_life"`
	RadiusFactor      float64 `yaml:"radius_factor"`       // Collision radius = size * radius_factor
	PathInterval      int     `yaml:"path_interval"`       // Integrations skipped between path samples
	CollisionCooldown int     `yaml:"collision_cooldown"`  // Interparticle flips allowed once per cycle
	DefaultSpeed      float64 `yaml:"default_speed"`       // Initial vertical speed without randomization
	RandomSpeedSteps  int     `yaml:"random_speed_steps"`  // Number of discrete random speeds
	RandomSpeedScale  float64 `yaml:"random_speed_scale"`  // Divisor applied to the random step
	SettleMargin      float64 `yaml:"settle_margin"`       // Speed <= gravity - margin counts as settled
	RoundingPrecision float64 `yaml:"rounding_precision"`  // Bounce speed rounded to 1/precision
}

// PresetsConfig holds the discrete selector tables. Selection index i maps to element i-1.
type PresetsConfig struct {
	Gravity    []float64 `yaml:"gravity"`
	Friction   []float64 `yaml:"friction"`
	Size       []float64 `yaml:"size"`
	Randomness []float64 `yaml:"randomness"`
	Refresh    []int     `yaml:"refresh_millis"`
}

// ViewerConfig holds the orbit camera and appearance defaults.
type ViewerConfig struct {
	Appearance int        `yaml:"appearance"` // 1 solid cube, 2 wire cube, 3 solid sphere, 4 wire sphere
	Yaw        float64    `yaml:"yaw"`
	Height     float64    `yaml:"height"`
	Zoom       float64    `yaml:"zoom"`
	Target     [3]float64 `yaml:"target"`
	Fovy       float64    `yaml:"fovy"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // Ticks per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	RefreshSecs float64 // Environment.RefreshMillis in seconds
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Defaults returns the embedded default configuration.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// MustDefaults is like Defaults but panics on error.
func MustDefaults() *Config {
	cfg, err := Defaults()
	if err != nil {
		panic(fmt.Sprintf("config: failed to load defaults: %v", err))
	}
	return cfg
}

// Validate checks values the engine treats as preconditions.
func (c *Config) Validate() error {
	if c.Environment.Friction <= -1 {
		return fmt.Errorf("environment.friction %v: %w", c.Environment.Friction, ErrInvalidFriction)
	}
	for i, f := range c.Presets.Friction {
		if f <= -1 {
			return fmt.Errorf("presets.friction[%d] %v: %w", i, f, ErrInvalidFriction)
		}
	}
	if c.Pyramid.MaxFloors < 0 {
		return fmt.Errorf("pyramid.max_floors must be non-negative, got %d", c.Pyramid.MaxFloors)
	}
	if c.Pyramid.Floors < 0 || c.Pyramid.Floors > c.Pyramid.MaxFloors {
		return fmt.Errorf("pyramid.floors %d out of range [0, %d]", c.Pyramid.Floors, c.Pyramid.MaxFloors)
	}
	if c.Particle.CollisionCooldown < 0 {
		return fmt.Errorf("particle.collision_cooldown must be non-negative, got %d", c.Particle.CollisionCooldown)
	}
	if c.Particle.PathInterval < 0 {
		return fmt.Errorf("particle.path_interval must be non-negative, got %d", c.Particle.PathInterval)
	}
	if c.Particle.InitialLife <= 0 {
		return fmt.Errorf("particle.initial_life must be positive, got %d", c.Particle.InitialLife)
	}
	if c.Particle.RadiusFactor < 0 {
		return fmt.Errorf("particle.radius_factor must be non-negative, got %v", c.Particle.RadiusFactor)
	}
	if c.Particle.RoundingPrecision <= 0 {
		return fmt.Errorf("particle.rounding_precision must be positive, got %v", c.Particle.RoundingPrecision)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.RefreshSecs = float64(c.Environment.RefreshMillis) / 1000
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
