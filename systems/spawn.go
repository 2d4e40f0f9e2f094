package systems

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/cannon/components"
	"github.com/pthm-cable/cannon/config"
)

// SpawnRequest describes one shot of the cannon.
type SpawnRequest struct {
	FirePosition     mgl64.Vec3
	SpreadRandomness float64
	Scale            float64
	RandomSpeed      bool
}

// Spawner creates particles from spawn requests using an injected random source.
type Spawner struct {
	rng    *rand.Rand
	tuning *components.Tuning

	defaultSpeed     float64
	randomSpeedSteps int
	randomSpeedScale float64
}

// NewSpawner creates a spawner with the reference speed settings.
func NewSpawner(rng *rand.Rand, tuning *components.Tuning) *Spawner {
	return &Spawner{
		rng:              rng,
		tuning:           tuning,
		defaultSpeed:     -0.01,
		randomSpeedSteps: 30,
		randomSpeedScale: 10,
	}
}

// NewSpawnerFromConfig creates a spawner using the particle section of cfg.
func NewSpawnerFromConfig(rng *rand.Rand, cfg *config.Config) *Spawner {
	s := NewSpawner(rng, TuningFromConfig(cfg))
	pc := cfg.Particle
	s.defaultSpeed = pc.DefaultSpeed
	if pc.RandomSpeedSteps > 0 {
		s.randomSpeedSteps = pc.RandomSpeedSteps
	}
	if pc.RandomSpeedScale > 0 {
		s.randomSpeedScale = pc.RandomSpeedScale
	}
	return s
}

// TuningFromConfig converts the particle config section into shared particle constants.
func TuningFromConfig(cfg *config.Config) *components.Tuning {
	pc := cfg.Particle
	return &components.Tuning{
		InitialLife:  pc.InitialLife,
		RadiusFactor: pc.RadiusFactor,
		PathInterval: pc.PathInterval,
		MaxCooldown:  pc.CollisionCooldown,
		SettleMargin: pc.SettleMargin,
		Precision:    pc.RoundingPrecision,
	}
}

// Tuning returns the constants given to spawned particles.
func (s *Spawner) Tuning() *components.Tuning {
	return s.tuning
}

// Spawn creates particle id from req.
// Horizontal drift is uniform in [-sr/2, sr/2]. With RandomSpeed the initial
// vertical speed is one of randomSpeedSteps downward speeds below the default.
func (s *Spawner) Spawn(id int, req SpawnRequest) components.Particle {
	drift := mgl64.Vec2{
		(s.rng.Float64() - 0.5) * req.SpreadRandomness,
		(s.rng.Float64() - 0.5) * req.SpreadRandomness,
	}

	speed := s.defaultSpeed
	if req.RandomSpeed {
		speed = -float64(s.rng.Intn(s.randomSpeedSteps))/s.randomSpeedScale + s.defaultSpeed
	}

	return components.NewParticle(id, req.FirePosition, drift, speed, req.Scale, s.tuning)
}
