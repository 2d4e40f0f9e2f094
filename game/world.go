package game

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/cannon/components"
	"github.com/pthm-cable/cannon/config"
	"github.com/pthm-cable/cannon/systems"
	"github.com/pthm-cable/cannon/telemetry"
)

// PhaseTimer receives phase boundaries during a step.
type PhaseTimer interface {
	StartPhase(phase string)
}

type noopTimer struct{}

func (noopTimer) StartPhase(string) {}

// StepReport summarizes what happened during one step.
type StepReport struct {
	Spawned    int
	SpawnedIDs []int
	Bounces    int
	Flips      int
	RemovedIDs []int
}

// Removed returns the number of particles purged by the step.
func (r StepReport) Removed() int {
	return len(r.RemovedIDs)
}

// ColorCounts holds the number of live particles per color state.
type ColorCounts struct {
	Neutral, Bounced, Dying int
}

// World owns the particles and floors and advances them one frame at a time.
// It is not safe for concurrent use.
type World struct {
	cfg     *config.Config
	env     Environment
	presets Presets
	shape   components.PyramidShape

	world          *ecs.World
	particleMap    *ecs.Map1[components.Particle]
	particleFilter *ecs.Filter1[components.Particle]

	floors  []components.Floor
	spawner *systems.Spawner
	timer   PhaseTimer

	nextID int
	tick   int64

	// Scratch buffers reused across steps
	entities  []ecs.Entity
	particles []*components.Particle
}

// NewWorld creates a world with the environment defaults from cfg.
func NewWorld(cfg *config.Config, rng *rand.Rand) *World {
	world := ecs.NewWorld()

	w := &World{
		cfg:     cfg,
		env:     DefaultEnvironment(cfg),
		presets: NewPresets(cfg),
		shape: components.PyramidShape{
			TopElevation:   cfg.Pyramid.TopElevation,
			ElevationStep:  cfg.Pyramid.ElevationStep,
			TopHalfExtent:  cfg.Pyramid.TopHalfExtent,
			HalfExtentStep: cfg.Pyramid.HalfExtentStep,
			MaxFloors:      cfg.Pyramid.MaxFloors,
		},
		world:          world,
		particleMap:    ecs.NewMap1[components.Particle](world),
		particleFilter: ecs.NewFilter1[components.Particle](world),
		spawner:        systems.NewSpawnerFromConfig(rng, cfg),
		timer:          noopTimer{},
	}
	w.floors = w.shape.Build(w.env.Floors)
	return w
}

// SetPhaseTimer installs a timer that is told when each step phase starts.
func (w *World) SetPhaseTimer(t PhaseTimer) {
	if t == nil {
		t = noopTimer{}
	}
	w.timer = t
}

// Environment returns a copy of the current environment.
func (w *World) Environment() Environment {
	return w.env
}

// Env returns the mutable environment. Changes must not race with Step.
func (w *World) Env() *Environment {
	return &w.env
}

// Presets returns the discrete selector tables.
func (w *World) Presets() Presets {
	return w.presets
}

// Tick returns the number of completed unpaused steps.
func (w *World) Tick() int64 {
	return w.tick
}

// Floors returns the floors from the top down.
func (w *World) Floors() []components.Floor {
	out := make([]components.Floor, len(w.floors))
	copy(out, w.floors)
	return out
}

// KillPlane returns the elevation of the lowest floor. ok is false without floors.
func (w *World) KillPlane() (elevation float64, ok bool) {
	if len(w.floors) == 0 {
		return 0, false
	}
	return w.floors[len(w.floors)-1].Elevation, true
}

// SetFloorCount rebuilds the pyramid with n floors, clamped to the supported range.
func (w *World) SetFloorCount(n int) int {
	w.env.Floors = w.shape.Clamp(n)
	w.floors = w.shape.Build(w.env.Floors)
	return w.env.Floors
}

// AddFloor grows the pyramid by one floor.
func (w *World) AddFloor() int {
	return w.SetFloorCount(w.env.Floors + 1)
}

// RemoveFloor shrinks the pyramid by one floor.
func (w *World) RemoveFloor() int {
	return w.SetFloorCount(w.env.Floors - 1)
}

// MoveCannon shifts the fire position horizontally.
func (w *World) MoveCannon(dx, dz float64) {
	w.env.FirePosition = w.env.FirePosition.Add(mgl64.Vec3{dx, 0, dz})
}

// Fire spawns one particle from the cannon and returns its ID.
func (w *World) Fire() int {
	w.nextID++
	p := w.spawner.Spawn(w.nextID, systems.SpawnRequest{
		FirePosition:     w.env.FirePosition,
		SpreadRandomness: w.env.SpreadRandomness,
		Scale:            w.env.Scale,
		RandomSpeed:      w.env.RandomSpeed,
	})
	w.particleMap.NewEntity(&p)
	return p.ID
}

// AddParticle inserts an externally built particle.
func (w *World) AddParticle(p components.Particle) {
	if p.ID > w.nextID {
		w.nextID = p.ID
	}
	w.particleMap.NewEntity(&p)
}

// Count returns the number of live particles.
func (w *World) Count() int {
	n := 0
	query := w.particleFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

// EachParticle calls fn with a copy of every live particle in storage order.
func (w *World) EachParticle(fn func(p components.Particle)) {
	query := w.particleFilter.Query()
	for query.Next() {
		fn(*query.Get())
	}
}

// Particle returns a copy of the particle with the given ID.
func (w *World) Particle(id int) (components.Particle, bool) {
	var found components.Particle
	ok := false
	w.EachParticle(func(p components.Particle) {
		if !ok && p.ID == id {
			found, ok = p, true
		}
	})
	return found, ok
}

// ColorCounts returns the number of live particles per color state.
func (w *World) ColorCounts() ColorCounts {
	var c ColorCounts
	w.EachParticle(func(p components.Particle) {
		switch p.Color {
		case components.Neutral:
			c.Neutral++
		case components.Bounced:
			c.Bounced++
		case components.Dying:
			c.Dying++
		}
	})
	return c
}

// Population samples the live particles for telemetry.
func (w *World) Population() telemetry.Population {
	pop := telemetry.Population{Floors: len(w.floors)}
	w.EachParticle(func(p components.Particle) {
		switch p.Color {
		case components.Neutral:
			pop.Neutral++
		case components.Bounced:
			pop.Bounced++
		case components.Dying:
			pop.Dying++
		}
		pop.Lives = append(pop.Lives, float64(p.Life))
		pop.Heights = append(pop.Heights, p.Position.Y())
	})
	return pop
}

// Advance runs Step ticks times and merges the reports.
func (w *World) Advance(ticks int) StepReport {
	var total StepReport
	for i := 0; i < ticks; i++ {
		r := w.Step()
		total.Spawned += r.Spawned
		total.SpawnedIDs = append(total.SpawnedIDs, r.SpawnedIDs...)
		total.Bounces += r.Bounces
		total.Flips += r.Flips
		total.RemovedIDs = append(total.RemovedIDs, r.RemovedIDs...)
	}
	return total
}

// Step advances the simulation by one frame. It does nothing while paused.
//
// Particles are updated one after another in storage order. That order is
// deterministic but stops matching insertion order once a particle has been
// removed. The interparticle test of a particle sees earlier particles
// already moved this frame and later ones as they were after the previous frame.
func (w *World) Step() StepReport {
	var report StepReport
	if w.env.Paused {
		return report
	}
	w.tick++

	w.timer.StartPhase(telemetry.PhaseSpawn)
	if w.env.ContinuousFire {
		report.SpawnedIDs = append(report.SpawnedIDs, w.Fire())
		report.Spawned++
	}

	particles := w.collect()

	env := &w.env
	lowest, hasFloors := w.KillPlane()
	for _, p := range particles {
		w.timer.StartPhase(telemetry.PhaseIntegrate)
		if p.VerticalSpeed != 0 {
			p.Integrate(env.Gravity)
		}

		w.timer.StartPhase(telemetry.PhaseCollide)
		if hasFloors {
			if elevation, ok := systems.FloorCollision(p, w.floors); ok {
				if p.Color == components.Neutral {
					p.Recolor()
				}
				p.Bounce(elevation, env.Friction)
				report.Bounces++
				if p.DeathCheck(env.Gravity) && p.Color == components.Bounced {
					p.Recolor()
				}
			}
			p.KillPlaneCheck(env.RemoveParticles, lowest)
		}

		if env.Collisions {
			w.timer.StartPhase(telemetry.PhaseInterparticle)
			report.Flips += systems.ResolveParticleCollision(p, particles)
		}
	}

	w.timer.StartPhase(telemetry.PhaseCleanup)
	report.RemovedIDs = w.removeDead()

	return report
}

// collect gathers pointers to every particle. The pointers stay valid until
// the next entity is created or removed.
func (w *World) collect() []*components.Particle {
	w.particles = w.particles[:0]
	query := w.particleFilter.Query()
	for query.Next() {
		w.particles = append(w.particles, query.Get())
	}
	return w.particles
}

// removeDead removes every particle whose life has run out and returns their IDs.
func (w *World) removeDead() []int {
	// First pass: collect dead entities (must complete before modifying)
	w.entities = w.entities[:0]
	var ids []int
	query := w.particleFilter.Query()
	for query.Next() {
		p := query.Get()
		if p.Life <= 0 {
			w.entities = append(w.entities, query.Entity())
			ids = append(ids, p.ID)
		}
	}

	// Second pass: remove entities (query iteration complete)
	for _, e := range w.entities {
		w.world.RemoveEntity(e)
	}
	return ids
}

// Clear removes every particle.
func (w *World) Clear() {
	w.entities = w.entities[:0]
	query := w.particleFilter.Query()
	for query.Next() {
		w.entities = append(w.entities, query.Entity())
	}
	for _, e := range w.entities {
		w.world.RemoveEntity(e)
	}
}

// Reset restores the default environment, clears all particles and rebuilds the pyramid.
func (w *World) Reset() {
	w.Clear()
	w.env = DefaultEnvironment(w.cfg)
	w.floors = w.shape.Build(w.env.Floors)
	w.nextID = 0
	w.tick = 0
}

// Toggle helpers flip one environment switch each.

func (w *World) TogglePause()          { w.env.Paused = !w.env.Paused }
func (w *World) ToggleContinuousFire() { w.env.ContinuousFire = !w.env.ContinuousFire }
func (w *World) ToggleRandomSpeed()    { w.env.RandomSpeed = !w.env.RandomSpeed }
func (w *World) ToggleRemoval()        { w.env.RemoveParticles = !w.env.RemoveParticles }
func (w *World) ToggleCollisions()     { w.env.Collisions = !w.env.Collisions }
func (w *World) TogglePaths()          { w.env.Paths = !w.env.Paths }

// SelectGravity applies a gravity preset. Unknown choices are no-ops.
func (w *World) SelectGravity(choice int) bool { return w.presets.SelectGravity(&w.env, choice) }

// SelectFriction applies a friction preset. Unknown choices are no-ops.
func (w *World) SelectFriction(choice int) bool { return w.presets.SelectFriction(&w.env, choice) }

// SelectSize applies a particle size preset. Unknown choices are no-ops.
func (w *World) SelectSize(choice int) bool { return w.presets.SelectSize(&w.env, choice) }

// SelectRandomness applies a spread randomness preset. Unknown choices are no-ops.
func (w *World) SelectRandomness(choice int) bool {
	return w.presets.SelectRandomness(&w.env, choice)
}

// SelectAnimationSpeed applies a refresh preset, or toggles pause for the last choice.
func (w *World) SelectAnimationSpeed(choice int) bool {
	return w.presets.SelectAnimationSpeed(&w.env, choice)
}

// SelectAppearance changes how the viewer draws particles. Unknown choices are no-ops.
func (w *World) SelectAppearance(choice int) bool {
	return w.presets.SelectAppearance(&w.env, choice)
}
