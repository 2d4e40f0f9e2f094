package telemetry

// LifetimeStats tracks per-particle statistics over its lifetime.
type LifetimeStats struct {
	SpawnTick  int64
	RemoveTick int64
}

// LifespanTicks returns the number of ticks the particle was alive.
func (s *LifetimeStats) LifespanTicks() int64 {
	return s.RemoveTick - s.SpawnTick
}

// LifetimeTracker manages per-particle lifetime statistics.
type LifetimeTracker struct {
	stats map[int]*LifetimeStats

	// Completed lifespans since the last Drain
	finished []float64
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[int]*LifetimeStats),
	}
}

// Register starts tracking a freshly spawned particle.
func (lt *LifetimeTracker) Register(id int, tick int64) {
	lt.stats[id] = &LifetimeStats{SpawnTick: tick}
}

// Get returns stats for a tracked particle, or nil.
func (lt *LifetimeTracker) Get(id int) *LifetimeStats {
	return lt.stats[id]
}

// Remove stops tracking a particle and records its lifespan.
// Particles that were never registered are ignored.
func (lt *LifetimeTracker) Remove(id int, tick int64) *LifetimeStats {
	s, ok := lt.stats[id]
	if !ok {
		return nil
	}
	delete(lt.stats, id)
	s.RemoveTick = tick
	lt.finished = append(lt.finished, float64(s.LifespanTicks()))
	return s
}

// Drain returns the lifespans completed since the previous call.
func (lt *LifetimeTracker) Drain() []float64 {
	out := lt.finished
	lt.finished = nil
	return out
}

// Count returns the number of tracked particles.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

// Clear forgets every tracked particle.
func (lt *LifetimeTracker) Clear() {
	lt.stats = make(map[int]*LifetimeStats)
	lt.finished = nil
}
