package telemetry

import "gonum.org/v1/gonum/stat"

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int64
	tickSeconds         float64

	// Current window tracking
	windowStartTick int64

	// Event counters for current window
	spawned int
	bounces int
	flips   int
	removed int
}

// NewCollector creates a new stats collector.
// windowTicks: how many ticks each stats window lasts
// tickSeconds: host loop period, used for tick-to-time conversion
func NewCollector(windowTicks int, tickSeconds float64) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowDurationTicks: int64(windowTicks),
		tickSeconds:         tickSeconds,
	}
}

// RecordSpawn records fired particles.
func (c *Collector) RecordSpawn(n int) {
	c.spawned += n
}

// RecordBounces records floor bounces.
func (c *Collector) RecordBounces(n int) {
	c.bounces += n
}

// RecordFlips records applied interparticle deflections.
func (c *Collector) RecordFlips(n int) {
	c.flips += n
}

// RecordRemoved records particles purged at the end of a step.
func (c *Collector) RecordRemoved(n int) {
	c.removed += n
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Population is a snapshot of the live particles at flush time.
type Population struct {
	Neutral, Bounced, Dying int
	Floors                  int
	Lives                   []float64
	Heights                 []float64
	Lifespans               []float64 // Completed lifespans in ticks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int64, pop Population) WindowStats {
	lifeMean, lifeStd, p10, p50, p90 := ComputeLifeStats(pop.Lives)
	heightMean, heightMin, heightMax := ComputeHeightStats(pop.Heights)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.tickSeconds,

		Particles: pop.Neutral + pop.Bounced + pop.Dying,
		Neutral:   pop.Neutral,
		Bounced:   pop.Bounced,
		Dying:     pop.Dying,
		Floors:    pop.Floors,

		Spawned: c.spawned,
		Bounces: c.bounces,
		Flips:   c.flips,
		Removed: c.removed,

		LifeMean: lifeMean,
		LifeStd:  lifeStd,
		LifeP10:  p10,
		LifeP50:  p50,
		LifeP90:  p90,

		HeightMean: heightMean,
		HeightMin:  heightMin,
		HeightMax:  heightMax,
	}
	if len(pop.Lifespans) > 0 {
		stats.LifespanMean = stat.Mean(pop.Lifespans, nil)
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.spawned = 0
	c.bounces = 0
	c.flips = 0
	c.removed = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}

// Reset discards the current window and restarts counting at tick 0.
func (c *Collector) Reset() {
	c.windowStartTick = 0
	c.spawned = 0
	c.bounces = 0
	c.flips = 0
	c.removed = 0
}
