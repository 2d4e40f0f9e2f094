package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Phase names for the simulation step.
const (
	PhaseSpawn         = "spawn"
	PhaseIntegrate     = "integrate"
	PhaseCollide       = "collide"
	PhaseInterparticle = "interparticle"
	PhaseCleanup       = "cleanup"
	PhaseTelemetry     = "telemetry"
)

// Phases lists the step phases in execution order.
var Phases = []string{
	PhaseSpawn, PhaseIntegrate, PhaseCollide,
	PhaseInterparticle, PhaseCleanup, PhaseTelemetry,
}

// PerfCollector keeps a ring of the last N step timings, split by phase.
// Durations are stored as microseconds so window statistics can use gonum.
type PerfCollector struct {
	window int
	next   int
	filled int

	ticks  []float64            // Step durations
	phases map[string][]float64 // Per-phase durations, aligned with ticks

	current    map[string]time.Duration
	tickStart  time.Time
	phaseStart time.Time
	phase      string

	lastFrame time.Time
	frame     time.Duration

	now func() time.Time
}

// NewPerfCollector creates a collector averaging over the last window steps.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{
		window:  window,
		ticks:   make([]float64, window),
		phases:  make(map[string][]float64),
		current: make(map[string]time.Duration),
		now:     time.Now,
	}
}

// StartTick begins timing a new simulation step.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	clear(p.current)
	p.phase = ""
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the step and stores it in the ring.
func (p *PerfCollector) EndTick() {
	now := p.now()
	p.closePhase(now)
	p.phase = ""

	p.ticks[p.next] = micros(now.Sub(p.tickStart))
	for name := range p.current {
		if _, ok := p.phases[name]; !ok {
			p.phases[name] = make([]float64, p.window)
		}
	}
	for name, ring := range p.phases {
		ring[p.next] = micros(p.current[name])
	}

	p.next = (p.next + 1) % p.window
	if p.filled < p.window {
		p.filled++
	}
}

// RecordFrame records the time since the previous rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats holds aggregated performance statistics for the window.
type PerfStats struct {
	Samples int

	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	P95TickDuration time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // Share of the average step

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats summarizes the stored steps.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		Samples:       p.filled,
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return s
	}

	// Ring order does not matter for these statistics
	ticks := p.ticks[:p.filled]
	mean := stat.Mean(ticks, nil)

	sorted := slices.Clone(ticks)
	slices.Sort(sorted)

	s.AvgTickDuration = fromMicros(mean)
	s.MinTickDuration = fromMicros(floats.Min(ticks))
	s.MaxTickDuration = fromMicros(floats.Max(ticks))
	s.P95TickDuration = fromMicros(stat.Quantile(0.95, stat.Empirical, sorted, nil))
	if mean > 0 {
		s.TicksPerSecond = 1e6 / mean
	}

	for name, ring := range p.phases {
		avg := stat.Mean(ring[:p.filled], nil)
		s.PhaseAvg[name] = fromMicros(avg)
		if mean > 0 {
			s.PhasePct[name] = avg / mean * 100
		}
	}
	return s
}

func micros(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}

func fromMicros(us float64) time.Duration {
	return time.Duration(us * float64(time.Microsecond))
}

// LogStats logs the window as a single "perf" record.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// LogValue implements slog.LogValuer. Phases are listed in step order and
// omitted below 0.1% of the step.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("samples", s.Samples),
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("p95_tick_us", s.P95TickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, phase := range Phases {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd        int64   `csv:"window_end"`
	Samples          int     `csv:"samples"`
	AvgTickUS        int64   `csv:"avg_tick_us"`
	MinTickUS        int64   `csv:"min_tick_us"`
	MaxTickUS        int64   `csv:"max_tick_us"`
	P95TickUS        int64   `csv:"p95_tick_us"`
	TicksPerSec      float64 `csv:"ticks_per_sec"`
	FPS              float64 `csv:"fps"`
	SpawnPct         float64 `csv:"spawn_pct"`
	IntegratePct     float64 `csv:"integrate_pct"`
	CollidePct       float64 `csv:"collide_pct"`
	InterparticlePct float64 `csv:"interparticle_pct"`
	CleanupPct       float64 `csv:"cleanup_pct"`
	TelemetryPct     float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:        windowEnd,
		Samples:          s.Samples,
		AvgTickUS:        s.AvgTickDuration.Microseconds(),
		MinTickUS:        s.MinTickDuration.Microseconds(),
		MaxTickUS:        s.MaxTickDuration.Microseconds(),
		P95TickUS:        s.P95TickDuration.Microseconds(),
		TicksPerSec:      s.TicksPerSecond,
		FPS:              s.FPS,
		SpawnPct:         s.PhasePct[PhaseSpawn],
		IntegratePct:     s.PhasePct[PhaseIntegrate],
		CollidePct:       s.PhasePct[PhaseCollide],
		InterparticlePct: s.PhasePct[PhaseInterparticle],
		CleanupPct:       s.PhasePct[PhaseCleanup],
		TelemetryPct:     s.PhasePct[PhaseTelemetry],
	}
}
