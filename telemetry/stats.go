package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	Particles int `csv:"particles"`
	Neutral   int `csv:"neutral"`
	Bounced   int `csv:"bounced"`
	Dying     int `csv:"dying"`
	Floors    int `csv:"floors"`

	// Events during window
	Spawned int `csv:"spawned"`
	Bounces int `csv:"bounces"`
	Flips   int `csv:"flips"`
	Removed int `csv:"removed"`

	// Life distribution (sampled at window end)
	LifeMean float64 `csv:"life_mean"`
	LifeStd  float64 `csv:"life_std"`
	LifeP10  float64 `csv:"life_p10"`
	LifeP50  float64 `csv:"life_p50"`
	LifeP90  float64 `csv:"life_p90"`

	// Height distribution
	HeightMean float64 `csv:"height_mean"`
	HeightMin  float64 `csv:"height_min"`
	HeightMax  float64 `csv:"height_max"`

	// Ticks from spawn to removal for particles removed during the window
	LifespanMean float64 `csv:"lifespan_mean"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeLifeStats calculates mean, sample standard deviation and percentiles.
// A single value has zero deviation.
func ComputeLifeStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}
	if n == 1 {
		return values[0], 0, values[0], values[0], values[0]
	}

	mean, std = stat.MeanStdDev(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// ComputeHeightStats returns the mean, minimum and maximum of particle heights.
func ComputeHeightStats(values []float64) (mean, lo, hi float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	return stat.Mean(values, nil), floats.Min(values), floats.Max(values)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("particles", s.Particles),
		slog.Int("neutral", s.Neutral),
		slog.Int("bounced", s.Bounced),
		slog.Int("dying", s.Dying),
		slog.Int("floors", s.Floors),
		slog.Int("spawned", s.Spawned),
		slog.Int("bounces", s.Bounces),
		slog.Int("flips", s.Flips),
		slog.Int("removed", s.Removed),
		slog.Float64("life_mean", s.LifeMean),
		slog.Float64("life_std", s.LifeStd),
		slog.Float64("life_p10", s.LifeP10),
		slog.Float64("life_p50", s.LifeP50),
		slog.Float64("life_p90", s.LifeP90),
		slog.Float64("height_mean", s.HeightMean),
		slog.Float64("height_min", s.HeightMin),
		slog.Float64("height_max", s.HeightMax),
		slog.Float64("lifespan_mean", s.LifespanMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"particles", s.Particles,
		"neutral", s.Neutral,
		"bounced", s.Bounced,
		"dying", s.Dying,
		"spawned", s.Spawned,
		"bounces", s.Bounces,
		"flips", s.Flips,
		"removed", s.Removed,
		"life_mean", s.LifeMean,
		"life_p50", s.LifeP50,
		"height_mean", s.HeightMean,
		"lifespan_mean", s.LifespanMean,
	)
}
