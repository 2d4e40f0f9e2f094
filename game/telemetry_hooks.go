package game

import (
	"log/slog"
	"time"
)

// recordStep feeds one step report into the collectors.
func (g *Game) recordStep(report StepReport, d time.Duration) {
	tick := g.world.Tick()
	for _, id := range report.SpawnedIDs {
		g.lifetimes.Register(id, tick)
	}
	for _, id := range report.RemovedIDs {
		g.lifetimes.Remove(id, tick)
	}

	g.collector.RecordSpawn(report.Spawned)
	g.collector.RecordBounces(report.Bounces)
	g.collector.RecordFlips(report.Flips)
	g.collector.RecordRemoved(report.Removed())

	g.metrics.ObserveStep(report.Spawned, report.Bounces, report.Flips, report.Removed(), d)
}

// flushTelemetry checks if the stats window should be flushed and writes the results.
func (g *Game) flushTelemetry() {
	tick := g.world.Tick()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	pop := g.world.Population()
	pop.Lifespans = g.lifetimes.Drain()

	stats := g.collector.Flush(tick, pop)
	perfStats := g.perfCollector.Stats()
	g.metrics.SetPopulation(pop)

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
