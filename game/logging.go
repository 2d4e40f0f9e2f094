package game

import "log/slog"

// logDiagnostics logs the environment and the particle population.
func (g *Game) logDiagnostics() {
	env := g.world.Environment()
	counts := g.world.ColorCounts()

	slog.Info("environment",
		"tick", g.world.Tick(),
		"particles", g.world.Count(),
		"gravity", env.Gravity,
		"friction", env.Friction,
		"scale", env.Scale,
		"spread", env.SpreadRandomness,
		"floors", env.Floors,
		"refresh_ms", env.RefreshMillis,
		"paused", env.Paused,
	)
	slog.Info("colors",
		"neutral", counts.Neutral,
		"bounced", counts.Bounced,
		"dying", counts.Dying,
		"tracked", g.lifetimes.Count(),
	)

	g.perfCollector.Stats().LogStats()
}
