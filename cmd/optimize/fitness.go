package main

import (
	"fmt"
	"log"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/cannon/config"
	"github.com/pthm-cable/cannon/game"
	"github.com/pthm-cable/cannon/telemetry"
)

// FitnessEvaluator runs headless simulations and scores how close the
// particle lifespan comes to a target.
type FitnessEvaluator struct {
	params         *ParamVector
	maxTicks       int64
	seeds          []int64
	baseConfig     *config.Config
	statsWindow    int
	targetLifespan float64
	collisions     bool

	mu           sync.Mutex
	lastLifespan float64
	lastQuality  float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, seeds []int64, baseCfg *config.Config, targetLifespan float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:         params,
		maxTicks:       maxTicks,
		seeds:          seeds,
		baseConfig:     baseCfg,
		statsWindow:    100,
		targetLifespan: targetLifespan,
	}
}

// LastLifespan returns the mean lifespan from the most recent evaluation.
func (fe *FitnessEvaluator) LastLifespan() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastLifespan
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

const (
	qualityWeight        = 0.2
	qualityWarmupWindows = 2 // skip windows while the pyramid fills up
)

// runResult holds the results from a single simulation run.
type runResult struct {
	windowStats []telemetry.WindowStats
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness  float64
	lifespan float64
	quality  float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result, err := fe.runSimulation(x, s)
			if err != nil {
				log.Printf("seed %d: %v", s, err)
				results[idx] = seedResult{fitness: math.Inf(1)}
				return
			}
			lifespan := fe.meanLifespan(result.windowStats)
			quality := computeQuality(result.windowStats)
			results[idx] = seedResult{
				fitness:  fe.computeFitness(lifespan, quality),
				lifespan: lifespan,
				quality:  quality,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalLifespan, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalLifespan += r.lifespan
		totalQuality += r.quality
	}

	n := float64(len(fe.seeds))
	fe.mu.Lock()
	fe.lastLifespan = totalLifespan / n
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes a single headless run with continuous fire.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) (*runResult, error) {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}

	g, err := game.NewGameWithOptions(game.Options{
		Config:         cfg,
		Seed:           seed,
		Headless:       true,
		StatsWindow:    fe.statsWindow,
		StepsPerUpdate: 1,
		ContinuousFire: true,
		Collisions:     fe.collisions,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("starting simulation: %w", err)
	}
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}
	return result, nil
}

// copyConfig returns a copy of the base config that candidates can modify.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// meanLifespan averages the per-window lifespans weighted by removals.
// A run in which nothing was removed counts as living for the full run.
func (fe *FitnessEvaluator) meanLifespan(windows []telemetry.WindowStats) float64 {
	var values, weights []float64
	for _, w := range windows {
		if w.Removed == 0 {
			continue
		}
		values = append(values, w.LifespanMean)
		weights = append(weights, float64(w.Removed))
	}
	if len(values) == 0 {
		return float64(fe.maxTicks)
	}
	return stat.Mean(values, weights)
}

// computeFitness calculates the scalar fitness (lower = better).
// The squared relative lifespan error dominates; a steady population
// breaks ties between candidates with similar lifespans.
func (fe *FitnessEvaluator) computeFitness(lifespan, quality float64) float64 {
	e := (lifespan - fe.targetLifespan) / fe.targetLifespan
	return e*e + qualityWeight*(1-quality)
}

// computeQuality scores population stability in [0, 1] after warmup.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}

	counts := make([]float64, 0, len(windows)-qualityWarmupWindows)
	for _, w := range windows[qualityWarmupWindows:] {
		counts = append(counts, float64(w.Particles))
	}
	if len(counts) < 2 {
		return 0
	}

	c := cv(counts)
	return math.Exp(-c * c)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}
