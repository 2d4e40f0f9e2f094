package telemetry

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for one simulation instance.
// Each instance owns its registry so parallel worlds do not collide.
type Metrics struct {
	Registry *prometheus.Registry

	particles    prometheus.Gauge
	floors       prometheus.Gauge
	byColor      *prometheus.GaugeVec
	spawned      prometheus.Counter
	removed      prometheus.Counter
	bounces      prometheus.Counter
	flips        prometheus.Counter
	stepDuration prometheus.Histogram
}

// NewMetrics creates and registers the simulation metrics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		particles: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cannon_particles",
			Help: "Current number of live particles",
		}),
		floors: factory.NewGauge(prometheus.GaugeOpts{
			Name: "cannon_floors",
			Help: "Current number of pyramid floors",
		}),
		// Bounded: "neutral", "bounced", "dying"
		byColor: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cannon_particles_by_state",
			Help: "Live particles per color state",
		}, []string{"state"}),
		spawned: factory.NewCounter(prometheus.CounterOpts{
			Name: "cannon_spawned_total",
			Help: "Particles fired",
		}),
		removed: factory.NewCounter(prometheus.CounterOpts{
			Name: "cannon_removed_total",
			Help: "Particles removed after their life ran out",
		}),
		bounces: factory.NewCounter(prometheus.CounterOpts{
			Name: "cannon_bounces_total",
			Help: "Floor bounces",
		}),
		flips: factory.NewCounter(prometheus.CounterOpts{
			Name: "cannon_deflections_total",
			Help: "Applied interparticle deflections",
		}),
		stepDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cannon_step_duration_seconds",
			Help:    "Time spent in one simulation step",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
	}
}

// ObserveStep records the events and duration of one step.
func (m *Metrics) ObserveStep(spawned, bounces, flips, removed int, d time.Duration) {
	if m == nil {
		return
	}
	m.spawned.Add(float64(spawned))
	m.bounces.Add(float64(bounces))
	m.flips.Add(float64(flips))
	m.removed.Add(float64(removed))
	m.stepDuration.Observe(d.Seconds())
}

// RecordSpawn counts particles fired outside a step.
func (m *Metrics) RecordSpawn(n int) {
	if m == nil {
		return
	}
	m.spawned.Add(float64(n))
}

// SetPopulation updates the population gauges.
func (m *Metrics) SetPopulation(pop Population) {
	if m == nil {
		return
	}
	m.particles.Set(float64(pop.Neutral + pop.Bounced + pop.Dying))
	m.floors.Set(float64(pop.Floors))
	m.byColor.WithLabelValues("neutral").Set(float64(pop.Neutral))
	m.byColor.WithLabelValues("bounced").Set(float64(pop.Bounced))
	m.byColor.WithLabelValues("dying").Set(float64(pop.Dying))
}

// WriteTextfile writes the current metrics in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}
