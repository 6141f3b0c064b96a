package ecology

import "github.com/prometheus/client_golang/prometheus"

// Metrics is an optional Prometheus adapter a host can register against its
// own registry and refresh after every Step call. The core never imports an
// HTTP server or touches the default registry itself.
type Metrics struct {
	births    prometheus.Counter
	deaths    prometheus.Counter
	mutations prometheus.Counter
	population prometheus.Gauge
}

// NewMetrics constructs the gauges/counters and registers them against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		births: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecosim_births_total",
			Help: "Total cells born across the grid's lifetime.",
		}),
		deaths: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecosim_deaths_total",
			Help: "Total cells that have died across the grid's lifetime.",
		}),
		mutations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ecosim_mutations_total",
			Help: "Total mutant species spawned across the grid's lifetime.",
		}),
		population: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ecosim_population",
			Help: "Current living-cell count.",
		}),
	}
	reg.MustRegister(m.births, m.deaths, m.mutations, m.population)
	return m
}

// Observe records one tick's counters. Call after each Step.
func (m *Metrics) Observe(stats Stats) {
	m.births.Add(float64(stats.Births))
	m.deaths.Add(float64(stats.Deaths))
	m.mutations.Add(float64(stats.Mutations))
	m.population.Set(float64(stats.Population))
}
