package ecology

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsObserveAccumulates(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.Observe(Stats{Births: 3, Deaths: 1, Mutations: 1, Population: 40})
	m.Observe(Stats{Births: 2, Deaths: 2, Mutations: 0, Population: 39})

	if got := testutil.ToFloat64(m.births); got != 5 {
		t.Errorf("ecosim_births_total = %v, want 5", got)
	}
	if got := testutil.ToFloat64(m.deaths); got != 3 {
		t.Errorf("ecosim_deaths_total = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.mutations); got != 1 {
		t.Errorf("ecosim_mutations_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.population); got != 39 {
		t.Errorf("ecosim_population = %v, want 39 (last observed value)", got)
	}
}
