package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		patternsConfigured,
		storeSaveFailuresTotal,
		storeFallbackLoadsTotal,
	)
}

var (
	patternsConfigured = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "patterns_configured",
			Help: "Number of patterns currently in the store.",
		},
	)

	storeSaveFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "store_save_failures_total",
			Help: "Pattern file writes that failed.",
		},
	)

	storeFallbackLoadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "store_fallback_loads_total",
			Help: "Startups that fell back to the default pattern set.",
		},
	)
)

func SetPatternsConfigured(n int) { patternsConfigured.Set(float64(n)) }

func IncStoreSaveFailure() { storeSaveFailuresTotal.Inc() }

func IncStoreFallbackLoad() { storeFallbackLoadsTotal.Inc() }
