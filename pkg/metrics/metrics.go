package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "crud", Name: "operations_total", Help: "CRUD operations by resource, operation and outcome."},
		[]string{"resource", "operation", "outcome"},
	)
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "crud", Name: "cache_lookups_total", Help: "Get-by-id cache lookups by resource and result (hit|miss|error)."},
		[]string{"resource", "result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(Operations)
	reg.MustRegister(CacheLookups)
}
