package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "anchor",
			Name:      "http_requests_total",
			Help:      "Count of API requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	availabilityComputed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "anchor",
			Name:      "availability_computed_total",
			Help:      "Count of availability computations by source.",
		},
		[]string{"source"}, // cache, fresh, fallback
	)

	promotionResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "anchor",
			Name:      "promotion_resolutions_total",
			Help:      "Count of current-promotion lookups by result.",
		},
		[]string{"result"}, // hit, miss
	)

	catalogInvalid = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "anchor",
			Name:      "catalog_invalid_records_total",
			Help:      "Count of promotion records dropped during catalog load.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, availabilityComputed, promotionResolutions, catalogInvalid)
	})
}

func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

func IncAvailability(source string) {
	availabilityComputed.WithLabelValues(source).Inc()
}

func IncPromotionResolution(result string) {
	promotionResolutions.WithLabelValues(result).Inc()
}

func IncCatalogInvalid() {
	catalogInvalid.Inc()
}
