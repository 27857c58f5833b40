package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hotel"

const (
	OutcomeCreated  = "created"
	OutcomeRejected = "rejected"
	OutcomeConflict = "conflict"
	OutcomeAborted  = "aborted"
)

var (
	once sync.Once

	bookings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_requests_total",
			Help:      "Booking requests by final outcome.",
		},
		[]string{"outcome"},
	)

	cancellations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_cancellations_total",
			Help:      "Bookings flipped to cancelled, by trigger.",
		},
		[]string{"trigger"},
	)

	retries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_retries_total",
			Help:      "Transactions re-run after a serialization or transient failure.",
		},
		[]string{"operation"},
	)

	cacheLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_loads_total",
			Help:      "Full collection loads from the store, by entity kind.",
		},
		[]string{"kind"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookings, cancellations, retries, cacheLoads)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func IncBooking(outcome string) {
	bookings.WithLabelValues(outcome).Inc()
}

func AddCancellations(trigger string, count int) {
	cancellations.WithLabelValues(trigger).Add(float64(count))
}

func IncRetry(operation string) {
	retries.WithLabelValues(operation).Inc()
}

func IncCacheLoad(kind string) {
	cacheLoads.WithLabelValues(kind).Inc()
}
