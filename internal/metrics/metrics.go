package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's prometheus collectors. Collectors register
// against the given registerer so tests can use isolated registries.
type Metrics struct {
	BookingsReceived    prometheus.Counter
	EmailsSent          prometheus.Counter
	TestModeSubmissions prometheus.Counter
	ProviderFailures    prometheus.Counter

	requestDuration *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BookingsReceived: factory.NewCounter(prometheus.CounterOpts{
			Name: "booking_requests_total",
			Help: "Booking submissions received.",
		}),
		EmailsSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "booking_emails_sent_total",
			Help: "Operator notification emails accepted by the provider.",
		}),
		TestModeSubmissions: factory.NewCounter(prometheus.CounterOpts{
			Name: "booking_test_mode_total",
			Help: "Submissions handled in test mode (no email credential).",
		}),
		ProviderFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "booking_provider_failures_total",
			Help: "Email provider rejections and transport failures.",
		}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
}

// Middleware records per-route request latency and status codes.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		m.requestDuration.
			WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).
			Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
