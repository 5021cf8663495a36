package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)

	CasesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_cases_created_total",
			Help: "Total number of cases opened",
		},
	)

	CasesTransformedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_cases_transformed_total",
			Help: "Total number of administrative cases moved to the judicial sphere",
		},
	)

	StepsCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_steps_completed_total",
			Help: "Total number of case steps marked completed",
		},
	)

	DocumentsUploadedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portal_documents_uploaded_total",
			Help: "Total number of documents registered on cases",
		},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Instrument wraps a handler and records request durations per route pattern.
// The pattern, not the raw URL, is used as the path label to keep cardinality
// bounded.
func Instrument(pattern string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		RequestDuration.WithLabelValues(r.Method, pattern, strconv.Itoa(sw.status)).
			Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
