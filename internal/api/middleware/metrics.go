package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/phrazzld/astral-api/internal/platform/logger"
)

// HTTPMetrics records request metrics labelled by chi route pattern.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
	slow     time.Duration
}

// NewHTTPMetrics registers the HTTP metrics with reg. Requests slower than
// slowThreshold are logged at WARN; zero disables that.
func NewHTTPMetrics(reg prometheus.Registerer, slowThreshold time.Duration) *HTTPMetrics {
	factory := promauto.With(reg)
	return &HTTPMetrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "astral_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "astral_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"route", "method", "class"},
		),
		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "astral_http_in_flight_requests",
			Help: "Current number of in-flight HTTP requests",
		}),
		slow: slowThreshold,
	}
}

// Handler is the middleware function.
func (m *HTTPMetrics) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		elapsed := time.Since(start)

		route := routeLabel(r)
		status := strconv.Itoa(rw.status)
		m.requests.WithLabelValues(route, r.Method, status).Inc()
		m.duration.WithLabelValues(route, r.Method, statusClass(rw.status)).Observe(elapsed.Seconds())

		log := logger.FromContext(r.Context())
		switch {
		case rw.status >= http.StatusInternalServerError:
			log.Error("http request failed",
				slog.String("route", route),
				slog.String("method", r.Method),
				slog.Int("status", rw.status),
				slog.Duration("duration", elapsed))
		case m.slow > 0 && elapsed >= m.slow:
			log.Warn("http request slow",
				slog.String("route", route),
				slog.String("method", r.Method),
				slog.Int("status", rw.status),
				slog.Duration("duration", elapsed))
		}
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusRecorder) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

// routeLabel uses the matched chi pattern to keep label cardinality low.
// Unmatched requests share one label.
func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

func statusClass(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
