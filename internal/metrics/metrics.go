// Package metrics собирает метрики Prometheus: HTTP-запросы, проверки отпечатков
// и переходы абонементов в Expired.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Результаты проверки отпечатка.
const (
	CheckInGranted  = "granted"
	CheckInDenied   = "denied"
	CheckInNotFound = "not_found"
	CheckInInvalid  = "invalid"
)

// Metrics набор метрик сервиса.
type Metrics struct {
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
	CheckIns       *prometheus.CounterVec
	MembersExpired prometheus.Counter
}

// New создаёт метрики и регистрирует их в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gym",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gym",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		CheckIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gym",
			Name:      "checkins_total",
			Help:      "Fingerprint verifications by result.",
		}, []string{"result"}),
		MembersExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gym",
			Name:      "members_expired_total",
			Help:      "Memberships moved to Expired by the scheduler.",
		}),
	}
	reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.CheckIns, m.MembersExpired)
	return m
}

// CheckIn учитывает результат проверки отпечатка.
func (m *Metrics) CheckIn(result string) {
	if m == nil {
		return
	}
	m.CheckIns.WithLabelValues(result).Inc()
}

// Expired учитывает n абонементов, переведённых в Expired.
func (m *Metrics) Expired(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.MembersExpired.Add(float64(n))
}

// Middleware считает запросы и их длительность. Маршрут берётся из шаблона chi,
// чтобы ID в пути не раздували число меток.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
