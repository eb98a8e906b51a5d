package gym

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/gym-membership/internal/config"
	"github.com/magabrotheeeer/gym-membership/internal/http/handlers/health"
	"github.com/magabrotheeeer/gym-membership/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-membership/internal/metrics"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func newTestRouter(t *testing.T, redisErr error) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	RegisterRoutes(r, logger, config.Scanner{DeviceKey: "scanner-1", RateLimit: 100, Burst: 100}, Services{},
		metrics.New(prometheus.NewRegistry()), map[string]health.Checker{
			"postgres": pinger{},
			"redis":    pinger{err: redisErr},
		})
	return r
}

func TestRoutes_Access(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		name       string
		method     string
		path       string
		header     map[string]string
		wantStatus int
	}{
		{name: "health is public", method: http.MethodGet, path: "/api/health", wantStatus: http.StatusOK},
		{name: "members need token", method: http.MethodGet, path: "/api/members", wantStatus: http.StatusUnauthorized},
		{name: "analytics need token", method: http.MethodGet, path: "/api/analytics", wantStatus: http.StatusUnauthorized},
		{name: "attendance need token", method: http.MethodGet, path: "/api/attendance?date=2024-06-15", wantStatus: http.StatusUnauthorized},
		{name: "fingerprint list needs token", method: http.MethodGet, path: "/api/fingerprints/verification", wantStatus: http.StatusUnauthorized},
		{name: "register needs token", method: http.MethodPost, path: "/api/auth/register", wantStatus: http.StatusUnauthorized},
		{
			name:       "scanner without device key",
			method:     http.MethodPost,
			path:       "/api/fingerprints/verification/12",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "legacy scanner route without device key",
			method:     http.MethodPost,
			path:       "/api/fingerprints/verification/fp",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "scanner rejects bad id before service",
			method:     http.MethodPost,
			path:       "/api/fingerprints/verification/abc",
			header:     map[string]string{middlewarectx.DeviceKeyHeader: "scanner-1"},
			wantStatus: http.StatusBadRequest,
		},
		{name: "metrics exposed", method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, path: "/api/unknown", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRoutes_ScannerRejectsNonIntegerIDs(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "fractional id in path", method: http.MethodPost, path: "/api/fingerprints/verification/12.5", wantStatus: http.StatusBadRequest},
		{name: "format suffix in path", method: http.MethodPost, path: "/api/fingerprints/verification/12.json", wantStatus: http.StatusBadRequest},
		{name: "fractional id via get", method: http.MethodGet, path: "/api/fingerprints/verification/7.0", wantStatus: http.StatusBadRequest},
		{name: "exponent in legacy body", method: http.MethodPost, path: "/api/fingerprints/verification/fp", body: `{"fingerprintId":1e3}`, wantStatus: http.StatusBadRequest},
		{name: "fraction in legacy body", method: http.MethodPost, path: "/api/fingerprints/verification/fp", body: `{"fingerprintId":12.5}`, wantStatus: http.StatusBadRequest},
		{name: "fraction as string in legacy body", method: http.MethodPost, path: "/api/fingerprints/verification/fp", body: `{"fingerprintId":"12.5"}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set(middlewarectx.DeviceKeyHeader, "scanner-1")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), "Invalid fingerprint ID")
		})
	}
}

func TestRoutes_HealthReportsBrokenDependency(t *testing.T) {
	router := newTestRouter(t, errors.New("connection refused"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"unavailable"`)
}
