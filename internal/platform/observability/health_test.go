package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthServerProbes(t *testing.T) {
	healthy := PingFunc(func(context.Context) error { return nil })
	broken := PingFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name     string
		checks   map[string]Pinger
		path     string
		wantCode int
		wantBody string
	}{
		{name: "liveness ignores dependencies", checks: map[string]Pinger{"postgres": broken}, path: "/healthz", wantCode: http.StatusOK, wantBody: "OK"},
		{name: "ready", checks: map[string]Pinger{"postgres": healthy, "redis": healthy}, path: "/readyz", wantCode: http.StatusOK, wantBody: "OK"},
		{name: "not ready", checks: map[string]Pinger{"postgres": healthy, "redis": broken}, path: "/readyz", wantCode: http.StatusServiceUnavailable, wantBody: "redis error: connection refused"},
		{name: "no checks", checks: nil, path: "/readyz", wantCode: http.StatusOK, wantBody: "OK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewServer(tt.checks, 0, nil)

			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestHealthServerExposesMetrics(t *testing.T) {
	TurnsTotal.WithLabelValues("general_reply").Inc()

	rec := httptest.NewRecorder()
	NewServer(nil, 0, nil).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "seva_turns_total")
}
