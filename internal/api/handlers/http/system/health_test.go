package system_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Yimmi-urbano/dencia-app-front/internal/api/handlers/http/system"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestSystemHealth(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cases := []struct {
		name   string
		ping   system.Pinger
		status int
		body   string
	}{
		{"up", pingFunc(func(context.Context) error { return nil }), http.StatusOK, "ok"},
		{"redis_down", pingFunc(func(context.Context) error { return errors.New("dial tcp: refused") }), http.StatusServiceUnavailable, "redis unavailable"},
		{"no_store", nil, http.StatusOK, "ok"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			h := system.NewHandler(logger, c.ping)

			rr := httptest.NewRecorder()
			h.SystemHealth(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

			assert.Equal(t, c.status, rr.Code)
			assert.Equal(t, c.body, rr.Body.String())
		})
	}
}
