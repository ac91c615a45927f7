package system

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	logger *slog.Logger
	redis  Pinger
}

func NewHandler(logger *slog.Logger, redis Pinger) *Handler {
	return &Handler{logger: logger, redis: redis}
}

// SystemHealth reports "ok" while the session store answers.
func (h *Handler) SystemHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if h.redis != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.redis.Ping(ctx); err != nil {
			h.logger.Error("health: redis ping failed", slog.Any("error", err))
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("redis unavailable"))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
