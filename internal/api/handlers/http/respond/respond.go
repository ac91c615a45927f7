// Package respond writes JSON responses and maps domain errors to HTTP.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Yimmi-urbano/dencia-app-front/pkg/e"
)

type ErrorBody struct {
	Error  string `json:"error"`
	Kind   string `json:"kind"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func JSON(w http.ResponseWriter, logger *slog.Logger, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("json encode failed", slog.Any("error", err))
	}
}

func Status(err error) int {
	switch {
	case errors.Is(err, e.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, e.ErrLocation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, e.ErrSessionNotFound), errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, e.ErrSuperseded), errors.Is(err, e.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, e.ErrService):
		return http.StatusBadGateway
	case errors.Is(err, e.ErrCanceled):
		return 499
	default:
		return http.StatusInternalServerError
	}
}

// Body is the client-facing error. Internal details are never exposed.
func Body(err error) ErrorBody {
	body := ErrorBody{Kind: e.Kind(err)}

	var verr *e.ValidationError
	var lerr *e.LocationError
	switch {
	case errors.As(err, &verr):
		body.Error = verr.Error()
		body.Field = verr.Field
	case errors.As(err, &lerr):
		body.Error = "device location unavailable"
		body.Reason = lerr.Reason
	case errors.Is(err, e.ErrSessionNotFound):
		body.Error = "session expired or unknown"
	case errors.Is(err, e.ErrNotFound):
		body.Error = "not found"
	case errors.Is(err, e.ErrSuperseded):
		body.Error = "a newer location replaced this one"
	case errors.Is(err, e.ErrConflict):
		body.Error = "conflict"
	case errors.Is(err, e.ErrService):
		body.Error = "service unavailable, try again"
	default:
		body.Error = "internal error"
	}
	return body
}

// Error logs err and writes the mapped status and body.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code := Status(err)

	level := slog.LevelWarn
	if code >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.Log(r.Context(), level, "handler error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", code),
		slog.Any("error", err),
	)

	JSON(w, logger, code, Body(err))
}
