package feed

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/Yimmi-urbano/dencia-app-front/internal/api/handlers/http/respond"
	"github.com/Yimmi-urbano/dencia-app-front/internal/domain"
	"github.com/Yimmi-urbano/dencia-app-front/internal/middleware"
	"github.com/Yimmi-urbano/dencia-app-front/pkg/e"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Views interface {
	Open(ctx context.Context) (*domain.FeedView, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.FeedView, error)
	Reload(ctx context.Context, id uuid.UUID) (*domain.FeedView, error)
	Focus(ctx context.Context, id uuid.UUID, markerID string) (*domain.FeedView, error)
	SetView(ctx context.Context, id uuid.UUID, view domain.View) (*domain.FeedView, error)
}

type Handler struct {
	logger *slog.Logger
	Views  Views
}

func NewHandler(logger *slog.Logger, views Views) *Handler {
	return &Handler{
		logger: logger,
		Views:  views,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) viewID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.log(r).Warn("invalid feed id", slog.String("id", idStr))
		h.handleError(w, r, e.NewValidation("id", "invalid feed id"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) FeedOpen(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	v, err := h.Views.Open(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := h.toFeedResponse(l, v)
	l.Info("feed opened",
		slog.String("feed_id", v.ID.String()),
		slog.Int("markers", len(resp.Markers.Features)),
		slog.Bool("degraded", v.Degraded),
	)
	h.writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) FeedGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.viewID(w, r)
	if !ok {
		return
	}
	v, err := h.Views.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.toFeedResponse(h.log(r), v))
}

func (h *Handler) FeedReload(w http.ResponseWriter, r *http.Request) {
	id, ok := h.viewID(w, r)
	if !ok {
		return
	}
	v, err := h.Views.Reload(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.toFeedResponse(h.log(r), v))
}

// FeedFocus handles a click on a marker and returns the new map view.
func (h *Handler) FeedFocus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.viewID(w, r)
	if !ok {
		return
	}
	markerID := chi.URLParam(r, "markerID")
	if markerID == "" {
		h.handleError(w, r, e.NewValidation("markerID", "marker id is required"))
		return
	}

	v, err := h.Views.Focus(r.Context(), id, markerID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toViewResponse(v))
}

// FeedSetView stores the view after the user panned or zoomed the map.
func (h *Handler) FeedSetView(w http.ResponseWriter, r *http.Request) {
	id, ok := h.viewID(w, r)
	if !ok {
		return
	}

	var req setViewRequest
	if err := middleware.DecodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	v, err := h.Views.SetView(r.Context(), id, req.toView())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toViewResponse(v))
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	respond.Error(w, r, h.log(r), err)
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	respond.JSON(w, h.logger, code, v)
}
