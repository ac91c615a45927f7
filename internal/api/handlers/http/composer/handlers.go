package composer

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/Yimmi-urbano/dencia-app-front/internal/api/handlers/http/respond"
	"github.com/Yimmi-urbano/dencia-app-front/internal/domain"
	"github.com/Yimmi-urbano/dencia-app-front/internal/location"
	"github.com/Yimmi-urbano/dencia-app-front/internal/middleware"
	"github.com/Yimmi-urbano/dencia-app-front/pkg/e"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Drafts interface {
	Create(ctx context.Context) (*domain.Draft, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Draft, error)
	Edit(ctx context.Context, id uuid.UUID, edit domain.DraftEdit) (*domain.Draft, error)
	ResolveAddress(ctx context.Context, id uuid.UUID, address *string) (*domain.Draft, error)
	ResolveDevice(ctx context.Context, id uuid.UUID, sensor location.PositionSensor) (*domain.Draft, error)
	Relocate(ctx context.Context, id uuid.UUID, c domain.Coordinates) (*domain.Draft, error)
	Submit(ctx context.Context, id uuid.UUID) error
	Discard(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	logger *slog.Logger
	Drafts Drafts
}

func NewHandler(logger *slog.Logger, drafts Drafts) *Handler {
	return &Handler{
		logger: logger,
		Drafts: drafts,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) draftID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.log(r).Warn("invalid draft id", slog.String("id", idStr))
		h.handleError(w, r, e.NewValidation("id", "invalid draft id"))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) DraftCreate(w http.ResponseWriter, r *http.Request) {
	d, err := h.Drafts.Create(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.log(r).Info("draft opened", slog.String("draft_id", d.ID.String()))
	h.writeJSON(w, http.StatusCreated, toDraftResponse(d))
}

func (h *Handler) DraftGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.draftID(w, r)
	if !ok {
		return
	}
	d, err := h.Drafts.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toDraftResponse(d))
}

func (h *Handler) DraftEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.draftID(w, r)
	if !ok {
		return
	}

	var req editDraftRequest
	if err := middleware.DecodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}
	edit, err := req.toEdit()
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	d, err := h.Drafts.Edit(r.Context(), id, edit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toDraftResponse(d))
}

// DraftResolveAddress geocodes the draft address. The body is optional; when
// present it replaces the stored address first.
func (h *Handler) DraftResolveAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := h.draftID(w, r)
	if !ok {
		return
	}

	var req resolveAddressRequest
	if err := middleware.DecodeJSON(w, r, &req); err != nil && !errors.Is(err, middleware.ErrEmptyBody) {
		h.handleError(w, r, err)
		return
	}

	d, err := h.Drafts.ResolveAddress(r.Context(), id, req.Address)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toDraftResponse(d))
}

// DraftResolveDevice takes the reading the browser got from its geolocation
// API: a position, or the error it reported.
func (h *Handler) DraftResolveDevice(w http.ResponseWriter, r *http.Request) {
	id, ok := h.draftID(w, r)
	if !ok {
		return
	}

	var req devicePositionRequest
	if err := middleware.DecodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	d, err := h.Drafts.ResolveDevice(r.Context(), id, req.toSensor())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toDraftResponse(d))
}

// DraftMovePin is the drag end of the preview pin.
func (h *Handler) DraftMovePin(w http.ResponseWriter, r *http.Request) {
	id, ok := h.draftID(w, r)
	if !ok {
		return
	}

	var req pinRequest
	if err := middleware.DecodeJSON(w, r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	d, err := h.Drafts.Relocate(r.Context(), id, domain.Coordinates{Lat: *req.Lat, Lon: *req.Lon})
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toDraftResponse(d))
}

func (h *Handler) DraftSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.draftID(w, r)
	if !ok {
		return
	}

	if err := h.Drafts.Submit(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}
	h.log(r).Info("report submitted", slog.String("draft_id", id.String()))
	h.writeJSON(w, http.StatusCreated, map[string]string{"status": "submitted"})
}

func (h *Handler) DraftDiscard(w http.ResponseWriter, r *http.Request) {
	id, ok := h.draftID(w, r)
	if !ok {
		return
	}

	if err := h.Drafts.Discard(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	respond.Error(w, r, h.log(r), err)
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	respond.JSON(w, h.logger, code, v)
}
