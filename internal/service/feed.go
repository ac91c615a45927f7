package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Yimmi-urbano/dencia-app-front/internal/domain"
	"github.com/Yimmi-urbano/dencia-app-front/internal/mapview"
	"github.com/Yimmi-urbano/dencia-app-front/pkg/e"
)

type feedService struct {
	views   FeedViewStore
	reports ReportRepository
	logger  *slog.Logger
	now     func() time.Time
}

func NewFeedService(views FeedViewStore, reports ReportRepository, logger *slog.Logger) FeedService {
	return &feedService{
		views:   views,
		reports: reports,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// loadAll fetches every incident once. A failure is logged and yields an
// empty, degraded list; it is never returned to the caller.
func (s *feedService) loadAll(ctx context.Context) ([]domain.Incident, bool) {
	incidents, err := s.reports.List(ctx)
	feedLoadsTotal.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		s.logger.Error("load incidents failed", slog.Any("error", err))
		return []domain.Incident{}, true
	}
	if incidents == nil {
		incidents = []domain.Incident{}
	}
	feedIncidents.Set(float64(len(incidents)))
	s.logger.Debug("incidents loaded", slog.Int("count", len(incidents)))
	return incidents, false
}

// Open starts a feed page: a fresh view on the default map position with
// the current incident list.
func (s *feedService) Open(ctx context.Context) (*domain.FeedView, error) {
	const op = "service.Feed.Open"

	incidents, degraded := s.loadAll(ctx)
	v := &domain.FeedView{
		ID:        uuid.New(),
		Incidents: incidents,
		View:      mapview.DefaultView(),
		Degraded:  degraded,
		LoadedAt:  s.now(),
	}
	if err := s.views.Create(ctx, v.ID, v); err != nil {
		return nil, e.Wrap(op, err)
	}
	return v, nil
}

func (s *feedService) Get(ctx context.Context, id uuid.UUID) (*domain.FeedView, error) {
	v, err := s.views.Get(ctx, id)
	if err != nil {
		return nil, e.Wrap("service.Feed.Get", err)
	}
	return v, nil
}

// Reload replaces the whole list. The focus is dropped when its marker is
// no longer present.
func (s *feedService) Reload(ctx context.Context, id uuid.UUID) (*domain.FeedView, error) {
	const op = "service.Feed.Reload"

	if _, err := s.views.Get(ctx, id); err != nil {
		return nil, e.Wrap(op, err)
	}

	incidents, degraded := s.loadAll(ctx)
	v, err := s.views.Update(ctx, id, func(v *domain.FeedView) error {
		v.Incidents = incidents
		v.Degraded = degraded
		v.LoadedAt = s.now()
		if v.FocusedID != "" && !containsIncident(incidents, v.FocusedID) {
			v.FocusedID = ""
		}
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	return v, nil
}

// Focus handles a marker click.
func (s *feedService) Focus(ctx context.Context, id uuid.UUID, markerID string) (*domain.FeedView, error) {
	const op = "service.Feed.Focus"

	v, err := s.views.Update(ctx, id, func(v *domain.FeedView) error {
		vp := viewport(v)
		view, err := vp.Focus(markerID)
		if err != nil {
			if errors.Is(err, mapview.ErrUnknownMarker) {
				return fmt.Errorf("%w: %w", e.ErrNotFound, err)
			}
			return err
		}
		v.View = view
		v.FocusedID = vp.FocusedID()
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	return v, nil
}

// SetView records a pan or zoom made by the user on the map.
func (s *feedService) SetView(ctx context.Context, id uuid.UUID, view domain.View) (*domain.FeedView, error) {
	const op = "service.Feed.SetView"

	if !view.Center.Valid() {
		return nil, e.Wrap(op, e.NewValidation("center", "coordinates out of range"))
	}

	v, err := s.views.Update(ctx, id, func(v *domain.FeedView) error {
		vp := viewport(v)
		if err := vp.SetView(view); err != nil {
			return e.NewValidation("view", err.Error())
		}
		v.View = vp.View()
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	return v, nil
}

func viewport(v *domain.FeedView) *mapview.Viewport {
	markers, _ := mapview.BuildMarkers(v.Incidents)
	vp := mapview.NewDisplay(markers, v.View)
	vp.Restore(v.FocusedID)
	return vp
}

func containsIncident(incidents []domain.Incident, id string) bool {
	for _, inc := range incidents {
		if inc.ID == id {
			return true
		}
	}
	return false
}
