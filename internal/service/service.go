package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Yimmi-urbano/dencia-app-front/internal/domain"
	"github.com/Yimmi-urbano/dencia-app-front/internal/location"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

// ReportRepository is the remote incident service.
type ReportRepository interface {
	List(ctx context.Context) ([]domain.Incident, error)
	Create(ctx context.Context, report domain.NewIncident) error
}

type DraftStore interface {
	Create(ctx context.Context, id uuid.UUID, d *domain.Draft) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Draft, error)
	Update(ctx context.Context, id uuid.UUID, fn func(*domain.Draft) error) (*domain.Draft, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type FeedViewStore interface {
	Create(ctx context.Context, id uuid.UUID, v *domain.FeedView) error
	Get(ctx context.Context, id uuid.UUID) (*domain.FeedView, error)
	Update(ctx context.Context, id uuid.UUID, fn func(*domain.FeedView) error) (*domain.FeedView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type LocationResolver interface {
	ResolveFromAddress(ctx context.Context, address string) (domain.Coordinates, error)
	ResolveFromDevice(ctx context.Context, sensor location.PositionSensor) (domain.Coordinates, error)
}

// ComposerService owns report drafts, from the empty form to submission.
type ComposerService interface {
	Create(ctx context.Context) (*domain.Draft, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Draft, error)
	Edit(ctx context.Context, id uuid.UUID, edit domain.DraftEdit) (*domain.Draft, error)
	ResolveAddress(ctx context.Context, id uuid.UUID, address *string) (*domain.Draft, error)
	ResolveDevice(ctx context.Context, id uuid.UUID, sensor location.PositionSensor) (*domain.Draft, error)
	Relocate(ctx context.Context, id uuid.UUID, c domain.Coordinates) (*domain.Draft, error)
	Submit(ctx context.Context, id uuid.UUID) error
	Discard(ctx context.Context, id uuid.UUID) error
}

// FeedService owns the incident list and map state of feed pages.
type FeedService interface {
	Open(ctx context.Context) (*domain.FeedView, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.FeedView, error)
	Reload(ctx context.Context, id uuid.UUID) (*domain.FeedView, error)
	Focus(ctx context.Context, id uuid.UUID, markerID string) (*domain.FeedView, error)
	SetView(ctx context.Context, id uuid.UUID, view domain.View) (*domain.FeedView, error)
}

type Service struct {
	Composer ComposerService
	Feed     FeedService
}

func NewService(composer ComposerService, feed FeedService) *Service {
	return &Service{
		Composer: composer,
		Feed:     feed,
	}
}
