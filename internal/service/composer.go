package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Yimmi-urbano/dencia-app-front/internal/domain"
	"github.com/Yimmi-urbano/dencia-app-front/internal/location"
	"github.com/Yimmi-urbano/dencia-app-front/internal/mapview"
	"github.com/Yimmi-urbano/dencia-app-front/pkg/e"
)

type composerService struct {
	drafts   DraftStore
	reports  ReportRepository
	resolver LocationResolver
	logger   *slog.Logger
	now      func() time.Time
}

func NewComposerService(
	drafts DraftStore,
	reports ReportRepository,
	resolver LocationResolver,
	logger *slog.Logger,
) ComposerService {
	return &composerService{
		drafts:   drafts,
		reports:  reports,
		resolver: resolver,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *composerService) Create(ctx context.Context) (*domain.Draft, error) {
	const op = "service.Composer.Create"

	d := domain.NewDraft(uuid.New(), s.now())
	if err := s.drafts.Create(ctx, d.ID, d); err != nil {
		return nil, e.Wrap(op, err)
	}
	s.logger.Debug("draft created", slog.String("draft_id", d.ID.String()))
	return d, nil
}

func (s *composerService) Get(ctx context.Context, id uuid.UUID) (*domain.Draft, error) {
	d, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, e.Wrap("service.Composer.Get", err)
	}
	return d, nil
}

// Edit applies form changes. Switching the location source cancels any
// pending resolution but keeps the current coordinates.
func (s *composerService) Edit(ctx context.Context, id uuid.UUID, edit domain.DraftEdit) (*domain.Draft, error) {
	const op = "service.Composer.Edit"

	if edit.LocationSource != nil && !edit.LocationSource.Valid() {
		return nil, e.Wrap(op, e.NewValidation("locationSource", "unknown location source "+string(*edit.LocationSource)))
	}

	d, err := s.drafts.Update(ctx, id, func(d *domain.Draft) error {
		if edit.Description != nil {
			d.Description = *edit.Description
		}
		if edit.Category != nil {
			d.Category = *edit.Category
		}
		if edit.Address != nil {
			d.Address = *edit.Address
		}
		if edit.LocationSource != nil && *edit.LocationSource != d.LocationSource {
			d.LocationSource = *edit.LocationSource
			d.BeginResolution()
		}
		d.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	return d, nil
}

// ResolveAddress geocodes the draft address (replaced by address when given)
// and stores the match unless another resolution started in the meantime.
// A blank address leaves the draft untouched.
func (s *composerService) ResolveAddress(ctx context.Context, id uuid.UUID, address *string) (*domain.Draft, error) {
	const op = "service.Composer.ResolveAddress"

	var query string
	var token uint64
	_, err := s.drafts.Update(ctx, id, func(d *domain.Draft) error {
		query = d.Address
		if address != nil {
			query = *address
		}
		if strings.TrimSpace(query) == "" {
			return e.NewValidation("address", "address is empty")
		}
		d.Address = query
		d.LocationSource = domain.LocationManualAddress
		d.UpdatedAt = s.now()
		token = d.BeginResolution()
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c, err := s.resolver.ResolveFromAddress(ctx, query)
	resolutionsTotal.WithLabelValues(string(domain.LocationManualAddress), outcome(err)).Inc()
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	return s.complete(ctx, op, id, token, c)
}

// ResolveDevice reads the device position once. On failure the previous
// coordinates stay in place.
func (s *composerService) ResolveDevice(ctx context.Context, id uuid.UUID, sensor location.PositionSensor) (*domain.Draft, error) {
	const op = "service.Composer.ResolveDevice"

	var token uint64
	_, err := s.drafts.Update(ctx, id, func(d *domain.Draft) error {
		d.LocationSource = domain.LocationDevice
		d.UpdatedAt = s.now()
		token = d.BeginResolution()
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c, err := s.resolver.ResolveFromDevice(ctx, sensor)
	resolutionsTotal.WithLabelValues(string(domain.LocationDevice), outcome(err)).Inc()
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	return s.complete(ctx, op, id, token, c)
}

func (s *composerService) complete(ctx context.Context, op string, id uuid.UUID, token uint64, c domain.Coordinates) (*domain.Draft, error) {
	d, err := s.drafts.Update(ctx, id, func(d *domain.Draft) error {
		prev := d.Coordinates
		if err := d.CompleteResolution(token, c); err != nil {
			return err
		}
		d.Preview = preview(prev, d.Preview, c)
		d.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		if errors.Is(err, e.ErrSuperseded) {
			s.logger.Info("stale resolution dropped",
				slog.String("draft_id", id.String()),
				slog.Uint64("token", token),
			)
		}
		return nil, e.Wrap(op, err)
	}
	return d, nil
}

// Relocate stores the position where the preview pin was released. It wins
// over any resolution still in flight.
func (s *composerService) Relocate(ctx context.Context, id uuid.UUID, c domain.Coordinates) (*domain.Draft, error) {
	const op = "service.Composer.Relocate"

	if !c.Valid() {
		return nil, e.Wrap(op, e.NewValidation("coordinates", "coordinates out of range"))
	}

	d, err := s.drafts.Update(ctx, id, func(d *domain.Draft) error {
		prev := d.Coordinates
		if err := d.CompleteResolution(d.BeginResolution(), c); err != nil {
			return err
		}
		d.Preview = preview(prev, d.Preview, c)
		d.UpdatedAt = s.now()
		return nil
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	return d, nil
}

// Submit sends the draft as a new report. An incomplete draft is rejected
// without contacting the incident service; a failed send keeps the draft so
// the user can retry.
func (s *composerService) Submit(ctx context.Context, id uuid.UUID) error {
	const op = "service.Composer.Submit"

	d, err := s.drafts.Get(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}

	report, err := d.ToNewIncident()
	if err != nil {
		submissionsTotal.WithLabelValues(outcome(err)).Inc()
		return e.Wrap(op, err)
	}

	if err := s.reports.Create(ctx, report); err != nil {
		submissionsTotal.WithLabelValues(outcome(err)).Inc()
		s.logger.Error("submit failed", slog.String("draft_id", id.String()), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	submissionsTotal.WithLabelValues(outcome(nil)).Inc()

	if err := s.drafts.Delete(ctx, id); err != nil && !errors.Is(err, e.ErrSessionNotFound) {
		s.logger.Warn("submitted draft not deleted", slog.String("draft_id", id.String()), slog.Any("error", err))
	}
	s.logger.Info("report submitted",
		slog.String("draft_id", id.String()),
		slog.String("incident_type", string(report.IncidentType)),
	)
	return nil
}

func (s *composerService) Discard(ctx context.Context, id uuid.UUID) error {
	if err := s.drafts.Delete(ctx, id); err != nil {
		return e.Wrap("service.Composer.Discard", err)
	}
	return nil
}

// preview moves the composer map pin from prev to c and returns the view to
// persist.
func preview(prev *domain.Coordinates, view *domain.View, c domain.Coordinates) *domain.View {
	vp := mapview.NewEdit(prev, view)
	if err := vp.MovePin(c); err != nil {
		return view
	}
	v := vp.View()
	return &v
}
