// Package location produces a coordinate from the device sensor or from a
// geocoded address.
package location

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Yimmi-urbano/dencia-app-front/internal/domain"
	"github.com/Yimmi-urbano/dencia-app-front/internal/geocoding"
	"github.com/Yimmi-urbano/dencia-app-front/pkg/e"
)

// PositionSensor is a one-shot "current position" query.
type PositionSensor interface {
	CurrentPosition(ctx context.Context) (domain.Coordinates, error)
}

type Resolver struct {
	geocoder geocoding.Geocoder
	logger   *slog.Logger
}

func NewResolver(geocoder geocoding.Geocoder, logger *slog.Logger) *Resolver {
	return &Resolver{geocoder: geocoder, logger: logger}
}

// ResolveFromAddress geocodes address with a single lookup limited to one
// match. Blank input fails before any request is made.
func (r *Resolver) ResolveFromAddress(ctx context.Context, address string) (domain.Coordinates, error) {
	const op = "location.ResolveFromAddress"

	address = strings.TrimSpace(address)
	if address == "" {
		return domain.Coordinates{}, e.NewValidation("address", "address is empty")
	}

	places, err := r.geocoder.Search(ctx, address, 1)
	if err != nil {
		r.logger.Warn("geocode failed", slog.String("address", address), slog.Any("error", err))
		return domain.Coordinates{}, e.WrapError(ctx, op, err)
	}
	if len(places) == 0 {
		r.logger.Info("geocode found no match", slog.String("address", address))
		return domain.Coordinates{}, e.Wrap(op, e.ErrNotFound)
	}

	r.logger.Debug("geocode resolved",
		slog.String("address", address),
		slog.Float64("lat", places[0].Coordinates.Lat),
		slog.Float64("lon", places[0].Coordinates.Lon),
	)
	return places[0].Coordinates, nil
}

// ResolveFromDevice reads the sensor once.
func (r *Resolver) ResolveFromDevice(ctx context.Context, sensor PositionSensor) (domain.Coordinates, error) {
	const op = "location.ResolveFromDevice"

	if sensor == nil {
		return domain.Coordinates{}, e.Wrap(op, &e.LocationError{Reason: e.ReasonUnavailable})
	}

	c, err := sensor.CurrentPosition(ctx)
	if err != nil {
		r.logger.Info("device position failed", slog.Any("error", err))
		return domain.Coordinates{}, e.Wrap(op, err)
	}
	if !c.Valid() {
		return domain.Coordinates{}, e.Wrap(op, &e.LocationError{Reason: e.ReasonUnavailable})
	}
	return c, nil
}
