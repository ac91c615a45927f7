package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/time/rate"
	"googlemaps.github.io/maps"

	"github.com/Yimmi-urbano/dencia-app-front/internal/config"
	"github.com/Yimmi-urbano/dencia-app-front/internal/domain"
	"github.com/Yimmi-urbano/dencia-app-front/pkg/e"
)

// Google uses the Google Maps Geocoding API.
type Google struct {
	logger    *slog.Logger
	client    *maps.Client
	countries string
	limiter   *rate.Limiter
}

func NewGoogle(cfg config.GeocoderConfig, logger *slog.Logger) (*Google, error) {
	if cfg.GoogleAPIKey == "" {
		return nil, errors.New("GEOCODER_GOOGLE_API_KEY is empty")
	}

	opts := []maps.ClientOption{maps.WithAPIKey(cfg.GoogleAPIKey)}
	if cfg.BaseURL != "" && cfg.BaseURL != config.DefaultNominatimURL {
		opts = append(opts, maps.WithBaseURL(cfg.BaseURL))
	}

	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating Google Maps client: %w", err)
	}
	return &Google{
		logger:    logger,
		client:    client,
		countries: cfg.CountryCodes,
		limiter:   newLimiter(cfg.RequestsPerSecond),
	}, nil
}

func (g *Google) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	const op = "geocoding.google.Search"

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	req := &maps.GeocodingRequest{Address: query}
	if g.countries != "" {
		req.Components = map[maps.Component]string{
			maps.ComponentCountry: strings.Split(g.countries, ",")[0],
		}
	}

	results, err := g.client.Geocode(ctx, req)
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return []Place{}, nil
		}
		g.logger.Warn("google geocode failed", slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	places := make([]Place, 0, len(results))
	for _, r := range results {
		c := domain.Coordinates{Lat: r.Geometry.Location.Lat, Lon: r.Geometry.Location.Lng}
		if !c.Valid() {
			return nil, fmt.Errorf("%s: coordinates out of range: %w", op, e.ErrService)
		}
		places = append(places, Place{DisplayName: r.FormattedAddress, Coordinates: c})
	}
	return places, nil
}
