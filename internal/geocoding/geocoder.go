// Package geocoding turns free-text addresses into coordinates.
package geocoding

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Yimmi-urbano/dencia-app-front/internal/config"
	"github.com/Yimmi-urbano/dencia-app-front/internal/domain"
)

// Place is one forward-geocoding match.
type Place struct {
	DisplayName string
	Coordinates domain.Coordinates
}

// Geocoder returns at most limit matches, best first. An empty slice with a
// nil error means the provider found nothing.
type Geocoder interface {
	Search(ctx context.Context, query string, limit int) ([]Place, error)
}

const (
	ProviderNominatim = "nominatim"
	ProviderGoogle    = "google"
)

func New(cfg config.GeocoderConfig, logger *slog.Logger) (Geocoder, error) {
	switch cfg.Provider {
	case ProviderNominatim, "":
		return NewNominatim(cfg, logger), nil
	case ProviderGoogle:
		return NewGoogle(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown geocoder provider %q", cfg.Provider)
	}
}
