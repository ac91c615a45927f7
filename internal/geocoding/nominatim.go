package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/Yimmi-urbano/dencia-app-front/internal/config"
	"github.com/Yimmi-urbano/dencia-app-front/internal/domain"
	"github.com/Yimmi-urbano/dencia-app-front/pkg/e"
)

// Nominatim queries an OpenStreetMap Nominatim /search endpoint.
type Nominatim struct {
	logger    *slog.Logger
	baseURL   string
	userAgent string
	countries string
	http      *http.Client
	limiter   *rate.Limiter
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func NewNominatim(cfg config.GeocoderConfig, logger *slog.Logger) *Nominatim {
	return &Nominatim{
		logger:    logger,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		countries: cfg.CountryCodes,
		http:      &http.Client{Timeout: cfg.Timeout},
		limiter:   newLimiter(cfg.RequestsPerSecond),
	}
}

// newLimiter allows rps lookups per second with a burst of one. Fractional
// rates are honoured; rps <= 0 disables throttling.
func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

func (n *Nominatim) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	const op = "geocoding.nominatim.Search"

	if err := n.limiter.Wait(ctx); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(limit))
	if n.countries != "" {
		params.Set("countrycodes", n.countries)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	req.Header.Set("Accept", "application/json")
	if n.userAgent != "" {
		req.Header.Set("User-Agent", n.userAgent)
	}

	resp, err := n.http.Do(req)
	if err != nil {
		n.logger.Warn("nominatim request failed", slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		n.logger.Warn("nominatim non-2xx", slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%s: status %s: %w", op, resp.Status, e.ErrService)
	}

	var raw []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%s: decode: %v: %w", op, err, e.ErrService)
	}

	places := make([]Place, 0, len(raw))
	for _, p := range raw {
		lat, err := strconv.ParseFloat(strings.TrimSpace(p.Lat), 64)
		if err != nil {
			return nil, fmt.Errorf("%s: malformed lat %q: %w", op, p.Lat, e.ErrService)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(p.Lon), 64)
		if err != nil {
			return nil, fmt.Errorf("%s: malformed lon %q: %w", op, p.Lon, e.ErrService)
		}
		c := domain.Coordinates{Lat: lat, Lon: lon}
		if !c.Valid() {
			return nil, fmt.Errorf("%s: coordinates out of range (%v, %v): %w", op, lat, lon, e.ErrService)
		}
		places = append(places, Place{DisplayName: p.DisplayName, Coordinates: c})
	}

	n.logger.Debug("nominatim search done", slog.Int("matches", len(places)))
	return places, nil
}
