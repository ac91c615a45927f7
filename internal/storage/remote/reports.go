// Package remote talks to the incident service that owns published reports.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Yimmi-urbano/dencia-app-front/internal/config"
	"github.com/Yimmi-urbano/dencia-app-front/internal/domain"
	"github.com/Yimmi-urbano/dencia-app-front/pkg/e"
	"github.com/Yimmi-urbano/dencia-app-front/pkg/validator"
)

type ReportsClient struct {
	logger  *slog.Logger
	baseURL string
	http    *http.Client
}

func NewReportsClient(cfg config.ReportsConfig, logger *slog.Logger) *ReportsClient {
	return &ReportsClient{
		logger:  logger,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// wireReport mirrors GET /reports items. Coordinates are kept raw so one bad
// item does not fail the whole list.
type wireReport struct {
	ID           string `json:"_id"`
	Description  string `json:"description"`
	IncidentType string `json:"incidentType"`
	Address      string `json:"address"`
	Coordinates  *struct {
		Lat json.RawMessage `json:"lat"`
		Lon json.RawMessage `json:"lon"`
	} `json:"coordinates"`
}

func (w wireReport) toIncident() (domain.Incident, bool) {
	if w.Coordinates == nil {
		return domain.Incident{}, false
	}
	lat, ok := parseNumber(w.Coordinates.Lat)
	if !ok {
		return domain.Incident{}, false
	}
	lon, ok := parseNumber(w.Coordinates.Lon)
	if !ok {
		return domain.Incident{}, false
	}
	inc := domain.Incident{
		ID:           w.ID,
		Description:  w.Description,
		IncidentType: domain.Category(w.IncidentType),
		Coordinates:  domain.Coordinates{Lat: lat, Lon: lon},
		Address:      w.Address,
	}
	return inc, inc.Coordinates.Valid()
}

// parseNumber accepts JSON numbers only: strings, null and missing values
// are rejected.
func parseNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, false
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}

// List fetches every published incident. Items without a usable coordinate
// pair or a unique id are dropped. Order is whatever the service returns.
func (c *ReportsClient) List(ctx context.Context) ([]domain.Incident, error) {
	const op = "remote.reports.List"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reports", nil)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, e.Wrap(op, err)
	}

	var items []wireReport
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("%s: decode: %v: %w", op, err, e.ErrService)
	}

	incidents := make([]domain.Incident, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	dropped, unidentified := 0, 0
	for _, it := range items {
		inc, ok := it.toIncident()
		if !ok {
			dropped++
			continue
		}
		if _, dup := seen[inc.ID]; inc.ID == "" || dup {
			unidentified++
			continue
		}
		seen[inc.ID] = struct{}{}
		incidents = append(incidents, inc)
	}
	if dropped > 0 {
		c.logger.Warn("reports without valid coordinates dropped",
			slog.Int("dropped", dropped),
			slog.Int("total", len(items)),
		)
	}
	if unidentified > 0 {
		c.logger.Warn("reports with empty or duplicate id dropped",
			slog.Int("dropped", unidentified),
			slog.Int("total", len(items)),
		)
	}

	return incidents, nil
}

// Create sends exactly one create request. The response body is ignored.
func (c *ReportsClient) Create(ctx context.Context, report domain.NewIncident) error {
	const op = "remote.reports.Create"

	if err := validator.Validate(report); err != nil {
		return e.Wrap(op, err)
	}

	body, err := json.Marshal(report)
	if err != nil {
		return e.Wrap(op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/reports", bytes.NewReader(body))
	if err != nil {
		return e.Wrap(op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return e.WrapError(ctx, op, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if err := checkStatus(resp); err != nil {
		return e.Wrap(op, err)
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return fmt.Errorf("unexpected status %s: %w", resp.Status, e.ErrService)
}
