package feed

import (
	"log/slog"
	"time"

	"github.com/paulmach/orb/geojson"

	"github.com/Yimmi-urbano/dencia-app-front/internal/domain"
	"github.com/Yimmi-urbano/dencia-app-front/internal/mapview"
)

type setViewRequest struct {
	Center struct {
		Lat *float64 `json:"lat" validate:"required,lat"`
		Lon *float64 `json:"lon" validate:"required,lng"`
	} `json:"center"`
	Zoom *int `json:"zoom" validate:"required,min=0"`
}

func (req setViewRequest) toView() domain.View {
	return domain.View{
		Center: domain.Coordinates{Lat: *req.Center.Lat, Lon: *req.Center.Lon},
		Zoom:   *req.Zoom,
	}
}

type viewResponse struct {
	View      domain.View `json:"view"`
	FocusedID string      `json:"focusedId,omitempty"`
}

func toViewResponse(v *domain.FeedView) viewResponse {
	return viewResponse{View: v.View, FocusedID: v.FocusedID}
}

type feedResponse struct {
	ID        string                     `json:"id"`
	View      domain.View                `json:"view"`
	FocusedID string                     `json:"focusedId,omitempty"`
	Degraded  bool                       `json:"degraded"`
	LoadedAt  time.Time                  `json:"loadedAt"`
	Markers   *geojson.FeatureCollection `json:"markers"`
}

func (h *Handler) toFeedResponse(l *slog.Logger, v *domain.FeedView) feedResponse {
	markers, skipped := mapview.BuildMarkers(v.Incidents)
	if skipped > 0 {
		l.Warn("incidents without valid coordinates not rendered", slog.Int("skipped", skipped))
	}
	return feedResponse{
		ID:        v.ID.String(),
		View:      v.View,
		FocusedID: v.FocusedID,
		Degraded:  v.Degraded,
		LoadedAt:  v.LoadedAt,
		Markers:   markers.FeatureCollection(),
	}
}
