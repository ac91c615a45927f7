package composer

import (
	"encoding/json"
	"time"

	"github.com/paulmach/orb/geojson"

	"github.com/Yimmi-urbano/dencia-app-front/internal/domain"
	"github.com/Yimmi-urbano/dencia-app-front/internal/location"
	"github.com/Yimmi-urbano/dencia-app-front/internal/mapview"
	"github.com/Yimmi-urbano/dencia-app-front/pkg/e"
)

type editDraftRequest struct {
	Description *string `json:"description" validate:"omitempty,max=2000"`
	// IncidentType is absent (unchanged), null (cleared) or a category.
	IncidentType   json.RawMessage        `json:"incidentType"`
	Address        *string                `json:"address" validate:"omitempty,max=300"`
	LocationSource *domain.LocationSource `json:"locationSource" validate:"omitempty,oneof=device manual_address"`
}

func (req editDraftRequest) toEdit() (domain.DraftEdit, error) {
	edit := domain.DraftEdit{
		Description:    req.Description,
		Address:        req.Address,
		LocationSource: req.LocationSource,
	}
	if len(req.IncidentType) == 0 {
		return edit, nil
	}

	var raw *string
	if err := json.Unmarshal(req.IncidentType, &raw); err != nil {
		return edit, e.NewValidation("incidentType", "must be a string or null")
	}
	choice := domain.NoCategory()
	if raw != nil {
		c, err := domain.ParseCategory(*raw)
		if err != nil {
			return edit, err
		}
		if choice, err = domain.Choose(c); err != nil {
			return edit, err
		}
	}
	edit.Category = &choice
	return edit, nil
}

type resolveAddressRequest struct {
	Address *string `json:"address" validate:"omitempty,max=300"`
}

type devicePositionRequest struct {
	Lat   *float64 `json:"lat" validate:"omitempty,lat"`
	Lon   *float64 `json:"lon" validate:"omitempty,lng"`
	Error string   `json:"error" validate:"max=64"`
}

func (req devicePositionRequest) toSensor() location.ReportedPosition {
	if req.Error != "" || req.Lat == nil || req.Lon == nil {
		return location.ReportedPosition{Failure: req.Error}
	}
	return location.ReportedPosition{Position: &domain.Coordinates{Lat: *req.Lat, Lon: *req.Lon}}
}

type pinRequest struct {
	Lat *float64 `json:"lat" validate:"required,lat"`
	Lon *float64 `json:"lon" validate:"required,lng"`
}

type previewResponse struct {
	View    domain.View                `json:"view"`
	Markers *geojson.FeatureCollection `json:"markers"`
}

type draftResponse struct {
	ID             string                `json:"id"`
	Description    string                `json:"description"`
	IncidentType   domain.CategoryChoice `json:"incidentType"`
	LocationSource domain.LocationSource `json:"locationSource"`
	Address        string                `json:"address"`
	Coordinates    *domain.Coordinates   `json:"coordinates"`
	Submittable    bool                  `json:"submittable"`
	Missing        []string              `json:"missing"`
	Preview        previewResponse       `json:"preview"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

func toDraftResponse(d *domain.Draft) draftResponse {
	vp := mapview.NewEdit(d.Coordinates, d.Preview)
	return draftResponse{
		ID:             d.ID.String(),
		Description:    d.Description,
		IncidentType:   d.Category,
		LocationSource: d.LocationSource,
		Address:        d.Address,
		Coordinates:    d.Coordinates,
		Submittable:    d.IsSubmittable(),
		Missing:        d.MissingFields(),
		Preview: previewResponse{
			View:    vp.View(),
			Markers: vp.Markers().FeatureCollection(),
		},
		UpdatedAt: d.UpdatedAt,
	}
}
