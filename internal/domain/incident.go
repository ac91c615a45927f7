package domain

import "math"

// Coordinates is a WGS84 point as the incident service stores it.
type Coordinates struct {
	Lat float64 `json:"lat" validate:"lat"` // -90..90
	Lon float64 `json:"lon" validate:"lng"` // -180..180
}

func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Incident is a published report. Owned by the remote incident service.
type Incident struct {
	ID           string      `json:"_id"`
	Description  string      `json:"description"`
	IncidentType Category    `json:"incidentType"`
	Coordinates  Coordinates `json:"coordinates"`
	Address      string      `json:"address"`
}

// NewIncident is the create-request body sent to the incident service.
type NewIncident struct {
	Description  string      `json:"description"`
	IncidentType Category    `json:"incidentType" validate:"required,oneof=robo extorsion"`
	Address      string      `json:"address"`
	Coordinates  Coordinates `json:"coordinates"`
}
