package mapview

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/Yimmi-urbano/dencia-app-front/internal/domain"
)

type Marker struct {
	ID          string             `json:"id"`
	Position    domain.Coordinates `json:"position"`
	Description string             `json:"description"`
	Category    domain.Category    `json:"incidentType"`
	Address     string             `json:"address,omitempty"`
	Style       Style              `json:"style"`
	Draggable   bool               `json:"draggable"`
}

type Markers []Marker

// BuildMarkers classifies every incident. Incidents without a valid
// coordinate pair are skipped and counted.
func BuildMarkers(incidents []domain.Incident) (Markers, int) {
	out := make(Markers, 0, len(incidents))
	skipped := 0
	for _, inc := range incidents {
		if !inc.Coordinates.Valid() {
			skipped++
			continue
		}
		out = append(out, Marker{
			ID:          inc.ID,
			Position:    inc.Coordinates,
			Description: inc.Description,
			Category:    inc.IncidentType,
			Address:     inc.Address,
			Style:       Classify(inc.IncidentType),
		})
	}
	return out, skipped
}

func (m Markers) Find(id string) (Marker, bool) {
	for _, mk := range m {
		if mk.ID == id {
			return mk, true
		}
	}
	return Marker{}, false
}

// FeatureCollection renders the markers as GeoJSON points (lon, lat order).
func (m Markers) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, mk := range m {
		f := geojson.NewFeature(orb.Point{mk.Position.Lon, mk.Position.Lat})
		f.ID = mk.ID
		f.Properties["id"] = mk.ID
		f.Properties["description"] = mk.Description
		f.Properties["incidentType"] = string(mk.Category)
		f.Properties["address"] = mk.Address
		f.Properties["style"] = mk.Style.Name
		f.Properties["color"] = mk.Style.Color
		f.Properties["opacity"] = mk.Style.Opacity
		f.Properties["radius"] = mk.Style.Radius
		f.Properties["draggable"] = mk.Draggable
		fc.Append(f)
	}
	return fc
}
