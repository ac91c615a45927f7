package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Yimmi-urbano/dencia-app-front/pkg/e"
)

type LocationSource string

const (
	LocationDevice        LocationSource = "device"
	LocationManualAddress LocationSource = "manual_address"
)

func (s LocationSource) Valid() bool {
	return s == LocationDevice || s == LocationManualAddress
}

// Draft is an unsent report owned by one composer session.
type Draft struct {
	ID             uuid.UUID      `json:"id"`
	Description    string         `json:"description"`
	Category       CategoryChoice `json:"incidentType"`
	LocationSource LocationSource `json:"locationSource"`
	Address        string         `json:"address"`
	Coordinates    *Coordinates   `json:"coordinates"`

	// ResolutionToken identifies the only location resolution allowed to
	// write Coordinates. Every new resolution bumps it.
	ResolutionToken uint64 `json:"resolutionToken"`
	Preview         *View  `json:"preview,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewDraft(id uuid.UUID, now time.Time) *Draft {
	return &Draft{
		ID:             id,
		Category:       NoCategory(),
		LocationSource: LocationManualAddress,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Validate reports the first missing field, coordinates before category.
func (d *Draft) Validate() error {
	if d.Coordinates == nil {
		return e.NewValidation("coordinates", "location has not been resolved")
	}
	if !d.Coordinates.Valid() {
		return e.NewValidation("coordinates", "coordinates out of range")
	}
	c, ok := d.Category.Get()
	if !ok {
		return e.NewValidation("incidentType", "no category selected")
	}
	if !c.Known() {
		return e.NewValidation("incidentType", "unknown category "+string(c))
	}
	return nil
}

func (d *Draft) IsSubmittable() bool {
	return d.Validate() == nil
}

// MissingFields lists every field that blocks submission.
func (d *Draft) MissingFields() []string {
	missing := make([]string, 0, 2)
	if d.Coordinates == nil || !d.Coordinates.Valid() {
		missing = append(missing, "coordinates")
	}
	if c, ok := d.Category.Get(); !ok || !c.Known() {
		missing = append(missing, "incidentType")
	}
	return missing
}

// BeginResolution invalidates any pending resolution and returns the new token.
func (d *Draft) BeginResolution() uint64 {
	d.ResolutionToken++
	return d.ResolutionToken
}

// CompleteResolution stores c only if token is still current.
func (d *Draft) CompleteResolution(token uint64, c Coordinates) error {
	if token != d.ResolutionToken {
		return fmt.Errorf("token %d, current %d: %w", token, d.ResolutionToken, e.ErrSuperseded)
	}
	d.Coordinates = &c
	return nil
}

// ToNewIncident builds the wire payload. The draft must be submittable.
func (d *Draft) ToNewIncident() (NewIncident, error) {
	if err := d.Validate(); err != nil {
		return NewIncident{}, err
	}
	c, _ := d.Category.Get()
	return NewIncident{
		Description:  d.Description,
		IncidentType: c,
		Address:      d.Address,
		Coordinates:  *d.Coordinates,
	}, nil
}

// DraftEdit carries the user-editable fields; nil means unchanged.
type DraftEdit struct {
	Description    *string
	Category       *CategoryChoice
	Address        *string
	LocationSource *LocationSource
}
