// Package mapview decides what the map shows: markers, their styles and the
// view (center + zoom) after user gestures or programmatic recenters.
package mapview

import (
	"errors"
	"fmt"

	"github.com/Yimmi-urbano/dencia-app-front/internal/domain"
)

type Mode int

const (
	// ModeDisplay is the read-only feed map: many markers, click to focus.
	ModeDisplay Mode = iota
	// ModeEdit is the composer preview: one draggable pin.
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "display"
}

const (
	MinZoom         = 0
	MaxZoom         = 18
	FocusZoomStep   = 2
	DefaultZoom     = 7
	EditInitialZoom = 13
	PreviewZoom     = 15
)

// DefaultCenter is Lima, where the community map opens.
var DefaultCenter = domain.Coordinates{Lat: -12.0621065, Lon: -77.0365256}

var (
	ErrWrongMode     = errors.New("operation not available in this map mode")
	ErrUnknownMarker = errors.New("unknown marker")
	ErrInvalidView   = errors.New("invalid view")
)

type Viewport struct {
	mode    Mode
	view    domain.View
	markers Markers
	focused string

	// pin and target are only used in ModeEdit.
	pin    *domain.Coordinates
	target *domain.Coordinates
}

func NewDisplay(markers Markers, view domain.View) *Viewport {
	return &Viewport{
		mode:    ModeDisplay,
		view:    normalize(view),
		markers: markers,
	}
}

// DefaultView is the opening view of the feed map.
func DefaultView() domain.View {
	return domain.View{Center: DefaultCenter, Zoom: DefaultZoom}
}

// NewEdit restores the composer preview. A nil pin means nothing resolved
// yet; a nil view starts centered on the pin at EditInitialZoom.
func NewEdit(pin *domain.Coordinates, view *domain.View) *Viewport {
	v := &Viewport{mode: ModeEdit}
	switch {
	case view != nil:
		v.view = normalize(*view)
	case pin != nil:
		v.view = domain.View{Center: *pin, Zoom: EditInitialZoom}
	default:
		v.view = DefaultView()
	}
	if pin != nil {
		p := *pin
		v.pin = &p
		t := *pin
		v.target = &t
	}
	return v
}

func (v *Viewport) Mode() Mode { return v.mode }

func (v *Viewport) View() domain.View { return v.view }

func (v *Viewport) FocusedID() string { return v.focused }

// Markers returns the feed markers, or the preview pin in ModeEdit.
func (v *Viewport) Markers() Markers {
	if v.mode == ModeEdit {
		if v.pin == nil {
			return Markers{}
		}
		return Markers{{
			ID:        "preview",
			Position:  *v.pin,
			Style:     StyleDefault,
			Draggable: true,
		}}
	}
	return v.markers
}

// Restore reapplies a persisted focus without changing the view.
func (v *Viewport) Restore(focusedID string) {
	if v.mode == ModeDisplay {
		v.focused = focusedID
	}
}

// Focus handles a click on a marker: zoom in by FocusZoomStep (capped at
// MaxZoom) and center on it. Clicking the same marker again keeps zooming.
func (v *Viewport) Focus(markerID string) (domain.View, error) {
	if v.mode != ModeDisplay {
		return v.view, fmt.Errorf("focus: %w", ErrWrongMode)
	}
	m, ok := v.markers.Find(markerID)
	if !ok {
		return v.view, fmt.Errorf("focus %q: %w", markerID, ErrUnknownMarker)
	}
	v.setView(m.Position, min(v.view.Zoom+FocusZoomStep, MaxZoom))
	v.focused = markerID
	return v.view, nil
}

// Recenter is the programmatic trigger: when c differs from the last target,
// fly to it at PreviewZoom. It never touches focus.
func (v *Viewport) Recenter(c domain.Coordinates) bool {
	if !c.Valid() {
		return false
	}
	if v.target != nil && *v.target == c {
		return false
	}
	t := c
	v.target = &t
	v.setView(c, PreviewZoom)
	return true
}

// MovePin places the edit-mode pin, e.g. after a location resolution.
func (v *Viewport) MovePin(c domain.Coordinates) error {
	if v.mode != ModeEdit {
		return fmt.Errorf("move pin: %w", ErrWrongMode)
	}
	if !c.Valid() {
		return fmt.Errorf("move pin: %w", ErrInvalidView)
	}
	p := c
	v.pin = &p
	v.Recenter(c)
	return nil
}

// DragEnd accepts the released pin position as the new coordinate.
func (v *Viewport) DragEnd(c domain.Coordinates) (domain.Coordinates, error) {
	if err := v.MovePin(c); err != nil {
		return domain.Coordinates{}, err
	}
	return c, nil
}

// SetView records a user pan/zoom so later focus steps start from it.
func (v *Viewport) SetView(view domain.View) error {
	if !view.Center.Valid() {
		return ErrInvalidView
	}
	v.view = normalize(view)
	return nil
}

func (v *Viewport) setView(center domain.Coordinates, zoom int) {
	v.view = normalize(domain.View{Center: center, Zoom: zoom})
}

func normalize(view domain.View) domain.View {
	view.Zoom = max(MinZoom, min(view.Zoom, MaxZoom))
	if !view.Center.Valid() {
		view.Center = DefaultCenter
	}
	return view
}
