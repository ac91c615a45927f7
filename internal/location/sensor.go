package location

import (
	"context"

	"github.com/Yimmi-urbano/dencia-app-front/internal/domain"
	"github.com/Yimmi-urbano/dencia-app-front/pkg/e"
)

// ReportedPosition is a sensor reading taken by the browser and posted to
// the server: either a position or the failure reason.
type ReportedPosition struct {
	Position *domain.Coordinates
	Failure  string
}

func (p ReportedPosition) CurrentPosition(ctx context.Context) (domain.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, &e.LocationError{Reason: e.ReasonTimeout}
	}
	if p.Failure != "" {
		return domain.Coordinates{}, &e.LocationError{Reason: normalizeReason(p.Failure)}
	}
	if p.Position == nil {
		return domain.Coordinates{}, &e.LocationError{Reason: e.ReasonUnavailable}
	}
	return *p.Position, nil
}

// normalizeReason maps browser GeolocationPositionError names to our reasons.
func normalizeReason(s string) string {
	switch s {
	case e.ReasonPermissionDenied, "PERMISSION_DENIED", "1":
		return e.ReasonPermissionDenied
	case e.ReasonTimeout, "TIMEOUT", "3":
		return e.ReasonTimeout
	default:
		return e.ReasonUnavailable
	}
}
