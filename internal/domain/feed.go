package domain

import (
	"time"

	"github.com/google/uuid"
)

// FeedView is the incident list and map state of one feed page load.
type FeedView struct {
	ID        uuid.UUID  `json:"id"`
	Incidents []Incident `json:"incidents"`
	View      View       `json:"view"`
	FocusedID string     `json:"focusedId,omitempty"`
	// Degraded is set when the last load failed and the list was left empty.
	Degraded bool      `json:"degraded"`
	LoadedAt time.Time `json:"loadedAt"`
}
