package domain

import (
	"time"

	"github.com/google/uuid"
)

// CachedAlert is the slim projection kept in the active-alert cache for the
// near-location hot path.
type CachedAlert struct {
	ID         uuid.UUID     `json:"id"`
	Title      string        `json:"title"`
	Type       AlertType     `json:"type"`
	Severity   AlertSeverity `json:"severity"`
	Lat        float64       `json:"lat"`
	Lng        float64       `json:"lng"`
	RadiusKM   float64       `json:"radius_km"`
	ValidFrom  time.Time     `json:"valid_from"`
	ValidUntil time.Time     `json:"valid_until"`
	CreatedAt  time.Time     `json:"created_at"`
}
