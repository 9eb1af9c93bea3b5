package domain

import (
	"time"

	"github.com/google/uuid"
)

type AlertType string

const (
	AlertLandslide     AlertType = "landslide"
	AlertFlood         AlertType = "flood"
	AlertSevereWeather AlertType = "severe_weather"
	AlertEvacuation    AlertType = "evacuation"
	AlertOther         AlertType = "other"
)

func (t AlertType) Valid() bool {
	switch t {
	case AlertLandslide, AlertFlood, AlertSevereWeather, AlertEvacuation, AlertOther:
		return true
	}
	return false
}

type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "low"
	SeverityMedium   AlertSeverity = "medium"
	SeverityHigh     AlertSeverity = "high"
	SeverityCritical AlertSeverity = "critical"
)

// Rank gives the total order low < medium < high < critical. Severity sorting
// must go through here, never through string comparison.
func (s AlertSeverity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	}
	return 0
}

func (s AlertSeverity) Valid() bool { return s.Rank() > 0 }

type AlertStatus string

const (
	StatusDraft    AlertStatus = "draft"
	StatusActive   AlertStatus = "active"
	StatusResolved AlertStatus = "resolved"
	StatusExpired  AlertStatus = "expired"
)

func (s AlertStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusResolved, StatusExpired:
		return true
	}
	return false
}

const DefaultRadiusKM = 50.0

type Location struct {
	Lat      float64 `json:"lat" validate:"lat"`
	Lng      float64 `json:"lng" validate:"lng"`
	RadiusKM float64 `json:"radius_km" validate:"min=0"`
	Address  string  `json:"address,omitempty"`
	City     string  `json:"city,omitempty"`
	State    string  `json:"state,omitempty"`
	Country  string  `json:"country,omitempty"`
}

type AlertStatistics struct {
	Views int64 `json:"views"`
}

type Alert struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Type        AlertType       `json:"type"`
	Severity    AlertSeverity   `json:"severity"`
	Status      AlertStatus     `json:"status"`
	Location    Location        `json:"location"`
	ValidFrom   time.Time       `json:"valid_from"`
	ValidUntil  time.Time       `json:"valid_until"`
	IsPublic    bool            `json:"is_public"`
	CreatedBy   uuid.UUID       `json:"created_by"`
	UpdatedBy   uuid.UUID       `json:"updated_by,omitempty"`
	Statistics  AlertStatistics `json:"statistics"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ActiveAt reports whether now falls inside the alert's validity window.
// The stored Status label has no bearing here: "currently in effect" is always
// derived from the window, both boundaries inclusive.
func (a *Alert) ActiveAt(now time.Time) bool {
	return !a.ValidFrom.After(now) && !now.After(a.ValidUntil)
}
