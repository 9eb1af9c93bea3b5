package domain

import "time"

// AlertFilter is the conjunction the store evaluates. Zero values mean "no
// constraint". When ActiveAt is set it replaces any stored-status equality
// check: window containment is the authoritative notion of "active".
type AlertFilter struct {
	Type     AlertType
	Severity AlertSeverity
	Status   AlertStatus
	ActiveAt *time.Time
	IsPublic *bool
	Lat      *float64
	Lng      *float64
	RadiusKM float64
}

type AlertSort string

const (
	SortCreatedDesc  AlertSort = "-createdAt"
	SortCreatedAsc   AlertSort = "createdAt"
	SortSeverityDesc AlertSort = "-severity"
)
