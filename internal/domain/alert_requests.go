package domain

import "time"

type CreateAlertRequest struct {
	Title       string        `json:"title" validate:"required,max=200"`
	Description string        `json:"description" validate:"max=2000"`
	Type        AlertType     `json:"type" validate:"required,oneof=landslide flood severe_weather evacuation other"`
	Severity    AlertSeverity `json:"severity" validate:"required,oneof=low medium high critical"`
	Status      AlertStatus   `json:"status" validate:"omitempty,oneof=draft active resolved expired"`
	Location    Location      `json:"location"`
	ValidFrom   time.Time     `json:"valid_from" validate:"required"`
	ValidUntil  time.Time     `json:"valid_until" validate:"required"`
	IsPublic    *bool         `json:"is_public"`
}

// UpdateAlertRequest is a partial patch: nil means "leave unchanged".
// LocationPatch mirrors Location with every field optional, so patching the
// address never moves the alert and patching coordinates without a radius
// keeps the previous radius.
type UpdateAlertRequest struct {
	Title       *string        `json:"title" validate:"omitempty,max=200"`
	Description *string        `json:"description" validate:"omitempty,max=2000"`
	Type        *AlertType     `json:"type" validate:"omitempty,oneof=landslide flood severe_weather evacuation other"`
	Severity    *AlertSeverity `json:"severity" validate:"omitempty,oneof=low medium high critical"`
	Status      *AlertStatus   `json:"status" validate:"omitempty,oneof=draft active resolved expired"`
	Location    *LocationPatch `json:"location"`
	ValidFrom   *time.Time     `json:"valid_from"`
	ValidUntil  *time.Time     `json:"valid_until"`
	IsPublic    *bool          `json:"is_public"`
}

type LocationPatch struct {
	Lat      *float64 `json:"lat" validate:"omitempty,lat"`
	Lng      *float64 `json:"lng" validate:"omitempty,lng"`
	RadiusKM *float64 `json:"radius_km" validate:"omitempty,min=0"`
	Address  *string  `json:"address"`
	City     *string  `json:"city"`
	State    *string  `json:"state"`
	Country  *string  `json:"country"`
}

type ListAlertsRequest struct {
	Type     AlertType     `json:"type,omitempty"`
	Severity AlertSeverity `json:"severity,omitempty"`
	// Status defaults to "active", which filters on the validity window
	// rather than the stored status column.
	Status   AlertStatus `json:"status,omitempty"`
	Lat      *float64    `json:"lat,omitempty"`
	Lng      *float64    `json:"lng,omitempty"`
	RadiusKM float64     `json:"radius_km,omitempty"`
	Limit    int         `json:"limit,omitempty"`
	Page     int         `json:"page,omitempty"`
	Sort     string      `json:"sort,omitempty"`
}

type ListAlertsResponse struct {
	Alerts     []*Alert `json:"alerts"`
	Page       int      `json:"page"`
	TotalPages int      `json:"total_pages"`
	Total      int64    `json:"total"`
}

type NearLocationRequest struct {
	Lat      float64       `json:"lat" validate:"lat"`
	Lng      float64       `json:"lng" validate:"lng"`
	RadiusKM float64       `json:"radius_km" validate:"omitempty,min=0"`
	Type     AlertType     `json:"type,omitempty"`
	Severity AlertSeverity `json:"severity,omitempty"`
}
