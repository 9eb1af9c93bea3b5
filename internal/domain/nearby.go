package domain

// NearbyAlert is a containment query hit, annotated with the great-circle
// distance from the query point.
type NearbyAlert struct {
	CachedAlert
	DistanceKM float64 `json:"distance_km"`
}
