package geo

import "math"

// EarthRadiusKM approximates Earth as a perfect sphere. Radius semantics of
// every containment check in the system depend on this exact constant.
const EarthRadiusKM = 6371.0

// HaversineKM returns the great-circle distance between two points in
// kilometers.
func HaversineKM(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := deg2rad(lat2 - lat1)
	dLng := deg2rad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKM * c
}

// WithinKM reports whether the two points are within radiusKm of each other.
// The boundary distance == radius counts as inside.
func WithinKM(lat1, lng1, lat2, lng2, radiusKm float64) bool {
	return HaversineKM(lat1, lng1, lat2, lng2) <= radiusKm
}

// ValidCoordinates checks lng in [-180,180] and lat in [-90,90].
func ValidCoordinates(lng, lat float64) bool {
	return lng >= -180 && lng <= 180 && lat >= -90 && lat <= 90
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
