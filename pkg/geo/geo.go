// Package geo provides great-circle distance math for proximity matching.
package geo

import (
	"math"
	"strconv"
)

// earthRadiusKm is the mean Earth radius used by the Haversine formula.
const earthRadiusKm = 6371

// DistanceKm returns the Haversine distance in kilometers between two
// coordinate pairs. A nil coordinate means the location is unknown, and
// unknown locations are never near anything, so the result is +Inf.
func DistanceKm(lat1, lon1, lat2, lon2 *float64) float64 {
	if lat1 == nil || lon1 == nil || lat2 == nil || lon2 == nil {
		return math.Inf(1)
	}

	rlat1 := radians(*lat1)
	rlat2 := radians(*lat2)
	dlat := radians(*lat2 - *lat1)
	dlon := radians(*lon2 - *lon1)

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(rlat1)*math.Cos(rlat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return earthRadiusKm * c
}

// ValidateCoordinates reports whether lat/lon form a usable coordinate pair.
func ValidateCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ParseCoordinates parses string coordinates (query parameters, form values)
// and validates their range. ok is false on any parse or range failure.
func ParseCoordinates(latStr, lonStr string) (lat, lon float64, ok bool) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, false
	}
	if !ValidateCoordinates(lat, lon) {
		return 0, 0, false
	}
	return lat, lon, true
}

// RoundDistance rounds a distance to two decimal places for API payloads.
func RoundDistance(km float64) float64 {
	return math.Round(km*100) / 100
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
