// Package geo implements great-circle math on latitude/longitude pairs.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by DistanceKm.
const EarthRadiusKm = 6371.0

// DistanceKm returns the haversine distance in kilometres between two
// points given in degrees.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)
	phi1 := radians(lat1)
	phi2 := radians(lat2)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(phi1)*math.Cos(phi2)*sinLon*sinLon

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Bearing returns the direction from one point to another as whole degrees
// in [0, 360), where 0 is north and 90 is east. It works on the flat
// lat/lon plane, matching the arrow players see next to a wrong guess.
// Identical points yield 0.
func Bearing(fromLat, fromLon, toLat, toLon float64) int {
	dLat := toLat - fromLat
	dLon := toLon - fromLon
	if dLat == 0 && dLon == 0 {
		return 0
	}
	deg := int(math.Round(math.Atan2(dLon, dLat) * 180 / math.Pi))
	return (360 + deg) % 360
}

var compassPoints = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Compass maps a bearing in degrees to an 8-point compass label.
func Compass(deg int) string {
	deg = ((deg % 360) + 360) % 360
	return compassPoints[((deg*2+45)/90)%8]
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
