package model

import "math"

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance to other in kilometres.
func (c Coordinate) DistanceKm(other Coordinate) float64 {
	dLat := toRadians(other.Latitude - c.Latitude)
	dLon := toRadians(other.Longitude - c.Longitude)

	lat1 := toRadians(c.Latitude)
	lat2 := toRadians(other.Latitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
