package geo

import "math"

const earthRadiusMeters = 6371000

// Distance returns the great-circle distance between a and b in meters.
func Distance(a, b Point) float64 {
	toRad := math.Pi / 180.0

	dLat := (b.Latitude - a.Latitude) * toRad
	dLon := (b.Longitude - a.Longitude) * toRad
	lat1 := a.Latitude * toRad
	lat2 := b.Latitude * toRad

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// NearestVertexDistance returns the distance in meters from p to the closest
// vertex of polygon, or -1 for an empty polygon.
func NearestVertexDistance(p Point, polygon []Point) float64 {
	if len(polygon) == 0 {
		return -1
	}
	nearest := math.Inf(1)
	for _, v := range polygon {
		nearest = math.Min(nearest, Distance(p, v))
	}
	return nearest
}
