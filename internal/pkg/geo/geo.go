package geo

import "math"

const earthRadiusMeters = 6371000

// Point is a WGS84 coordinate pair.
type Point struct {
	Latitude  float64
	Longitude float64
}

// HaversineDistance returns the great-circle distance between two coordinates in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// WithinRadius reports whether point lies within radiusMeters of reference.
// A missing point on either side means "not verified", never an error.
func WithinRadius(point, reference *Point, radiusMeters float64) bool {
	if point == nil || reference == nil {
		return false
	}
	distance := HaversineDistance(point.Latitude, point.Longitude, reference.Latitude, reference.Longitude)
	return distance <= radiusMeters
}

// PathDistance sums the pairwise great-circle distances between consecutive
// points in input order. Empty or single-point input yields 0.
func PathDistance(points []Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += HaversineDistance(
			points[i-1].Latitude, points[i-1].Longitude,
			points[i].Latitude, points[i].Longitude,
		)
	}
	return total
}
