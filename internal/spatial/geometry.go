package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// Earth's mean radius in meters
const EarthRadiusMeters = 6371000.0

// KmPerDegree is the approximate length of one degree of latitude in kilometers.
// Valid at the equator; the planar clustering below intentionally uses this fixed
// conversion rather than geodesic distances.
const KmPerDegree = 111.32

// Point represents a 2D point with latitude and longitude
type Point struct {
	Lat float64
	Lng float64
}

// HaversineDistance calculates the great-circle distance between two points in meters
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lng1)
	p2 := s2.LatLngFromDegrees(lat2, lng2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// Centroid calculates the arithmetic-mean center of a set of points
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Lat
		sumLng += p.Lng
	}

	return Point{
		Lat: sumLat / float64(len(points)),
		Lng: sumLng / float64(len(points)),
	}
}

// RadiusOfGyration measures the spatial dispersion of a set of points around
// their centroid, in meters.
func RadiusOfGyration(points []Point) float64 {
	if len(points) == 0 {
		return 0
	}

	center := Centroid(points)
	var sumSquared float64
	for _, p := range points {
		d := HaversineDistance(center.Lat, center.Lng, p.Lat, p.Lng)
		sumSquared += d * d
	}

	return math.Sqrt(sumSquared / float64(len(points)))
}
