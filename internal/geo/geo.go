// Package geo provides the spherical distance math behind the nearby-reports
// query. All angular values are radians unless a name says otherwise.
package geo

import "math"

// EarthRadiusMiles is the mean radius of the Earth in miles, matching the
// divisor used for $centerSphere-style radius conversions.
const EarthRadiusMiles = 3963.2

// MilesToRadians converts a distance in miles to an angular radius.
func MilesToRadians(miles float64) float64 {
	return miles / EarthRadiusMiles
}

// AngularDistance returns the central angle between two points given in
// degrees, computed with the haversine formula.
func AngularDistance(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// WithinRadius reports whether (lat2, lng2) lies inside the spherical cap of
// radiusMiles centered on (lat1, lng1).
func WithinRadius(lat1, lng1, lat2, lng2, radiusMiles float64) bool {
	return AngularDistance(lat1, lng1, lat2, lng2) <= MilesToRadians(radiusMiles)
}

// BoundingBox returns the min/max latitude and longitude enclosing the
// spherical cap, used to prefilter candidates on an indexed column before the
// exact haversine check. Near the poles or across the antimeridian the box
// degenerates to the full longitude range, which is correct but unselective.
func BoundingBox(lat, lng, radiusMiles float64) (minLat, maxLat, minLng, maxLng float64) {
	r := MilesToRadians(radiusMiles)
	dLat := r * 180 / math.Pi

	minLat = lat - dLat
	maxLat = lat + dLat
	if minLat <= -90 || maxLat >= 90 {
		return math.Max(minLat, -90), math.Min(maxLat, 90), -180, 180
	}

	dLng := math.Asin(math.Sin(r)/math.Cos(lat*math.Pi/180)) * 180 / math.Pi
	minLng = lng - dLng
	maxLng = lng + dLng
	if minLng < -180 || maxLng > 180 {
		return minLat, maxLat, -180, 180
	}
	return minLat, maxLat, minLng, maxLng
}
