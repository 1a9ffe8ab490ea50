// Package geo provides the spherical-earth math used by the simulation:
// great-circle distances, bearings, and forward-projected positions. All
// functions are pure; distances are in nautical miles, angles in degrees.
package geo

import "math"

const (
	// EarthRadiusNM is the mean earth radius in nautical miles.
	EarthRadiusNM = 3440.065

	// NauticalMilesToMeters converts nautical miles to meters.
	NauticalMilesToMeters = 1852.0

	// TickSeconds is the duration of one simulation tick in simulated
	// seconds. Speeds are in knots, so per-tick travel is speed/3600 nm.
	TickSeconds = 1.0
)

// Distance returns the great-circle distance in nautical miles between two
// points given in decimal degrees.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dPhi := radians(lat2 - lat1)
	dLambda := radians(lon2 - lon1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusNM * c
}

// Bearing returns the initial great-circle bearing from the first point to
// the second, in degrees normalized to [0, 360).
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dLambda := radians(lon2 - lon1)

	y := math.Sin(dLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) -
		math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLambda)

	return math.Mod(degrees(math.Atan2(y, x))+360, 360)
}

// TerminalPoint returns the point reached by traveling distanceNM nautical
// miles from the origin along the given initial bearing in degrees.
func TerminalPoint(lat, lon, distanceNM, bearingDeg float64) (float64, float64) {
	phi1 := radians(lat)
	lambda1 := radians(lon)
	theta := radians(bearingDeg)
	delta := distanceNM / EarthRadiusNM

	phi2 := math.Asin(math.Sin(phi1)*math.Cos(delta) +
		math.Cos(phi1)*math.Sin(delta)*math.Cos(theta))
	lambda2 := lambda1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(phi1),
		math.Cos(delta)-math.Sin(phi1)*math.Sin(phi2))

	return degrees(phi2), normalizeLon(degrees(lambda2))
}

// NextPoint returns the position one tick later when moving from the origin
// toward the destination at speedKnots. The destination is never overshot:
// if one tick of travel covers the remaining distance, the destination is
// returned exactly.
func NextPoint(lat, lon, destLat, destLon, speedKnots float64) (float64, float64) {
	remaining := Distance(lat, lon, destLat, destLon)
	travel := speedKnots * TickSeconds / 3600.0
	if travel >= remaining {
		return destLat, destLon
	}
	return TerminalPoint(lat, lon, travel, Bearing(lat, lon, destLat, destLon))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

func normalizeLon(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}
