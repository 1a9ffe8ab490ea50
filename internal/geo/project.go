package geo

import "github.com/wroge/wgs84"

// Patrol-area geometry is evaluated in EPSG:3857 (web mercator) rather than
// raw degrees so containment tests and envelope sampling work in a planar
// coordinate system. Waypoints generated in 3857 are projected back to 4326
// before being handed to units.

// To3857 projects a WGS84 latitude/longitude pair to EPSG:3857 easting and
// northing in meters.
func To3857(lat, lon float64) (x, y float64) {
	f := wgs84.EPSG().Transform(4326, 3857)
	x, y, _ = f(lon, lat, 0)
	return x, y
}

// To4326 projects EPSG:3857 easting/northing back to a WGS84 latitude and
// longitude.
func To4326(x, y float64) (lat, lon float64) {
	f := wgs84.EPSG().Transform(3857, 4326)
	lon, lat, _ = f(x, y, 0)
	return lat, lon
}
