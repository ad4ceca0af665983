package decode

import "math"

// WGS-84 ellipsoid constants, per spec.md §4.3's RTCM 1005 decode note.
const (
	wgs84SemiMajorA   = 6378137.0
	wgs84Flattening   = 1.0 / 298.257223563
	ecefToGeodeticTol = 1e-12
	ecefMaxIterations = 10
)

// ecefToGeodetic converts ECEF coordinates (meters) to geodetic
// latitude/longitude (degrees) and ellipsoidal height (meters) using
// the WGS-84 iterative closed form, grounded in the teacher family's
// common.Ecef2Pos (_examples/FengXuebin-gnssgo/src/common.go) but
// iterating on latitude directly (per spec.md) rather than on z.
func ecefToGeodetic(x, y, z float64) (latDeg, lonDeg, heightM float64) {
	e2 := wgs84Flattening * (2 - wgs84Flattening)
	p := math.Hypot(x, y)

	lon := math.Atan2(y, x)
	lat := math.Atan2(z, p*(1-e2))

	var h float64
	for i := 0; i < ecefMaxIterations; i++ {
		sinLat := math.Sin(lat)
		n := wgs84SemiMajorA / math.Sqrt(1-e2*sinLat*sinLat)
		h = p/math.Cos(lat) - n
		newLat := math.Atan2(z, p*(1-e2*n/(n+h)))
		if math.Abs(newLat-lat) < ecefToGeodeticTol {
			lat = newLat
			break
		}
		lat = newLat
	}

	return lat * 180 / math.Pi, lon * 180 / math.Pi, h
}
