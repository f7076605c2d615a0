package math64

import "math"

// WGS84 ellipsoid parameters.
const (
	WGS84SemiMajor = 6378137.0
	WGS84SemiMinor = 6356752.314245179
)

var wgs84EccSq = 1 - (WGS84SemiMinor*WGS84SemiMinor)/(WGS84SemiMajor*WGS84SemiMajor)

// GeocentricFromGeodetic converts longitude/latitude (degrees) and
// ellipsoidal height (meters) to an earth-centered, earth-fixed
// Cartesian position.
func GeocentricFromGeodetic(lonDeg, latDeg, height float64) Vec3 {
	lon := lonDeg * math.Pi / 180
	lat := latDeg * math.Pi / 180
	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)
	// Prime vertical radius of curvature.
	n := WGS84SemiMajor / math.Sqrt(1-wgs84EccSq*sinLat*sinLat)
	return Vec3{
		X: (n + height) * cosLat * math.Cos(lon),
		Y: (n + height) * cosLat * math.Sin(lon),
		Z: (n*(1-wgs84EccSq) + height) * sinLat,
	}
}

// SurfaceNormal returns the outward geodesic (ellipsoid) normal at a
// geocentric position.
func SurfaceNormal(p Vec3) Vec3 {
	a2 := WGS84SemiMajor * WGS84SemiMajor
	b2 := WGS84SemiMinor * WGS84SemiMinor
	return Vec3{p.X / a2, p.Y / a2, p.Z / b2}.Normalize()
}

// TangentFrame returns the east/north/up basis at a geocentric position.
// Near the poles, where east is degenerate, the X axis is used as a
// stable fallback.
func TangentFrame(p Vec3) (east, north, up Vec3) {
	up = SurfaceNormal(p)
	east = Vec3{0, 0, 1}.Cross(up)
	if east.Length() < 1e-9 {
		east = Vec3{1, 0, 0}
	}
	east = east.Normalize()
	north = up.Cross(east)
	return east, north, up
}
