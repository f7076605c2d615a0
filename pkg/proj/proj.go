// Package proj converts coordinates between the reference systems this
// module understands: WGS84 geographic, Web Mercator and WGS84
// geocentric. Planar conversions delegate to paulmach/orb; the
// geocentric branch uses the ellipsoid math in pkg/math64.
package proj

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"

	"github.com/Faultbox/geomesh/pkg/geom"
	"github.com/Faultbox/geomesh/pkg/math64"
)

// Supported CRS identifiers.
const (
	CRSGeographic = "EPSG:4326" // lon/lat degrees
	CRSMercator   = "EPSG:3857" // Web Mercator meters
	CRSGeocentric = "EPSG:4978" // earth-centered Cartesian meters
)

// ErrUnsupportedCRS reports a conversion this package cannot perform.
var ErrUnsupportedCRS = fmt.Errorf("unsupported CRS conversion")

// Projector converts a coordinate from one CRS to another. Implementations
// must be deterministic and side-effect free.
type Projector interface {
	Project(c geom.Coordinate, from, to string) (geom.Coordinate, error)
}

// Default is a Projector over the CRS constants above. The zero value is
// ready to use.
type Default struct{}

// Project converts c from the from CRS to the to CRS. Elevation passes
// through unchanged for planar targets and becomes ellipsoidal height
// for the geocentric target.
func (Default) Project(c geom.Coordinate, from, to string) (geom.Coordinate, error) {
	if from == to {
		return c, nil
	}
	switch {
	case from == CRSGeographic && to == CRSMercator:
		p := project.WGS84.ToMercator(orb.Point{c.X, c.Y})
		return geom.Coordinate{X: p[0], Y: p[1], Z: c.Z}, nil
	case from == CRSMercator && to == CRSGeographic:
		p := project.Mercator.ToWGS84(orb.Point{c.X, c.Y})
		return geom.Coordinate{X: p[0], Y: p[1], Z: c.Z}, nil
	case from == CRSGeographic && to == CRSGeocentric:
		v := math64.GeocentricFromGeodetic(c.X, c.Y, c.Z)
		return geom.Coordinate{X: v.X, Y: v.Y, Z: v.Z}, nil
	case from == CRSMercator && to == CRSGeocentric:
		p := project.Mercator.ToWGS84(orb.Point{c.X, c.Y})
		v := math64.GeocentricFromGeodetic(p[0], p[1], c.Z)
		return geom.Coordinate{X: v.X, Y: v.Y, Z: v.Z}, nil
	}
	return c, fmt.Errorf("%w: %s -> %s", ErrUnsupportedCRS, from, to)
}

// Identity is a Projector that returns coordinates unchanged regardless
// of the requested systems. Useful for data already in the target frame
// and for tests.
type Identity struct{}

// Project returns c unchanged.
func (Identity) Project(c geom.Coordinate, _, _ string) (geom.Coordinate, error) {
	return c, nil
}
