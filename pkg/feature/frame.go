package feature

import (
	"github.com/Faultbox/geomesh/pkg/geom"
	"github.com/Faultbox/geomesh/pkg/math64"
)

// LocalFrame converts absolute coordinates into a collection-local
// Cartesian frame so that stored vertices stay small-magnitude floats.
// The frame is fixed lazily at the first coordinate it sees: a pure
// planar translation for 2D collections, a tangent-plane basis built
// from the geodesic surface normal for 3D geocentric collections.
type LocalFrame struct {
	size        int
	initialized bool
	matrix      math64.Mat4 // local -> world
	inverse     math64.Mat4 // world -> local
}

func newLocalFrame(size int) *LocalFrame {
	return &LocalFrame{
		size:    size,
		matrix:  math64.Identity(),
		inverse: math64.Identity(),
	}
}

func (fr *LocalFrame) init(c geom.Coordinate) {
	if fr.size == 2 {
		fr.matrix = math64.Translate(c.X, c.Y, 0)
		fr.inverse = math64.Translate(-c.X, -c.Y, 0)
	} else {
		origin := math64.Vec3{X: c.X, Y: c.Y, Z: c.Z}
		east, north, up := math64.TangentFrame(origin)
		fr.matrix = math64.FromBasis(east, north, up, origin)
		fr.inverse = fr.matrix.RigidInverse()
	}
	fr.initialized = true
}

// ToLocal converts an absolute coordinate into the local frame. The
// first call fixes the frame at that coordinate.
func (fr *LocalFrame) ToLocal(c geom.Coordinate) geom.Coordinate {
	if !fr.initialized {
		fr.init(c)
	}
	v := fr.inverse.MulPoint(math64.Vec3{X: c.X, Y: c.Y, Z: c.Z})
	return geom.Coordinate{X: v.X, Y: v.Y, Z: v.Z}
}

// LocalNormal returns the per-point up normal, expressed in the local
// frame. For 2D frames this is always +Z.
func (fr *LocalFrame) LocalNormal(c geom.Coordinate) math64.Vec3 {
	if !fr.initialized {
		fr.init(c)
	}
	if fr.size == 2 {
		return math64.Vec3{Z: 1}
	}
	n := math64.SurfaceNormal(math64.Vec3{X: c.X, Y: c.Y, Z: c.Z})
	return fr.inverse.MulDir(n)
}

// Initialized reports whether the frame origin has been fixed.
func (fr *LocalFrame) Initialized() bool {
	return fr.initialized
}

// Matrix returns the local-to-world transform.
func (fr *LocalFrame) Matrix() math64.Mat4 {
	return fr.matrix
}

// Inverse returns the world-to-local transform.
func (fr *LocalFrame) Inverse() math64.Mat4 {
	return fr.inverse
}
