// Package tessellate turns populated features into flat,
// renderer-ready geometry buffers: point clouds, line primitives and
// flat or extruded polygon meshes with per-sub-geometry colors and
// optional batch identifiers.
package tessellate

import (
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/geomesh/pkg/feature"
	"github.com/Faultbox/geomesh/pkg/geom"
	"github.com/Faultbox/geomesh/pkg/math64"
)

// maxIndex is the largest vertex index a 16-bit index buffer can hold.
const maxIndex = math.MaxUint16

// Primitive is the draw topology of a produced mesh.
type Primitive int

const (
	PrimitivePoints    Primitive = iota
	PrimitiveLineStrip           // consecutive indices form one connected strip
	PrimitiveLines               // index pairs form disconnected segments
	PrimitiveTriangles
)

// String returns the primitive name.
func (p Primitive) String() string {
	switch p {
	case PrimitivePoints:
		return "points"
	case PrimitiveLineStrip:
		return "line-strip"
	case PrimitiveLines:
		return "lines"
	case PrimitiveTriangles:
		return "triangles"
	}
	return "unknown"
}

// Mesh is a render primitive: packed attribute arrays plus the metadata
// a renderer needs to place it in the world. Positions are in the source
// collection's local frame; Matrix is the local-to-world transform.
type Mesh struct {
	Primitive Primitive
	Size      int       // values per position, 2 or 3
	Positions []float32 // stride Size
	Normals   []float32 // stride 3 when present
	Colors    []uint8   // byte-normalized RGB, stride 3
	BatchIDs  []uint32  // stride 1, present only when requested
	Indices   []uint16  // empty for point clouds

	CRS      string
	Extent   *geom.Extent
	Altitude geom.AltitudeRange
	Matrix   math64.Mat4 // local -> world
	Inverse  math64.Mat4 // world -> local
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	if m.Size == 0 {
		return 0
	}
	return len(m.Positions) / m.Size
}

// Options configures a conversion. The zero value is usable: ear-clip
// triangulation, white default color, no batch IDs, no logging.
type Options struct {
	// Triangulator resolves polygon interiors. Defaults to EarClip.
	Triangulator Triangulator
	// BatchID, when set, fills a per-vertex batch identifier attribute
	// from each geometry's properties and its sequential index.
	BatchID func(props map[string]any, featureIndex int) uint32
	// PointOffset displaces point-cloud vertices along their normal.
	PointOffset feature.ScalarSource
	// Elevation overrides polygon elevations uniformly before
	// triangulation.
	Elevation feature.ScalarSource
	// DefaultColor is used where the style supplies none. The zero value
	// means white.
	DefaultColor feature.Color
	// Logger receives the index-overflow warnings. Defaults to a no-op
	// logger.
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Triangulator == nil {
		o.Triangulator = EarClip{}
	}
	if (o.DefaultColor == feature.Color{}) {
		o.DefaultColor = feature.Color{R: 255, G: 255, B: 255}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// newMesh seeds a mesh with the feature's metadata.
func newMesh(f *feature.Feature, p Primitive) *Mesh {
	m := &Mesh{
		Primitive: p,
		Size:      f.Size,
		CRS:       f.CRS,
		Altitude:  f.Altitude,
		Matrix:    math64.Identity(),
		Inverse:   math64.Identity(),
	}
	if f.Extent != nil {
		e := *f.Extent
		m.Extent = &e
	}
	if col := f.Owner(); col != nil {
		m.Matrix = col.Frame().Matrix()
		m.Inverse = col.Frame().Inverse()
	}
	return m
}

// fillColor writes c into the color array for vertices [start, start+count).
func fillColor(colors []uint8, start, count int, c feature.Color) {
	for i := start; i < start+count; i++ {
		colors[i*3] = c.R
		colors[i*3+1] = c.G
		colors[i*3+2] = c.B
	}
}

// fillBatchID writes id for vertices [start, start+count).
func fillBatchID(ids []uint32, start, count int, id uint32) {
	for i := start; i < start+count; i++ {
		ids[i] = id
	}
}
