// Package feature implements the geographic feature data model: typed
// features sharing packed vertex and normal buffers, geometries stored
// as index ranges into those buffers, and the collection that owns them
// together with its local coordinate frame.
package feature

import (
	"errors"
	"fmt"

	"github.com/Faultbox/geomesh/pkg/geom"
)

// Kind is the semantic type of a Feature.
type Kind int

const (
	KindPoint Kind = iota
	KindLine
	KindPolygon
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindLine:
		return "line"
	case KindPolygon:
		return "polygon"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) valid() bool {
	return k == KindPoint || k == KindLine || k == KindPolygon
}

var (
	// ErrUnsupportedFeatureKind is returned when a requested feature kind
	// is not point, line or polygon.
	ErrUnsupportedFeatureKind = errors.New("unsupported feature kind")

	// ErrFrozenFeature is returned when population is attempted on a
	// feature created by reference; aliased buffers are read-only.
	ErrFrozenFeature = errors.New("feature buffers are frozen")
)

// Feature owns the packed vertex buffer (and normal buffer for 3D data)
// for all geometries of one kind. Vertices are stored in the owning
// collection's local frame; apply the collection's world matrix to
// recover absolute positions.
type Feature struct {
	Kind       Kind
	Size       int       // values per vertex, 2 or 3
	CRS        string    // storage CRS of the owning collection
	ID         string    // optional source record identifier
	Vertices   []float64 // len == Size * VertexCount()
	Normals    []float64 // non-nil iff Size == 3, same length as Vertices
	Geometries []*Geometry
	Extent     *geom.Extent // nil unless the collection builds extents
	Altitude   geom.AltitudeRange
	Style      *Style

	collection *Collection
	frozen     bool
}

func newFeature(col *Collection, kind Kind, id string) (*Feature, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFeatureKind, kind)
	}
	f := &Feature{
		Kind:       kind,
		Size:       col.Size,
		CRS:        col.CRS,
		ID:         id,
		Altitude:   geom.NewAltitudeRange(),
		Style:      col.opts.Style,
		collection: col,
	}
	if col.Size == 3 {
		f.Normals = []float64{}
	}
	if col.opts.BuildExtent {
		e := geom.NewExtent()
		f.Extent = &e
	}
	return f, nil
}

// Owner returns the collection the feature belongs to.
func (f *Feature) Owner() *Collection {
	return f.collection
}

// VertexCount returns the number of vertices currently stored.
func (f *Feature) VertexCount() int {
	return len(f.Vertices) / f.Size
}

// GeometryCount returns the number of geometries bound to the feature.
func (f *Feature) GeometryCount() int {
	return len(f.Geometries)
}

// BindNewGeometry creates a new geometry writing into this feature's
// buffers and returns it for population. Returns nil for a frozen
// (by-reference) feature.
func (f *Feature) BindNewGeometry() *Geometry {
	if f.frozen {
		return nil
	}
	g := &Geometry{Altitude: geom.NewAltitudeRange()}
	if f.collection != nil && f.collection.opts.BuildExtent {
		e := geom.NewExtent()
		g.Extent = &e
	}
	f.Geometries = append(f.Geometries, g)
	return g
}

// UpdateExtent rolls a completed geometry's extent and altitude range up
// into the feature's.
func (f *Feature) UpdateExtent(g *Geometry) {
	if f.Extent != nil && g.Extent != nil {
		f.Extent.Union(*g.Extent)
	}
	if f.Size == 3 {
		f.Altitude.Union(g.Altitude)
	}
}

// baseAltitude resolves the style elevation hook for this feature's
// kind: fill base altitude for polygons, stroke base altitude for
// lines. Points have no elevation hook.
func (f *Feature) baseAltitude(props map[string]any, c geom.Coordinate) (float64, bool) {
	if f.Style == nil {
		return 0, false
	}
	switch f.Kind {
	case KindPolygon:
		return f.Style.FillBase.Resolve(props, c)
	case KindLine:
		return f.Style.StrokeBase.Resolve(props, c)
	}
	return 0, false
}
