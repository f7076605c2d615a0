package feature

import "github.com/Faultbox/geomesh/pkg/geom"

// SubGeometry marks one contiguous run of vertices inside the parent
// feature's shared buffer: one polygon ring, one line string, or one
// point group. For the rings of a single polygon the runs are contiguous
// and ordered, the first being the outer boundary and the rest holes.
type SubGeometry struct {
	Offset int
	Count  int
	Extent *geom.Extent
}

// Geometry is one logical shape: an ordered list of sub-geometry ranges
// plus properties and extent/altitude rollups. It owns no vertex storage;
// all writes land in the parent feature's buffers.
type Geometry struct {
	Properties map[string]any
	Indices    []SubGeometry
	Extent     *geom.Extent // nil unless the collection builds extents
	Altitude   geom.AltitudeRange

	current    geom.Extent // extent accumulator for the active range
	hasCurrent bool
	cursor     int // next vertex write position for the active range
}

// commitCurrent attaches the active range's accumulated extent to the
// most recently opened sub-geometry.
func (g *Geometry) commitCurrent() {
	if !g.hasCurrent || len(g.Indices) == 0 {
		return
	}
	e := g.current
	g.Indices[len(g.Indices)-1].Extent = &e
	g.hasCurrent = false
}

// StartSubGeometry reserves count vertex slots in the parent feature's
// buffers and opens a new sub-geometry range covering them. The offset
// is the end of the previous range, or the current buffer fill for the
// first range of this geometry.
func (g *Geometry) StartSubGeometry(count int, f *Feature) error {
	if f.frozen {
		return ErrFrozenFeature
	}
	g.commitCurrent()

	offset := f.VertexCount()
	if n := len(g.Indices); n > 0 {
		offset = g.Indices[n-1].Offset + g.Indices[n-1].Count
	}

	f.Vertices = append(f.Vertices, make([]float64, count*f.Size)...)
	if f.Normals != nil {
		f.Normals = append(f.Normals, make([]float64, count*f.Size)...)
	}

	g.Indices = append(g.Indices, SubGeometry{Offset: offset, Count: count})
	g.current = geom.NewExtent()
	g.hasCurrent = true
	g.cursor = offset
	return nil
}

// PushCoordinate writes the next coordinate of the active range. The
// style elevation hook for the feature's kind, if any, overrides the
// input elevation first; the coordinate is then projected into the
// collection's storage CRS and converted to the local frame before
// being written. For 3D features the per-point up normal is written
// alongside.
func (g *Geometry) PushCoordinate(c geom.Coordinate, f *Feature) error {
	if f.frozen {
		return ErrFrozenFeature
	}
	col := f.collection

	if col.opts.OverrideAltitudeToZero {
		c.Z = 0
	}
	if alt, ok := f.baseAltitude(g.Properties, c); ok {
		c.Z = alt
	}

	p, err := col.projector.Project(c, col.opts.SourceCRS, col.CRS)
	if err != nil {
		return err
	}
	local := col.frame.ToLocal(p)

	i := g.cursor * f.Size
	f.Vertices[i] = local.X
	f.Vertices[i+1] = local.Y
	if f.Size == 3 {
		f.Vertices[i+2] = local.Z
		n := col.frame.LocalNormal(p)
		f.Normals[i] = n.X
		f.Normals[i+1] = n.Y
		f.Normals[i+2] = n.Z
		g.Altitude.Expand(c.Z)
	}
	g.cursor++

	g.current.ExpandXY(local.X, local.Y)
	g.hasCurrent = true
	return nil
}

// PushCoordinateValues appends already-transformed local-frame values to
// the parent feature's buffers, bypassing projection. Pair with
// CloseSubGeometry, which derives the range offset from the final fill.
func (g *Geometry) PushCoordinateValues(f *Feature, x, y, z float64) error {
	if f.frozen {
		return ErrFrozenFeature
	}
	f.Vertices = append(f.Vertices, x, y)
	if f.Size == 3 {
		f.Vertices = append(f.Vertices, z)
		f.Normals = append(f.Normals, 0, 0, 1)
		g.Altitude.Expand(z)
	}
	g.current.ExpandXY(x, y)
	g.hasCurrent = true
	return nil
}

// CloseSubGeometry records a sub-geometry range for count vertices that
// were already appended without a prior StartSubGeometry call. The
// offset is the current fill minus count.
func (g *Geometry) CloseSubGeometry(count int, f *Feature) error {
	if f.frozen {
		return ErrFrozenFeature
	}
	offset := f.VertexCount() - count
	sub := SubGeometry{Offset: offset, Count: count}
	if g.hasCurrent {
		e := g.current
		sub.Extent = &e
	}
	g.Indices = append(g.Indices, sub)
	if g.Extent != nil && g.hasCurrent {
		g.Extent.Union(g.current)
	}
	g.current = geom.NewExtent()
	g.hasCurrent = false
	return nil
}

// UpdateExtent unions the geometry's extent with the most recently
// closed range's extent. Call once per completed range before reading
// Extent.
func (g *Geometry) UpdateExtent() {
	g.commitCurrent()
	if g.Extent == nil {
		return
	}
	if n := len(g.Indices); n > 0 && g.Indices[n-1].Extent != nil {
		g.Extent.Union(*g.Indices[n-1].Extent)
	}
}
