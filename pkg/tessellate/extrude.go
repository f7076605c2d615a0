package tessellate

import (
	"go.uber.org/zap"

	"github.com/Faultbox/geomesh/pkg/feature"
	"github.com/Faultbox/geomesh/pkg/geom"
)

// convertExtrusions builds a volume mesh: the vertex buffer is
// duplicated into a floor held at the base elevation and a roof at the
// base plus the per-geometry extrusion height. The roof is triangulated
// like a flat polygon; each ring edge contributes a side quad split
// into two triangles whose vertex order follows the outer ring's
// winding, so wall normals face outward regardless of the input
// convention. Walls are drawn in the fill color at half brightness.
func convertExtrusions(f *feature.Feature, opts Options) (*Mesh, error) {
	m := newMesh(f, PrimitiveTriangles)
	m.Size = 3
	n := f.VertexCount()

	base := 0.0
	if col := f.Owner(); col != nil && !col.Altitude.IsEmpty() {
		base = col.Altitude.Min
	} else if !f.Altitude.IsEmpty() {
		base = f.Altitude.Min
	}

	// Floor copy in [0, n), roof copy in [n, 2n).
	m.Positions = make([]float32, 2*n*3)
	for i := 0; i < n; i++ {
		x := float32(f.Vertices[i*f.Size])
		y := float32(f.Vertices[i*f.Size+1])
		m.Positions[i*3] = x
		m.Positions[i*3+1] = y
		m.Positions[i*3+2] = float32(base)
		m.Positions[(n+i)*3] = x
		m.Positions[(n+i)*3+1] = y
		m.Positions[(n+i)*3+2] = float32(base) // roof z set per geometry below
	}
	m.Colors = make([]uint8, 2*n*3)
	if opts.BatchID != nil {
		m.BatchIDs = make([]uint32, 2*n)
	}

	truncated := false
emit:
	for gi, g := range f.Geometries {
		if len(g.Indices) == 0 {
			continue
		}
		outer := g.Indices[0]
		last := g.Indices[len(g.Indices)-1]
		start, end := outer.Offset, last.Offset+last.Count
		if end == start {
			continue
		}

		height, _ := f.Style.Extrusion.Resolve(g.Properties)
		for i := start; i < end; i++ {
			m.Positions[(n+i)*3+2] = float32(base + height)
		}

		roof := fillColorOf(f, g, opts)
		wall := roof.Darken(0.5)
		fillColor(m.Colors, start, end-start, wall)
		fillColor(m.Colors, n+start, end-start, roof)
		if m.BatchIDs != nil {
			id := opts.BatchID(g.Properties, gi)
			fillBatchID(m.BatchIDs, start, end-start, id)
			fillBatchID(m.BatchIDs, n+start, end-start, id)
		}

		// Roof triangulation, indices shifted into the roof copy.
		ring := f.Vertices[start*f.Size : end*f.Size]
		holes := make([]int, 0, len(g.Indices)-1)
		for _, sub := range g.Indices[1:] {
			holes = append(holes, sub.Offset-start)
		}
		tris, err := opts.Triangulator.Triangulate(ring, holes, f.Size)
		if err != nil {
			opts.Logger.Warn("triangulation failed, skipping geometry",
				zap.Int("geometry", gi), zap.Error(err))
			continue
		}
		for t := 0; t+2 < len(tris); t += 3 {
			a := tris[t] + start + n
			b := tris[t+1] + start + n
			c := tris[t+2] + start + n
			if a > maxIndex || b > maxIndex || c > maxIndex {
				truncated = true
				break emit
			}
			m.Indices = append(m.Indices, uint16(a), uint16(b), uint16(c))
		}

		// Side walls, both the outer ring and the holes.
		clockwise := geom.IsClockwise(f.Vertices, f.Size, outer.Offset, outer.Count)
		for _, sub := range g.Indices {
			for i := sub.Offset; i < sub.Offset+sub.Count-1; i++ {
				lo, hi := i, i+1
				if hi+n > maxIndex {
					truncated = true
					break emit
				}
				if clockwise {
					m.Indices = append(m.Indices,
						uint16(lo), uint16(lo+n), uint16(hi),
						uint16(hi), uint16(lo+n), uint16(hi+n))
				} else {
					m.Indices = append(m.Indices,
						uint16(lo), uint16(hi), uint16(lo+n),
						uint16(hi), uint16(hi+n), uint16(lo+n))
				}
			}
		}
	}
	if truncated {
		opts.Logger.Warn("extrusion indices exceed 16-bit range, emitting partial primitive",
			zap.Int("vertices", 2*n),
			zap.Int("indices", len(m.Indices)))
	}

	if !m.Altitude.IsEmpty() {
		m.Altitude.Expand(base)
	}
	return m, nil
}
