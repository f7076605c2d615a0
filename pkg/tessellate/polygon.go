package tessellate

import (
	"go.uber.org/zap"

	"github.com/Faultbox/geomesh/pkg/feature"
)

// convertPolygons triangulates each geometry's rings into a flat mesh.
// The first sub-geometry range is the outer ring, the rest are holes;
// hole offsets handed to the triangulator are relative to the outer
// ring's start, and the returned indices are translated back to
// absolute buffer offsets.
func convertPolygons(f *feature.Feature, opts Options) (*Mesh, error) {
	m := newMesh(f, PrimitiveTriangles)
	n := f.VertexCount()

	m.Positions = make([]float32, len(f.Vertices))
	for i, v := range f.Vertices {
		m.Positions[i] = float32(v)
	}
	m.Colors = make([]uint8, n*3)
	if opts.BatchID != nil {
		m.BatchIDs = make([]uint32, n)
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
		count := end - start
		if count == 0 {
			continue
		}

		color := fillColorOf(f, g, opts)
		fillColor(m.Colors, start, count, color)
		if m.BatchIDs != nil {
			fillBatchID(m.BatchIDs, start, count, opts.BatchID(g.Properties, gi))
		}
		if f.Size == 3 {
			if z, ok := opts.Elevation.Resolve(g.Properties); ok {
				for i := start; i < end; i++ {
					m.Positions[i*3+2] = float32(z)
				}
			}
		}

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
			a, b, c := tris[t]+start, tris[t+1]+start, tris[t+2]+start
			if a > maxIndex || b > maxIndex || c > maxIndex {
				truncated = true
				break emit
			}
			m.Indices = append(m.Indices, uint16(a), uint16(b), uint16(c))
		}
	}
	if truncated {
		opts.Logger.Warn("polygon indices exceed 16-bit range, emitting partial primitive",
			zap.Int("vertices", n),
			zap.Int("indices", len(m.Indices)))
	}
	return m, nil
}
