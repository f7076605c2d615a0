package tessellate

import "github.com/Faultbox/geomesh/pkg/feature"

// convertPoints passes the vertex buffer through as a point cloud,
// optionally displacing each vertex along its normal, with colors
// filled per sub-geometry.
func convertPoints(f *feature.Feature, opts Options) (*Mesh, error) {
	m := newMesh(f, PrimitivePoints)
	n := f.VertexCount()

	m.Positions = make([]float32, len(f.Vertices))
	for i, v := range f.Vertices {
		m.Positions[i] = float32(v)
	}
	if f.Normals != nil {
		m.Normals = make([]float32, len(f.Normals))
		for i, v := range f.Normals {
			m.Normals[i] = float32(v)
		}
	}
	m.Colors = make([]uint8, n*3)
	if opts.BatchID != nil {
		m.BatchIDs = make([]uint32, n)
	}

	for gi, g := range f.Geometries {
		offset, hasOffset := 0.0, false
		if opts.PointOffset.Present() {
			offset, hasOffset = opts.PointOffset.Resolve(g.Properties)
		}
		color := strokeColor(f, g, opts)
		for _, sub := range g.Indices {
			if hasOffset && f.Size == 3 {
				for i := sub.Offset; i < sub.Offset+sub.Count; i++ {
					m.Positions[i*3] += float32(f.Normals[i*3] * offset)
					m.Positions[i*3+1] += float32(f.Normals[i*3+1] * offset)
					m.Positions[i*3+2] += float32(f.Normals[i*3+2] * offset)
				}
			}
			fillColor(m.Colors, sub.Offset, sub.Count, color)
			if m.BatchIDs != nil {
				fillBatchID(m.BatchIDs, sub.Offset, sub.Count, opts.BatchID(g.Properties, gi))
			}
		}
	}
	return m, nil
}
