package tessellate

import (
	"go.uber.org/zap"

	"github.com/Faultbox/geomesh/pkg/feature"
)

// convertLines emits line primitives. A feature holding exactly one
// geometry becomes a single connected strip; multiple geometries become
// disconnected segment pairs, since one strip cannot represent disjoint
// lines without spurious connecting edges. Indices are 16-bit: once a
// written index would overflow, the remaining geometries are dropped
// with a warning and the partial primitive is returned.
func convertLines(f *feature.Feature, opts Options) (*Mesh, error) {
	single := len(f.Geometries) == 1 && len(f.Geometries[0].Indices) == 1
	prim := PrimitiveLines
	if single {
		prim = PrimitiveLineStrip
	}
	m := newMesh(f, prim)
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
		color := strokeColor(f, g, opts)
		for _, sub := range g.Indices {
			fillColor(m.Colors, sub.Offset, sub.Count, color)
			if m.BatchIDs != nil {
				fillBatchID(m.BatchIDs, sub.Offset, sub.Count, opts.BatchID(g.Properties, gi))
			}
			if single {
				for i := sub.Offset; i < sub.Offset+sub.Count; i++ {
					if i > maxIndex {
						truncated = true
						break emit
					}
					m.Indices = append(m.Indices, uint16(i))
				}
			} else {
				for i := sub.Offset; i < sub.Offset+sub.Count-1; i++ {
					if i+1 > maxIndex {
						truncated = true
						break emit
					}
					m.Indices = append(m.Indices, uint16(i), uint16(i+1))
				}
			}
		}
	}
	if truncated {
		opts.Logger.Warn("line indices exceed 16-bit range, emitting partial primitive",
			zap.Int("vertices", n),
			zap.Int("indices", len(m.Indices)))
	}
	return m, nil
}
