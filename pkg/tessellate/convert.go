package tessellate

import (
	"fmt"

	"github.com/Faultbox/geomesh/pkg/feature"
)

// Convert turns a populated feature into a render primitive. The
// feature's buffers are read, never mutated; a feature may be converted
// any number of times. Dispatch is closed over the feature kinds:
// points become a point cloud, lines a strip or segment list, polygons
// a flat mesh, and polygons with an extrusion style a volume mesh.
func Convert(f *feature.Feature, opts Options) (*Mesh, error) {
	opts = opts.withDefaults()
	switch f.Kind {
	case feature.KindPoint:
		return convertPoints(f, opts)
	case feature.KindLine:
		return convertLines(f, opts)
	case feature.KindPolygon:
		if f.Style != nil && f.Style.Extrusion.Present() {
			return convertExtrusions(f, opts)
		}
		return convertPolygons(f, opts)
	}
	return nil, fmt.Errorf("%w: %v", feature.ErrUnsupportedFeatureKind, f.Kind)
}

// ConvertCollection converts every feature of a collection, skipping
// features that produced no geometry.
func ConvertCollection(c *feature.Collection, opts Options) ([]*Mesh, error) {
	meshes := make([]*Mesh, 0, len(c.Features))
	for _, f := range c.Features {
		if f.GeometryCount() == 0 {
			continue
		}
		m, err := Convert(f, opts)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}

// strokeColor resolves the line/point color for a geometry.
func strokeColor(f *feature.Feature, g *feature.Geometry, opts Options) feature.Color {
	if f.Style != nil {
		if c, ok := f.Style.Stroke.Resolve(g.Properties); ok {
			return c
		}
	}
	return opts.DefaultColor
}

// fillColorOf resolves the polygon fill color for a geometry.
func fillColorOf(f *feature.Feature, g *feature.Geometry, opts Options) feature.Color {
	if f.Style != nil {
		if c, ok := f.Style.Fill.Resolve(g.Properties); ok {
			return c
		}
	}
	return opts.DefaultColor
}
