// Package ingest feeds GeoJSON data into the feature data model. It is
// the population side of the pipeline: it requests features from a
// collection, binds geometries and streams coordinates through the
// projection and local-frame write path.
package ingest

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/Faultbox/geomesh/pkg/feature"
	"github.com/Faultbox/geomesh/pkg/geom"
)

// Options configures a conversion run.
type Options struct {
	// Collection configures the produced feature collection.
	Collection feature.Options
	// AltitudeGetter supplies an elevation for sources that carry none,
	// evaluated once per input record. Optional.
	AltitudeGetter func(props map[string]any) float64
}

// ConvertBytes parses raw GeoJSON and converts it.
func ConvertBytes(data []byte, opts Options) (*feature.Collection, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parsing geojson: %w", err)
	}
	return Convert(fc, opts)
}

// Convert populates a new collection from a parsed GeoJSON feature
// collection. Geometries whose first point falls outside the configured
// filter extent are discarded whole, before any buffer mutation. Empty
// geometries contribute nothing. Features that end up with no usable
// geometry are removed.
func Convert(fc *geojson.FeatureCollection, opts Options) (*feature.Collection, error) {
	col := feature.NewCollection(opts.Collection)

	for _, gf := range fc.Features {
		props := map[string]any(gf.Properties)
		z := 0.0
		if opts.AltitudeGetter != nil {
			z = opts.AltitudeGetter(props)
		}
		if err := convertGeometry(col, gf.Geometry, props, z); err != nil {
			return nil, err
		}
	}

	col.RemoveEmptyFeatures()
	col.UpdateExtent(nil)
	return col, nil
}

func convertGeometry(col *feature.Collection, g orb.Geometry, props map[string]any, z float64) error {
	switch g := g.(type) {
	case orb.Point:
		return addPointGroup(col, props, []orb.Point{g}, z)
	case orb.MultiPoint:
		return addPointGroup(col, props, g, z)
	case orb.LineString:
		return addLines(col, props, []orb.LineString{g}, z)
	case orb.MultiLineString:
		return addLines(col, props, g, z)
	case orb.Polygon:
		return addPolygons(col, props, []orb.Polygon{g}, z)
	case orb.MultiPolygon:
		return addPolygons(col, props, g, z)
	case orb.Collection:
		for _, sub := range g {
			if err := convertGeometry(col, sub, props, z); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w: %T", feature.ErrUnsupportedFeatureKind, g)
}

func addPointGroup(col *feature.Collection, props map[string]any, pts []orb.Point, z float64) error {
	if len(pts) == 0 {
		return nil
	}
	if !col.InsideFilter(coord(pts[0], z)) {
		return nil
	}
	f, err := col.FeatureByKind(feature.KindPoint)
	if err != nil {
		return err
	}
	g := f.BindNewGeometry()
	g.Properties = props
	if err := pushRing(g, f, pts, z); err != nil {
		return err
	}
	g.UpdateExtent()
	f.UpdateExtent(g)
	return nil
}

func addLines(col *feature.Collection, props map[string]any, lines []orb.LineString, z float64) error {
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		if !col.InsideFilter(coord(line[0], z)) {
			continue
		}
		f, err := col.FeatureByKind(feature.KindLine)
		if err != nil {
			return err
		}
		g := f.BindNewGeometry()
		g.Properties = props
		if err := pushRing(g, f, line, z); err != nil {
			return err
		}
		g.UpdateExtent()
		f.UpdateExtent(g)
	}
	return nil
}

func addPolygons(col *feature.Collection, props map[string]any, polys []orb.Polygon, z float64) error {
	for _, poly := range polys {
		if len(poly) == 0 || len(poly[0]) == 0 {
			continue
		}
		if !col.InsideFilter(coord(poly[0][0], z)) {
			continue
		}
		f, err := col.FeatureByKind(feature.KindPolygon)
		if err != nil {
			return err
		}
		g := f.BindNewGeometry()
		g.Properties = props
		// Rings keep their closing vertex; triangulation drops it from
		// the index output, extrusion walls rely on it for the closing
		// edge.
		for _, ring := range poly {
			if len(ring) == 0 {
				continue
			}
			if err := pushRing(g, f, ring, z); err != nil {
				return err
			}
			g.UpdateExtent()
		}
		f.UpdateExtent(g)
	}
	return nil
}

// pushRing reserves one sub-geometry range and streams pts into it.
func pushRing[S ~[]orb.Point](g *feature.Geometry, f *feature.Feature, pts S, z float64) error {
	if err := g.StartSubGeometry(len(pts), f); err != nil {
		return err
	}
	for _, p := range pts {
		if err := g.PushCoordinate(coord(p, z), f); err != nil {
			return err
		}
	}
	return nil
}

func coord(p orb.Point, z float64) geom.Coordinate {
	return geom.Coordinate{X: p[0], Y: p[1], Z: z}
}
