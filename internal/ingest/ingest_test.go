package ingest

import (
	"testing"

	"github.com/Faultbox/geomesh/pkg/feature"
	"github.com/Faultbox/geomesh/pkg/geom"
	"github.com/Faultbox/geomesh/pkg/proj"
)

func testOptions() Options {
	return Options{
		Collection: feature.Options{
			CRS:           proj.CRSMercator,
			MergeFeatures: true,
			BuildExtent:   true,
			Projector:     proj.Identity{},
		},
	}
}

const mixedGeoJSON = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"properties": {"name": "station"},
			"geometry": {"type": "Point", "coordinates": [2, 48]}
		},
		{
			"type": "Feature",
			"properties": {"name": "road"},
			"geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 0], [2, 1]]}
		},
		{
			"type": "Feature",
			"properties": {"name": "block", "height": 12.5},
			"geometry": {"type": "Polygon", "coordinates": [
				[[0, 0], [1, 0], [1, 1], [0, 1], [0, 0]]
			]}
		}
	]
}`

func TestConvertBytesMixed(t *testing.T) {
	col, err := ConvertBytes([]byte(mixedGeoJSON), testOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(col.Features) != 3 {
		t.Fatalf("expected one feature per kind, got %d", len(col.Features))
	}

	byKind := map[feature.Kind]*feature.Feature{}
	for _, f := range col.Features {
		byKind[f.Kind] = f
	}

	pt := byKind[feature.KindPoint]
	if pt == nil || pt.VertexCount() != 1 {
		t.Fatalf("point feature: %+v", pt)
	}
	if pt.Geometries[0].Properties["name"] != "station" {
		t.Errorf("point properties: %v", pt.Geometries[0].Properties)
	}

	line := byKind[feature.KindLine]
	if line == nil || line.VertexCount() != 3 {
		t.Fatalf("line feature: %+v", line)
	}

	// Polygon rings keep their closing vertex.
	poly := byKind[feature.KindPolygon]
	if poly == nil || poly.VertexCount() != 5 {
		t.Fatalf("polygon feature: expected 5 vertices, got %+v", poly)
	}
	if poly.Geometries[0].Indices[0].Count != 5 {
		t.Errorf("polygon range: %+v", poly.Geometries[0].Indices[0])
	}
	if poly.Geometries[0].Properties["height"] != 12.5 {
		t.Errorf("polygon properties: %v", poly.Geometries[0].Properties)
	}

	if col.Extent == nil || col.Extent.IsEmpty() {
		t.Error("expected a collection extent rollup")
	}
}

func TestConvertBytesInvalid(t *testing.T) {
	if _, err := ConvertBytes([]byte("{not json"), testOptions()); err == nil {
		t.Error("expected a parse error")
	}
}

func TestConvertNoMerge(t *testing.T) {
	data := `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {}, "geometry": {"type": "Point", "coordinates": [0, 0]}},
			{"type": "Feature", "properties": {}, "geometry": {"type": "Point", "coordinates": [1, 1]}}
		]
	}`
	opts := testOptions()
	opts.Collection.MergeFeatures = false
	col, err := ConvertBytes([]byte(data), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(col.Features) != 2 {
		t.Errorf("expected 2 features without merging, got %d", len(col.Features))
	}
}

func TestConvertMultiLineString(t *testing.T) {
	data := `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {}, "geometry": {"type": "MultiLineString", "coordinates": [
				[[0, 0], [1, 0]],
				[[0, 5], [1, 5], [2, 5]]
			]}}
		]
	}`
	col, err := ConvertBytes([]byte(data), testOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(col.Features) != 1 {
		t.Fatalf("expected 1 merged line feature, got %d", len(col.Features))
	}
	f := col.Features[0]
	if f.GeometryCount() != 2 {
		t.Errorf("expected one geometry per line, got %d", f.GeometryCount())
	}
	if f.VertexCount() != 5 {
		t.Errorf("expected 5 vertices, got %d", f.VertexCount())
	}
}

func TestConvertFilterExtent(t *testing.T) {
	data := `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {"name": "in"}, "geometry": {"type": "LineString", "coordinates": [[1, 1], [2, 2]]}},
			{"type": "Feature", "properties": {"name": "out"}, "geometry": {"type": "LineString", "coordinates": [[100, 100], [101, 101]]}}
		]
	}`
	opts := testOptions()
	opts.Collection.FilterExtent = &geom.Extent{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}
	col, err := ConvertBytes([]byte(data), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(col.Features) != 1 {
		t.Fatalf("expected only the inside line, got %d features", len(col.Features))
	}
	f := col.Features[0]
	if f.GeometryCount() != 1 || f.Geometries[0].Properties["name"] != "in" {
		t.Errorf("wrong geometry survived the filter: %+v", f.Geometries[0].Properties)
	}
}

func TestConvertAltitudeGetter(t *testing.T) {
	data := `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {"alt": 250.0}, "geometry": {"type": "Point", "coordinates": [0, 0]}}
		]
	}`
	opts := testOptions()
	opts.Collection.Structure = 3
	opts.AltitudeGetter = func(props map[string]any) float64 {
		if v, ok := props["alt"].(float64); ok {
			return v
		}
		return 0
	}
	col, err := ConvertBytes([]byte(data), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f := col.Features[0]
	if f.Altitude.Min != 250 || f.Altitude.Max != 250 {
		t.Errorf("expected altitude 250, got %+v", f.Altitude)
	}
	if col.Altitude.Min != 250 {
		t.Errorf("expected collection altitude rollup, got %+v", col.Altitude)
	}
}

func TestConvertEmptyGeometrySkipped(t *testing.T) {
	data := `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {}, "geometry": {"type": "LineString", "coordinates": []}}
		]
	}`
	col, err := ConvertBytes([]byte(data), testOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(col.Features) != 0 {
		t.Errorf("expected no features from empty input, got %d", len(col.Features))
	}
}
