package feature

import (
	"errors"
	"math"
	"testing"

	"github.com/Faultbox/geomesh/pkg/geom"
	"github.com/Faultbox/geomesh/pkg/math64"
	"github.com/Faultbox/geomesh/pkg/proj"
)

func testCollection(opts Options) *Collection {
	if opts.Projector == nil {
		opts.Projector = proj.Identity{}
	}
	return NewCollection(opts)
}

func TestFeatureByKindMergePolicy(t *testing.T) {
	col := testCollection(Options{MergeFeatures: true})

	a, err := col.FeatureByKind(KindLine)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := col.FeatureByKind(KindLine)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Error("expected merged collection to reuse the line feature")
	}
	p, err := col.FeatureByKind(KindPoint)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p == a {
		t.Error("expected a distinct feature per kind")
	}
	if len(col.Features) != 2 {
		t.Errorf("expected 2 features, got %d", len(col.Features))
	}
}

func TestFeatureByKindNoMerge(t *testing.T) {
	col := testCollection(Options{MergeFeatures: false})

	a, _ := col.FeatureByKind(KindPolygon)
	b, _ := col.FeatureByKind(KindPolygon)
	if a == b {
		t.Error("expected a fresh feature per call without merging")
	}
	if len(col.Features) != 2 {
		t.Errorf("expected 2 features, got %d", len(col.Features))
	}
}

func TestFeatureByID(t *testing.T) {
	col := testCollection(Options{MergeFeatures: true})

	a, _ := col.FeatureByID("road-1", KindLine)
	b, _ := col.FeatureByID("road-1", KindLine)
	c, _ := col.FeatureByID("road-2", KindLine)
	if a != b {
		t.Error("expected the same feature for the same id")
	}
	if a == c {
		t.Error("expected a distinct feature for a distinct id")
	}
}

func TestFeatureByKindInvalid(t *testing.T) {
	col := testCollection(Options{})
	_, err := col.FeatureByKind(Kind(42))
	if !errors.Is(err, ErrUnsupportedFeatureKind) {
		t.Errorf("expected ErrUnsupportedFeatureKind, got %v", err)
	}
}

func TestBufferSizeInvariant2D(t *testing.T) {
	col := testCollection(Options{Structure: 2})
	f, _ := col.FeatureByKind(KindLine)

	g := f.BindNewGeometry()
	if err := g.StartSubGeometry(3, f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := g.PushCoordinate(geom.Coordinate{X: float64(i), Y: float64(i * 2)}, f); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}
	if err := g.StartSubGeometry(2, f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g.PushCoordinate(geom.Coordinate{X: 10, Y: 10}, f)
	g.PushCoordinate(geom.Coordinate{X: 11, Y: 11}, f)

	if len(f.Vertices) != 2*(3+2) {
		t.Errorf("expected %d vertex values, got %d", 2*(3+2), len(f.Vertices))
	}
	if f.Normals != nil {
		t.Error("2D feature must not carry normals")
	}
	if f.VertexCount() != 5 {
		t.Errorf("expected 5 vertices, got %d", f.VertexCount())
	}
	if g.Indices[0].Offset != 0 || g.Indices[0].Count != 3 {
		t.Errorf("first range: %+v", g.Indices[0])
	}
	if g.Indices[1].Offset != 3 || g.Indices[1].Count != 2 {
		t.Errorf("second range: %+v", g.Indices[1])
	}
}

func TestBufferSizeInvariant3D(t *testing.T) {
	col := testCollection(Options{Structure: 3})
	f, _ := col.FeatureByKind(KindPoint)

	g := f.BindNewGeometry()
	g.StartSubGeometry(2, f)
	g.PushCoordinate(geom.Coordinate{X: 1, Y: 2, Z: 30}, f)
	g.PushCoordinate(geom.Coordinate{X: 3, Y: 4, Z: 50}, f)

	if len(f.Vertices) != 6 {
		t.Errorf("expected 6 vertex values, got %d", len(f.Vertices))
	}
	if len(f.Normals) != len(f.Vertices) {
		t.Errorf("normals length %d, vertices length %d", len(f.Normals), len(f.Vertices))
	}
	if g.Altitude.Min != 30 || g.Altitude.Max != 50 {
		t.Errorf("altitude range: %+v", g.Altitude)
	}
}

func TestPushCoordinateRangesQueuedBeforePush(t *testing.T) {
	// The second range's writes must land after the first range's slots.
	col := testCollection(Options{Structure: 2})
	f, _ := col.FeatureByKind(KindLine)
	g := f.BindNewGeometry()

	g.StartSubGeometry(2, f)
	g.PushCoordinate(geom.Coordinate{X: 1, Y: 1}, f)
	g.PushCoordinate(geom.Coordinate{X: 2, Y: 2}, f)
	g.StartSubGeometry(1, f)
	g.PushCoordinate(geom.Coordinate{X: 9, Y: 9}, f)

	// Frame origin is the first coordinate, so stored values are offsets
	// from (1, 1).
	want := []float64{0, 0, 1, 1, 8, 8}
	for i, v := range want {
		if f.Vertices[i] != v {
			t.Errorf("vertex value %d: expected %f, got %f", i, v, f.Vertices[i])
		}
	}
}

func TestOverrideAltitudeToZero(t *testing.T) {
	col := testCollection(Options{Structure: 3, OverrideAltitudeToZero: true})
	f, _ := col.FeatureByKind(KindPoint)
	g := f.BindNewGeometry()
	g.StartSubGeometry(1, f)
	g.PushCoordinate(geom.Coordinate{X: 0, Y: 0, Z: 123}, f)

	if g.Altitude.Min != 0 || g.Altitude.Max != 0 {
		t.Errorf("expected zeroed altitude, got %+v", g.Altitude)
	}
}

func TestBaseAltitudeHook(t *testing.T) {
	style := &Style{FillBase: ConstantAltitude(42)}
	col := testCollection(Options{Structure: 3, Style: style})

	poly, _ := col.FeatureByKind(KindPolygon)
	g := poly.BindNewGeometry()
	g.StartSubGeometry(1, poly)
	g.PushCoordinate(geom.Coordinate{X: 0, Y: 0, Z: 7}, poly)
	if g.Altitude.Min != 42 || g.Altitude.Max != 42 {
		t.Errorf("expected fill base altitude 42, got %+v", g.Altitude)
	}

	// Lines use the stroke hook, which is absent here.
	line, _ := col.FeatureByKind(KindLine)
	lg := line.BindNewGeometry()
	lg.StartSubGeometry(1, line)
	lg.PushCoordinate(geom.Coordinate{X: 0, Y: 0, Z: 7}, line)
	if lg.Altitude.Min != 7 {
		t.Errorf("expected untouched line altitude, got %+v", lg.Altitude)
	}
}

func TestPushCoordinateValuesAndClose(t *testing.T) {
	col := testCollection(Options{Structure: 3, BuildExtent: true})
	f, _ := col.FeatureByKind(KindLine)
	g := f.BindNewGeometry()

	g.PushCoordinateValues(f, 0, 0, 5)
	g.PushCoordinateValues(f, 10, 20, 15)
	if err := g.CloseSubGeometry(2, f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(g.Indices) != 1 {
		t.Fatalf("expected 1 range, got %d", len(g.Indices))
	}
	sub := g.Indices[0]
	if sub.Offset != 0 || sub.Count != 2 {
		t.Errorf("range: %+v", sub)
	}
	if sub.Extent == nil {
		t.Fatal("expected a range extent")
	}
	if sub.Extent.MinX != 0 || sub.Extent.MaxX != 10 || sub.Extent.MaxY != 20 {
		t.Errorf("range extent: %+v", sub.Extent)
	}
	if g.Altitude.Min != 5 || g.Altitude.Max != 15 {
		t.Errorf("altitude: %+v", g.Altitude)
	}
	if f.Normals[2] != 1 || f.Normals[5] != 1 {
		t.Error("expected up normals for raw pushes")
	}
}

func TestExtentRollup(t *testing.T) {
	col := testCollection(Options{Structure: 2, BuildExtent: true})
	f, _ := col.FeatureByKind(KindLine)
	g := f.BindNewGeometry()

	g.StartSubGeometry(2, f)
	g.PushCoordinate(geom.Coordinate{X: 0, Y: 0}, f)
	g.PushCoordinate(geom.Coordinate{X: 4, Y: 2}, f)
	g.UpdateExtent()
	f.UpdateExtent(g)
	col.UpdateExtent(f.Extent)

	if g.Extent == nil || g.Extent.Width() != 4 || g.Extent.Height() != 2 {
		t.Errorf("geometry extent: %+v", g.Extent)
	}
	if f.Extent == nil || f.Extent.Width() != 4 {
		t.Errorf("feature extent: %+v", f.Extent)
	}
	if col.Extent == nil || col.Extent.Width() != 4 {
		t.Errorf("collection extent: %+v", col.Extent)
	}
}

func TestNewFeatureByReferenceFreezes(t *testing.T) {
	col := testCollection(Options{Structure: 2, BuildExtent: true})
	src, _ := col.FeatureByKind(KindPolygon)
	g := src.BindNewGeometry()
	g.StartSubGeometry(3, src)
	g.PushCoordinate(geom.Coordinate{X: 0, Y: 0}, src)
	g.PushCoordinate(geom.Coordinate{X: 1, Y: 0}, src)
	g.PushCoordinate(geom.Coordinate{X: 0, Y: 1}, src)

	ref := col.NewFeatureByReference(src)
	if ref.VertexCount() != src.VertexCount() {
		t.Errorf("expected %d vertices in alias, got %d", src.VertexCount(), ref.VertexCount())
	}
	if &ref.Vertices[0] != &src.Vertices[0] {
		t.Error("expected the alias to share the vertex buffer")
	}

	if ref.BindNewGeometry() != nil {
		t.Error("expected BindNewGeometry to refuse a frozen feature")
	}
	if err := g.StartSubGeometry(1, ref); !errors.Is(err, ErrFrozenFeature) {
		t.Errorf("expected ErrFrozenFeature, got %v", err)
	}
	if err := g.PushCoordinate(geom.Coordinate{}, ref); !errors.Is(err, ErrFrozenFeature) {
		t.Errorf("expected ErrFrozenFeature, got %v", err)
	}
	if err := g.PushCoordinateValues(ref, 0, 0, 0); !errors.Is(err, ErrFrozenFeature) {
		t.Errorf("expected ErrFrozenFeature, got %v", err)
	}

	// Growing the source must never surface in the alias.
	g2 := src.BindNewGeometry()
	g2.StartSubGeometry(2, src)
	if ref.VertexCount() != 3 {
		t.Errorf("alias grew with its source: %d vertices", ref.VertexCount())
	}
	if len(ref.Geometries) != 1 {
		t.Errorf("alias geometry list grew: %d", len(ref.Geometries))
	}
}

func TestRemoveEmptyFeatures(t *testing.T) {
	col := testCollection(Options{})
	full, _ := col.FeatureByKind(KindPoint)
	g := full.BindNewGeometry()
	g.StartSubGeometry(1, full)
	g.PushCoordinate(geom.Coordinate{}, full)
	col.FeatureByKind(KindLine) // stays empty

	col.RemoveEmptyFeatures()
	if len(col.Features) != 1 || col.Features[0] != full {
		t.Errorf("expected only the populated feature to survive, got %d", len(col.Features))
	}
}

func TestInsideFilter(t *testing.T) {
	ext := geom.Extent{MinX: 0, MaxX: 10, MinY: 0, MaxY: 10}
	col := testCollection(Options{FilterExtent: &ext})

	if !col.InsideFilter(geom.Coordinate{X: 5, Y: 5}) {
		t.Error("expected interior point to pass")
	}
	if col.InsideFilter(geom.Coordinate{X: 15, Y: 5}) {
		t.Error("expected exterior point to fail")
	}

	unfiltered := testCollection(Options{})
	if !unfiltered.InsideFilter(geom.Coordinate{X: 1e9, Y: 1e9}) {
		t.Error("expected everything to pass without a filter")
	}
}

func TestLocalFrame2D(t *testing.T) {
	fr := newLocalFrame(2)
	if fr.Initialized() {
		t.Error("frame must start uninitialized")
	}
	local := fr.ToLocal(geom.Coordinate{X: 100, Y: 200})
	if local.X != 0 || local.Y != 0 {
		t.Errorf("first coordinate must map to the origin, got %+v", local)
	}
	local = fr.ToLocal(geom.Coordinate{X: 103, Y: 204})
	if local.X != 3 || local.Y != 4 {
		t.Errorf("expected (3, 4), got %+v", local)
	}
	n := fr.LocalNormal(geom.Coordinate{})
	if n.Z != 1 || n.X != 0 || n.Y != 0 {
		t.Errorf("2D normal must be +Z, got %+v", n)
	}
}

func TestLocalFrame3D(t *testing.T) {
	// Geocentric point on the equator at the prime meridian.
	origin := math64.GeocentricFromGeodetic(0, 0, 0)

	fr := newLocalFrame(3)
	local := fr.ToLocal(geom.Coordinate{X: origin.X, Y: origin.Y, Z: origin.Z})
	if math.Abs(local.X) > 1e-6 || math.Abs(local.Y) > 1e-6 || math.Abs(local.Z) > 1e-6 {
		t.Errorf("origin must map to zero, got %+v", local)
	}

	n := fr.LocalNormal(geom.Coordinate{X: origin.X, Y: origin.Y, Z: origin.Z})
	if math.Abs(n.X) > 1e-9 || math.Abs(n.Y) > 1e-9 || math.Abs(n.Z-1) > 1e-9 {
		t.Errorf("surface normal at the origin must be local up, got %+v", n)
	}

	// Round trip through the frame matrices.
	back := fr.Matrix().MulPoint(math64.Vec3{X: local.X, Y: local.Y, Z: local.Z})
	if math.Abs(back.X-origin.X) > 1e-6 || math.Abs(back.Y-origin.Y) > 1e-6 {
		t.Errorf("matrix round trip drifted: %+v", back)
	}
}

func TestColorDarken(t *testing.T) {
	c := Color{R: 200, G: 100, B: 50}
	d := c.Darken(0.5)
	if d.R != 100 || d.G != 50 || d.B != 25 {
		t.Errorf("expected half brightness, got %+v", d)
	}
	if c.Darken(2) != c {
		t.Error("factor above 1 must clamp to identity")
	}
	if (c.Darken(-1) != Color{}) {
		t.Error("negative factor must clamp to black")
	}
}

func TestStyleSources(t *testing.T) {
	var s Style
	if s.Fill.Present() || s.Extrusion.Present() {
		t.Error("zero style must report absent sources")
	}
	if _, ok := s.Fill.Resolve(nil); ok {
		t.Error("absent color source must not resolve")
	}

	s.Fill = ConstantColor(Color{R: 1})
	if c, ok := s.Fill.Resolve(nil); !ok || c.R != 1 {
		t.Errorf("constant fill: %+v, %v", c, ok)
	}

	s.Extrusion = ComputedScalar(func(props map[string]any) float64 {
		return props["height"].(float64)
	})
	if v, ok := s.Extrusion.Resolve(map[string]any{"height": 12.5}); !ok || v != 12.5 {
		t.Errorf("computed extrusion: %f, %v", v, ok)
	}

	base := ComputedAltitude(func(props map[string]any, c geom.Coordinate) float64 {
		return c.Z + 1
	})
	if v, ok := base.Resolve(nil, geom.Coordinate{Z: 4}); !ok || v != 5 {
		t.Errorf("computed altitude: %f, %v", v, ok)
	}
}
