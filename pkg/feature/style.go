package feature

import "github.com/Faultbox/geomesh/pkg/geom"

// Color is a byte-normalized RGB color as written into render buffers.
type Color struct {
	R, G, B uint8
}

// Darken returns the color scaled toward black by factor in [0, 1].
// Darken(0.5) halves the brightness.
func (c Color) Darken(factor float64) Color {
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}
	return Color{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
	}
}

// ColorSource is a style hook yielding a color: either a constant or a
// function of geometry properties. The zero value is "absent".
type ColorSource struct {
	set   bool
	value Color
	fn    func(props map[string]any) Color
}

// ConstantColor returns a source that always yields c.
func ConstantColor(c Color) ColorSource {
	return ColorSource{set: true, value: c}
}

// ComputedColor returns a source backed by fn.
func ComputedColor(fn func(props map[string]any) Color) ColorSource {
	return ColorSource{set: true, fn: fn}
}

// Present reports whether the source is configured.
func (s ColorSource) Present() bool {
	return s.set
}

// Resolve yields the color for props. ok is false when the source is
// absent.
func (s ColorSource) Resolve(props map[string]any) (c Color, ok bool) {
	if !s.set {
		return Color{}, false
	}
	if s.fn != nil {
		return s.fn(props), true
	}
	return s.value, true
}

// ScalarSource is a style hook yielding a number, constant or computed.
type ScalarSource struct {
	set   bool
	value float64
	fn    func(props map[string]any) float64
}

// ConstantScalar returns a source that always yields v.
func ConstantScalar(v float64) ScalarSource {
	return ScalarSource{set: true, value: v}
}

// ComputedScalar returns a source backed by fn.
func ComputedScalar(fn func(props map[string]any) float64) ScalarSource {
	return ScalarSource{set: true, fn: fn}
}

// Present reports whether the source is configured.
func (s ScalarSource) Present() bool {
	return s.set
}

// Resolve yields the value for props. ok is false when the source is
// absent.
func (s ScalarSource) Resolve(props map[string]any) (v float64, ok bool) {
	if !s.set {
		return 0, false
	}
	if s.fn != nil {
		return s.fn(props), true
	}
	return s.value, true
}

// AltitudeSource is a style hook yielding a base altitude for a
// coordinate, constant or computed from properties and the coordinate.
type AltitudeSource struct {
	set   bool
	value float64
	fn    func(props map[string]any, c geom.Coordinate) float64
}

// ConstantAltitude returns a source that always yields v.
func ConstantAltitude(v float64) AltitudeSource {
	return AltitudeSource{set: true, value: v}
}

// ComputedAltitude returns a source backed by fn.
func ComputedAltitude(fn func(props map[string]any, c geom.Coordinate) float64) AltitudeSource {
	return AltitudeSource{set: true, fn: fn}
}

// Resolve yields the altitude for props and c. ok is false when the
// source is absent.
func (s AltitudeSource) Resolve(props map[string]any, c geom.Coordinate) (v float64, ok bool) {
	if !s.set {
		return 0, false
	}
	if s.fn != nil {
		return s.fn(props, c), true
	}
	return s.value, true
}

// Style holds the per-feature styling hooks. Absent hooks mean "use the
// engine default or skip the behavior"; absence is never an error.
type Style struct {
	Fill       ColorSource    // polygon fill and extrusion roof color
	Stroke     ColorSource    // line and point color
	Extrusion  ScalarSource   // extrusion height; absent means flat
	FillBase   AltitudeSource // base altitude override for polygon coordinates
	StrokeBase AltitudeSource // base altitude override for line coordinates
}
