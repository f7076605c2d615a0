// Package geom provides the primitive spatial types shared by the feature
// data model and the tessellation engine: coordinates, bounding extents,
// altitude ranges and ring winding helpers.
package geom

import "math"

// Coordinate is a point in some coordinate reference system.
// Z is ignored for 2D data.
type Coordinate struct {
	X, Y, Z float64
}

// Extent is an axis-aligned 2D bounding box. The zero-ish state produced
// by NewExtent is inverted (+inf/-inf) so that the first expansion sets
// all four bounds. Expansion only ever grows the box.
type Extent struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// NewExtent returns an empty (inverted) extent.
func NewExtent() Extent {
	return Extent{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
}

// IsEmpty reports whether the extent has never been expanded.
func (e Extent) IsEmpty() bool {
	return e.MinX > e.MaxX || e.MinY > e.MaxY
}

// ExpandXY grows the extent to include the point (x, y).
func (e *Extent) ExpandXY(x, y float64) {
	if x < e.MinX {
		e.MinX = x
	}
	if x > e.MaxX {
		e.MaxX = x
	}
	if y < e.MinY {
		e.MinY = y
	}
	if y > e.MaxY {
		e.MaxY = y
	}
}

// ExpandCoordinate grows the extent to include c's horizontal position.
func (e *Extent) ExpandCoordinate(c Coordinate) {
	e.ExpandXY(c.X, c.Y)
}

// Union grows the extent to cover other. Empty inputs are no-ops.
func (e *Extent) Union(other Extent) {
	if other.IsEmpty() {
		return
	}
	e.ExpandXY(other.MinX, other.MinY)
	e.ExpandXY(other.MaxX, other.MaxY)
}

// ContainsXY reports whether (x, y) lies inside the extent, borders
// included. An empty extent contains nothing.
func (e Extent) ContainsXY(x, y float64) bool {
	return x >= e.MinX && x <= e.MaxX && y >= e.MinY && y <= e.MaxY
}

// Width returns the X span, or 0 for an empty extent.
func (e Extent) Width() float64 {
	if e.IsEmpty() {
		return 0
	}
	return e.MaxX - e.MinX
}

// Height returns the Y span, or 0 for an empty extent.
func (e Extent) Height() float64 {
	if e.IsEmpty() {
		return 0
	}
	return e.MaxY - e.MinY
}

// AltitudeRange tracks the minimum and maximum elevation seen.
// Like Extent it starts inverted and only grows.
type AltitudeRange struct {
	Min, Max float64
}

// NewAltitudeRange returns an empty (inverted) range.
func NewAltitudeRange() AltitudeRange {
	return AltitudeRange{Min: math.Inf(1), Max: math.Inf(-1)}
}

// IsEmpty reports whether the range has never been expanded.
func (r AltitudeRange) IsEmpty() bool {
	return r.Min > r.Max
}

// Expand grows the range to include z.
func (r *AltitudeRange) Expand(z float64) {
	if z < r.Min {
		r.Min = z
	}
	if z > r.Max {
		r.Max = z
	}
}

// Union grows the range to cover other. Empty inputs are no-ops.
func (r *AltitudeRange) Union(other AltitudeRange) {
	if other.IsEmpty() {
		return
	}
	r.Expand(other.Min)
	r.Expand(other.Max)
}
