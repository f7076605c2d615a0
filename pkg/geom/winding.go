package geom

// SignedArea computes the shoelace signed area of a ring stored in a flat
// vertex buffer. verts holds stride values per vertex; the ring spans
// vertex positions [offset, offset+count). A positive result means the
// ring is counter-clockwise in a Y-up plane.
func SignedArea(verts []float64, stride, offset, count int) float64 {
	if count < 3 {
		return 0
	}
	var area float64
	j := count - 1
	for i := 0; i < count; i++ {
		xi := verts[(offset+i)*stride]
		yi := verts[(offset+i)*stride+1]
		xj := verts[(offset+j)*stride]
		yj := verts[(offset+j)*stride+1]
		area += (xj + xi) * (yj - yi)
		j = i
	}
	return -area / 2
}

// IsClockwise reports whether the ring at [offset, offset+count) winds
// clockwise.
func IsClockwise(verts []float64, stride, offset, count int) bool {
	return SignedArea(verts, stride, offset, count) < 0
}
