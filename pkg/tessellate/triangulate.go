package tessellate

import "math"

// Triangulator turns a flat polygon-with-holes into a triangle index
// list. points holds dim values per vertex; the outer ring comes first,
// followed by hole rings starting at the vertex offsets in holes. The
// returned indices are vertex positions into points (not value
// positions). Only x and y participate; z is carried data.
type Triangulator interface {
	Triangulate(points []float64, holes []int, dim int) ([]int, error)
}

// EarClip is the default Triangulator: ear clipping with ray-cast hole
// bridging. Duplicate closing vertices (first point repeated at the end
// of a ring) are tolerated and never appear in the output indices.
type EarClip struct{}

type earNode struct {
	i          int // vertex position in the input buffer
	x, y       float64
	prev, next *earNode
}

// Triangulate implements Triangulator.
func (EarClip) Triangulate(points []float64, holes []int, dim int) ([]int, error) {
	if dim < 2 {
		dim = 2
	}
	total := len(points) / dim
	outerEnd := total
	if len(holes) > 0 {
		outerEnd = holes[0]
	}

	// Outer ring linked counter-clockwise.
	outer := buildRing(points, 0, outerEnd, dim, true)
	if outer == nil {
		return nil, nil
	}

	// Holes linked clockwise, then bridged into the outer ring.
	for hi, start := range holes {
		end := total
		if hi+1 < len(holes) {
			end = holes[hi+1]
		}
		hole := buildRing(points, start, end, dim, false)
		if hole == nil {
			continue
		}
		outer = bridgeHole(hole, outer)
	}

	return clipEars(outer), nil
}

// buildRing links the vertices [start, end) into a circular list with
// the requested orientation (ccw true for counter-clockwise), dropping
// consecutive duplicates and a repeated closing vertex.
func buildRing(points []float64, start, end, dim int, ccw bool) *earNode {
	var head, tail *earNode
	n := 0
	for i := start; i < end; i++ {
		x := points[i*dim]
		y := points[i*dim+1]
		if tail != nil && tail.x == x && tail.y == y {
			continue
		}
		nd := &earNode{i: i, x: x, y: y}
		if head == nil {
			head = nd
		} else {
			tail.next = nd
			nd.prev = tail
		}
		tail = nd
		n++
	}
	if head == nil {
		return nil
	}
	// Drop the closing vertex when the ring repeats its first point.
	if n > 1 && tail.x == head.x && tail.y == head.y {
		tail = tail.prev
		n--
	}
	if n < 3 {
		return nil
	}
	tail.next = head
	head.prev = tail

	if ringIsCCW(head) != ccw {
		reverseRing(head)
	}
	return head
}

func ringIsCCW(head *earNode) bool {
	var area float64
	p := head
	for {
		area += (p.next.x - p.x) * (p.next.y + p.y)
		p = p.next
		if p == head {
			break
		}
	}
	return area < 0
}

func reverseRing(head *earNode) {
	p := head
	for {
		p.prev, p.next = p.next, p.prev
		p = p.prev // original next
		if p == head {
			break
		}
	}
}

// cross returns the z component of (q-p) x (r-p): positive for a left
// turn in a Y-up plane.
func cross(p, q, r *earNode) float64 {
	return (q.x-p.x)*(r.y-p.y) - (q.y-p.y)*(r.x-p.x)
}

// pointInTriangle is orientation-agnostic: the point is inside when it
// sits on the same side of all three edges, borders included.
func pointInTriangle(a, b, c *earNode, px, py float64) bool {
	d1 := (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
	d2 := (c.x-b.x)*(py-b.y) - (c.y-b.y)*(px-b.x)
	d3 := (a.x-c.x)*(py-c.y) - (a.y-c.y)*(px-c.x)
	return (d1 >= 0 && d2 >= 0 && d3 >= 0) || (d1 <= 0 && d2 <= 0 && d3 <= 0)
}

// bridgeHole splices a clockwise hole ring into the counter-clockwise
// outer ring through a double bridge edge, producing a single simple
// ring. The bridge runs from the hole's rightmost vertex to a visible
// outer vertex found by casting a ray toward +X.
func bridgeHole(hole, outer *earNode) *earNode {
	// Rightmost hole vertex.
	m := hole
	for p := hole.next; p != hole; p = p.next {
		if p.x > m.x {
			m = p
		}
	}

	// Closest intersection of the ray m -> +X with an outer edge.
	bestX := math.Inf(1)
	var bridge *earNode
	p := outer
	for {
		a, b := p, p.next
		if (a.y <= m.y && m.y <= b.y || b.y <= m.y && m.y <= a.y) && a.y != b.y {
			x := a.x + (m.y-a.y)*(b.x-a.x)/(b.y-a.y)
			if x >= m.x && x < bestX {
				bestX = x
				// Candidate: the intersected edge's endpoint with the
				// larger x, the one facing the hole.
				if a.x > b.x {
					bridge = a
				} else {
					bridge = b
				}
			}
		}
		p = p.next
		if p == outer {
			break
		}
	}
	if bridge == nil {
		// No visible edge; malformed input, leave the hole out.
		return outer
	}

	// If any reflex outer vertex lies inside the triangle of the hole
	// point, the ray hit and the candidate, the bridge must go to the
	// one closest in angle to the ray instead.
	ray := &earNode{x: bestX, y: m.y}
	tanMin := math.Inf(1)
	p = outer
	for {
		if p != bridge && p.x >= m.x &&
			cross(p.prev, p, p.next) <= 0 &&
			pointInTriangle(m, ray, bridge, p.x, p.y) {
			tan := math.Abs(p.y-m.y) / (p.x - m.x)
			if tan < tanMin {
				tanMin = tan
				bridge = p
			}
		}
		p = p.next
		if p == outer {
			break
		}
	}

	// Splice: bridge -> m -> ...hole... -> m' -> bridge' -> bridge.next.
	m2 := &earNode{i: m.i, x: m.x, y: m.y}
	b2 := &earNode{i: bridge.i, x: bridge.x, y: bridge.y}
	mPrev := m.prev
	bNext := bridge.next

	bridge.next = m
	m.prev = bridge
	mPrev.next = m2
	m2.prev = mPrev
	m2.next = b2
	b2.prev = m2
	b2.next = bNext
	bNext.prev = b2

	return outer
}

// clipEars runs the ear clipping loop over a simple counter-clockwise
// ring, emitting triangles as flat index triples.
func clipEars(head *earNode) []int {
	var tris []int
	ear := head
	stop := head
	for ear.prev != ear.next {
		if isEar(ear) {
			tris = append(tris, ear.prev.i, ear.i, ear.next.i)
			// Unlink and restart scanning past the new edge.
			ear.prev.next = ear.next
			ear.next.prev = ear.prev
			ear = ear.next.next
			stop = ear
			continue
		}
		ear = ear.next
		if ear == stop {
			// No ear found in a full cycle: degenerate leftovers.
			break
		}
	}
	return tris
}

func isEar(ear *earNode) bool {
	a, b, c := ear.prev, ear, ear.next
	if cross(a, b, c) <= 0 {
		return false // reflex or collinear
	}
	// No other vertex may lie inside the candidate triangle. Vertices
	// coincident with a corner are bridge duplicates, not blockers.
	for p := c.next; p != a; p = p.next {
		if samePoint(p, a) || samePoint(p, b) || samePoint(p, c) {
			continue
		}
		if pointInTriangle(a, b, c, p.x, p.y) {
			return false
		}
	}
	return true
}

func samePoint(p, q *earNode) bool {
	return p.x == q.x && p.y == q.y
}
