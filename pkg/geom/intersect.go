// Package geom provides small 2D geometry helpers that are independent
// of any camera or head model.
package geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// parallelEps is the cross-product magnitude below which two segment
// directions are treated as parallel.
const parallelEps = 1e-8

// SegmentIntersection treats p1->p2 and p3->p4 as infinite lines and
// returns the point where they cross. The boolean is false when the
// lines are parallel or either segment is degenerate. The intersection
// may lie outside the segment extents; callers that need true segment
// semantics must check the result themselves.
func SegmentIntersection(p1, p2, p3, p4 r2.Point) (r2.Point, bool) {
	d1 := p2.Sub(p1)
	d2 := p4.Sub(p3)

	cross := d1.Cross(d2)
	if math.Abs(cross) < parallelEps {
		return r2.Point{}, false
	}

	t1 := p3.Sub(p1).Cross(d2) / cross
	return p1.Add(d1.Mul(t1)), true
}
