package geom

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
)

const floatTolerance = 1e-9

func pointEquals(a, b r2.Point) bool {
	return math.Abs(a.X-b.X) < floatTolerance && math.Abs(a.Y-b.Y) < floatTolerance
}

func TestSegmentIntersection(t *testing.T) {
	tests := []struct {
		name           string
		p1, p2, p3, p4 r2.Point
		want           r2.Point
		wantOK         bool
	}{
		{
			name: "perpendicular cross at origin",
			p1:   r2.Point{X: -1, Y: 0}, p2: r2.Point{X: 1, Y: 0},
			p3: r2.Point{X: 0, Y: -1}, p4: r2.Point{X: 0, Y: 1},
			want:   r2.Point{X: 0, Y: 0},
			wantOK: true,
		},
		{
			name: "diagonals of the unit square",
			p1:   r2.Point{X: 0, Y: 0}, p2: r2.Point{X: 1, Y: 1},
			p3: r2.Point{X: 0, Y: 1}, p4: r2.Point{X: 1, Y: 0},
			want:   r2.Point{X: 0.5, Y: 0.5},
			wantOK: true,
		},
		{
			name: "intersection beyond the segment extents",
			p1:   r2.Point{X: 0, Y: 0}, p2: r2.Point{X: 1, Y: 0},
			p3: r2.Point{X: 5, Y: -1}, p4: r2.Point{X: 5, Y: 1},
			want:   r2.Point{X: 5, Y: 0},
			wantOK: true,
		},
		{
			name: "horizontal parallels",
			p1:   r2.Point{X: 0, Y: 0}, p2: r2.Point{X: 1, Y: 0},
			p3: r2.Point{X: 0, Y: 1}, p4: r2.Point{X: 1, Y: 1},
			wantOK: false,
		},
		{
			name: "collinear segments",
			p1:   r2.Point{X: 0, Y: 0}, p2: r2.Point{X: 1, Y: 1},
			p3: r2.Point{X: 2, Y: 2}, p4: r2.Point{X: 3, Y: 3},
			wantOK: false,
		},
		{
			name: "degenerate first segment",
			p1:   r2.Point{X: 1, Y: 1}, p2: r2.Point{X: 1, Y: 1},
			p3: r2.Point{X: 0, Y: 0}, p4: r2.Point{X: 2, Y: 0},
			wantOK: false,
		},
		{
			name: "near-parallel below the tolerance",
			p1:   r2.Point{X: 0, Y: 0}, p2: r2.Point{X: 1, Y: 0},
			p3: r2.Point{X: 0, Y: 1}, p4: r2.Point{X: 1, Y: 1 + 1e-10},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SegmentIntersection(tt.p1, tt.p2, tt.p3, tt.p4)
			if ok != tt.wantOK {
				t.Fatalf("ok: got %v, want %v", ok, tt.wantOK)
			}
			if ok && !pointEquals(got, tt.want) {
				t.Errorf("point: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegmentIntersectionIndependentOfDirection(t *testing.T) {
	// Swapping segment endpoints flips the parametrization but must not
	// move the intersection point.
	a, okA := SegmentIntersection(
		r2.Point{X: -2, Y: -1}, r2.Point{X: 4, Y: 2},
		r2.Point{X: 0, Y: 3}, r2.Point{X: 2, Y: -3},
	)
	b, okB := SegmentIntersection(
		r2.Point{X: 4, Y: 2}, r2.Point{X: -2, Y: -1},
		r2.Point{X: 2, Y: -3}, r2.Point{X: 0, Y: 3},
	)
	if !okA || !okB {
		t.Fatalf("ok: got %v and %v, want both true", okA, okB)
	}
	if !pointEquals(a, b) {
		t.Errorf("reversed segments: got %v, want %v", b, a)
	}
}
