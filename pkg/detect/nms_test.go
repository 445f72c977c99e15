package detect

import (
	"math"
	"testing"

	"github.com/ros-o/gazr/pkg/headpose"
)

const iouTolerance = 1e-9

func TestNMSSuppressesOverlaps(t *testing.T) {
	regions := []headpose.Region{
		{X1: 0, Y1: 0, X2: 100, Y2: 100, Score: 0.8},
		{X1: 10, Y1: 10, X2: 110, Y2: 110, Score: 0.9},
		{X1: 5, Y1: 5, X2: 105, Y2: 105, Score: 0.7},
	}

	kept := nms(regions, 0.3)

	if len(kept) != 1 {
		t.Fatalf("kept %d regions, want 1", len(kept))
	}
	if kept[0].Score != 0.9 {
		t.Errorf("kept score %v, want the highest (0.9)", kept[0].Score)
	}
}

func TestNMSKeepsDisjointRegions(t *testing.T) {
	regions := []headpose.Region{
		{X1: 0, Y1: 0, X2: 50, Y2: 50, Score: 0.9},
		{X1: 200, Y1: 200, X2: 250, Y2: 250, Score: 0.6},
		{X1: 400, Y1: 0, X2: 450, Y2: 50, Score: 0.8},
	}

	kept := nms(regions, 0.3)

	if len(kept) != 3 {
		t.Fatalf("kept %d regions, want 3", len(kept))
	}
	for i := 1; i < len(kept); i++ {
		if kept[i].Score > kept[i-1].Score {
			t.Errorf("regions not sorted by score: %v after %v", kept[i].Score, kept[i-1].Score)
		}
	}
}

func TestNMSEmptyInput(t *testing.T) {
	if kept := nms(nil, 0.3); len(kept) != 0 {
		t.Errorf("nms(nil) returned %d regions", len(kept))
	}
}

func TestIoU(t *testing.T) {
	tests := []struct {
		name string
		a    headpose.Region
		b    headpose.Region
		want float64
	}{
		{
			name: "identical",
			a:    headpose.Region{X1: 0, Y1: 0, X2: 100, Y2: 100},
			b:    headpose.Region{X1: 0, Y1: 0, X2: 100, Y2: 100},
			want: 1,
		},
		{
			name: "disjoint",
			a:    headpose.Region{X1: 0, Y1: 0, X2: 50, Y2: 50},
			b:    headpose.Region{X1: 100, Y1: 100, X2: 150, Y2: 150},
			want: 0,
		},
		{
			name: "half horizontal overlap",
			a:    headpose.Region{X1: 0, Y1: 0, X2: 100, Y2: 100},
			b:    headpose.Region{X1: 50, Y1: 0, X2: 150, Y2: 100},
			// intersection 50x100, union 2*10000-5000
			want: 5000.0 / 15000.0,
		},
		{
			name: "touching edges",
			a:    headpose.Region{X1: 0, Y1: 0, X2: 50, Y2: 50},
			b:    headpose.Region{X1: 50, Y1: 0, X2: 100, Y2: 50},
			want: 0,
		},
		{
			name: "zero area",
			a:    headpose.Region{X1: 10, Y1: 10, X2: 10, Y2: 10},
			b:    headpose.Region{X1: 10, Y1: 10, X2: 10, Y2: 10},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := iou(tt.a, tt.b)
			if math.Abs(got-tt.want) > iouTolerance {
				t.Errorf("iou = %v, want %v", got, tt.want)
			}
			if rev := iou(tt.b, tt.a); math.Abs(rev-got) > iouTolerance {
				t.Errorf("iou not symmetric: %v vs %v", got, rev)
			}
		})
	}
}
