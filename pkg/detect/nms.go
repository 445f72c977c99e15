package detect

import (
	"math"
	"sort"

	"github.com/ros-o/gazr/pkg/headpose"
)

// nms performs greedy non-maximum suppression, keeping the highest
// scoring region of each overlapping group. The input slice is
// reordered in place.
func nms(regions []headpose.Region, iouThreshold float64) []headpose.Region {
	if len(regions) == 0 {
		return regions
	}

	sort.Slice(regions, func(i, j int) bool {
		return regions[i].Score > regions[j].Score
	})

	keep := make([]headpose.Region, 0, len(regions))
	suppressed := make([]bool, len(regions))

	for i := 0; i < len(regions); i++ {
		if suppressed[i] {
			continue
		}
		keep = append(keep, regions[i])
		for j := i + 1; j < len(regions); j++ {
			if suppressed[j] {
				continue
			}
			if iou(regions[i], regions[j]) > iouThreshold {
				suppressed[j] = true
			}
		}
	}

	return keep
}

// iou computes intersection over union of two regions.
func iou(a, b headpose.Region) float64 {
	x1 := math.Max(a.X1, b.X1)
	y1 := math.Max(a.Y1, b.Y1)
	x2 := math.Min(a.X2, b.X2)
	y2 := math.Min(a.Y2, b.Y2)

	inter := math.Max(0, x2-x1) * math.Max(0, y2-y1)
	union := a.Area() + b.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}
