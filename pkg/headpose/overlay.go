package headpose

import (
	"image"
	"image/color"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"gocv.io/x/gocv"
)

// Overlay palette and geometry.
var (
	skeletonColor = color.RGBA{R: 128, G: 128, B: 0, A: 0} // olive
	xAxisColor    = color.RGBA{R: 255, G: 0, B: 0, A: 0}
	yAxisColor    = color.RGBA{R: 0, G: 255, B: 0, A: 0}
	zAxisColor    = color.RGBA{R: 0, G: 0, B: 255, A: 0}
	labelColor    = color.RGBA{R: 255, G: 0, B: 0, A: 0}
)

const (
	lineThickness = 2
	// axisLength is the drawn length of each pose axis, millimeters in
	// the head frame.
	axisLength = 50.0
)

// skeletonChains lists runs of consecutive landmark indices joined
// with line segments, [first, last] inclusive, each index connected to
// its predecessor.
var skeletonChains = [][2]int{
	{1, 16},  // jawline
	{28, 30}, // nose bridge
	{18, 21}, // right eyebrow
	{23, 26}, // left eyebrow
	{31, 35}, // nose base
	{37, 41}, // right eye
	{43, 47}, // left eye
	{49, 59}, // outer lips
	{61, 67}, // inner lips
}

// skeletonClosures are the extra segments closing the open loops.
var skeletonClosures = [][2]int{
	{30, 35}, // nose base back to the bridge tip
	{36, 41}, // right eye
	{42, 47}, // left eye
	{48, 59}, // outer lips
	{60, 67}, // inner lips
}

// DrawOverlay returns a copy of img annotated with every face's
// landmark skeleton and, for each pose provided, a projected axis
// triad plus a position label in centimeters. poses is index-aligned
// with the frame's faces; faces beyond len(poses) still get their
// skeleton. The input image is never modified.
func (f *Frame) DrawOverlay(img gocv.Mat, poses []Transform) gocv.Mat {
	out := img.Clone()
	for i, landmarks := range f.landmarks {
		drawSkeleton(&out, landmarks)
		if i < len(poses) {
			f.drawPose(&out, landmarks, poses[i])
		}
	}
	return out
}

func drawSkeleton(img *gocv.Mat, l Landmarks) {
	for _, chain := range skeletonChains {
		for i := chain[0]; i <= chain[1]; i++ {
			gocv.Line(img, pixel(l[i-1]), pixel(l[i]), skeletonColor, lineThickness)
		}
	}
	for _, seg := range skeletonClosures {
		gocv.Line(img, pixel(l[seg[0]]), pixel(l[seg[1]]), skeletonColor, lineThickness)
	}
}

// drawPose projects a 50mm axis triad at the head origin and writes
// the translation, in whole centimeters, next to the sellion.
func (f *Frame) drawPose(img *gocv.Mat, l Landmarks, pose Transform) {
	rot := pose.Rotation()
	transMM := pose.Translation().Mul(1000) // projection works in millimeters

	origin := pixel(f.camera.Project(r3.Vector{}, rot, transMM))
	xTip := pixel(f.camera.Project(r3.Vector{X: axisLength}, rot, transMM))
	yTip := pixel(f.camera.Project(r3.Vector{Y: axisLength}, rot, transMM))
	zTip := pixel(f.camera.Project(r3.Vector{Z: axisLength}, rot, transMM))

	gocv.Line(img, origin, xTip, xAxisColor, lineThickness)
	gocv.Line(img, origin, yTip, yAxisColor, lineThickness)
	gocv.Line(img, origin, zTip, zAxisColor, lineThickness)

	anchor := f.cfg.Scheme.FeaturePoint(l, Sellion)
	gocv.PutText(img, pose.String(), pixel(anchor), gocv.FontHersheySimplex, 0.5, labelColor, lineThickness)
}

func pixel(p r2.Point) image.Point {
	return image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
}
