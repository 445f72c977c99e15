package headpose

import (
	"fmt"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// LandmarkCount is the size of the landmark sets the estimator
// consumes, following the 68-point Multi-PIE annotation scheme that
// most landmark detectors emit.
const LandmarkCount = 68

// Landmarks is one face's 2D landmark set in pixel coordinates.
type Landmarks [LandmarkCount]r2.Point

// Feature identifies the anthropometric reference points used for pose
// recovery.
type Feature int

const (
	Sellion Feature = iota
	RightEye
	LeftEye
	RightEar
	LeftEar
	Menton
	NoseTip
	Stomion
	featureCount
)

// headModel holds each feature's 3D position in millimeters.
// Head frame: origin at the sellion, X forward out of the face, Y
// toward the subject's left, Z up. The measurements are adult
// anthropometric averages.
var headModel = [featureCount]r3.Vector{
	Sellion:  {X: 0, Y: 0, Z: 0},
	RightEye: {X: -20, Y: -65.5, Z: -5},
	LeftEye:  {X: -20, Y: 65.5, Z: -5},
	RightEar: {X: -100, Y: -77.5, Z: -6},
	LeftEar:  {X: -100, Y: 77.5, Z: -6},
	Menton:   {X: 0, Y: 0, Z: -133},
	NoseTip:  {X: 21, Y: 0, Z: -48},
	Stomion:  {X: 10, Y: 0, Z: -75},
}

// ModelPoint returns feature f's position in the head frame, in
// millimeters.
func ModelPoint(f Feature) r3.Vector { return headModel[f] }

// Scheme maps head-model features to indices in a 68-point landmark
// set. The stomion has no landmark of its own and is synthesized as
// the midpoint of MouthTop and MouthBottom.
type Scheme struct {
	Sellion       int
	RightEyeOuter int
	LeftEyeOuter  int
	RightTragion  int
	LeftTragion   int
	Menton        int
	NoseTip       int
	MouthTop      int
	MouthBottom   int
}

// DefaultScheme returns the standard 68-point (Multi-PIE) indices.
func DefaultScheme() Scheme {
	return Scheme{
		Sellion:       27,
		RightEyeOuter: 36,
		LeftEyeOuter:  45,
		RightTragion:  0,
		LeftTragion:   16,
		Menton:        8,
		NoseTip:       30,
		MouthTop:      62,
		MouthBottom:   66,
	}
}

// validate checks that every index addresses a 68-point set.
func (s Scheme) validate() error {
	indices := []int{
		s.Sellion, s.RightEyeOuter, s.LeftEyeOuter, s.RightTragion,
		s.LeftTragion, s.Menton, s.NoseTip, s.MouthTop, s.MouthBottom,
	}
	for _, i := range indices {
		if i < 0 || i >= LandmarkCount {
			return fmt.Errorf("landmark index %d outside [0,%d)", i, LandmarkCount)
		}
	}
	return nil
}

// FeaturePoint returns the observed 2D point for feature f.
func (s Scheme) FeaturePoint(l Landmarks, f Feature) r2.Point {
	switch f {
	case Sellion:
		return l[s.Sellion]
	case RightEye:
		return l[s.RightEyeOuter]
	case LeftEye:
		return l[s.LeftEyeOuter]
	case RightEar:
		return l[s.RightTragion]
	case LeftEar:
		return l[s.LeftTragion]
	case Menton:
		return l[s.Menton]
	case NoseTip:
		return l[s.NoseTip]
	case Stomion:
		return l[s.MouthTop].Add(l[s.MouthBottom]).Mul(0.5)
	}
	return r2.Point{}
}

// Correspondences returns the aligned (3D model, 2D observed) pairs
// for one face, in Feature order. These eight pairs are the solver's
// entire input.
func (s Scheme) Correspondences(l Landmarks) ([]r3.Vector, []r2.Point) {
	model := make([]r3.Vector, 0, featureCount)
	image := make([]r2.Point, 0, featureCount)
	for f := Feature(0); f < featureCount; f++ {
		model = append(model, headModel[f])
		image = append(image, s.FeaturePoint(l, f))
	}
	return model, image
}
