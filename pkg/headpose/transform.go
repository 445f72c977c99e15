package headpose

import (
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Transform is a rigid head-to-camera transform as a 4x4 homogeneous
// matrix: the upper-left 3x3 block is the rotation, the last column
// the translation in meters. It is a plain value; every solve yields a
// fresh one and callers cannot corrupt estimator state through it.
type Transform [4][4]float64

// newTransform assembles a Transform from a rotation matrix and a
// translation in millimeters.
func newTransform(rot mat.Matrix, transMM r3.Vector) Transform {
	return Transform{
		{rot.At(0, 0), rot.At(0, 1), rot.At(0, 2), transMM.X / 1000},
		{rot.At(1, 0), rot.At(1, 1), rot.At(1, 2), transMM.Y / 1000},
		{rot.At(2, 0), rot.At(2, 1), rot.At(2, 2), transMM.Z / 1000},
		{0, 0, 0, 1},
	}
}

// Rotation returns a copy of the 3x3 rotation block.
func (t Transform) Rotation() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		t[0][0], t[0][1], t[0][2],
		t[1][0], t[1][1], t[1][2],
		t[2][0], t[2][1], t[2][2],
	})
}

// Translation returns the translation column in meters.
func (t Transform) Translation() r3.Vector {
	return r3.Vector{X: t[0][3], Y: t[1][3], Z: t[2][3]}
}

// Apply maps a point from the head frame into the camera frame. The
// point must be in meters to match the stored translation.
func (t Transform) Apply(p r3.Vector) r3.Vector {
	return r3.Vector{
		X: t[0][0]*p.X + t[0][1]*p.Y + t[0][2]*p.Z + t[0][3],
		Y: t[1][0]*p.X + t[1][1]*p.Y + t[1][2]*p.Z + t[1][3],
		Z: t[2][0]*p.X + t[2][1]*p.Y + t[2][2]*p.Z + t[2][3],
	}
}

// Mat returns the full 4x4 matrix as a gonum dense matrix.
func (t Transform) Mat() *mat.Dense {
	data := make([]float64, 0, 16)
	for _, row := range t {
		data = append(data, row[:]...)
	}
	return mat.NewDense(4, 4, data)
}

// String renders the translation in centimeters, the way the overlay
// labels a face.
func (t Transform) String() string {
	trans := t.Translation()
	return fmt.Sprintf("(%dcm, %dcm, %dcm)",
		int(trans.X*100), int(trans.Y*100), int(trans.Z*100))
}
