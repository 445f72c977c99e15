package headpose

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

const matTolerance = 1e-9

func matEquals(a, b mat.Matrix) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(a.At(i, j)-b.At(i, j)) > matTolerance {
				return false
			}
		}
	}
	return true
}

func TestRotationFromVectorKnownRotations(t *testing.T) {
	tests := []struct {
		name string
		rv   r3.Vector
		want *mat.Dense
	}{
		{
			name: "zero vector is identity",
			rv:   r3.Vector{},
			want: mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}),
		},
		{
			name: "quarter turn about X",
			rv:   r3.Vector{X: math.Pi / 2},
			want: mat.NewDense(3, 3, []float64{1, 0, 0, 0, 0, -1, 0, 1, 0}),
		},
		{
			name: "half turn about Z",
			rv:   r3.Vector{Z: math.Pi},
			want: mat.NewDense(3, 3, []float64{-1, 0, 0, 0, -1, 0, 0, 0, 1}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RotationFromVector(tt.rv)
			if !matEquals(got, tt.want) {
				t.Errorf("got %v, want %v", mat.Formatted(got), mat.Formatted(tt.want))
			}
		})
	}
}

func TestRotationFromVectorIsOrthonormal(t *testing.T) {
	vectors := []r3.Vector{
		{X: 1.2, Y: 1.2, Z: -1.2},
		{X: 0.01, Y: -0.02, Z: 0.005},
		{X: -2.1, Y: 0.4, Z: 1.7},
	}

	identity := mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	for _, rv := range vectors {
		rot := RotationFromVector(rv)
		var rtr mat.Dense
		rtr.Mul(rot.T(), rot)
		if !matEquals(&rtr, identity) {
			t.Errorf("R^T R != I for %v", rv)
		}
		if det := mat.Det(rot); math.Abs(det-1) > matTolerance {
			t.Errorf("det(R) = %v for %v, want 1", det, rv)
		}
	}
}

func TestRodriguesRoundTrip(t *testing.T) {
	// Compare through matrices: at theta near pi the axis sign is
	// ambiguous but the rotation itself is not.
	tests := []struct {
		name string
		rv   r3.Vector
	}{
		{"frontal face alignment", r3.Vector{X: 1.2, Y: 1.2, Z: -1.2}},
		{"small rotation", r3.Vector{X: 0.02, Y: -0.015, Z: 0.03}},
		{"single axis", r3.Vector{Y: 1.0}},
		{"near pi", r3.Vector{X: 3.14, Y: 0.01, Z: 0.01}},
		{"exact half turn", r3.Vector{Z: math.Pi}},
		{"near zero", r3.Vector{X: 1e-10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rot := RotationFromVector(tt.rv)
			back := RotationFromVector(VectorFromRotation(rot))
			if !matEquals(rot, back) {
				t.Errorf("round trip changed the rotation:\n%v\nvs\n%v",
					mat.Formatted(rot), mat.Formatted(back))
			}
		})
	}
}

func TestVectorFromRotationAngle(t *testing.T) {
	rv := r3.Vector{X: 0.3, Y: -0.4, Z: 0.5}
	got := VectorFromRotation(RotationFromVector(rv))
	if got.Sub(rv).Norm() > 1e-9 {
		t.Errorf("got %v, want %v", got, rv)
	}
}

func TestRotate(t *testing.T) {
	// Quarter turn about Z sends X to Y.
	rot := RotationFromVector(r3.Vector{Z: math.Pi / 2})
	got := rotate(rot, r3.Vector{X: 1})
	want := r3.Vector{Y: 1}
	if got.Sub(want).Norm() > 1e-9 {
		t.Errorf("got %v, want %v", got, want)
	}
}
