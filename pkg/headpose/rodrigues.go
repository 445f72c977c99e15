package headpose

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// RotationFromVector converts an axis-angle rotation vector (Rodrigues
// form, with the angle encoded as the vector norm in radians) to a 3x3
// rotation matrix. A vector shorter than 1e-12 yields the identity.
func RotationFromVector(rv r3.Vector) *mat.Dense {
	theta := rv.Norm()
	if theta < 1e-12 {
		return mat.NewDense(3, 3, []float64{
			1, 0, 0,
			0, 1, 0,
			0, 0, 1,
		})
	}
	k := rv.Mul(1 / theta)
	s, c := math.Sincos(theta)
	ic := 1 - c
	return mat.NewDense(3, 3, []float64{
		c + k.X*k.X*ic, k.X*k.Y*ic - k.Z*s, k.X*k.Z*ic + k.Y*s,
		k.Y*k.X*ic + k.Z*s, c + k.Y*k.Y*ic, k.Y*k.Z*ic - k.X*s,
		k.Z*k.X*ic - k.Y*s, k.Z*k.Y*ic + k.X*s, c + k.Z*k.Z*ic,
	})
}

// VectorFromRotation converts a 3x3 rotation matrix back to its
// axis-angle vector. The theta=0 and theta=pi singularities are
// resolved from the matrix diagonal; at pi the axis sign is chosen
// consistently (k and -k encode the same rotation there).
func VectorFromRotation(m mat.Matrix) r3.Vector {
	trace := m.At(0, 0) + m.At(1, 1) + m.At(2, 2)
	cos := math.Max(-1, math.Min(1, (trace-1)/2))
	theta := math.Acos(cos)

	if theta < 1e-12 {
		return r3.Vector{}
	}
	if math.Pi-theta < 1e-6 {
		// sin(theta) vanishes; recover the axis from R = 2*k*k^T - I.
		kx := math.Sqrt(math.Max(0, (m.At(0, 0)+1)/2))
		ky := math.Sqrt(math.Max(0, (m.At(1, 1)+1)/2))
		kz := math.Sqrt(math.Max(0, (m.At(2, 2)+1)/2))
		switch {
		case kx >= ky && kx >= kz:
			if m.At(0, 1) < 0 {
				ky = -ky
			}
			if m.At(0, 2) < 0 {
				kz = -kz
			}
		case ky >= kz:
			if m.At(0, 1) < 0 {
				kx = -kx
			}
			if m.At(1, 2) < 0 {
				kz = -kz
			}
		default:
			if m.At(0, 2) < 0 {
				kx = -kx
			}
			if m.At(1, 2) < 0 {
				ky = -ky
			}
		}
		return r3.Vector{X: kx, Y: ky, Z: kz}.Mul(theta)
	}

	s := 2 * math.Sin(theta)
	return r3.Vector{
		X: (m.At(2, 1) - m.At(1, 2)) / s,
		Y: (m.At(0, 2) - m.At(2, 0)) / s,
		Z: (m.At(1, 0) - m.At(0, 1)) / s,
	}.Mul(theta)
}

// rotate applies a 3x3 rotation matrix to v.
func rotate(m mat.Matrix, v r3.Vector) r3.Vector {
	return r3.Vector{
		X: m.At(0, 0)*v.X + m.At(0, 1)*v.Y + m.At(0, 2)*v.Z,
		Y: m.At(1, 0)*v.X + m.At(1, 1)*v.Y + m.At(1, 2)*v.Z,
		Z: m.At(2, 0)*v.X + m.At(2, 1)*v.Y + m.At(2, 2)*v.Z,
	}
}
