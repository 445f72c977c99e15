package headpose

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

func TestNewTransformConvertsToMeters(t *testing.T) {
	rot := RotationFromVector(r3.Vector{})
	pose := newTransform(rot, r3.Vector{X: 100, Y: -250, Z: 1000})

	got := pose.Translation()
	want := r3.Vector{X: 0.1, Y: -0.25, Z: 1.0}
	if got.Sub(want).Norm() > 1e-12 {
		t.Errorf("translation: got %v, want %v", got, want)
	}

	if pose[3] != [4]float64{0, 0, 0, 1} {
		t.Errorf("bottom row: got %v, want (0 0 0 1)", pose[3])
	}
}

func TestTransformRotationBlock(t *testing.T) {
	rot := RotationFromVector(r3.Vector{X: 1.2, Y: 1.2, Z: -1.2})
	pose := newTransform(rot, r3.Vector{Z: 1000})

	if !matEquals(pose.Rotation(), rot) {
		t.Error("rotation block does not match source rotation")
	}
}

func TestTransformApply(t *testing.T) {
	// Half turn about Z plus a one meter push along the camera axis.
	rot := RotationFromVector(r3.Vector{Z: math.Pi})
	pose := newTransform(rot, r3.Vector{Z: 1000})

	got := pose.Apply(r3.Vector{X: 0.1, Y: 0.2, Z: 0.05})
	want := r3.Vector{X: -0.1, Y: -0.2, Z: 1.05}
	if got.Sub(want).Norm() > 1e-9 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTransformMatShape(t *testing.T) {
	pose := newTransform(RotationFromVector(r3.Vector{}), r3.Vector{X: 500})
	m := pose.Mat()
	r, c := m.Dims()
	if r != 4 || c != 4 {
		t.Fatalf("dims: got %dx%d, want 4x4", r, c)
	}
	if m.At(0, 3) != 0.5 {
		t.Errorf("translation cell: got %v, want 0.5", m.At(0, 3))
	}
	if m.At(3, 3) != 1 {
		t.Errorf("homogeneous corner: got %v, want 1", m.At(3, 3))
	}
}

func TestTransformString(t *testing.T) {
	pose := newTransform(RotationFromVector(r3.Vector{}), r3.Vector{X: 100, Y: -250, Z: 1000})
	if got, want := pose.String(), "(10cm, -25cm, 100cm)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
