package headpose

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/maorshutman/lm"
	"gonum.org/v1/gonum/mat"

	"github.com/ros-o/gazr/internal/log"
)

// Guess seeds the pose optimizer. Rotation is an axis-angle vector in
// radians, Translation is in millimeters, both expressed in the camera
// frame.
type Guess struct {
	Rotation    r3.Vector
	Translation r3.Vector
}

// DefaultGuess places the head one meter in front of the camera,
// facing it: (1.2, 1.2, -1.2) is the axis-angle form of the
// head-to-camera frame alignment for a subject looking into the lens.
// Seeding there keeps the optimizer away from the mirrored solution
// behind the camera, which reprojects identically.
func DefaultGuess() Guess {
	return Guess{
		Rotation:    r3.Vector{X: 1.2, Y: 1.2, Z: -1.2},
		Translation: r3.Vector{X: 0, Y: 0, Z: 1000},
	}
}

// poseParams is the solve dimension: three axis-angle rotation terms
// plus three translation terms.
const poseParams = 6

// solvePnP recovers the rigid transform mapping the 3D model points
// (millimeters, head frame) onto their observed pixel projections by
// minimizing the signed reprojection residuals with
// Levenberg-Marquardt, starting from guess. There is no hard failure
// mode: lm reports trouble by panicking ("singular" when degenerate
// observations make the damped normal equations unsolvable), not
// through its error return, so the solve recovers from the abort and
// stands on the lowest-residual parameters any evaluation reached, the
// seed when nothing better was seen. The caller always receives a
// pose.
func solvePnP(camera *CameraModel, model []r3.Vector, observed []r2.Point, guess Guess, iterations int) (rot *mat.Dense, trans r3.Vector) {
	seed := []float64{
		guess.Rotation.X, guess.Rotation.Y, guess.Rotation.Z,
		guess.Translation.X, guess.Translation.Y, guess.Translation.Z,
	}

	// best carries the lowest-residual parameters seen by any
	// evaluation, the numeric-Jacobian calls included. NaN and Inf
	// residual norms lose the comparison, so its entries stay finite.
	best := append([]float64(nil), seed...)
	bestNorm := math.Inf(1)

	defer func() {
		if r := recover(); r != nil {
			log.Debug("pose solve aborted, keeping best evaluated parameters", "cause", r)
			rot = RotationFromVector(r3.Vector{X: best[0], Y: best[1], Z: best[2]})
			trans = r3.Vector{X: best[3], Y: best[4], Z: best[5]}
		}
	}()

	residuals := func(dst, x []float64) {
		rotation := RotationFromVector(r3.Vector{X: x[0], Y: x[1], Z: x[2]})
		translation := r3.Vector{X: x[3], Y: x[4], Z: x[5]}
		for i, p := range model {
			proj := camera.Project(p, rotation, translation)
			dst[2*i] = proj.X - observed[i].X
			dst[2*i+1] = proj.Y - observed[i].Y
		}

		norm := 0.0
		for _, d := range dst {
			norm += d * d
		}
		if norm < bestNorm {
			bestNorm = norm
			copy(best, x)
		}
	}

	jacobian := lm.NumJac{residuals}
	problem := lm.LMProblem{
		Dim:        poseParams,
		Size:       2 * len(model),
		Func:       residuals,
		Jac:        jacobian.Jac,
		InitParams: seed,
		Tau:        1e-6,
		Eps1:       1e-8,
		Eps2:       1e-8,
	}

	params := best
	if results, err := lm.LM(problem, &lm.Settings{Iterations: iterations, ObjectiveTol: 1e-16}); err == nil {
		params = results.X
	}

	rot = RotationFromVector(r3.Vector{X: params[0], Y: params[1], Z: params[2]})
	trans = r3.Vector{X: params[3], Y: params[4], Z: params[5]}
	return rot, trans
}
