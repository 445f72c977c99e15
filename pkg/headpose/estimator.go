// Package headpose estimates the 6-DOF pose of human heads relative to
// a monocular camera. Each detected face's 2D landmarks are matched
// against a fixed anthropometric head model and the perspective-n-point
// problem is solved by iterative reprojection-error minimization under
// a pinhole camera, yielding one rigid transform per face.
package headpose

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r2"
	"gocv.io/x/gocv"
)

// ErrFaceIndex reports a pose or landmark request for a face index the
// frame does not contain.
var ErrFaceIndex = errors.New("face index out of range")

// FaceDetector finds face bounding regions in a frame.
type FaceDetector interface {
	Detect(img gocv.Mat) ([]Region, error)
	Close() error
}

// LandmarkPredictor regresses the 68-point landmark set for one
// detected face.
type LandmarkPredictor interface {
	Predict(img gocv.Mat, region Region) (Landmarks, error)
	Close() error
}

// Region is a face bounding box in pixel coordinates.
type Region struct {
	X1, Y1 float64
	X2, Y2 float64
	Score  float64
}

// Width returns the box width.
func (r Region) Width() float64 { return r.X2 - r.X1 }

// Height returns the box height.
func (r Region) Height() float64 { return r.Y2 - r.Y1 }

// Area returns the box area.
func (r Region) Area() float64 { return r.Width() * r.Height() }

// Center returns the box midpoint.
func (r Region) Center() r2.Point {
	return r2.Point{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// Config holds estimator configuration.
type Config struct {
	// FocalLength is the camera focal length in pixels (fx = fy).
	FocalLength float64
	// Scheme maps head-model features to landmark indices.
	Scheme Scheme
	// InitialGuess seeds every pose solve. The default assumes a
	// frontal face roughly a meter from the lens; synthetic scenes at
	// other scales should bring their own seed.
	InitialGuess Guess
	// MaxIterations bounds the optimizer per solve.
	MaxIterations int
}

// DefaultConfig returns the standard configuration for the given focal
// length in pixels.
func DefaultConfig(focalLength float64) Config {
	return Config{
		FocalLength:   focalLength,
		Scheme:        DefaultScheme(),
		InitialGuess:  DefaultGuess(),
		MaxIterations: 100,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.FocalLength <= 0 {
		return fmt.Errorf("focal length must be positive, got %v", c.FocalLength)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max iterations must be positive, got %d", c.MaxIterations)
	}
	if err := c.Scheme.validate(); err != nil {
		return fmt.Errorf("landmark scheme: %w", err)
	}
	return nil
}

// Estimator turns camera frames into per-face head poses. It owns the
// camera intrinsics, whose principal point is latched from the first
// frame processed, and the detection collaborators.
type Estimator struct {
	cfg        Config
	camera     *CameraModel
	detector   FaceDetector
	landmarker LandmarkPredictor
}

// New creates an estimator. The detector and landmarker may be nil for
// callers that feed landmark sets directly through FrameFromLandmarks.
func New(cfg Config, detector FaceDetector, landmarker LandmarkPredictor) (*Estimator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Estimator{
		cfg:        cfg,
		camera:     NewCameraModel(cfg.FocalLength),
		detector:   detector,
		landmarker: landmarker,
	}, nil
}

// Camera returns the estimator's intrinsic model.
func (e *Estimator) Camera() *CameraModel { return e.camera }

// Update processes one frame: it latches the principal point on first
// use, detects faces, regresses each face's landmarks, and returns the
// frame result that pose and overlay calls consume. A frame with no
// faces is a valid, empty result, not an error.
func (e *Estimator) Update(img gocv.Mat) (*Frame, error) {
	if img.Empty() {
		return nil, errors.New("empty frame")
	}
	if e.detector == nil || e.landmarker == nil {
		return nil, errors.New("estimator has no detection stack; use FrameFromLandmarks")
	}
	e.camera.SetFrameSize(img.Cols(), img.Rows())

	regions, err := e.detector.Detect(img)
	if err != nil {
		return nil, fmt.Errorf("face detection failed: %w", err)
	}

	frame := &Frame{camera: e.camera, cfg: e.cfg}
	for _, region := range regions {
		landmarks, err := e.landmarker.Predict(img, region)
		if err != nil {
			return nil, fmt.Errorf("landmark prediction failed: %w", err)
		}
		frame.regions = append(frame.regions, region)
		frame.landmarks = append(frame.landmarks, landmarks)
	}
	return frame, nil
}

// FrameFromLandmarks builds a frame result directly from landmark
// sets, for callers running their own detection stack. width and
// height are the dimensions of the image the landmarks were measured
// on; they feed the same one-time principal-point latch as Update.
func (e *Estimator) FrameFromLandmarks(sets []Landmarks, width, height int) *Frame {
	e.camera.SetFrameSize(width, height)
	frame := &Frame{camera: e.camera, cfg: e.cfg}
	frame.landmarks = append(frame.landmarks, sets...)
	return frame
}

// Close releases the detection collaborators.
func (e *Estimator) Close() error {
	var errs []error

	if e.detector != nil {
		if err := e.detector.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if e.landmarker != nil {
		if err := e.landmarker.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("cleanup errors: %v", errs)
	}
	return nil
}
