package headpose

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"github.com/ros-o/gazr/internal/log"
)

// CameraModel is a skew-free pinhole model with a single focal length
// for both axes and no lens distortion. The principal point is assumed
// to sit at the image center; it is latched from the dimensions of the
// first frame seen and kept for the lifetime of the model, even when
// later frames differ.
type CameraModel struct {
	focal       float64
	cx, cy      float64
	initialized bool
}

// NewCameraModel returns a model with the given focal length in
// pixels. The principal point stays unset until the first
// SetFrameSize call.
func NewCameraModel(focalLength float64) *CameraModel {
	return &CameraModel{focal: focalLength}
}

// SetFrameSize latches the principal point at the center of a
// width x height image. Only the first call has any effect.
func (c *CameraModel) SetFrameSize(width, height int) {
	if c.initialized {
		return
	}
	c.cx = float64(width / 2)
	c.cy = float64(height / 2)
	c.initialized = true
	log.Debug("camera principal point set", "cx", c.cx, "cy", c.cy)
}

// Initialized reports whether the principal point has been latched.
func (c *CameraModel) Initialized() bool { return c.initialized }

// FocalLength returns the focal length in pixels.
func (c *CameraModel) FocalLength() float64 { return c.focal }

// PrincipalPoint returns the latched principal point. It is the zero
// point before the first SetFrameSize call.
func (c *CameraModel) PrincipalPoint() r2.Point {
	return r2.Point{X: c.cx, Y: c.cy}
}

// Matrix returns the 3x3 intrinsic matrix K.
func (c *CameraModel) Matrix() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		c.focal, 0, c.cx,
		0, c.focal, c.cy,
		0, 0, 1,
	})
}

// Project maps a point in some reference frame through the rigid
// transform (rot, trans) into the camera frame and then onto the image
// plane, returning pixel coordinates. The point and the translation
// must share the same length unit. Points at or behind the camera
// plane project to unusable coordinates; callers feed poses that keep
// the subject in front of the lens.
func (c *CameraModel) Project(p r3.Vector, rot mat.Matrix, trans r3.Vector) r2.Point {
	q := rotate(rot, p).Add(trans)
	return r2.Point{
		X: c.focal*q.X/q.Z + c.cx,
		Y: c.focal*q.Y/q.Z + c.cy,
	}
}
