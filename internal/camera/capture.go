// Package camera opens video devices for the demo binaries and
// reports the resolution the driver actually granted, which the pose
// estimator needs to place its principal point.
package camera

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// DefaultWidth and DefaultHeight are requested when the caller does
// not pick a resolution. Webcam-class optics at 640x480 roughly match
// a 500px focal length, the estimator's default.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// Capture wraps a video device for frame-by-frame reads.
type Capture struct {
	mu     sync.Mutex
	webcam *gocv.VideoCapture
	device int
	width  int
	height int
}

// NewCapture opens the numbered device and requests the given
// resolution. Zero width or height selects the defaults. The device
// may grant a different size; Size reports what it granted.
func NewCapture(device, width, height int) (*Capture, error) {
	if width <= 0 || height <= 0 {
		width, height = DefaultWidth, DefaultHeight
	}

	webcam, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("failed to open camera %d: %w", device, err)
	}

	webcam.Set(gocv.VideoCaptureFrameWidth, float64(width))
	webcam.Set(gocv.VideoCaptureFrameHeight, float64(height))

	return &Capture{
		webcam: webcam,
		device: device,
		width:  int(webcam.Get(gocv.VideoCaptureFrameWidth)),
		height: int(webcam.Get(gocv.VideoCaptureFrameHeight)),
	}, nil
}

// Read captures the next frame into the provided Mat.
func (c *Capture) Read(frame *gocv.Mat) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.webcam == nil {
		return false
	}
	return c.webcam.Read(frame)
}

// Size returns the granted frame dimensions.
func (c *Capture) Size() (width, height int) {
	return c.width, c.height
}

// Close releases the device. Safe to call twice.
func (c *Capture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.webcam == nil {
		return nil
	}
	err := c.webcam.Close()
	c.webcam = nil
	return err
}
