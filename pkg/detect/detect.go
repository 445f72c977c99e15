// Package detect provides the face detection and landmark regression
// backends feeding the head-pose estimator: YuNet through OpenCV's
// FaceDetectorYN, a pure-Go pigo cascade for builds without a detector
// model, and a PFLD-style 68-point ONNX landmark regressor.
package detect

import "fmt"

// Config holds settings shared by the detection backends.
type Config struct {
	// ModelPath is the YuNet ONNX model for the OpenCV backend.
	ModelPath string
	// CascadePath is the binary cascade for the pure-Go backend.
	CascadePath string

	// ScoreThreshold drops detections below this confidence.
	ScoreThreshold float32
	// NMSThreshold is the IoU above which overlapping boxes collapse.
	NMSThreshold float32
	// InputWidth and InputHeight size the YuNet input before the first
	// frame arrives; detection itself always runs at frame size.
	InputWidth  int
	InputHeight int

	// MinFaceSize and MaxFaceSize bound the cascade's scale pyramid in
	// pixels. MaxFaceSize zero means the frame width.
	MinFaceSize int
	MaxFaceSize int
	// ShiftFactor and ScaleFactor control the cascade's window stride
	// and pyramid growth.
	ShiftFactor float64
	ScaleFactor float64
	// QualityThreshold drops cascade detections below this score.
	QualityThreshold float32
}

// DefaultConfig returns settings that work for webcam-distance faces.
func DefaultConfig() Config {
	return Config{
		ScoreThreshold:   0.5,
		NMSThreshold:     0.3,
		InputWidth:       640,
		InputHeight:      480,
		MinFaceSize:      60,
		MaxFaceSize:      0,
		ShiftFactor:      0.1,
		ScaleFactor:      1.1,
		QualityThreshold: 5.0,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.ScoreThreshold < 0 || c.ScoreThreshold > 1 {
		return fmt.Errorf("score threshold %v outside [0,1]", c.ScoreThreshold)
	}
	if c.NMSThreshold < 0 || c.NMSThreshold > 1 {
		return fmt.Errorf("nms threshold %v outside [0,1]", c.NMSThreshold)
	}
	if c.MinFaceSize < 0 {
		return fmt.Errorf("min face size %d negative", c.MinFaceSize)
	}
	if c.ScaleFactor <= 1 {
		return fmt.Errorf("scale factor %v must exceed 1", c.ScaleFactor)
	}
	return nil
}
