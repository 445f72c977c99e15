package detect

import (
	"fmt"
	"image"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/ros-o/gazr/pkg/headpose"
)

// YuNet detects faces with OpenCV's FaceDetectorYN. Detection always
// runs at the incoming frame's resolution; the configured input size
// only seeds the detector before the first frame.
type YuNet struct {
	mu       sync.Mutex
	detector gocv.FaceDetectorYN
	cfg      Config
	width    int
	height   int
}

// NewYuNet loads a YuNet ONNX model from cfg.ModelPath.
func NewYuNet(cfg Config) (*YuNet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid detector config: %w", err)
	}
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("face detection model not found: %w", err)
	}

	detector := gocv.NewFaceDetectorYNWithParams(
		cfg.ModelPath,
		"",
		image.Pt(cfg.InputWidth, cfg.InputHeight),
		cfg.ScoreThreshold,
		cfg.NMSThreshold,
		5000,
		int(gocv.NetBackendDefault),
		int(gocv.NetTargetCPU),
	)

	return &YuNet{
		detector: detector,
		cfg:      cfg,
		width:    cfg.InputWidth,
		height:   cfg.InputHeight,
	}, nil
}

// Detect returns face regions in pixel coordinates, sorted as the
// detector emits them (descending score).
func (y *YuNet) Detect(img gocv.Mat) ([]headpose.Region, error) {
	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	y.mu.Lock()
	defer y.mu.Unlock()

	if img.Cols() != y.width || img.Rows() != y.height {
		y.width = img.Cols()
		y.height = img.Rows()
		y.detector.SetInputSize(image.Pt(y.width, y.height))
	}

	faces := gocv.NewMat()
	defer faces.Close()

	y.detector.Detect(img, &faces)

	// Each row: x, y, w, h, ten landmark coordinates, score.
	regions := make([]headpose.Region, 0, faces.Rows())
	for i := 0; i < faces.Rows(); i++ {
		x := float64(faces.GetFloatAt(i, 0))
		yTop := float64(faces.GetFloatAt(i, 1))
		w := float64(faces.GetFloatAt(i, 2))
		h := float64(faces.GetFloatAt(i, 3))
		score := float64(faces.GetFloatAt(i, 14))

		regions = append(regions, headpose.Region{
			X1:    x,
			Y1:    yTop,
			X2:    x + w,
			Y2:    yTop + h,
			Score: score,
		})
	}
	return regions, nil
}

// Close releases the underlying detector.
func (y *YuNet) Close() error {
	y.mu.Lock()
	defer y.mu.Unlock()
	y.detector.Close()
	return nil
}
