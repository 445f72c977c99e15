package detect

import (
	"fmt"
	"os"
	"sync"

	pigo "github.com/esimov/pigo/core"
	"gocv.io/x/gocv"

	"github.com/ros-o/gazr/pkg/headpose"
)

// Pigo detects faces with a pure-Go pixel intensity comparison
// cascade. It needs no OpenCV model file, which makes it the fallback
// backend on machines without a YuNet download.
type Pigo struct {
	mu         sync.Mutex
	classifier *pigo.Pigo
	cfg        Config
}

// NewPigo unpacks a binary cascade from cfg.CascadePath.
func NewPigo(cfg Config) (*Pigo, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid detector config: %w", err)
	}
	cascade, err := os.ReadFile(cfg.CascadePath)
	if err != nil {
		return nil, fmt.Errorf("reading cascade: %w", err)
	}

	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("unpacking cascade: %w", err)
	}

	return &Pigo{classifier: classifier, cfg: cfg}, nil
}

// Detect runs the cascade over the whole frame and returns clustered
// face regions in pixel coordinates.
func (p *Pigo) Detect(img gocv.Mat) ([]headpose.Region, error) {
	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	src, err := img.ToImage()
	if err != nil {
		return nil, fmt.Errorf("converting frame: %w", err)
	}
	nrgba := pigo.ImgToNRGBA(src)
	pixels := pigo.RgbToGrayscale(nrgba)

	cols, rows := img.Cols(), img.Rows()
	maxSize := p.cfg.MaxFaceSize
	if maxSize == 0 {
		maxSize = cols
	}

	params := pigo.CascadeParams{
		MinSize:     p.cfg.MinFaceSize,
		MaxSize:     maxSize,
		ShiftFactor: p.cfg.ShiftFactor,
		ScaleFactor: p.cfg.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pixels,
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	p.mu.Lock()
	dets := p.classifier.RunCascade(params, 0.0)
	dets = p.classifier.ClusterDetections(dets, 0.2)
	p.mu.Unlock()

	regions := make([]headpose.Region, 0, len(dets))
	for _, det := range dets {
		if det.Q < p.cfg.QualityThreshold {
			continue
		}
		half := float64(det.Scale) / 2
		regions = append(regions, headpose.Region{
			X1:    float64(det.Col) - half,
			Y1:    float64(det.Row) - half,
			X2:    float64(det.Col) + half,
			Y2:    float64(det.Row) + half,
			Score: float64(det.Q),
		})
	}
	return nms(regions, float64(p.cfg.NMSThreshold)), nil
}

// Close implements the detector interface; the cascade holds no
// native resources.
func (p *Pigo) Close() error {
	return nil
}
