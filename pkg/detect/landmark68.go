package detect

import (
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/golang/geo/r2"
	ort "github.com/yalue/onnxruntime_go"
	"gocv.io/x/gocv"

	"github.com/ros-o/gazr/internal/inference"
	"github.com/ros-o/gazr/pkg/headpose"
)

// Landmark68 regresses 68 facial landmarks with a PFLD-style ONNX
// model. The model takes a 112x112 RGB crop normalized to roughly
// [-1,1] and emits 136 floats, each in [0,1] relative to the crop.
type Landmark68 struct {
	mu        sync.Mutex
	session   *inference.Session
	inputSize int
	inputMean float64
	inputStd  float64
}

// NewLandmark68 creates a landmark predictor from an ONNX model.
func NewLandmark68(modelPath string) (*Landmark68, error) {
	inputNames := []string{"input"}
	outputNames := []string{"output"}

	session, err := inference.NewSession(modelPath, inputNames, outputNames)
	if err != nil {
		return nil, fmt.Errorf("failed to create landmark session: %w", err)
	}

	return &Landmark68{
		session:   session,
		inputSize: 112,
		inputMean: 127.5,
		inputStd:  128.0,
	}, nil
}

// Predict extracts 68 landmarks for a detected face region.
func (l *Landmark68) Predict(img gocv.Mat, region headpose.Region) (headpose.Landmarks, error) {
	var landmarks headpose.Landmarks

	// Square crop with 1.5x expansion around the region center.
	maxDim := math.Max(region.Width(), region.Height())
	if maxDim <= 0 {
		return landmarks, fmt.Errorf("face region %v has no area", region)
	}
	center := region.Center()
	scale := float64(l.inputSize) / (maxDim * 1.5)

	M := l.cropTransform(center, scale)

	aligned := gocv.NewMat()
	defer aligned.Close()
	gocv.WarpAffine(img, &aligned, M, image.Pt(l.inputSize, l.inputSize))
	M.Close()

	rgb := gocv.NewMat()
	gocv.CvtColor(aligned, &rgb, gocv.ColorBGRToRGB)
	defer rgb.Close()

	floatMat := gocv.NewMat()
	rgb.ConvertTo(&floatMat, gocv.MatTypeCV32FC3)
	defer floatMat.Close()

	// Normalize: (x - mean) / std
	gocv.AddWeighted(floatMat, 1.0/l.inputStd, floatMat, 0, -l.inputMean/l.inputStd, &floatMat)

	// HWC to NCHW blob
	blob := gocv.BlobFromImage(floatMat, 1.0, image.Pt(l.inputSize, l.inputSize),
		gocv.NewScalar(0, 0, 0, 0), false, false)
	defer blob.Close()

	floatData := bytesToFloat32(blob.ToBytes())

	inputTensor, err := ort.NewTensor(
		ort.NewShape(1, 3, int64(l.inputSize), int64(l.inputSize)),
		floatData,
	)
	if err != nil {
		return landmarks, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer inputTensor.Destroy()

	outputTensor, err := inference.CreateEmptyTensor[float32]([]int64{1, 2 * headpose.LandmarkCount})
	if err != nil {
		return landmarks, fmt.Errorf("failed to create output tensor: %w", err)
	}
	defer outputTensor.Destroy()

	l.mu.Lock()
	err = l.session.Run([]ort.Value{inputTensor}, []ort.Value{outputTensor})
	l.mu.Unlock()
	if err != nil {
		return landmarks, fmt.Errorf("landmark inference failed: %w", err)
	}

	return l.postprocess(outputTensor.GetData(), center, scale), nil
}

// cropTransform builds the affine matrix mapping the expanded face
// square onto the model input.
func (l *Landmark68) cropTransform(center r2.Point, scale float64) gocv.Mat {
	M := gocv.NewMatWithSize(2, 3, gocv.MatTypeCV64F)

	M.SetDoubleAt(0, 0, scale)
	M.SetDoubleAt(0, 1, 0)
	M.SetDoubleAt(0, 2, float64(l.inputSize)/2-center.X*scale)
	M.SetDoubleAt(1, 0, 0)
	M.SetDoubleAt(1, 1, scale)
	M.SetDoubleAt(1, 2, float64(l.inputSize)/2-center.Y*scale)

	return M
}

// postprocess maps model output back to original image coordinates.
func (l *Landmark68) postprocess(output []float32, center r2.Point, scale float64) headpose.Landmarks {
	var landmarks headpose.Landmarks

	size := float64(l.inputSize)
	half := size / 2

	for i := 0; i < headpose.LandmarkCount; i++ {
		// Model output is in [0,1] relative to the crop.
		x := float64(output[i*2]) * size
		y := float64(output[i*2+1]) * size

		landmarks[i] = r2.Point{
			X: (x-half)/scale + center.X,
			Y: (y-half)/scale + center.Y,
		}
	}

	return landmarks
}

// Close releases predictor resources.
func (l *Landmark68) Close() error {
	return l.session.Destroy()
}

// bytesToFloat32 reinterprets a little-endian byte buffer as float32s.
func bytesToFloat32(data []byte) []float32 {
	floats := make([]float32, len(data)/4)
	for i := range floats {
		bits := uint32(data[i*4]) | uint32(data[i*4+1])<<8 |
			uint32(data[i*4+2])<<16 | uint32(data[i*4+3])<<24
		floats[i] = math.Float32frombits(bits)
	}
	return floats
}
