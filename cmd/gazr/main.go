package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"gocv.io/x/gocv"

	"github.com/ros-o/gazr/internal/camera"
	"github.com/ros-o/gazr/internal/inference"
	"github.com/ros-o/gazr/internal/log"
	"github.com/ros-o/gazr/internal/ui"
	"github.com/ros-o/gazr/pkg/detect"
	"github.com/ros-o/gazr/pkg/headpose"
)

func init() {
	// Lock the main goroutine to the main OS thread.
	// Required on macOS for OpenCV's highgui (window creation).
	runtime.LockOSThread()
}

type Config struct {
	CameraIndex  int
	Width        int
	Height       int
	FocalLength  float64
	Backend      string
	ModelPath    string
	CascadePath  string
	LandmarkPath string
	OrtLibPath   string
	Preview      bool
	Debug        bool
}

func main() {
	config := parseFlags()

	if err := run(config); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() Config {
	config := Config{}

	flag.IntVar(&config.CameraIndex, "camera", 0, "Camera device index")
	flag.IntVar(&config.CameraIndex, "c", 0, "Camera device index (shorthand)")
	flag.IntVar(&config.Width, "width", camera.DefaultWidth, "Requested capture width")
	flag.IntVar(&config.Height, "height", camera.DefaultHeight, "Requested capture height")
	flag.Float64Var(&config.FocalLength, "focal", 500, "Camera focal length in pixels")
	flag.Float64Var(&config.FocalLength, "f", 500, "Camera focal length (shorthand)")
	flag.StringVar(&config.Backend, "backend", "yunet", "Face detection backend: yunet or pigo")
	flag.StringVar(&config.Backend, "b", "yunet", "Face detection backend (shorthand)")
	flag.StringVar(&config.ModelPath, "model", "models/face_detection_yunet_2023mar.onnx", "YuNet detection model")
	flag.StringVar(&config.ModelPath, "m", "models/face_detection_yunet_2023mar.onnx", "YuNet detection model (shorthand)")
	flag.StringVar(&config.CascadePath, "cascade", "models/facefinder", "Pigo cascade file")
	flag.StringVar(&config.LandmarkPath, "landmarks", "models/pfld_68.onnx", "68-point landmark model")
	flag.StringVar(&config.LandmarkPath, "l", "models/pfld_68.onnx", "68-point landmark model (shorthand)")
	flag.StringVar(&config.OrtLibPath, "ort-lib", "", "ONNX Runtime shared library (overrides GAZR_ORT_LIB)")
	flag.BoolVar(&config.Preview, "preview", true, "Show preview window")
	flag.BoolVar(&config.Preview, "p", true, "Show preview window (shorthand)")
	flag.BoolVar(&config.Debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&config.Debug, "d", false, "Enable debug logging (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "gazr - Real-time head pose estimation\n\n")
		fmt.Fprintf(os.Stderr, "Usage: gazr [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  gazr\n")
		fmt.Fprintf(os.Stderr, "  gazr --focal 650 --camera 1\n")
		fmt.Fprintf(os.Stderr, "  gazr --backend pigo --cascade models/facefinder\n")
		fmt.Fprintf(os.Stderr, "\nSet GAZR_ORT_LIB to point at the ONNX Runtime shared library.\n")
	}

	flag.Parse()
	return config
}

func run(config Config) error {
	level := "info"
	if config.Debug {
		level = "debug"
	}
	log.Init(level)

	if config.OrtLibPath != "" {
		os.Setenv("GAZR_ORT_LIB", config.OrtLibPath)
	}
	if err := inference.Initialize(); err != nil {
		return err
	}
	defer inference.Shutdown()

	detectorConfig := detect.DefaultConfig()
	detectorConfig.ModelPath = config.ModelPath
	detectorConfig.CascadePath = config.CascadePath
	detectorConfig.InputWidth = config.Width
	detectorConfig.InputHeight = config.Height

	var detector headpose.FaceDetector
	var err error
	switch strings.ToLower(config.Backend) {
	case "yunet":
		detector, err = detect.NewYuNet(detectorConfig)
	case "pigo":
		detector, err = detect.NewPigo(detectorConfig)
	default:
		return fmt.Errorf("invalid backend: %s (use 'yunet' or 'pigo')", config.Backend)
	}
	if err != nil {
		return fmt.Errorf("failed to create detector: %w", err)
	}

	landmarker, err := detect.NewLandmark68(config.LandmarkPath)
	if err != nil {
		detector.Close()
		return fmt.Errorf("failed to create landmark predictor: %w", err)
	}

	estimator, err := headpose.New(headpose.DefaultConfig(config.FocalLength), detector, landmarker)
	if err != nil {
		return fmt.Errorf("failed to create estimator: %w", err)
	}
	defer estimator.Close()

	cam, err := camera.NewCapture(config.CameraIndex, config.Width, config.Height)
	if err != nil {
		return fmt.Errorf("failed to open camera: %w", err)
	}
	defer cam.Close()

	width, height := cam.Size()
	log.Info("camera opened", "device", config.CameraIndex, "width", width, "height", height)

	var window *ui.Window
	if config.Preview {
		window = ui.NewWindow("gazr", width, height)
		defer window.Close()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	frame := gocv.NewMat()
	defer frame.Close()

	var frames int
	var trackTotal, poseTotal time.Duration
	defer func() {
		if frames == 0 {
			return
		}
		fmt.Printf("\nProcessed %d frames: track %.1fms avg, pose %.1fms avg\n",
			frames,
			float64(trackTotal.Milliseconds())/float64(frames),
			float64(poseTotal.Milliseconds())/float64(frames))
	}()

	fmt.Println("Running... Press 'q' to quit")

	for {
		select {
		case <-sigChan:
			fmt.Println("\nShutting down...")
			return nil
		default:
		}

		if !cam.Read(&frame) {
			continue
		}
		if frame.Empty() {
			continue
		}

		trackStart := time.Now()
		result, err := estimator.Update(frame)
		if err != nil {
			log.Warn("frame skipped", "error", err)
			continue
		}
		trackTime := time.Since(trackStart)

		poseStart := time.Now()
		poses, err := result.Poses()
		if err != nil {
			log.Warn("pose estimation failed", "error", err)
			poses = nil
		}
		poseTime := time.Since(poseStart)

		frames++
		trackTotal += trackTime
		poseTotal += poseTime

		for i, pose := range poses {
			log.Debug("head pose", "face", i, "position", pose.String())
		}

		if window != nil {
			annotated := result.DrawOverlay(frame, poses)
			window.Show(&annotated)
			annotated.Close()

			key := window.WaitKey(10)
			if key == 'q' || key == 27 {
				fmt.Println("\nQuitting...")
				return nil
			}
			if window.Closed() {
				return nil
			}
		} else {
			for i, pose := range poses {
				fmt.Printf("face %d: %s\n", i, pose)
			}
		}

		log.Debug("frame processed",
			"faces", result.Faces(),
			"track_ms", trackTime.Milliseconds(),
			"pose_ms", poseTime.Milliseconds())
	}
}
