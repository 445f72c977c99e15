// Package ui hosts the preview window for the demo binaries.
package ui

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"gocv.io/x/gocv"
)

var fpsColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}

// Window displays annotated frames and keeps a rolling FPS estimate.
type Window struct {
	window   *gocv.Window
	lastTick time.Time
	frames   int
	fps      float64
}

// NewWindow creates a preview window sized to the frame dimensions.
func NewWindow(name string, width, height int) *Window {
	window := gocv.NewWindow(name)
	window.ResizeWindow(width, height)
	window.MoveWindow(100, 100)
	return &Window{
		window:   window,
		lastTick: time.Now(),
	}
}

// Show draws the FPS counter onto the frame and displays it.
func (w *Window) Show(frame *gocv.Mat) {
	w.frames++
	now := time.Now()

	if elapsed := now.Sub(w.lastTick); elapsed >= time.Second {
		w.fps = float64(w.frames) / elapsed.Seconds()
		w.frames = 0
		w.lastTick = now
	}

	text := fmt.Sprintf("FPS: %.1f", w.fps)
	gocv.PutText(frame, text, image.Pt(10, 30),
		gocv.FontHersheyPlain, 2, fpsColor, 2)

	w.window.IMShow(*frame)
}

// WaitKey polls the event loop and returns the pressed key, or -1.
func (w *Window) WaitKey(delayMs int) int {
	return w.window.WaitKey(delayMs)
}

// Closed reports whether the user dismissed the window.
func (w *Window) Closed() bool {
	return !w.window.IsOpen()
}

// FPS returns the current frames-per-second estimate.
func (w *Window) FPS() float64 {
	return w.fps
}

// Close destroys the window.
func (w *Window) Close() error {
	if w.window != nil {
		return w.window.Close()
	}
	return nil
}
