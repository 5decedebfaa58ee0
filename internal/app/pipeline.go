package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/rpsmood/internal/capture"
)

// ErrNoCamera is returned by Run when the App has no camera or detector.
var ErrNoCamera = errors.New("app has no camera or detector")

// Run opens the camera and runs the loop until ctx is done or a quit command
// arrives. Frame and detection failures are logged and the tick is skipped.
func (a *App) Run(ctx context.Context) error {
	cam, det := a.config.Camera, a.config.Detector
	if cam == nil || det == nil {
		return ErrNoCamera
	}

	if err := cam.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	defer func() {
		if err := cam.Close(); err != nil {
			a.log.WithError(err).Warn("error closing camera")
		}
		if err := det.Close(); err != nil {
			a.log.WithError(err).Warn("error closing detector")
		}
		a.log.Info("game loop stopped")
	}()

	fps := cam.FPS()
	if fps <= 0 {
		fps = capture.DefaultFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	a.log.WithField("fps", fps).Info("game loop started")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if a.drainCommands() {
				a.log.Info("quit requested")
				return nil
			}
			a.runOnce()
		}
	}
}

// runOnce captures, detects and ticks a single frame.
func (a *App) runOnce() {
	frame, err := a.config.Camera.ReadFrame()
	if err != nil {
		a.log.WithError(err).Warn("error reading frame")
		return
	}
	defer frame.Close()

	det, err := a.config.Detector.Detect(frame)
	if err != nil {
		a.log.WithError(err).Warn("error detecting landmarks")
		return
	}

	if a.config.Stream {
		a.encodeFrame(frame)
	}

	a.tick(det, a.now())
}

func (a *App) encodeFrame(frame *gocv.Mat) {
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, *frame)
	if err != nil {
		a.log.WithError(err).Debug("error encoding frame")
		return
	}
	defer buf.Close()

	jpeg := append([]byte(nil), buf.GetBytes()...)
	a.mu.Lock()
	a.jpeg = jpeg
	a.mu.Unlock()
}
