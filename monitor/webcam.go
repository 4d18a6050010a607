package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"github.com/safevision/ppekit/config"
	"github.com/safevision/ppekit/server"
)

// RunWebcam captures frames from the configured camera at the target frame
// rate, processes each through the session and publishes the annotated JPEG
// to the stream for HTTP clients.  It returns when the context is cancelled
// or the capture device fails.
func RunWebcam(ctx context.Context, cfg *config.Config, session *Session,
	stream *server.Stream, log *logrus.Logger) error {

	webcam, err := gocv.OpenVideoCapture(cfg.CameraID)

	if err != nil {
		return fmt.Errorf("error opening capture device %d: %w", cfg.CameraID, err)
	}

	defer webcam.Close()

	webcam.Set(gocv.VideoCaptureFrameWidth, float64(cfg.TargetWidth))
	webcam.Set(gocv.VideoCaptureFrameHeight, float64(cfg.TargetHeight))
	webcam.Set(gocv.VideoCaptureFPS, float64(cfg.TargetFPS))

	frame := gocv.NewMat()
	defer frame.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	interval := time.Second / time.Duration(cfg.TargetFPS)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.WithFields(logrus.Fields{
		"camera": cfg.CameraID,
		"fps":    cfg.TargetFPS,
	}).Info("live monitoring started")

	for {
		select {
		case <-ctx.Done():
			log.Info("live monitoring stopped")
			return nil

		case <-ticker.C:
			if ok := webcam.Read(&frame); !ok {
				return fmt.Errorf("unable to read from capture device %d", cfg.CameraID)
			}

			if frame.Empty() {
				continue
			}

			if _, err := session.ProcessFrame(frame, &dst); err != nil {
				return fmt.Errorf("error processing frame: %w", err)
			}

			buf, err := gocv.IMEncode(".jpg", dst)

			if err != nil {
				return fmt.Errorf("error encoding frame: %w", err)
			}

			stream.Publish(buf.GetBytes())
			buf.Close()
		}
	}
}
