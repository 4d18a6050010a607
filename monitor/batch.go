package monitor

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat"

	"github.com/safevision/ppekit/config"
)

// progressEvery is the frame interval for batch progress logging
const progressEvery = 10

var (
	imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}
	videoExts = map[string]bool{".mp4": true, ".avi": true, ".mov": true}
)

// RunBatch processes every supported image and video in the configured
// source directory, writing annotated copies to the output directory.  The
// session's tracker is reset between files so identities never leak across
// sources.
func RunBatch(cfg *config.Config, session *Session, log *logrus.Logger) error {

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	entries, err := os.ReadDir(cfg.SourceDir)

	if err != nil {
		return fmt.Errorf("error reading source directory: %w", err)
	}

	var files []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))

		if imageExts[ext] || videoExts[ext] {
			files = append(files, entry.Name())
		}
	}

	sort.Strings(files)

	if len(files) == 0 {
		log.WithField("dir", cfg.SourceDir).Warn("no supported files found")
		return nil
	}

	log.WithField("count", len(files)).Info("starting batch run")

	var failures int

	for i, name := range files {

		jobID := uuid.NewString()

		jobLog := log.WithFields(logrus.Fields{
			"job":  jobID,
			"file": name,
		})

		jobLog.Infof("processing %d/%d", i+1, len(files))

		inPath := filepath.Join(cfg.SourceDir, name)
		outPath := filepath.Join(cfg.OutputDir, "processed_"+name)

		session.Reset()
		start := time.Now()

		ext := strings.ToLower(filepath.Ext(name))

		var scores map[int]int
		var procErr error

		if imageExts[ext] {
			scores, procErr = processImage(session, inPath, outPath)
		} else {
			scores, procErr = processVideo(cfg, session, jobLog, inPath, outPath)
		}

		if procErr != nil {
			failures++
			jobLog.WithError(procErr).Error("processing failed")
			continue
		}

		jobLog.WithFields(logrus.Fields{
			"elapsed":         time.Since(start).Round(time.Millisecond),
			"persons":         len(scores),
			"mean_compliance": fmt.Sprintf("%.1f", meanScore(scores)),
		}).Info("processing complete")
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d files failed", failures, len(files))
	}

	return nil
}

// processImage runs a single image through the session and writes the
// annotated result
func processImage(session *Session, inPath, outPath string) (map[int]int, error) {

	img := gocv.IMRead(inPath, gocv.IMReadColor)
	defer img.Close()

	if img.Empty() {
		return nil, fmt.Errorf("unable to read image %s", inPath)
	}

	dst := gocv.NewMat()
	defer dst.Close()

	result, err := session.ProcessFrame(img, &dst)

	if err != nil {
		return nil, err
	}

	if ok := gocv.IMWrite(outPath, dst); !ok {
		return nil, fmt.Errorf("unable to write image %s", outPath)
	}

	return result.Scores, nil
}

// processVideo runs every frame of a video through the session and writes
// the annotated result at the source frame rate.  The returned scores are
// the final score seen per identity.
func processVideo(cfg *config.Config, session *Session, log *logrus.Entry,
	inPath, outPath string) (map[int]int, error) {

	capture, err := gocv.VideoCaptureFile(inPath)

	if err != nil {
		return nil, fmt.Errorf("error opening video %s: %w", inPath, err)
	}

	defer capture.Close()

	fps := capture.Get(gocv.VideoCaptureFPS)

	if fps <= 0 {
		fps = float64(cfg.TargetFPS)
	}

	writer, err := gocv.VideoWriterFile(outPath, "mp4v", fps,
		cfg.TargetWidth, cfg.TargetHeight, true)

	if err != nil {
		return nil, fmt.Errorf("error creating video writer: %w", err)
	}

	defer writer.Close()

	frame := gocv.NewMat()
	defer frame.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	finalScores := make(map[int]int)

	frameCount := 0
	start := time.Now()

	for {
		if ok := capture.Read(&frame); !ok {
			break
		}

		if frame.Empty() {
			continue
		}

		result, err := session.ProcessFrame(frame, &dst)

		if err != nil {
			return nil, err
		}

		for id, score := range result.Scores {
			finalScores[id] = score
		}

		if err := writer.Write(dst); err != nil {
			return nil, fmt.Errorf("error writing frame: %w", err)
		}

		frameCount++

		if frameCount%progressEvery == 0 {
			elapsed := time.Since(start).Seconds()
			log.WithFields(logrus.Fields{
				"frames": frameCount,
				"fps":    fmt.Sprintf("%.1f", float64(frameCount)/elapsed),
			}).Debug("batch progress")
		}
	}

	return finalScores, nil
}

// meanScore returns the mean of the final per-person scores, or 0 when
// nobody was seen
func meanScore(scores map[int]int) float64 {

	if len(scores) == 0 {
		return 0
	}

	vals := make([]float64, 0, len(scores))
	for _, score := range scores {
		vals = append(vals, float64(score))
	}

	return stat.Mean(vals, nil)
}
