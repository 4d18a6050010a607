// Package monitor drives video sources through the compliance pipeline: it
// owns the per-stream session state, the batch directory processor and the
// live capture loop.
package monitor

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"github.com/safevision/ppekit"
	"github.com/safevision/ppekit/config"
	"github.com/safevision/ppekit/detect"
	"github.com/safevision/ppekit/metrics"
	"github.com/safevision/ppekit/ppe"
	"github.com/safevision/ppekit/preprocess"
	"github.com/safevision/ppekit/render"
	"github.com/safevision/ppekit/server"
	"github.com/safevision/ppekit/tracker"
)

// trailLength is the number of centroid points kept for trail rendering
const trailLength = 32

// Detector produces detections from a video frame.  The yolo package
// provides the ONNX implementation; tests substitute their own.
type Detector interface {
	Detect(img gocv.Mat) ([]detect.Detection, error)
}

// Session drives one video stream through detection, tracking, assignment,
// scoring and rendering.  A session wraps exactly one pipeline instance, so
// concurrent streams need separate sessions.
type Session struct {
	cfg   *config.Config
	det   Detector
	pipe  *ppekit.Pipeline
	trail *tracker.Trail
	met   *metrics.Manager
	log   *logrus.Logger
	font  render.Font

	// resizer normalizes source frames, rebuilt when dimensions change
	resizer *preprocess.Resizer
	srcW    int
	srcH    int

	// last frame's result for status snapshots
	mu         sync.Mutex
	frameCount uint64
	last       ppekit.FrameResult
}

// NewSession builds a session for a single stream from the given
// configuration, detector backend and metrics manager
func NewSession(cfg *config.Config, det Detector, met *metrics.Manager,
	log *logrus.Logger) *Session {

	if cfg.IoUThreshold == 0 {
		log.Warn("iou_threshold is 0: any positive overlap will attribute " +
			"equipment to the closest person")
	}

	return &Session{
		cfg:   cfg,
		det:   det,
		pipe:  ppekit.NewPipeline(cfg.Weights, cfg.IoUThreshold, cfg.ProximityPx, cfg.StaleAfter()),
		trail: tracker.NewTrail(trailLength),
		met:   met,
		log:   log,
		font:  render.DefaultFont(),
	}
}

// Close frees resources held by the session
func (s *Session) Close() error {
	if s.resizer != nil {
		return s.resizer.Close()
	}
	return nil
}

// Reset clears cross-frame state so the session can process a new source
func (s *Session) Reset() {
	s.pipe.Reset()
	s.trail.Reset()
}

// ProcessFrame normalizes the source frame into dst, runs detection and the
// compliance pipeline, and draws the annotated results onto dst
func (s *Session) ProcessFrame(src gocv.Mat, dst *gocv.Mat) (ppekit.FrameResult, error) {

	if src.Empty() {
		return ppekit.FrameResult{}, fmt.Errorf("source frame is empty")
	}

	start := time.Now()

	if s.resizer == nil || src.Cols() != s.srcW || src.Rows() != s.srcH {
		if s.resizer != nil {
			s.resizer.Close()
		}
		s.resizer = preprocess.NewResizer(src.Cols(), src.Rows(),
			s.cfg.TargetWidth, s.cfg.TargetHeight)
		s.srcW = src.Cols()
		s.srcH = src.Rows()
	}

	s.resizer.Normalize(src, dst)

	dets, err := s.det.Detect(*dst)

	if err != nil {
		return ppekit.FrameResult{}, fmt.Errorf("error detecting objects: %w", err)
	}

	result := s.pipe.Process(dets)

	for _, person := range result.Persons {
		s.trail.Add(person)
	}

	// draw equipment first so person panels stay on top
	render.ItemBoxes(dst, result.Items, s.font, 2)
	render.Trails(dst, result.Persons, s.trail, render.DefaultTrailStyle())
	render.PersonBoxes(dst, result.Persons, result.Assigned, result.Scores,
		s.cfg.ComplianceThreshold, s.font, 2)

	s.met.ObserveFrame(time.Since(start))
	s.met.SetLiveTracks(s.pipe.LiveTracks())

	for _, person := range result.Persons {
		s.met.RecordVerdict(ppe.Compliant(result.Scores[person.ID],
			s.cfg.ComplianceThreshold))
	}

	s.mu.Lock()
	s.frameCount++
	s.last = result
	s.mu.Unlock()

	return result, nil
}

// Status returns a snapshot of the most recent frame's tracks and scores
func (s *Session) Status() server.Status {

	s.mu.Lock()
	frame := s.frameCount
	last := s.last
	s.mu.Unlock()

	status := server.Status{
		Frame:   frame,
		Persons: make([]server.PersonStatus, 0, len(last.Persons)),
	}

	for _, person := range last.Persons {

		score := last.Scores[person.ID]

		items := make([]string, 0, len(last.Assigned[person.ID]))
		for _, item := range last.Assigned[person.ID] {
			items = append(items, item.Label)
		}

		status.Persons = append(status.Persons, server.PersonStatus{
			ID:        person.ID,
			Score:     score,
			Compliant: ppe.Compliant(score, s.cfg.ComplianceThreshold),
			Items:     items,
		})
	}

	return status
}
