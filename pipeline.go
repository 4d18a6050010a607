package ppekit

import (
	"time"

	"github.com/safevision/ppekit/detect"
	"github.com/safevision/ppekit/ppe"
	"github.com/safevision/ppekit/tracker"
)

// FrameResult holds the outcome of processing one frame's detections.  All
// fields are frame-scoped plain data with no references back into image
// buffers.
type FrameResult struct {
	// Persons are the frame's person detections with persistent IDs
	Persons []tracker.Person
	// Items are the frame's equipment detections, unmodified
	Items []detect.Detection
	// Assigned maps track IDs to the equipment worn by that person
	Assigned ppe.Assignment
	// Scores maps track IDs to a compliance score in [0,100]
	Scores ppe.ScoreMap
}

// Pipeline runs the per-frame sequence of splitting raw detections into
// persons and equipment, tracking person identities, assigning equipment to
// persons and scoring compliance.
//
// The embedded tracker carries state across frames, so one Pipeline serves
// exactly one video stream.  Concurrent streams each need their own
// instance; the pipeline performs no cross-instance synchronization.
type Pipeline struct {
	tracker  *tracker.CentroidTracker
	assigner *ppe.Assigner
	scorer   *ppe.Scorer
	weights  map[string]int
}

// NewPipeline initializes a pipeline for a single video stream.  weights is
// the per-class score table which doubles as the equipment vocabulary,
// iouThresh the minimum overlap for equipment assignment, proximityPx the
// tracker matching radius and staleAfter the track staleness window.
func NewPipeline(weights map[string]int, iouThresh float32, proximityPx float64,
	staleAfter time.Duration) *Pipeline {

	w := make(map[string]int, len(weights))
	for label, weight := range weights {
		w[label] = weight
	}

	return &Pipeline{
		tracker:  tracker.NewCentroidTracker(proximityPx, staleAfter),
		assigner: ppe.NewAssigner(iouThresh),
		scorer:   ppe.NewScorer(w),
		weights:  w,
	}
}

// Process runs one frame's detections through the pipeline.  Detections with
// labels outside the configured vocabulary are ignored.  Process never fails
// on well-typed input; empty input yields an empty result.
func (p *Pipeline) Process(dets []detect.Detection) FrameResult {

	persons, items := detect.Split(dets, p.weights)

	tracked := p.tracker.Update(persons)
	assigned := p.assigner.Assign(tracked, items)
	scores := p.scorer.Score(tracked, assigned)

	return FrameResult{
		Persons:  tracked,
		Items:    items,
		Assigned: assigned,
		Scores:   scores,
	}
}

// Reset clears the tracker's live set, for reuse of a pipeline on a new
// stream.  Track IDs are not reused across a Reset.
func (p *Pipeline) Reset() {
	p.tracker.Reset()
}

// LiveTracks returns the number of identities currently tracked
func (p *Pipeline) LiveTracks() int {
	return p.tracker.Len()
}
