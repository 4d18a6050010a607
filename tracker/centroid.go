package tracker

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/safevision/ppekit/detect"
)

// trackState is the per-ID record kept between frames.  It is owned
// exclusively by one CentroidTracker and removed once stale.
type trackState struct {
	// centroid is the last known center point of the person's box
	centroid r2.Vec
	// lastSeen is the time the track was last matched to a detection
	lastSeen time.Time
}

// CentroidTracker assigns persistent IDs to person detections across frames
// by nearest-neighbor matching on bounding box centroids.  A track that is
// not re-matched within the staleness window is removed from the live set
// and its ID is retired.
//
// A tracker instance carries the only cross-frame state in the pipeline, so
// each video stream must use its own instance.  Sharing one tracker across
// independent streams corrupts identity continuity.
type CentroidTracker struct {
	// maxDist is the matching radius in pixels
	maxDist float64
	// staleAfter is the staleness window for purging unmatched tracks
	staleAfter time.Duration
	// idCount is the counter for assigning unique track IDs
	idCount int
	// tracks is the live track table keyed by track ID
	tracks map[int]*trackState
	// now returns the current time, replaceable in tests
	now func() time.Time
}

// NewCentroidTracker initializes and returns a new CentroidTracker.  maxDist
// is the matching radius in pixels and staleAfter the window after which an
// unmatched track is forgotten.
func NewCentroidTracker(maxDist float64, staleAfter time.Duration) *CentroidTracker {
	return &CentroidTracker{
		maxDist:    maxDist,
		staleAfter: staleAfter,
		tracks:     make(map[int]*trackState),
		now:        time.Now,
	}
}

// Reset clears the track table.  The ID counter is not reset, so IDs minted
// after a Reset do not collide with those handed out before it.
func (ct *CentroidTracker) Reset() {
	ct.tracks = make(map[int]*trackState)
}

// Len returns the number of live tracks
func (ct *CentroidTracker) Len() int {
	return len(ct.tracks)
}

// Update matches the current frame's person detections against the live
// track set and returns them with IDs assigned.  A detection matches the
// nearest track within the matching radius, otherwise a new ID is minted.
//
// Matching is greedy over the detection list and a matched track is not
// removed from candidacy within the same frame, so two detections closer to
// one track than to anything else both receive that track's ID.  Frame to
// frame person counts and motion are assumed small, which keeps this
// single-pass heuristic adequate; no globally optimal assignment is
// attempted.
func (ct *CentroidTracker) Update(persons []detect.Detection) []Person {

	now := ct.now()
	out := make([]Person, 0, len(persons))

	for _, det := range persons {

		c := det.Box.Centroid()

		// nearest live track within the matching radius
		matchedID := 0
		minDist := math.Inf(1)

		for id, state := range ct.tracks {
			dist := r2.Norm(r2.Sub(c, state.centroid))

			if dist < ct.maxDist && dist < minDist {
				minDist = dist
				matchedID = id
			}
		}

		if matchedID == 0 {
			// new person entered the frame
			ct.idCount++
			matchedID = ct.idCount
		}

		ct.tracks[matchedID] = &trackState{
			centroid: c,
			lastSeen: now,
		}

		out = append(out, Person{
			ID:  matchedID,
			Det: det,
		})
	}

	// purge tracks of people who left the frame
	for id, state := range ct.tracks {
		if now.Sub(state.lastSeen) >= ct.staleAfter {
			delete(ct.tracks, id)
		}
	}

	return out
}
