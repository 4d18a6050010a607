// Package ppe implements the equipment-to-person assignment and compliance
// scoring steps of the monitoring pipeline.  Both operate on one frame's
// worth of plain detection data and hold no cross-frame state.
package ppe

import (
	"sort"

	"github.com/safevision/ppekit/detect"
	"github.com/safevision/ppekit/tracker"
)

// Assignment maps a track ID to the equipment detections judged to be worn
// by that person in the current frame.  Each equipment detection appears
// under at most one ID.  An ID with no matched equipment has no entry, so
// callers treat a missing key as zero assigned items.
type Assignment map[int][]detect.Detection

// Assigner associates equipment detections with the tracked person wearing
// them using greedy largest-first geometric matching.
type Assigner struct {
	// iouThresh is the minimum IoU an item must have with a person's box
	// to be attributed to them
	iouThresh float32
}

// NewAssigner returns an Assigner with the given IoU threshold.
//
// A threshold of 0 silently defeats the geometric-overlap guarantee: any
// positive overlap, however small, qualifies an item for assignment and the
// numerically greatest IoU still picks the winner.  Items with true zero
// overlap against every person are still discarded, as the winner must beat
// a best-so-far that starts at zero.
func NewAssigner(iouThresh float32) *Assigner {
	return &Assigner{
		iouThresh: iouThresh,
	}
}

// Assign decides which person, if any, owns each equipment detection.  Items
// are processed largest bounding-box area first, so large items such as
// vests are attributed before a small item's spurious overlap can steal a
// match.  Each item commits to the single person with the strictly greatest
// IoU at or above the threshold; items matching nobody are left out of the
// Assignment entirely.
func (a *Assigner) Assign(persons []tracker.Person, items []detect.Detection) Assignment {

	assigned := make(Assignment)

	// sort items by box area, largest first, preserving detection order
	// between equal areas
	sorted := make([]detect.Detection, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Box.Area() > sorted[j].Box.Area()
	})

	for _, item := range sorted {

		bestIoU := float32(0)
		bestID := 0
		found := false

		for _, person := range persons {
			iou := detect.IoU(person.Det.Box, item.Box)

			if iou > bestIoU && iou >= a.iouThresh {
				bestIoU = iou
				bestID = person.ID
				found = true
			}
		}

		if found {
			assigned[bestID] = append(assigned[bestID], item)
		}
	}

	return assigned
}
