package yolo

import (
	"sort"

	"github.com/safevision/ppekit/detect"
)

// nms implements greedy Non-Maximum Suppression over the candidate
// detections.  Candidates are visited highest confidence first and any lower
// scoring candidate of the same class overlapping a kept one above the
// threshold is dropped.
func nms(candidates []detect.Detection, threshold float32) []detect.Detection {

	if len(candidates) == 0 {
		return nil
	}

	sorted := make([]detect.Detection, len(candidates))
	copy(sorted, candidates)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	suppressed := make([]bool, len(sorted))
	var keep []detect.Detection

	for i := range sorted {

		if suppressed[i] {
			continue
		}

		keep = append(keep, sorted[i])

		for j := i + 1; j < len(sorted); j++ {

			if suppressed[j] || sorted[j].Label != sorted[i].Label {
				continue
			}

			if detect.IoU(sorted[i].Box, sorted[j].Box) > threshold {
				suppressed[j] = true
			}
		}
	}

	return keep
}
