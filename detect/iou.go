package detect

import (
	"math"
)

// IoU works out the Intersection over Union value of two boxes.  When the
// candidate overlap rectangle is degenerate (the boxes do not overlap on
// either axis) it returns exactly 0.0 rather than a negative area artifact,
// so zero-area and malformed boxes are safe to pass in.
func IoU(a, b Box) float32 {

	x1 := float32(math.Max(float64(a.X1), float64(b.X1)))
	y1 := float32(math.Max(float64(a.Y1), float64(b.Y1)))
	x2 := float32(math.Min(float64(a.X2), float64(b.X2)))
	y2 := float32(math.Min(float64(a.Y2), float64(b.Y2)))

	if x2 < x1 || y2 < y1 {
		return 0.0
	}

	intersection := (x2 - x1) * (y2 - y1)
	union := a.Area() + b.Area() - intersection

	if union <= 0 {
		return 0.0
	}

	return intersection / union
}
