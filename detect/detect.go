package detect

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// LabelPerson is the class label the detector emits for a person.  All other
// labels in the model vocabulary are treated as equipment classes.
const LabelPerson = "Person"

// Box is an axis-aligned bounding box in frame-pixel space with X1 <= X2
// and Y1 <= Y2
type Box struct {
	X1 float32
	Y1 float32
	X2 float32
	Y2 float32
}

// Width returns the width of the box
func (b Box) Width() float32 {
	return b.X2 - b.X1
}

// Height returns the height of the box
func (b Box) Height() float32 {
	return b.Y2 - b.Y1
}

// Area returns the area of the box
func (b Box) Area() float32 {
	return b.Width() * b.Height()
}

// Centroid returns the center point of the box
func (b Box) Centroid() r2.Vec {
	return r2.Vec{
		X: float64(b.X1+b.X2) / 2,
		Y: float64(b.Y1+b.Y2) / 2,
	}
}

// Detection defines the attributes of a single object detected in a frame
type Detection struct {
	// Label is the class label of the object detected
	Label string
	// Box are the bounding box dimensions of the object location
	Box Box
	// Confidence is the confidence score of the object detected
	Confidence float32
}

// Split separates a frame's detections into person detections and equipment
// item detections.  An item counts as equipment when its label is a key of
// the given weight table, so detections of classes outside the configured
// vocabulary are dropped.
func Split(dets []Detection, weights map[string]int) (persons, items []Detection) {

	for _, det := range dets {

		if det.Label == LabelPerson {
			persons = append(persons, det)
			continue
		}

		if _, ok := weights[det.Label]; ok {
			items = append(items, det)
		}
	}

	return persons, items
}
