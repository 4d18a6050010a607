package tracker

import (
	"testing"

	"github.com/safevision/ppekit/detect"
)

func TestTrailKeepsBoundedHistory(t *testing.T) {

	trail := NewTrail(3)

	positions := []float32{100, 110, 120, 130, 140}

	for _, x := range positions {
		trail.Add(Person{
			ID:  7,
			Det: detect.Detection{Label: detect.LabelPerson, Box: detect.Box{X1: x - 30, Y1: 20, X2: x + 30, Y2: 180}},
		})
	}

	points := trail.Points(7)

	if len(points) != 3 {
		t.Fatalf("expected history capped at 3 points, got %d", len(points))
	}

	// oldest points dropped, most recent kept
	if points[0].X != 120 || points[2].X != 140 {
		t.Errorf("unexpected trail points %v", points)
	}

	if got := trail.Points(99); got != nil {
		t.Errorf("expected nil history for unknown id, got %v", got)
	}

	trail.Reset()

	if got := trail.Points(7); got != nil {
		t.Errorf("expected empty history after Reset, got %v", got)
	}
}
