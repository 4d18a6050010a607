package ppe

import (
	"testing"

	"github.com/safevision/ppekit/detect"
	"github.com/safevision/ppekit/tracker"
)

func item(label string, x1, y1, x2, y2 float32) detect.Detection {
	return detect.Detection{
		Label:      label,
		Box:        detect.Box{X1: x1, Y1: y1, X2: x2, Y2: y2},
		Confidence: 0.8,
	}
}

func person(id int, x1, y1, x2, y2 float32) tracker.Person {
	return tracker.Person{
		ID: id,
		Det: detect.Detection{
			Label:      detect.LabelPerson,
			Box:        detect.Box{X1: x1, Y1: y1, X2: x2, Y2: y2},
			Confidence: 0.9,
		},
	}
}

func TestAssignToOverlappingPersonOnly(t *testing.T) {

	a := NewAssigner(0.1)

	persons := []tracker.Person{
		person(1, 0, 0, 100, 300),
		person(2, 500, 0, 600, 300),
	}

	// hardhat overlaps person 1 only
	items := []detect.Detection{
		item("Hardhat", 20, 0, 80, 50),
	}

	assigned := a.Assign(persons, items)

	if len(assigned) != 1 {
		t.Fatalf("expected 1 entry in assignment, got %d", len(assigned))
	}

	if len(assigned[1]) != 1 || assigned[1][0].Label != "Hardhat" {
		t.Errorf("expected hardhat assigned to person 1, got %v", assigned)
	}

	if _, ok := assigned[2]; ok {
		t.Errorf("person 2 must be absent from assignment, got %v", assigned[2])
	}
}

func TestAssignLargestAreaFirst(t *testing.T) {

	a := NewAssigner(0.0)

	persons := []tracker.Person{
		person(1, 0, 0, 100, 300),
	}

	// the vest is listed second but is larger, so it must be processed
	// first
	items := []detect.Detection{
		item("Mask", 30, 10, 70, 50),
		item("Safety Vest", 10, 80, 90, 220),
	}

	assigned := a.Assign(persons, items)

	got := assigned[1]

	if len(got) != 2 {
		t.Fatalf("expected 2 items assigned, got %d", len(got))
	}

	if got[0].Label != "Safety Vest" || got[1].Label != "Mask" {
		t.Errorf("expected largest-first order [Safety Vest Mask], got [%s %s]",
			got[0].Label, got[1].Label)
	}
}

func TestAssignItemNeverSplit(t *testing.T) {

	a := NewAssigner(0.0)

	// both persons overlap the vest, person 1 more so
	persons := []tracker.Person{
		person(1, 0, 0, 100, 300),
		person(2, 60, 0, 160, 300),
	}

	items := []detect.Detection{
		item("Safety Vest", 10, 80, 90, 220),
	}

	assigned := a.Assign(persons, items)

	if len(assigned[1]) != 1 {
		t.Errorf("expected vest assigned to person 1, got %v", assigned)
	}

	if len(assigned[2]) != 0 {
		t.Errorf("vest attributed to two people: %v", assigned)
	}
}

func TestAssignBelowThresholdDiscarded(t *testing.T) {

	a := NewAssigner(0.5)

	persons := []tracker.Person{
		person(1, 0, 0, 100, 300),
	}

	// overlap exists but IoU is far below 0.5
	items := []detect.Detection{
		item("Hardhat", 90, 0, 150, 50),
	}

	assigned := a.Assign(persons, items)

	if len(assigned) != 0 {
		t.Errorf("expected item discarded below threshold, got %v", assigned)
	}
}

func TestAssignZeroThresholdStillNeedsOverlap(t *testing.T) {

	// with threshold 0 any positive overlap qualifies, but an item with
	// true zero overlap against every person never beats the initial best
	a := NewAssigner(0.0)

	persons := []tracker.Person{
		person(1, 0, 0, 100, 300),
	}

	items := []detect.Detection{
		item("Hardhat", 500, 500, 560, 550),
		item("Mask", 95, 10, 140, 40),
	}

	assigned := a.Assign(persons, items)

	if len(assigned[1]) != 1 || assigned[1][0].Label != "Mask" {
		t.Errorf("expected only the touching mask assigned, got %v", assigned)
	}
}

func TestAssignEmptyInputs(t *testing.T) {

	a := NewAssigner(0.1)

	if got := a.Assign(nil, nil); len(got) != 0 {
		t.Errorf("expected empty assignment, got %v", got)
	}

	if got := a.Assign(nil, []detect.Detection{item("Mask", 0, 0, 10, 10)}); len(got) != 0 {
		t.Errorf("expected empty assignment with no persons, got %v", got)
	}
}
