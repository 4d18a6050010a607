package ppe

import (
	"testing"

	"github.com/safevision/ppekit/detect"
	"github.com/safevision/ppekit/tracker"
)

var testWeights = map[string]int{
	"Hardhat":     40,
	"Safety Vest": 40,
	"Mask":        20,
}

func TestScorer(t *testing.T) {

	s := NewScorer(testWeights)

	tests := []struct {
		name      string
		items     []string
		want      int
		compliant bool
	}{
		{
			name:      "hardhat and vest reach threshold",
			items:     []string{"Hardhat", "Safety Vest"},
			want:      80,
			compliant: true,
		},
		{
			name:      "mask only is non-compliant",
			items:     []string{"Mask"},
			want:      20,
			compliant: false,
		},
		{
			name:      "full kit",
			items:     []string{"Hardhat", "Safety Vest", "Mask"},
			want:      100,
			compliant: true,
		},
		{
			name:      "no equipment",
			items:     nil,
			want:      0,
			compliant: false,
		},
		{
			name:      "duplicate class sums then clamps",
			items:     []string{"Hardhat", "Hardhat", "Safety Vest"},
			want:      100,
			compliant: true,
		},
		{
			name:      "unknown label scores zero",
			items:     []string{"Goggles"},
			want:      0,
			compliant: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {

			persons := []tracker.Person{person(1, 0, 0, 100, 300)}

			assigned := make(Assignment)
			for _, label := range tc.items {
				assigned[1] = append(assigned[1], detect.Detection{Label: label})
			}

			scores := s.Score(persons, assigned)

			if got := scores[1]; got != tc.want {
				t.Errorf("score = %d, want %d", got, tc.want)
			}

			if got := Compliant(scores[1], DefaultComplianceThreshold); got != tc.compliant {
				t.Errorf("Compliant(%d, %d) = %v, want %v",
					scores[1], DefaultComplianceThreshold, got, tc.compliant)
			}
		})
	}
}

func TestScorerEntryPerPerson(t *testing.T) {

	s := NewScorer(testWeights)

	persons := []tracker.Person{
		person(1, 0, 0, 100, 300),
		person(2, 200, 0, 300, 300),
	}

	// only person 1 has equipment assigned
	assigned := Assignment{
		1: {detect.Detection{Label: "Hardhat"}},
	}

	scores := s.Score(persons, assigned)

	if scores[1] != 40 {
		t.Errorf("person 1 score = %d, want 40", scores[1])
	}

	if got, ok := scores[2]; !ok || got != 0 {
		t.Errorf("person 2 score = %d (present=%v), want explicit 0", got, ok)
	}
}

func TestScorerEmptyInputs(t *testing.T) {

	s := NewScorer(nil)

	scores := s.Score(nil, nil)

	if len(scores) != 0 {
		t.Errorf("expected empty score map, got %v", scores)
	}
}

func TestScorerCopiesWeights(t *testing.T) {

	weights := map[string]int{"Hardhat": 40}
	s := NewScorer(weights)

	// caller mutation after construction must not leak into the scorer
	weights["Hardhat"] = 0

	persons := []tracker.Person{person(1, 0, 0, 100, 300)}
	assigned := Assignment{1: {detect.Detection{Label: "Hardhat"}}}

	if got := s.Score(persons, assigned)[1]; got != 40 {
		t.Errorf("score = %d, want 40", got)
	}
}
