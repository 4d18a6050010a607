package ppe

import (
	"github.com/safevision/ppekit/tracker"
)

// DefaultComplianceThreshold is the minimum score for a person to be
// classified compliant
const DefaultComplianceThreshold = 80

// ScoreMap maps a track ID to a compliance score in [0,100]
type ScoreMap map[int]int

// Scorer converts a person's assigned equipment into a weighted compliance
// percentage.  The per-class weights are configuration, not algorithm: they
// need not sum to 100, and labels absent from the table score zero.
type Scorer struct {
	// weights is the per-class-label score table
	weights map[string]int
}

// NewScorer returns a Scorer using the given class weight table.  The table
// is copied so later changes by the caller do not affect scoring.
func NewScorer(weights map[string]int) *Scorer {

	w := make(map[string]int, len(weights))
	for label, weight := range weights {
		w[label] = weight
	}

	return &Scorer{
		weights: w,
	}
}

// Score sums the configured weight of every item assigned to each person and
// clamps the result to [0,100].  Every person in the input receives an entry,
// scoring zero when nothing is assigned to them.  Unknown item labels
// contribute zero rather than erroring.
func (s *Scorer) Score(persons []tracker.Person, assigned Assignment) ScoreMap {

	scores := make(ScoreMap, len(persons))

	for _, person := range persons {

		score := 0

		for _, item := range assigned[person.ID] {
			score += s.weights[item.Label]
		}

		// enforce 100% cap and minimum 0%
		if score > 100 {
			score = 100
		}
		if score < 0 {
			score = 0
		}

		scores[person.ID] = score
	}

	return scores
}

// Compliant reports whether a score meets the compliance threshold
func Compliant(score, threshold int) bool {
	return score >= threshold
}
