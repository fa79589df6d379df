// Package metrics provides word- and character-level error rate scoring for
// transcription hypotheses against ground-truth references.
package metrics

import "fmt"

// Scorer names recorded in run reports so consumers can tell which algorithm
// produced a score.
const (
	ScorerEditDistance = "edit_distance"
	ScorerApproximate  = "approximate"
)

// Scorer computes a normalized dissimilarity between a reference transcript
// and a hypothesis transcript. Implementations are pure and total: scoring
// never fails, whatever the inputs.
type Scorer interface {
	Name() string
	Score(reference, hypothesis string) float64
}

// Select resolves a configured scorer name to an implementation. "auto" and
// the empty string resolve to the edit-distance scorer; the approximate scorer
// is a degraded-mode estimate and must be requested explicitly.
func Select(name string) (Scorer, error) {
	switch name {
	case "", "auto", ScorerEditDistance:
		return EditDistanceScorer{}, nil
	case ScorerApproximate:
		return ApproximateScorer{}, nil
	default:
		return nil, fmt.Errorf("unknown scorer %q", name)
	}
}
