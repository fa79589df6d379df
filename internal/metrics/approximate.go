package metrics

import "strings"

// ApproximateScorer is a position-sensitive estimate of the word error rate.
// It starts from the absolute difference in word counts, then adds one error
// for every position where the two sequences disagree over the overlapping
// prefix. The result is clamped to [0, 1], so it is not a drop-in replacement
// for the edit-distance scorer; run reports carry the scorer name so the two
// can never be confused.
type ApproximateScorer struct{}

func (ApproximateScorer) Name() string { return ScorerApproximate }

func (ApproximateScorer) Score(reference, hypothesis string) float64 {
	refWords := strings.Fields(strings.ToLower(reference))
	hypWords := strings.Fields(strings.ToLower(hypothesis))

	if len(refWords) == 0 {
		if len(hypWords) == 0 {
			return 0.0
		}
		return 1.0
	}

	errors := len(refWords) - len(hypWords)
	if errors < 0 {
		errors = -errors
	}

	overlap := len(refWords)
	if len(hypWords) < overlap {
		overlap = len(hypWords)
	}
	for i := 0; i < overlap; i++ {
		if refWords[i] != hypWords[i] {
			errors++
		}
	}

	rate := float64(errors) / float64(len(refWords))
	if rate > 1.0 {
		return 1.0
	}
	return rate
}
