package metrics

import (
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// EditDistanceScorer computes the standard word error rate:
// WER = (substitutions + insertions + deletions) / number of reference words.
// The result is unbounded above 1.0 when the hypothesis is much longer than
// the reference.
type EditDistanceScorer struct{}

func (EditDistanceScorer) Name() string { return ScorerEditDistance }

func (EditDistanceScorer) Score(reference, hypothesis string) float64 {
	refWords := strings.Fields(strings.ToLower(reference))
	hypWords := strings.Fields(strings.ToLower(hypothesis))

	if len(refWords) == 0 {
		if len(hypWords) == 0 {
			return 0.0
		}
		return 1.0
	}

	distance := wordDistance(refWords, hypWords)
	return float64(distance) / float64(len(refWords))
}

// wordDistance computes the word-level edit distance by mapping each distinct
// word to a private code rune and running the rune-level algorithm on the
// encoded sequences. Vocabulary per call stays far below the rune range.
func wordDistance(reference, hypothesis []string) int {
	codes := make(map[string]rune, len(reference)+len(hypothesis))
	encode := func(words []string) []rune {
		out := make([]rune, len(words))
		for i, w := range words {
			code, ok := codes[w]
			if !ok {
				code = rune(len(codes) + 1)
				codes[w] = code
			}
			out[i] = code
		}
		return out
	}

	source := encode(reference)
	target := encode(hypothesis)
	return levenshtein.DistanceForStrings(source, target, levenshtein.DefaultOptionsWithSub)
}

// CharErrorRate is the character-level analogue of the edit-distance WER:
// rune-level edit distance divided by the reference rune count. Recorded per
// outcome as a secondary diagnostic.
func CharErrorRate(reference, hypothesis string) float64 {
	refRunes := []rune(strings.ToLower(reference))
	hypRunes := []rune(strings.ToLower(hypothesis))

	if len(refRunes) == 0 {
		if len(hypRunes) == 0 {
			return 0.0
		}
		return 1.0
	}

	distance := levenshtein.DistanceForStrings(refRunes, hypRunes, levenshtein.DefaultOptionsWithSub)
	return float64(distance) / float64(len(refRunes))
}
