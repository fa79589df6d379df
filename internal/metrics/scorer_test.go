package metrics

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEditDistanceScorer(t *testing.T) {
	cases := []struct {
		name       string
		reference  string
		hypothesis string
		want       float64
	}{
		{"identical", "cleared for takeoff runway two seven", "cleared for takeoff runway two seven", 0.0},
		{"case insensitive", "Cleared For Takeoff", "cleared for takeoff", 0.0},
		{"both empty", "", "", 0.0},
		{"empty reference", "", "a b c", 1.0},
		{"one substitution", "a b c", "a x c", 1.0 / 3.0},
		{"one deletion", "a b c", "a c", 1.0 / 3.0},
		{"one insertion", "a b c", "a b x c", 1.0 / 3.0},
		{"all wrong", "a b c", "x y z", 1.0},
		{"unbounded above one", "a", "x y z", 3.0},
		{"repeated words", "the cat saw the dog", "the cat saw the dog", 0.0},
		{"repeated word substituted", "the the cat", "the cat the", 2.0 / 3.0},
		{"substitution costs one not two", "alpha bravo charlie delta", "alpha xray charlie delta", 0.25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EditDistanceScorer{}.Score(tc.reference, tc.hypothesis)
			if !almostEqual(got, tc.want) {
				t.Fatalf("Score(%q, %q) = %v, want %v", tc.reference, tc.hypothesis, got, tc.want)
			}
		})
	}
}

func TestEditDistanceScorerDistinctVocabulary(t *testing.T) {
	reference := "one two three four five six seven eight nine ten"
	hypothesis := "one two tree four five six seven ate nine ten"
	if got := (EditDistanceScorer{}).Score(reference, hypothesis); !almostEqual(got, 0.2) {
		t.Fatalf("two substitutions over ten words: got %v, want 0.2", got)
	}
}

func TestApproximateScorer(t *testing.T) {
	cases := []struct {
		name       string
		reference  string
		hypothesis string
		want       float64
	}{
		{"identical", "descend and maintain four thousand", "descend and maintain four thousand", 0.0},
		{"both empty", "", "", 0.0},
		{"empty reference", "", "a b c", 1.0},
		{"empty hypothesis", "a b c", "", 1.0},
		{"positional mismatch", "a b c", "a x c", 1.0 / 3.0},
		{"length difference", "a b c d", "a b", 0.5},
		{"clamped at one", "a", "x y z w", 1.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ApproximateScorer{}.Score(tc.reference, tc.hypothesis)
			if !almostEqual(got, tc.want) {
				t.Fatalf("Score(%q, %q) = %v, want %v", tc.reference, tc.hypothesis, got, tc.want)
			}
		})
	}
}

func TestApproximateScorerBounded(t *testing.T) {
	inputs := []struct{ reference, hypothesis string }{
		{"one", "a much longer hypothesis than the reference could ever be"},
		{"a b", "c d e f g h"},
		{"", "anything at all"},
		{"exactly matching words", "exactly matching words"},
	}
	for _, in := range inputs {
		got := ApproximateScorer{}.Score(in.reference, in.hypothesis)
		if got < 0.0 || got > 1.0 {
			t.Fatalf("Score(%q, %q) = %v, out of [0, 1]", in.reference, in.hypothesis, got)
		}
	}
}

func TestScorersAgreeOnEmptyReferenceBoundary(t *testing.T) {
	for _, s := range []Scorer{EditDistanceScorer{}, ApproximateScorer{}} {
		if got := s.Score("", ""); got != 0.0 {
			t.Fatalf("%s: Score(\"\", \"\") = %v, want 0", s.Name(), got)
		}
		if got := s.Score("", "a b c"); got != 1.0 {
			t.Fatalf("%s: Score(\"\", \"a b c\") = %v, want 1", s.Name(), got)
		}
	}
}

func TestCharErrorRate(t *testing.T) {
	if got := CharErrorRate("abc", "abc"); got != 0.0 {
		t.Fatalf("identical strings: got %v", got)
	}
	if got := CharErrorRate("abcd", "abxd"); !almostEqual(got, 0.25) {
		t.Fatalf("one substitution over four runes: got %v", got)
	}
	if got := CharErrorRate("", "abc"); got != 1.0 {
		t.Fatalf("empty reference: got %v", got)
	}
}

func TestSelect(t *testing.T) {
	for name, want := range map[string]string{
		"":              ScorerEditDistance,
		"auto":          ScorerEditDistance,
		"edit_distance": ScorerEditDistance,
		"approximate":   ScorerApproximate,
	} {
		s, err := Select(name)
		if err != nil {
			t.Fatalf("Select(%q): %v", name, err)
		}
		if s.Name() != want {
			t.Fatalf("Select(%q) = %s, want %s", name, s.Name(), want)
		}
	}
	if _, err := Select("jiwer"); err == nil {
		t.Fatal("expected error for unknown scorer")
	}
}
