// Package report renders the run's console report, the system's primary
// output artifact.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/HungryDevMC/atc-transcriber-eu/internal/evaluation"
)

const rule = "============================================================"

// Render writes per-sample details followed by the summary block: both
// average WERs, the improvement percentage when defined, and the
// recommendation sentence.
func Render(w io.Writer, perBackend map[string][]evaluation.Outcome, rep evaluation.RunReport) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "ATC TRANSCRIPTION QUALITY TEST")
	fmt.Fprintln(w, rule)

	generic := perBackend[evaluation.RoleGeneric]
	specialized := perBackend[evaluation.RoleSpecialized]

	for i := 0; i < len(generic); i++ {
		fmt.Fprintf(w, "\n--- Sample %d ---\n", i+1)
		fmt.Fprintf(w, "Ground Truth: %s\n", generic[i].Reference)
		renderOutcome(w, generic[i])
		if i < len(specialized) {
			renderOutcome(w, specialized[i])
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "SUMMARY")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Samples evaluated: %d\n", rep.SampleCount)
	fmt.Fprintf(w, "Average WER - generic backend:     %.1f%%\n", rep.AverageWER[evaluation.RoleGeneric]*100)
	fmt.Fprintf(w, "Average WER - specialized backend: %.1f%%\n", rep.AverageWER[evaluation.RoleSpecialized]*100)
	if rep.ImprovementPercent != nil {
		fmt.Fprintf(w, "Improvement: %.0f%% reduction in errors\n", *rep.ImprovementPercent)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, recommendationSentence(rep.Recommendation))
	fmt.Fprintf(w, "Scorer: %s\n", rep.Scorer)
	fmt.Fprintf(w, "Run ID: %s\n", rep.RunID)
}

func renderOutcome(w io.Writer, outcome evaluation.Outcome) {
	fmt.Fprintf(w, "  %-12s %s\n", outcome.Backend+":", outcome.Hypothesis)
	detail := fmt.Sprintf("WER %.1f%%, CER %.1f%%, %d ms", outcome.WER*100, outcome.CER*100, outcome.LatencyMs)
	if outcome.Failure != nil {
		detail += fmt.Sprintf(", failed (%s)", outcome.Failure.Kind)
	}
	fmt.Fprintf(w, "  %-12s %s\n", "", "("+detail+")")
}

func recommendationSentence(rec evaluation.Recommendation) string {
	switch rec {
	case evaluation.RecommendSpecialized:
		return "The specialized model is RECOMMENDED for production use."
	case evaluation.RecommendLargerSpecialized:
		return "Consider using a larger specialized model before production use."
	default:
		return "No recommendation available."
	}
}

// RenderEmpty explains a run that produced no outcomes.
func RenderEmpty(w io.Writer, corpusName string) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "ATC TRANSCRIPTION QUALITY TEST")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "\nNo samples could be loaded from %s.\n", corpusName)
	fmt.Fprintln(w, strings.TrimSpace(`
The corpus is unavailable or empty, so there is nothing to compare.
Check the corpus configuration and network access, then run again.`))
}
