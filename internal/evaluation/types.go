// Package evaluation orchestrates the dual-backend comparison run and reduces
// its outcomes into a run report with a production-fitness recommendation.
package evaluation

import "github.com/HungryDevMC/atc-transcriber-eu/internal/backends"

// Backend roles. Result sequences are keyed by role, index-aligned across the
// two backends for per-sample comparison.
const (
	RoleGeneric     = "generic"
	RoleSpecialized = "specialized"
)

// SpecializedWERThreshold is the fixed quality bar for the production
// recommendation. Policy constant, not derived from the data.
const SpecializedWERThreshold = 0.15

// failurePenaltyWER is the defined score assigned when a backend invocation
// fails and no usable hypothesis exists.
const failurePenaltyWER = 1.0

// Failure records why a backend invocation produced no usable hypothesis.
type Failure struct {
	Kind   backends.FailureKind `json:"kind"`
	Detail string               `json:"detail"`
}

// Outcome is the result of invoking one backend on one sample. WER is always
// defined: a failed invocation gets the penalty score, never a missing one.
type Outcome struct {
	Backend    string   `json:"backend"`
	Hypothesis string   `json:"hypothesis"`
	Reference  string   `json:"reference"`
	WER        float64  `json:"wer"`
	CER        float64  `json:"cer"`
	LatencyMs  int64    `json:"latency_ms"`
	Failure    *Failure `json:"failure,omitempty"`
}

// Recommendation is the run's closing verdict.
type Recommendation string

const (
	RecommendSpecialized       Recommendation = "specialized"
	RecommendLargerSpecialized Recommendation = "larger-specialized"
)

// RunReport aggregates one full comparison run. Terminal: never mutated after
// Aggregate returns it.
type RunReport struct {
	RunID              string               `json:"run_id"`
	Scorer             string               `json:"scorer"`
	SampleCount        int                  `json:"sample_count"`
	PerBackendWER      map[string][]float64 `json:"per_backend_wer"`
	AverageWER         map[string]float64   `json:"average_wer"`
	ImprovementPercent *float64             `json:"improvement_percent,omitempty"`
	Recommendation     Recommendation       `json:"recommendation"`
}
