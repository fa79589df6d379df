package evaluation

import "github.com/google/uuid"

// Aggregate reduces the per-role outcome sequences into a RunReport. A run
// with zero samples yields a report, not an error. The improvement percentage
// is defined only when the generic average is strictly positive; dividing by
// a zero generic average is a domain error, not a silent zero.
func Aggregate(perBackend map[string][]Outcome, scorerName string) RunReport {
	report := RunReport{
		RunID:         uuid.New().String(),
		Scorer:        scorerName,
		SampleCount:   len(perBackend[RoleGeneric]),
		PerBackendWER: make(map[string][]float64, len(perBackend)),
		AverageWER:    make(map[string]float64, len(perBackend)),
	}

	for role, outcomes := range perBackend {
		wers := make([]float64, len(outcomes))
		sum := 0.0
		for i, outcome := range outcomes {
			wers[i] = outcome.WER
			sum += outcome.WER
		}
		report.PerBackendWER[role] = wers
		if len(outcomes) > 0 {
			report.AverageWER[role] = sum / float64(len(outcomes))
		} else {
			report.AverageWER[role] = 0.0
		}
	}

	if generic := report.AverageWER[RoleGeneric]; generic > 0 {
		improvement := (generic - report.AverageWER[RoleSpecialized]) / generic * 100
		report.ImprovementPercent = &improvement
	}

	if report.AverageWER[RoleSpecialized] < SpecializedWERThreshold {
		report.Recommendation = RecommendSpecialized
	} else {
		report.Recommendation = RecommendLargerSpecialized
	}

	return report
}
