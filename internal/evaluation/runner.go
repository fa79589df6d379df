package evaluation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/HungryDevMC/atc-transcriber-eu/internal/backends"
	"github.com/HungryDevMC/atc-transcriber-eu/internal/corpus"
	"github.com/HungryDevMC/atc-transcriber-eu/internal/metrics"
)

// Runner drives one comparison run: for each sample, the generic backend is
// invoked first, then the specialized one, strictly sequentially. Generic
// first is purely for deterministic progress output; the invocations are
// independent.
type Runner struct {
	Source      corpus.Source
	Generic     backends.Backend
	Specialized backends.Backend
	Scorer      metrics.Scorer
	Timeout     time.Duration
}

// Run loads up to sampleCount samples and produces the per-role outcome
// sequences. A corpus-unavailable condition or an empty corpus yields empty
// sequences, not an error; per-sample backend failures become sentinel
// outcomes and the loop always advances.
func (r *Runner) Run(ctx context.Context, sampleCount int) map[string][]Outcome {
	results := map[string][]Outcome{
		RoleGeneric:     {},
		RoleSpecialized: {},
	}

	samples, err := r.Source.Load(ctx, sampleCount)
	if err != nil {
		if errors.Is(err, corpus.ErrUnavailable) {
			log.Printf("Corpus %s is unavailable, nothing to compare: %v", r.Source.Name(), err)
		} else {
			log.Printf("Failed to load samples from %s: %v", r.Source.Name(), err)
		}
		return results
	}
	if len(samples) == 0 {
		log.Printf("Corpus %s returned no samples, nothing to compare", r.Source.Name())
		return results
	}

	log.Printf("Starting comparison run over %d samples with scorer %s", len(samples), r.Scorer.Name())
	for _, sample := range samples {
		log.Printf("--- Sample %d/%d ---", sample.ID+1, len(samples))
		log.Printf("Ground truth: %s", sample.Reference)

		for _, backend := range []backends.Backend{r.Generic, r.Specialized} {
			outcome := r.invoke(ctx, backend, sample)
			results[backend.Name()] = append(results[backend.Name()], outcome)
			log.Printf("  %s: %q (WER %.1f%%)", backend.Name(), outcome.Hypothesis, outcome.WER*100)
		}
	}
	log.Printf("Comparison run completed: %d outcomes per backend", len(samples))

	return results
}

func (r *Runner) invoke(ctx context.Context, backend backends.Backend, sample corpus.Sample) Outcome {
	callCtx := ctx
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	start := time.Now()
	hypothesis, err := backend.Transcribe(callCtx, sample.Audio, sample.SampleRate)
	latencyMs := time.Since(start).Milliseconds()

	if err != nil {
		detail := err.Error()
		log.Printf("  %s backend failed on sample %d: %v", backend.Name(), sample.ID, err)
		return Outcome{
			Backend:    backend.Name(),
			Hypothesis: fmt.Sprintf("[Error: %s]", detail),
			Reference:  sample.Reference,
			WER:        failurePenaltyWER,
			CER:        failurePenaltyWER,
			LatencyMs:  latencyMs,
			Failure: &Failure{
				Kind:   backends.KindOf(err),
				Detail: detail,
			},
		}
	}

	return Outcome{
		Backend:    backend.Name(),
		Hypothesis: hypothesis,
		Reference:  sample.Reference,
		WER:        r.Scorer.Score(sample.Reference, hypothesis),
		CER:        metrics.CharErrorRate(sample.Reference, hypothesis),
		LatencyMs:  latencyMs,
	}
}
