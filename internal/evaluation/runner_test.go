package evaluation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/HungryDevMC/atc-transcriber-eu/internal/backends"
	"github.com/HungryDevMC/atc-transcriber-eu/internal/corpus"
	"github.com/HungryDevMC/atc-transcriber-eu/internal/metrics"
)

type unavailableSource struct{}

func (unavailableSource) Name() string { return "broken" }

func (unavailableSource) Load(context.Context, int) ([]corpus.Sample, error) {
	return nil, corpus.ErrUnavailable
}

type blockingBackend struct{ name string }

func (b blockingBackend) Name() string { return b.name }

func (b blockingBackend) Transcribe(ctx context.Context, _ []float64, _ int) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func staticSource(references ...string) *corpus.StaticSource {
	samples := make([]corpus.Sample, len(references))
	for i, ref := range references {
		samples[i] = corpus.Sample{ID: i, Audio: []float64{0.1, -0.1}, SampleRate: 16000, Reference: ref}
	}
	return &corpus.StaticSource{Samples: samples}
}

func TestRunShortCorpusProducesOnlyAvailableSamples(t *testing.T) {
	runner := &Runner{
		Source:      staticSource("alpha bravo", "charlie delta"),
		Generic:     backends.NewScriptedBackend(RoleGeneric, []string{"alpha bravo", "charlie delta"}),
		Specialized: backends.NewScriptedBackend(RoleSpecialized, []string{"alpha bravo", "charlie delta"}),
		Scorer:      metrics.EditDistanceScorer{},
	}

	results := runner.Run(context.Background(), 10)
	if len(results[RoleGeneric]) != 2 || len(results[RoleSpecialized]) != 2 {
		t.Fatalf("expected 2 outcomes per backend, got %d/%d",
			len(results[RoleGeneric]), len(results[RoleSpecialized]))
	}
}

func TestRunCorpusUnavailableYieldsEmptyRun(t *testing.T) {
	runner := &Runner{
		Source:      unavailableSource{},
		Generic:     backends.NewMockBackend(RoleGeneric),
		Specialized: backends.NewMockBackend(RoleSpecialized),
		Scorer:      metrics.EditDistanceScorer{},
	}

	results := runner.Run(context.Background(), 5)
	if len(results[RoleGeneric]) != 0 || len(results[RoleSpecialized]) != 0 {
		t.Fatalf("expected empty outcome sequences, got %d/%d",
			len(results[RoleGeneric]), len(results[RoleSpecialized]))
	}
}

func TestRunFailingBackendStillYieldsAllOutcomes(t *testing.T) {
	runner := &Runner{
		Source:      staticSource("one", "two", "three"),
		Generic:     backends.NewFailingBackend(RoleGeneric, backends.FailureInference, "model exploded"),
		Specialized: backends.NewScriptedBackend(RoleSpecialized, []string{"one", "two", "three"}),
		Scorer:      metrics.EditDistanceScorer{},
	}

	results := runner.Run(context.Background(), 3)
	if len(results[RoleGeneric]) != 3 {
		t.Fatalf("expected 3 generic outcomes, got %d", len(results[RoleGeneric]))
	}
	for i, outcome := range results[RoleGeneric] {
		if !strings.HasPrefix(outcome.Hypothesis, "[Error: ") {
			t.Fatalf("outcome %d: expected sentinel hypothesis, got %q", i, outcome.Hypothesis)
		}
		if outcome.WER != 1.0 {
			t.Fatalf("outcome %d: expected penalty WER 1.0, got %v", i, outcome.WER)
		}
		if outcome.Failure == nil || outcome.Failure.Kind != backends.FailureInference {
			t.Fatalf("outcome %d: expected recorded inference failure, got %+v", i, outcome.Failure)
		}
	}
	for i, outcome := range results[RoleSpecialized] {
		if outcome.Failure != nil {
			t.Fatalf("specialized outcome %d: unexpected failure %+v", i, outcome.Failure)
		}
		if outcome.WER != 0.0 {
			t.Fatalf("specialized outcome %d: expected WER 0, got %v", i, outcome.WER)
		}
	}
}

func TestRunBackendTimeoutBecomesSentinelOutcome(t *testing.T) {
	runner := &Runner{
		Source:      staticSource("hold short of runway"),
		Generic:     blockingBackend{name: RoleGeneric},
		Specialized: backends.NewScriptedBackend(RoleSpecialized, []string{"hold short of runway"}),
		Scorer:      metrics.EditDistanceScorer{},
		Timeout:     20 * time.Millisecond,
	}

	results := runner.Run(context.Background(), 1)
	if len(results[RoleGeneric]) != 1 {
		t.Fatalf("expected 1 generic outcome, got %d", len(results[RoleGeneric]))
	}
	outcome := results[RoleGeneric][0]
	if outcome.Failure == nil || outcome.Failure.Kind != backends.FailureTimeout {
		t.Fatalf("expected timeout failure, got %+v", outcome.Failure)
	}
	if !strings.HasPrefix(outcome.Hypothesis, "[Error: ") {
		t.Fatalf("expected sentinel hypothesis, got %q", outcome.Hypothesis)
	}
}

func TestRunInterruptRecordsCancellationNotTimeout(t *testing.T) {
	runner := &Runner{
		Source:      staticSource("contact tower"),
		Generic:     blockingBackend{name: RoleGeneric},
		Specialized: backends.NewScriptedBackend(RoleSpecialized, []string{"contact tower"}),
		Scorer:      metrics.EditDistanceScorer{},
		Timeout:     time.Minute,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := runner.Run(ctx, 1)
	if len(results[RoleGeneric]) != 1 {
		t.Fatalf("expected 1 generic outcome, got %d", len(results[RoleGeneric]))
	}
	outcome := results[RoleGeneric][0]
	if outcome.Failure == nil || outcome.Failure.Kind != backends.FailureCanceled {
		t.Fatalf("expected canceled failure, got %+v", outcome.Failure)
	}
}

func TestRunOutcomesAreIndexAligned(t *testing.T) {
	runner := &Runner{
		Source:      staticSource("first sample", "second sample"),
		Generic:     backends.NewScriptedBackend(RoleGeneric, []string{"first guess", "second guess"}),
		Specialized: backends.NewScriptedBackend(RoleSpecialized, []string{"first sample", "second sample"}),
		Scorer:      metrics.EditDistanceScorer{},
	}

	results := runner.Run(context.Background(), 2)
	for i, want := range []string{"first sample", "second sample"} {
		if results[RoleGeneric][i].Reference != want {
			t.Fatalf("generic outcome %d references %q, want %q", i, results[RoleGeneric][i].Reference, want)
		}
		if results[RoleSpecialized][i].Reference != want {
			t.Fatalf("specialized outcome %d references %q, want %q", i, results[RoleSpecialized][i].Reference, want)
		}
	}
}
