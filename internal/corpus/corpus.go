// Package corpus fetches bounded, ordered batches of labeled ATC audio
// samples from an external dataset.
package corpus

import (
	"context"
	"errors"
	"fmt"

	"github.com/HungryDevMC/atc-transcriber-eu/internal/config"
)

// ErrUnavailable marks a total corpus-access failure (network, configuration,
// dataset not found, malformed entries). Callers treat it as "no data to
// compare" rather than a fatal condition.
var ErrUnavailable = errors.New("corpus unavailable")

// Sample is one labeled evaluation unit. IDs are assigned by ingestion order,
// 0-based; samples are immutable once created.
type Sample struct {
	ID         int
	Audio      []float64
	SampleRate int
	Reference  string
}

// Source yields the first count entries of a corpus in its native order.
// Fewer entries may be returned when the corpus is shorter than count.
type Source interface {
	Name() string
	Load(ctx context.Context, count int) ([]Sample, error)
}

// NewSource builds the configured corpus source.
func NewSource(cfg config.CorpusConfig) (Source, error) {
	switch cfg.Provider {
	case "huggingface":
		return NewHuggingFaceSource(cfg), nil
	case "objectstore":
		return NewObjectStoreSource(cfg.ObjectStore)
	case "static":
		return DemoSource(), nil
	default:
		return nil, fmt.Errorf("unknown corpus provider %q", cfg.Provider)
	}
}
