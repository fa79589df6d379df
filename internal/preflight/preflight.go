// Package preflight probes the capabilities a comparison run depends on and
// produces a structured availability report consumed by the entry point.
package preflight

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/HungryDevMC/atc-transcriber-eu/internal/backends"
	"github.com/HungryDevMC/atc-transcriber-eu/internal/config"
	"github.com/HungryDevMC/atc-transcriber-eu/internal/metrics"
)

// Capability is one probed requirement.
type Capability struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Detail    string `json:"detail,omitempty"`
}

// Report is the outcome of a capability probe.
type Report struct {
	Capabilities []Capability `json:"capabilities"`
}

// Missing lists the unavailable capability names.
func (r Report) Missing() []string {
	var missing []string
	for _, c := range r.Capabilities {
		if !c.Available {
			missing = append(missing, c.Name)
		}
	}
	return missing
}

// OK reports whether every probed capability is available.
func (r Report) OK() bool {
	return len(r.Missing()) == 0
}

// Doer is the HTTP capability the checker needs; satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Checker probes runtime capabilities. A nil Client gets a short-timeout
// default.
type Checker struct {
	Client Doer
}

func (c *Checker) client() Doer {
	if c.Client != nil {
		return c.Client
	}
	return &http.Client{Timeout: 5 * time.Second}
}

// Check probes corpus access, both backend bindings, audio decoding, and the
// scorer strategy. It never fails; unavailability is data, not an error.
func (c *Checker) Check(ctx context.Context, cfg config.Config) Report {
	report := Report{}
	report.Capabilities = append(report.Capabilities,
		c.checkCorpus(ctx, cfg.Corpus),
		checkBackend("backend-generic", "generic", cfg.Backends.Generic),
		checkBackend("backend-specialized", "specialized", cfg.Backends.Specialized),
		checkAudioDecode(),
		checkScorer(cfg.Metrics),
	)
	return report
}

func (c *Checker) checkCorpus(ctx context.Context, cfg config.CorpusConfig) Capability {
	cap := Capability{Name: "corpus-access"}
	switch cfg.Provider {
	case "static":
		cap.Available = true
		cap.Detail = "embedded demo corpus"
	case "objectstore":
		if cfg.ObjectStore.Endpoint == "" || cfg.ObjectStore.Bucket == "" {
			cap.Detail = "object store endpoint or bucket not configured"
			return cap
		}
		cap.Available = true
		cap.Detail = fmt.Sprintf("bucket %s at %s", cfg.ObjectStore.Bucket, cfg.ObjectStore.Endpoint)
	case "huggingface":
		return c.checkHuggingFace(ctx, cfg)
	default:
		cap.Detail = fmt.Sprintf("unknown corpus provider %q", cfg.Provider)
	}
	return cap
}

func (c *Checker) checkHuggingFace(ctx context.Context, cfg config.CorpusConfig) Capability {
	cap := Capability{Name: "corpus-access"}

	probeURL, err := url.Parse(cfg.Endpoint + "/is-valid")
	if err != nil {
		cap.Detail = fmt.Sprintf("bad corpus endpoint: %v", err)
		return cap
	}
	query := probeURL.Query()
	query.Set("dataset", cfg.Dataset)
	probeURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, probeURL.String(), nil)
	if err != nil {
		cap.Detail = fmt.Sprintf("build probe request: %v", err)
		return cap
	}
	resp, err := c.client().Do(req)
	if err != nil {
		cap.Detail = fmt.Sprintf("dataset server unreachable: %v", err)
		return cap
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		cap.Detail = fmt.Sprintf("dataset %s not available: %s", cfg.Dataset, resp.Status)
		return cap
	}
	cap.Available = true
	cap.Detail = fmt.Sprintf("dataset %s reachable", cfg.Dataset)
	return cap
}

func checkBackend(name, role string, cfg config.BackendConfig) Capability {
	cap := Capability{Name: name}
	backend, err := backends.New(role, cfg)
	if err != nil {
		cap.Detail = err.Error()
		return cap
	}
	cap.Available = true
	cap.Detail = fmt.Sprintf("kind %s bound to %s", cfg.Kind, backend.Name())
	return cap
}

func checkAudioDecode() Capability {
	// WAV support is compiled in; the capability exists so the report shape
	// matches the run's actual dependency set.
	return Capability{
		Name:      "audio-decode",
		Available: true,
		Detail:    "wav (16-bit PCM)",
	}
}

func checkScorer(cfg config.MetricsConfig) Capability {
	cap := Capability{Name: "wer-scorer"}
	scorer, err := metrics.Select(cfg.Scorer)
	if err != nil {
		cap.Detail = err.Error()
		return cap
	}
	cap.Available = true
	cap.Detail = scorer.Name()
	return cap
}
