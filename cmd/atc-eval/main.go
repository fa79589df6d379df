// Command atc-eval compares a generic speech-to-text backend against an
// ATC-specialized one over a batch of labeled radio samples and reports
// whether the specialized model meets the production quality bar.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/HungryDevMC/atc-transcriber-eu/internal/api"
	"github.com/HungryDevMC/atc-transcriber-eu/internal/backends"
	"github.com/HungryDevMC/atc-transcriber-eu/internal/config"
	"github.com/HungryDevMC/atc-transcriber-eu/internal/corpus"
	"github.com/HungryDevMC/atc-transcriber-eu/internal/evaluation"
	"github.com/HungryDevMC/atc-transcriber-eu/internal/metrics"
	"github.com/HungryDevMC/atc-transcriber-eu/internal/preflight"
	"github.com/HungryDevMC/atc-transcriber-eu/internal/report"
)

var version = "0.1.0-dev"

func main() {
	var (
		configPath  string
		samples     int
		demoMode    bool
		serveMode   bool
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "Path to YAML configuration file (defaults + ATC_* env when empty)")
	flag.IntVar(&samples, "samples", -1, "Number of corpus samples to evaluate (config default when negative)")
	flag.BoolVar(&demoMode, "demo", false, "Run the embedded demo without corpus or model dependencies")
	flag.BoolVar(&serveMode, "serve", false, "Serve the evaluation HTTP API instead of running once")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	scorer, err := metrics.Select(cfg.Metrics.Scorer)
	if err != nil {
		log.Fatalf("Failed to select WER scorer: %v", err)
	}

	sampleCount := cfg.Evaluation.SampleCount
	if samples >= 0 {
		sampleCount = samples
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if demoMode {
		runner := demoRunner(scorer)
		runOnce(ctx, runner, demoSampleCount(samples))
		return
	}

	checker := &preflight.Checker{}
	probe := checker.Check(ctx, cfg)
	if !probe.OK() {
		log.Printf("Preflight found missing capabilities: %s", strings.Join(probe.Missing(), ", "))
		for _, c := range probe.Capabilities {
			if !c.Available {
				log.Printf("  %s: %s", c.Name, c.Detail)
			}
		}
		log.Printf("Fix the configuration above, or run with -demo for the dependency-free demo.")
		os.Exit(1)
	}

	runner, err := buildRunner(cfg, scorer)
	if err != nil {
		log.Fatalf("Failed to assemble evaluation pipeline: %v", err)
	}

	if serveMode {
		server := api.NewServer(cfg, runner, checker)
		addr := fmt.Sprintf("%s:%d", cfg.API.Bind, cfg.API.Port)
		log.Printf("Serving evaluation API on %s", addr)
		if err := server.SetupRouter().Run(addr); err != nil {
			log.Fatalf("API server exited: %v", err)
		}
		return
	}

	runOnce(ctx, runner, sampleCount)
}

func buildRunner(cfg config.Config, scorer metrics.Scorer) (*evaluation.Runner, error) {
	source, err := corpus.NewSource(cfg.Corpus)
	if err != nil {
		return nil, err
	}
	generic, err := backends.New(evaluation.RoleGeneric, cfg.Backends.Generic)
	if err != nil {
		return nil, err
	}
	specialized, err := backends.New(evaluation.RoleSpecialized, cfg.Backends.Specialized)
	if err != nil {
		return nil, err
	}
	return &evaluation.Runner{
		Source:      source,
		Generic:     generic,
		Specialized: specialized,
		Scorer:      scorer,
		Timeout:     time.Duration(cfg.Evaluation.BackendTimeoutMS) * time.Millisecond,
	}, nil
}

// demoRunner reproduces the canonical two-sample comparison: a generic
// backend with typical phraseology mistakes against a verbatim specialized
// one.
// demoSampleCount resolves the -samples flag for demo mode: an explicit value
// wins, otherwise the whole embedded demo corpus is used.
func demoSampleCount(flagSamples int) int {
	if flagSamples >= 0 {
		return flagSamples
	}
	return len(corpus.DemoSource().Samples)
}

func demoRunner(scorer metrics.Scorer) *evaluation.Runner {
	return &evaluation.Runner{
		Source: corpus.DemoSource(),
		Generic: backends.NewScriptedBackend(evaluation.RoleGeneric, []string{
			"clear for take off runway two seven",
			"descend maintain 4000",
		}),
		Specialized: backends.NewScriptedBackend(evaluation.RoleSpecialized, []string{
			"cleared for takeoff runway two seven",
			"descend and maintain four thousand",
		}),
		Scorer: scorer,
	}
}

func runOnce(ctx context.Context, runner *evaluation.Runner, sampleCount int) {
	outcomes := runner.Run(ctx, sampleCount)

	if len(outcomes[evaluation.RoleGeneric]) == 0 {
		report.RenderEmpty(os.Stdout, runner.Source.Name())
		return
	}

	rep := evaluation.Aggregate(outcomes, runner.Scorer.Name())
	report.Render(os.Stdout, outcomes, rep)
}
