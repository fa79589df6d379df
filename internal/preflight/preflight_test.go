package preflight

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HungryDevMC/atc-transcriber-eu/internal/config"
)

func demoConfig() config.Config {
	cfg := config.Default()
	cfg.Corpus.Provider = "static"
	cfg.Backends.Generic.Kind = config.KindMock
	cfg.Backends.Specialized.Kind = config.KindMock
	return cfg
}

func TestCheckAllAvailableForDemoConfig(t *testing.T) {
	checker := &Checker{}
	report := checker.Check(context.Background(), demoConfig())

	if !report.OK() {
		t.Fatalf("expected all capabilities available, missing: %v", report.Missing())
	}
	if len(report.Capabilities) != 5 {
		t.Fatalf("expected 5 probed capabilities, got %d", len(report.Capabilities))
	}
}

func TestCheckReportsUnreachableCorpus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such dataset", http.StatusNotFound)
	}))
	defer srv.Close()

	cfg := demoConfig()
	cfg.Corpus.Provider = "huggingface"
	cfg.Corpus.Endpoint = srv.URL
	cfg.Corpus.Dataset = "missing/dataset"

	checker := &Checker{Client: srv.Client()}
	report := checker.Check(context.Background(), cfg)

	missing := report.Missing()
	if len(missing) != 1 || missing[0] != "corpus-access" {
		t.Fatalf("expected only corpus-access missing, got %v", missing)
	}
}

func TestCheckReachableCorpus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/is-valid" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("dataset") != "jacktol/atc-dataset" {
			http.Error(w, "wrong dataset", http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, `{"viewer":true}`)
	}))
	defer srv.Close()

	cfg := demoConfig()
	cfg.Corpus.Provider = "huggingface"
	cfg.Corpus.Endpoint = srv.URL
	cfg.Corpus.Dataset = "jacktol/atc-dataset"

	checker := &Checker{Client: srv.Client()}
	if report := checker.Check(context.Background(), cfg); !report.OK() {
		t.Fatalf("expected reachable corpus, missing: %v", report.Missing())
	}
}

func TestCheckReportsUnboundBackend(t *testing.T) {
	cfg := demoConfig()
	cfg.Backends.Specialized.Kind = config.KindHTTP
	cfg.Backends.Specialized.Endpoint = ""

	checker := &Checker{}
	report := checker.Check(context.Background(), cfg)

	missing := report.Missing()
	if len(missing) != 1 || missing[0] != "backend-specialized" {
		t.Fatalf("expected only backend-specialized missing, got %v", missing)
	}
}
