package backends

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HungryDevMC/atc-transcriber-eu/internal/config"
)

func TestScriptedBackendReplaysInOrder(t *testing.T) {
	b := NewScriptedBackend("generic", []string{"first", "second"})
	for _, want := range []string{"first", "second", "first"} {
		got, err := b.Transcribe(context.Background(), nil, 16000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}

func TestFailingBackendTagsKind(t *testing.T) {
	b := NewFailingBackend("generic", FailureInit, "no such model")
	_, err := b.Transcribe(context.Background(), nil, 16000)
	if err == nil {
		t.Fatal("expected error")
	}
	if KindOf(err) != FailureInit {
		t.Fatalf("expected init kind, got %s", KindOf(err))
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(context.Canceled); got != FailureCanceled {
		t.Fatalf("expected canceled kind, got %s", got)
	}
	if got := KindOf(fmt.Errorf("call aborted: %w", context.Canceled)); got != FailureCanceled {
		t.Fatalf("expected canceled kind for wrapped cancellation, got %s", got)
	}
	if got := KindOf(context.DeadlineExceeded); got != FailureTimeout {
		t.Fatalf("deadline must map to timeout, got %s", got)
	}
	if got := KindOf(errors.New("boom")); got != FailureInference {
		t.Fatalf("untagged error must map to inference, got %s", got)
	}
	wrapped := fmt.Errorf("outer: %w", &InvocationError{Kind: FailureDecode, Err: errors.New("bad json")})
	if got := KindOf(wrapped); got != FailureDecode {
		t.Fatalf("wrapped invocation error must keep its kind, got %s", got)
	}
}

func TestWhisperHTTPBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method", http.StatusMethodNotAllowed)
			return
		}
		if r.URL.Query().Get("model") != "whisper-small.en" {
			http.Error(w, "wrong model", http.StatusBadRequest)
			return
		}
		if r.Header.Get("Authorization") != "Token abc123" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if r.Header.Get("Content-Type") != "audio/wav" {
			http.Error(w, "content type", http.StatusUnsupportedMediaType)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"text": "cleared to land"})
	}))
	defer srv.Close()

	b := NewWhisperHTTPBackend("generic", srv.URL, "whisper-small.en", "en-US", "abc123")
	b.client = srv.Client()

	got, err := b.Transcribe(context.Background(), []float64{0.0, 0.5, -0.5}, 16000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "cleared to land" {
		t.Fatalf("expected hypothesis, got %q", got)
	}
}

func TestWhisperHTTPBackendServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	b := NewWhisperHTTPBackend("generic", srv.URL, "m", "", "")
	b.client = srv.Client()

	_, err := b.Transcribe(context.Background(), []float64{0.1}, 16000)
	if err == nil {
		t.Fatal("expected error")
	}
	if KindOf(err) != FailureInference {
		t.Fatalf("expected inference kind, got %s", KindOf(err))
	}
}

func TestWhisperHTTPBackendBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not json</html>")
	}))
	defer srv.Close()

	b := NewWhisperHTTPBackend("generic", srv.URL, "m", "", "")
	b.client = srv.Client()

	_, err := b.Transcribe(context.Background(), []float64{0.1}, 16000)
	if KindOf(err) != FailureDecode {
		t.Fatalf("expected decode kind, got %v", err)
	}
}

func TestEncodeWAVClampsAndSizes(t *testing.T) {
	data, err := EncodeWAV([]float64{0.0, 1.5, -1.5, 0.25}, 8000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) < 44 {
		t.Fatalf("wav payload too small: %d bytes", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Fatalf("missing riff/wave header: %q %q", data[0:4], data[8:12])
	}
}

func TestEncodeWAVRejectsBadSampleRate(t *testing.T) {
	if _, err := EncodeWAV([]float64{0.1}, 0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}

func TestRegistry(t *testing.T) {
	cases := []struct {
		name    string
		cfg     config.BackendConfig
		wantErr bool
	}{
		{"http ok", config.BackendConfig{Kind: config.KindHTTP, Endpoint: "http://localhost:9000"}, false},
		{"http missing endpoint", config.BackendConfig{Kind: config.KindHTTP}, true},
		{"google ok", config.BackendConfig{Kind: config.KindGoogle, Model: "latest_short"}, false},
		{"tencent ok", config.BackendConfig{Kind: config.KindTencent, APIKey: "id", APISecret: "key", Region: "ap-singapore"}, false},
		{"tencent missing creds", config.BackendConfig{Kind: config.KindTencent, Region: "ap-singapore"}, true},
		{"tencent missing region", config.BackendConfig{Kind: config.KindTencent, APIKey: "id", APISecret: "key"}, true},
		{"mock ok", config.BackendConfig{Kind: config.KindMock}, false},
		{"unknown kind", config.BackendConfig{Kind: "sphinx"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := New("generic", tc.cfg)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if b.Name() != "generic" {
				t.Fatalf("backend must carry its role name, got %q", b.Name())
			}
		})
	}
}
