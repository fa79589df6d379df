package backends

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// WhisperHTTPBackend talks to a self-hosted Whisper inference server that
// accepts a WAV body and answers {"text": "..."} JSON. Both the generic and
// the ATC-tuned model are usually served this way, distinguished by the model
// query parameter.
type WhisperHTTPBackend struct {
	name     string
	endpoint string
	model    string
	language string
	apiKey   string
	client   *http.Client
}

func NewWhisperHTTPBackend(name, endpoint, model, language, apiKey string) *WhisperHTTPBackend {
	return &WhisperHTTPBackend{
		name:     name,
		endpoint: endpoint,
		model:    model,
		language: language,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 120 * time.Second},
	}
}

func (b *WhisperHTTPBackend) Name() string { return b.name }

type whisperResponse struct {
	Text string `json:"text"`
}

func (b *WhisperHTTPBackend) Transcribe(ctx context.Context, audio []float64, sampleRate int) (string, error) {
	wavBytes, err := EncodeWAV(audio, sampleRate)
	if err != nil {
		return "", invocationErr(FailureDecode, "encode audio: %v", err)
	}

	reqURL, err := url.Parse(b.endpoint)
	if err != nil {
		return "", invocationErr(FailureInit, "parse endpoint %q: %v", b.endpoint, err)
	}
	query := reqURL.Query()
	if b.model != "" {
		query.Set("model", b.model)
	}
	if b.language != "" {
		query.Set("language", b.language)
	}
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), bytes.NewReader(wavBytes))
	if err != nil {
		return "", invocationErr(FailureInit, "create request: %v", err)
	}
	req.Header.Set("Content-Type", "audio/wav")
	req.Header.Set("Accept", "application/json")
	if b.apiKey != "" {
		req.Header.Set("Authorization", "Token "+b.apiKey)
	}

	start := time.Now()
	resp, err := b.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", invocationErr(FailureInference, "send request: %v", err)
	}
	defer resp.Body.Close()
	log.Printf("Backend %s inference call completed in %v", b.name, time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", invocationErr(FailureInference, "read response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", invocationErr(FailureInference, "inference server returned %s: %s", resp.Status, truncate(string(body), 200))
	}

	var parsed whisperResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", invocationErr(FailureDecode, "parse response: %v", err)
	}
	return parsed.Text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return fmt.Sprintf("%s... (%d bytes)", s[:n], len(s))
}
