package backends

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

// GoogleBackend transcribes through Google Cloud Speech-to-Text. The client
// is acquired once and reused across calls within a run.
type GoogleBackend struct {
	name      string
	model     string
	language  string
	credsPath string

	mu     sync.Mutex
	client *speech.Client
}

func NewGoogleBackend(name, model, language, credsPath string) *GoogleBackend {
	if language == "" {
		language = "en-US"
	}
	return &GoogleBackend{
		name:      name,
		model:     model,
		language:  language,
		credsPath: credsPath,
	}
}

func (b *GoogleBackend) Name() string { return b.name }

func (b *GoogleBackend) speechClient(ctx context.Context) (*speech.Client, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.client != nil {
		return b.client, nil
	}

	var opts []option.ClientOption
	if b.credsPath != "" {
		opts = append(opts, option.WithCredentialsFile(b.credsPath))
	}
	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, invocationErr(FailureInit, "create speech client: %v", err)
	}
	b.client = client
	return client, nil
}

func (b *GoogleBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.client == nil {
		return nil
	}
	err := b.client.Close()
	b.client = nil
	return err
}

func (b *GoogleBackend) Transcribe(ctx context.Context, audio []float64, sampleRate int) (string, error) {
	client, err := b.speechClient(ctx)
	if err != nil {
		return "", err
	}

	wavBytes, err := EncodeWAV(audio, sampleRate)
	if err != nil {
		return "", invocationErr(FailureDecode, "encode audio: %v", err)
	}

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:            int32(sampleRate),
			LanguageCode:               b.language,
			Model:                      b.model,
			EnableAutomaticPunctuation: false,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: wavBytes},
		},
	}

	start := time.Now()
	resp, err := client.Recognize(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", invocationErr(FailureInference, "recognize: %v", err)
	}
	log.Printf("Backend %s inference call completed in %v", b.name, time.Since(start))

	var transcript strings.Builder
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			if transcript.Len() > 0 {
				transcript.WriteString(" ")
			}
			transcript.WriteString(result.Alternatives[0].Transcript)
		}
	}
	return strings.TrimSpace(transcript.String()), nil
}
