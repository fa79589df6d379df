package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/HungryDevMC/atc-transcriber-eu/internal/config"
)

// HuggingFaceSource reads labeled audio rows through the Hugging Face
// datasets-server rows API and fetches each row's audio asset.
type HuggingFaceSource struct {
	Endpoint string
	Dataset  string
	Subset   string
	Split    string
	Client   *http.Client
}

func NewHuggingFaceSource(cfg config.CorpusConfig) *HuggingFaceSource {
	subset := cfg.Subset
	if subset == "" {
		subset = "default"
	}
	split := cfg.Split
	if split == "" {
		split = "test"
	}
	return &HuggingFaceSource{
		Endpoint: cfg.Endpoint,
		Dataset:  cfg.Dataset,
		Subset:   subset,
		Split:    split,
		Client:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *HuggingFaceSource) Name() string {
	return fmt.Sprintf("huggingface:%s/%s", s.Dataset, s.Split)
}

type rowsResponse struct {
	Rows []struct {
		RowIdx int `json:"row_idx"`
		Row    struct {
			Audio []struct {
				Src  string `json:"src"`
				Type string `json:"type"`
			} `json:"audio"`
			Text string `json:"text"`
		} `json:"row"`
	} `json:"rows"`
}

func (s *HuggingFaceSource) Load(ctx context.Context, count int) ([]Sample, error) {
	if count <= 0 {
		return []Sample{}, nil
	}

	reqURL, err := url.Parse(s.Endpoint + "/rows")
	if err != nil {
		return nil, fmt.Errorf("%w: bad endpoint: %v", ErrUnavailable, err)
	}
	query := reqURL.Query()
	query.Set("dataset", s.Dataset)
	query.Set("config", s.Subset)
	query.Set("split", s.Split)
	query.Set("offset", "0")
	query.Set("length", fmt.Sprintf("%d", count))
	reqURL.RawQuery = query.Encode()

	log.Printf("Loading corpus rows from %s", reqURL.String())
	body, err := s.get(ctx, reqURL.String())
	if err != nil {
		return nil, fmt.Errorf("%w: fetch rows: %v", ErrUnavailable, err)
	}

	var resp rowsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: parse rows response: %v", ErrUnavailable, err)
	}

	samples := make([]Sample, 0, count)
	for _, row := range resp.Rows {
		if len(samples) >= count {
			break
		}
		if len(row.Row.Audio) == 0 || row.Row.Audio[0].Src == "" {
			return nil, fmt.Errorf("%w: row %d has no audio asset", ErrUnavailable, row.RowIdx)
		}
		audioBytes, err := s.get(ctx, row.Row.Audio[0].Src)
		if err != nil {
			return nil, fmt.Errorf("%w: fetch audio for row %d: %v", ErrUnavailable, row.RowIdx, err)
		}
		waveform, sampleRate, err := DecodeWAV(audioBytes)
		if err != nil {
			return nil, fmt.Errorf("%w: decode audio for row %d: %v", ErrUnavailable, row.RowIdx, err)
		}
		samples = append(samples, Sample{
			ID:         len(samples),
			Audio:      waveform,
			SampleRate: sampleRate,
			Reference:  row.Row.Text,
		})
	}

	log.Printf("Loaded %d corpus samples", len(samples))
	return samples, nil
}

func (s *HuggingFaceSource) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, */*")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return body, nil
}
