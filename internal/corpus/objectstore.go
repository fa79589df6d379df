package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/HungryDevMC/atc-transcriber-eu/internal/config"
)

// manifestObject names the index file an object-store corpus must carry under
// its prefix. It lists audio objects and their reference transcripts in
// corpus order.
const manifestObject = "manifest.json"

// ObjectStoreSource reads a corpus mirrored into a MinIO/S3 bucket.
type ObjectStoreSource struct {
	client *minio.Client
	bucket string
	prefix string
}

func NewObjectStoreSource(cfg config.ObjectStoreConfig) (*ObjectStoreSource, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize object store client: %w", err)
	}
	return &ObjectStoreSource{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

func (s *ObjectStoreSource) Name() string {
	return fmt.Sprintf("objectstore:%s/%s", s.bucket, s.prefix)
}

type manifest struct {
	Entries []struct {
		Object string `json:"object"`
		Text   string `json:"text"`
	} `json:"entries"`
}

func (s *ObjectStoreSource) Load(ctx context.Context, count int) ([]Sample, error) {
	if count <= 0 {
		return []Sample{}, nil
	}

	manifestBytes, err := s.getObjectBytes(ctx, path.Join(s.prefix, manifestObject))
	if err != nil {
		return nil, fmt.Errorf("%w: fetch manifest: %v", ErrUnavailable, err)
	}

	var m manifest
	if err := json.Unmarshal(manifestBytes, &m); err != nil {
		return nil, fmt.Errorf("%w: parse manifest: %v", ErrUnavailable, err)
	}

	samples := make([]Sample, 0, count)
	for _, entry := range m.Entries {
		if len(samples) >= count {
			break
		}
		audioBytes, err := s.getObjectBytes(ctx, path.Join(s.prefix, entry.Object))
		if err != nil {
			return nil, fmt.Errorf("%w: fetch object %q: %v", ErrUnavailable, entry.Object, err)
		}
		waveform, sampleRate, err := DecodeWAV(audioBytes)
		if err != nil {
			return nil, fmt.Errorf("%w: decode object %q: %v", ErrUnavailable, entry.Object, err)
		}
		samples = append(samples, Sample{
			ID:         len(samples),
			Audio:      waveform,
			SampleRate: sampleRate,
			Reference:  entry.Text,
		})
	}

	log.Printf("Loaded %d corpus samples from bucket %s", len(samples), s.bucket)
	return samples, nil
}

func (s *ObjectStoreSource) getObjectBytes(ctx context.Context, objectName string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %q from bucket %q: %w", objectName, s.bucket, err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("read object %q: %w", objectName, err)
	}
	return data, nil
}
