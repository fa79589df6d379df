package backends

import (
	"fmt"
	"log"

	"github.com/HungryDevMC/atc-transcriber-eu/internal/config"
)

// New builds the backend bound to the given role ("generic" or "specialized")
// from its configuration. The role becomes the backend name so result
// sequences stay keyed by role across the run.
func New(role string, cfg config.BackendConfig) (Backend, error) {
	log.Printf("Binding %s backend: kind=%s model=%s", role, cfg.Kind, cfg.Model)

	switch cfg.Kind {
	case config.KindHTTP:
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("%s backend: http kind requires an endpoint", role)
		}
		return NewWhisperHTTPBackend(role, cfg.Endpoint, cfg.Model, cfg.Language, cfg.APIKey), nil
	case config.KindGoogle:
		return NewGoogleBackend(role, cfg.Model, cfg.Language, cfg.CredentialsPath), nil
	case config.KindTencent:
		if cfg.APIKey == "" || cfg.APISecret == "" {
			return nil, fmt.Errorf("%s backend: tencent kind requires api_key and api_secret", role)
		}
		if cfg.Region == "" {
			return nil, fmt.Errorf("%s backend: tencent kind requires a region", role)
		}
		return NewTencentBackend(role, cfg.APIKey, cfg.APISecret, cfg.Region, cfg.Language), nil
	case config.KindMock:
		return NewMockBackend(role), nil
	default:
		return nil, fmt.Errorf("%s backend: unknown kind %q", role, cfg.Kind)
	}
}
