package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Backend kinds understood by the adapter registry.
const (
	KindHTTP    = "http"
	KindGoogle  = "google"
	KindTencent = "tencent"
	KindMock    = "mock"
)

type Config struct {
	Corpus     CorpusConfig     `yaml:"corpus"`
	Backends   BackendsConfig   `yaml:"backends"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Evaluation EvaluationConfig `yaml:"evaluation"`
	API        APIConfig        `yaml:"api"`
}

type CorpusConfig struct {
	Provider    string            `yaml:"provider"` // huggingface, objectstore, static
	Endpoint    string            `yaml:"endpoint"`
	Dataset     string            `yaml:"dataset"`
	Subset      string            `yaml:"subset"`
	Split       string            `yaml:"split"`
	ObjectStore ObjectStoreConfig `yaml:"object_store"`
}

type ObjectStoreConfig struct {
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Bucket          string `yaml:"bucket"`
	Prefix          string `yaml:"prefix"`
	UseSSL          bool   `yaml:"use_ssl"`
}

type BackendsConfig struct {
	Generic     BackendConfig `yaml:"generic"`
	Specialized BackendConfig `yaml:"specialized"`
}

type BackendConfig struct {
	Kind            string `yaml:"kind"`
	Model           string `yaml:"model"`
	Endpoint        string `yaml:"endpoint"`
	APIKey          string `yaml:"api_key"`
	APISecret       string `yaml:"api_secret"`
	Region          string `yaml:"region"`
	Language        string `yaml:"language"`
	CredentialsPath string `yaml:"credentials_path"`
}

type MetricsConfig struct {
	Scorer string `yaml:"scorer"` // auto, edit_distance, approximate
}

type EvaluationConfig struct {
	SampleCount      int `yaml:"sample_count"`
	BackendTimeoutMS int `yaml:"backend_timeout_ms"`
}

type APIConfig struct {
	Bind  string `yaml:"bind"`
	Port  int    `yaml:"port"`
	Token string `yaml:"token"`
}

func Default() Config {
	return Config{
		Corpus: CorpusConfig{
			Provider: "huggingface",
			Endpoint: "https://datasets-server.huggingface.co",
			Dataset:  "jacktol/atc-dataset",
			Subset:   "default",
			Split:    "test",
		},
		Backends: BackendsConfig{
			Generic: BackendConfig{
				Kind:     KindHTTP,
				Model:    "openai/whisper-small.en",
				Endpoint: "http://localhost:9000/v1/transcribe",
				Language: "en-US",
			},
			Specialized: BackendConfig{
				Kind:     KindHTTP,
				Model:    "jacktol/whisper-medium.en-fine-tuned-for-ATC",
				Endpoint: "http://localhost:9000/v1/transcribe",
				Language: "en-US",
			},
		},
		Metrics: MetricsConfig{
			Scorer: "auto",
		},
		Evaluation: EvaluationConfig{
			SampleCount:      5,
			BackendTimeoutMS: 120000,
		},
		API: APIConfig{
			Bind: "0.0.0.0",
			Port: 8080,
		},
	}
}

// Load reads the YAML file at path (when non-empty), applies ATC_* environment
// overrides on top of the defaults, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return cfg, fmt.Errorf("config file not found: %w", err)
			}
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.Corpus.Provider, "ATC_CORPUS_PROVIDER")
	overrideString(&cfg.Corpus.Endpoint, "ATC_CORPUS_ENDPOINT")
	overrideString(&cfg.Corpus.Dataset, "ATC_CORPUS_DATASET")
	overrideString(&cfg.Corpus.Subset, "ATC_CORPUS_SUBSET")
	overrideString(&cfg.Corpus.Split, "ATC_CORPUS_SPLIT")
	overrideString(&cfg.Corpus.ObjectStore.Endpoint, "ATC_OBJECT_STORE_ENDPOINT")
	overrideString(&cfg.Corpus.ObjectStore.AccessKeyID, "ATC_OBJECT_STORE_ACCESS_KEY_ID")
	overrideString(&cfg.Corpus.ObjectStore.SecretAccessKey, "ATC_OBJECT_STORE_SECRET_ACCESS_KEY")
	overrideString(&cfg.Corpus.ObjectStore.Bucket, "ATC_OBJECT_STORE_BUCKET")
	overrideString(&cfg.Corpus.ObjectStore.Prefix, "ATC_OBJECT_STORE_PREFIX")
	overrideBool(&cfg.Corpus.ObjectStore.UseSSL, "ATC_OBJECT_STORE_USE_SSL")
	overrideBackend(&cfg.Backends.Generic, "ATC_BACKEND_GENERIC")
	overrideBackend(&cfg.Backends.Specialized, "ATC_BACKEND_SPECIALIZED")
	overrideString(&cfg.Metrics.Scorer, "ATC_METRICS_SCORER")
	overrideInt(&cfg.Evaluation.SampleCount, "ATC_EVAL_SAMPLE_COUNT")
	overrideInt(&cfg.Evaluation.BackendTimeoutMS, "ATC_EVAL_BACKEND_TIMEOUT_MS")
	overrideString(&cfg.API.Bind, "ATC_API_BIND")
	overrideInt(&cfg.API.Port, "ATC_API_PORT")
	overrideString(&cfg.API.Token, "ATC_API_TOKEN")
}

func overrideBackend(b *BackendConfig, prefix string) {
	overrideString(&b.Kind, prefix+"_KIND")
	overrideString(&b.Model, prefix+"_MODEL")
	overrideString(&b.Endpoint, prefix+"_ENDPOINT")
	overrideString(&b.APIKey, prefix+"_API_KEY")
	overrideString(&b.APISecret, prefix+"_API_SECRET")
	overrideString(&b.Region, prefix+"_REGION")
	overrideString(&b.Language, prefix+"_LANGUAGE")
	overrideString(&b.CredentialsPath, prefix+"_CREDENTIALS_PATH")
}

func overrideString(target *string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(value) != "" {
		*target = value
	}
}

func overrideInt(target *int, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

func overrideBool(target *bool, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*target = parsed
		}
	}
}

func validate(cfg Config) error {
	switch cfg.Corpus.Provider {
	case "huggingface", "objectstore", "static":
		// ok
	default:
		return errors.New("corpus.provider must be one of huggingface|objectstore|static")
	}
	if cfg.Corpus.Provider == "huggingface" {
		if cfg.Corpus.Endpoint == "" {
			return errors.New("corpus.endpoint must not be empty for the huggingface provider")
		}
		if cfg.Corpus.Dataset == "" {
			return errors.New("corpus.dataset must not be empty for the huggingface provider")
		}
	}
	if cfg.Corpus.Provider == "objectstore" {
		if cfg.Corpus.ObjectStore.Endpoint == "" || cfg.Corpus.ObjectStore.Bucket == "" {
			return errors.New("corpus.object_store.endpoint and bucket must be set for the objectstore provider")
		}
	}
	for role, b := range map[string]BackendConfig{
		"generic":     cfg.Backends.Generic,
		"specialized": cfg.Backends.Specialized,
	} {
		switch b.Kind {
		case KindHTTP, KindGoogle, KindTencent, KindMock:
			// ok
		default:
			return fmt.Errorf("backends.%s.kind must be one of http|google|tencent|mock", role)
		}
	}
	switch cfg.Metrics.Scorer {
	case "", "auto", "edit_distance", "approximate":
		// ok
	default:
		return errors.New("metrics.scorer must be one of auto|edit_distance|approximate")
	}
	if cfg.Evaluation.SampleCount < 0 {
		return errors.New("evaluation.sample_count must be >= 0")
	}
	if cfg.Evaluation.BackendTimeoutMS <= 0 {
		return errors.New("evaluation.backend_timeout_ms must be positive")
	}
	if cfg.API.Port <= 0 || cfg.API.Port > 65535 {
		return errors.New("api.port must be between 1 and 65535")
	}
	return nil
}
