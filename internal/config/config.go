package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EmbeddingConfig configures the OpenAI-compatible embeddings provider.
type EmbeddingConfig struct {
	BaseURL     string `yaml:"base_url"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// TranslationConfig configures the chat-completion translation provider.
// Temperature is a pointer so an explicit 0 (fully deterministic output) is
// distinguishable from "not set".
type TranslationConfig struct {
	BaseURL     string   `yaml:"base_url"`
	Model       string   `yaml:"model"`
	TimeoutSecs int      `yaml:"timeout_secs"`
	Temperature *float32 `yaml:"temperature"`
}

// RetrievalConfig configures context scoring, ranking and budgeting.
type RetrievalConfig struct {
	Advanced         bool                  `yaml:"advanced"`
	PriorityStrategy string                `yaml:"priority_strategy"`
	MaxContextLength int                   `yaml:"max_context_length"`
	LevelBonus       float64               `yaml:"level_bonus"`
	BandWeights      map[string][3]float64 `yaml:"band_weights,omitempty"`
}

// CorpusConfig locates the pre-embedded corpus artifact.
type CorpusConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig configures the JSON file log.
type LoggingConfig struct {
	File string `yaml:"file"`
	Prod bool   `yaml:"prod"`
}

// CredentialConfig selects where the API key comes from.
type CredentialConfig struct {
	Path      string `yaml:"path,omitempty"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Embedding   EmbeddingConfig   `yaml:"embedding"`
	Translation TranslationConfig `yaml:"translation"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
	Corpus      CorpusConfig      `yaml:"corpus"`
	Logging     LoggingConfig     `yaml:"logging"`
	Credential  CredentialConfig  `yaml:"credential"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/traductor/config.yaml.
// If neither exists, it writes defaults to ~/.config/traductor/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "traductor", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "text-embedding-3-small"
	}
	if cfg.Embedding.TimeoutSecs == 0 {
		cfg.Embedding.TimeoutSecs = 30
	}
	if cfg.Translation.Model == "" {
		cfg.Translation.Model = "gpt-4o-mini"
	}
	if cfg.Translation.TimeoutSecs == 0 {
		cfg.Translation.TimeoutSecs = 60
	}
	if cfg.Translation.Temperature == nil {
		t := float32(0.2)
		cfg.Translation.Temperature = &t
	}
	if cfg.Retrieval.PriorityStrategy == "" {
		cfg.Retrieval.PriorityStrategy = "balanced"
	}
	if cfg.Retrieval.MaxContextLength == 0 {
		cfg.Retrieval.MaxContextLength = 4000
	}
	if cfg.Retrieval.LevelBonus == 0 {
		cfg.Retrieval.LevelBonus = 0.15
	}
	if cfg.Corpus.Path == "" {
		cfg.Corpus.Path = "corpus.json"
	}
	if cfg.Logging.File == "" {
		cfg.Logging.File = "logs/traductor.log"
	}
	if cfg.Credential.APIKeyEnv == "" {
		cfg.Credential.APIKeyEnv = "OPENAI_API_KEY"
	}
}
