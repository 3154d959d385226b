package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EmbeddingConfig points at the category embedding artifacts.
type EmbeddingConfig struct {
	MappingsDir  string `yaml:"mappings_dir"`
	ArtifactPath string `yaml:"artifact_path"`
}

// ProfileConfig tunes profile inference.
type ProfileConfig struct {
	Temperature          float64 `yaml:"temperature"`
	IncludeMissingAsZero *bool   `yaml:"include_missing_as_zero,omitempty"`
	FocusGroup           string  `yaml:"focus_group"`
}

// MatchConfig tunes match score composition.
type MatchConfig struct {
	KeywordWeight float64 `yaml:"keyword_weight"`
	TypeWeight    float64 `yaml:"type_weight"`
	Beta          float64 `yaml:"beta"`
	DatasetPath   string  `yaml:"dataset_path"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Embedding EmbeddingConfig `yaml:"embedding"`
	Profile   ProfileConfig   `yaml:"profile"`
	Match     MatchConfig     `yaml:"match"`
	Server    ServerConfig    `yaml:"server"`
}

// IncludeMissingAsZero resolves the optional flag, defaulting to true
// so keyword output always spans the full vocabulary.
func (c *AppConfig) IncludeMissingAsZero() bool {
	if c.Profile.IncludeMissingAsZero == nil {
		return true
	}
	return *c.Profile.IncludeMissingAsZero
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, nil
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

// LoadDefault tries ./config.yaml first, then ~/.config/spendmatch/config.yaml.
// If neither exists, it writes defaults to ~/.config/spendmatch/config.yaml and returns them.
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
	return filepath.Join(home, ".config", "spendmatch", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Embedding: EmbeddingConfig{
			MappingsDir:  "mappings",
			ArtifactPath: filepath.Join("artifacts", "small_embeddings.npy"),
		},
		Profile: ProfileConfig{Temperature: 0.7, FocusGroup: "음식"},
		Match:   MatchConfig{KeywordWeight: 0.7, TypeWeight: 0.3, Beta: 0.5},
		Server:  ServerConfig{Addr: ":8080"},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Embedding.MappingsDir == "" {
		cfg.Embedding.MappingsDir = "mappings"
	}
	if cfg.Embedding.ArtifactPath == "" {
		cfg.Embedding.ArtifactPath = filepath.Join("artifacts", "small_embeddings.npy")
	}
	if cfg.Profile.Temperature == 0 {
		cfg.Profile.Temperature = 0.7
	}
	if cfg.Profile.FocusGroup == "" {
		cfg.Profile.FocusGroup = "음식"
	}
	if cfg.Match.KeywordWeight == 0 && cfg.Match.TypeWeight == 0 {
		cfg.Match.KeywordWeight = 0.7
		cfg.Match.TypeWeight = 0.3
	}
	if cfg.Match.Beta == 0 {
		cfg.Match.Beta = 0.5
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
}
