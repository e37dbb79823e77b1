// Package config holds the application configuration and its defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Scanner   ScannerConfig   `yaml:"scanner,omitempty"`
	Embedding EmbeddingConfig `yaml:"embedding,omitempty"`
	Cluster   ClusterConfig   `yaml:"cluster,omitempty"`
}

// ScannerConfig controls repository scanning.
type ScannerConfig struct {
	// Workers is the maximum number of files processed in parallel.
	Workers int `yaml:"workers,omitempty"`

	// IgnoreFiles are filenames excluded in addition to .gitignore rules.
	IgnoreFiles []string `yaml:"ignore_files,omitempty"`

	// SensitiveFiles are never included in the output, regardless of
	// other filters.
	SensitiveFiles []string `yaml:"sensitive_files,omitempty"`

	// IncludeExtensions restricts scanning to these extensions.
	// Empty means all extensions are included.
	IncludeExtensions []string `yaml:"include_extensions,omitempty"`

	// CachePath is where the scan cache is persisted.
	CachePath string `yaml:"cache_path,omitempty"`
}

// EmbeddingConfig holds embedding provider configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"` // "ollama" | "openai"
	BaseURL   string `yaml:"base_url,omitempty"`
	Model     string `yaml:"model,omitempty"`
	APIKey    string `yaml:"api_key,omitempty"`
	BatchSize int    `yaml:"batch_size,omitempty"`
}

// ClusterConfig holds clustering parameters.
type ClusterConfig struct {
	Count int   `yaml:"count,omitempty"`
	Seed  int64 `yaml:"seed,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Scanner: ScannerConfig{
			Workers:        8,
			IgnoreFiles:    []string{"LICENSE.md", "PRIVACY.md"},
			SensitiveFiles: []string{".env", ".env.local", ".env.production"},
			CachePath:      ".repoatlas_cache.json",
		},
		Embedding: EmbeddingConfig{
			Provider:  "ollama",
			BaseURL:   "http://localhost:11434",
			Model:     "nomic-embed-text",
			BatchSize: 32,
		},
		Cluster: ClusterConfig{
			Count: 5,
			Seed:  42,
		},
	}
}

// Load reads a YAML config file and overlays it onto the defaults.
// A missing file is not an error; the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Scanner.Workers <= 0 {
		cfg.Scanner.Workers = 8
	}
	if cfg.Embedding.BatchSize <= 0 {
		cfg.Embedding.BatchSize = 32
	}
	return cfg, nil
}
