package embed

import (
	"errors"
	"fmt"

	"repoatlas/internal/config"
)

// ErrUnknownProvider is returned when the configured provider has no
// implementation.
var ErrUnknownProvider = errors.New("unknown embedding provider")

// New builds an Embedder from configuration.
func New(cfg config.EmbeddingConfig) (Embedder, error) {
	switch cfg.Provider {
	case "ollama":
		return NewOllamaEmbedder(cfg.BaseURL, cfg.Model), nil
	case "openai":
		return NewOpenAIEmbedder(cfg.BaseURL, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
