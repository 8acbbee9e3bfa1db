package services

import (
	"context"
	"fmt"
	"strings"
)

const (
	ProviderGemini  = "gemini"
	ProviderOpenAI  = "openai"
	ProviderHashing = "hashing"
)

// Embedder maps text to a fixed-length vector. Implementations must be safe for
// concurrent use once constructed.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Name() string
}

type EmbedderConfig struct {
	Provider     string
	Model        string
	GeminiAPIKey string
	OpenAIAPIKey string
	Dimensions   int
}

// ModelHandle holds the outcome of loading the embedding model at startup. A failed
// load is kept so every screening request can report it instead of retrying.
type ModelHandle struct {
	embedder Embedder
	err      error
}

func NewModelHandle(embedder Embedder) *ModelHandle {
	if embedder == nil {
		return &ModelHandle{err: fmt.Errorf("no embedder configured")}
	}
	return &ModelHandle{embedder: embedder}
}

func FailedModelHandle(err error) *ModelHandle {
	return &ModelHandle{err: err}
}

// LoadModel builds the configured embedder once. It never returns nil.
func LoadModel(ctx context.Context, cfg EmbedderConfig) *ModelHandle {
	embedder, err := newEmbedder(ctx, cfg)
	if err != nil {
		return FailedModelHandle(err)
	}
	return NewModelHandle(embedder)
}

func newEmbedder(ctx context.Context, cfg EmbedderConfig) (Embedder, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderGemini:
		return NewGeminiEmbedder(ctx, cfg.GeminiAPIKey, cfg.Model)
	case ProviderOpenAI:
		return NewOpenAIEmbedder(cfg.OpenAIAPIKey, cfg.Model)
	case ProviderHashing:
		return NewHashingEmbedder(cfg.Dimensions), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

// Embedder returns the loaded embedder, or an error wrapping ErrModelNotLoaded.
func (m *ModelHandle) Embedder() (Embedder, error) {
	if m == nil {
		return nil, ErrModelNotLoaded
	}
	if m.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelNotLoaded, m.err)
	}
	return m.embedder, nil
}

func (m *ModelHandle) Loaded() bool {
	return m != nil && m.err == nil
}

func (m *ModelHandle) Name() string {
	if !m.Loaded() {
		return ""
	}
	return m.embedder.Name()
}

// Err returns the load failure, if any.
func (m *ModelHandle) Err() error {
	if m == nil {
		return ErrModelNotLoaded
	}
	return m.err
}
