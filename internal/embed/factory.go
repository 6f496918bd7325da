package embed

import (
	"context"
	"fmt"
	"os"
	"strings"

	coreerrors "github.com/repoindex/core/internal/errors"
)

// ProviderType names a concrete embedding backend.
type ProviderType string

const (
	// ProviderOllama is the HTTP-based neural backend.
	ProviderOllama ProviderType = "ollama"
	// ProviderHash is the deterministic hash-based fallback, tagged hash-v1.
	ProviderHash ProviderType = "hash"
)

func (p ProviderType) String() string { return string(p) }

// ParseProvider converts a string to a ProviderType, defaulting to
// ProviderOllama for anything unrecognized.
func ParseProvider(s string) ProviderType {
	switch strings.ToLower(s) {
	case "hash", "static", "hash-v1":
		return ProviderHash
	default:
		return ProviderOllama
	}
}

// NewEmbedder builds the embedding pipeline's backend per spec.md §4.3:
// if modelURL is empty, the neural backend is disabled outright and the
// hash fallback is used. If modelURL is set, the neural backend is probed;
// a failed probe falls back to hash-v1 unless allowFallback is false, in
// which case the caller receives a backend-unavailable error so it can
// proceed BM25-only or abort.
func NewEmbedder(ctx context.Context, modelURL, model string, allowFallback bool) (Embedder, error) {
	if modelURL == "" {
		return wrapWithCache(NewStaticEmbedder()), nil
	}

	cfg := DefaultOllamaConfig()
	cfg.Host = modelURL
	if model != "" {
		cfg.Model = model
	}

	embedder, err := NewOllamaEmbedder(ctx, cfg)
	if err != nil {
		if allowFallback {
			return wrapWithCache(NewStaticEmbedder()), nil
		}
		return nil, coreerrors.Wrap(coreerrors.KindBackendUnavailable,
			fmt.Sprintf("neural embedding backend at %s unavailable", modelURL), err)
	}

	return wrapWithCache(embedder), nil
}

// NewEmbedderFromEnv reads EMBEDDING_MODEL_URL and builds the pipeline's
// backend accordingly. allowFallback mirrors NewEmbedder's parameter.
func NewEmbedderFromEnv(ctx context.Context, allowFallback bool) (Embedder, error) {
	modelURL := os.Getenv("EMBEDDING_MODEL_URL")
	model := os.Getenv("EMBEDDING_MODEL_NAME")
	return NewEmbedder(ctx, modelURL, model, allowFallback)
}

func wrapWithCache(e Embedder) Embedder {
	if isCacheDisabled() {
		return e
	}
	return NewCachedEmbedderWithDefaults(e)
}

// isCacheDisabled checks if embedding cache is disabled via environment.
func isCacheDisabled() bool {
	v := strings.ToLower(os.Getenv("REPOINDEX_EMBED_CACHE"))
	return v == "false" || v == "0" || v == "off" || v == "disabled"
}

// EmbedderInfo describes a constructed embedder for diagnostics.
type EmbedderInfo struct {
	Provider   ProviderType
	Model      string
	Dimensions int
	Available  bool
}

// GetInfo reports the effective provider, model, and dimensions of an
// embedder, unwrapping a cache wrapper if present.
func GetInfo(ctx context.Context, embedder Embedder) EmbedderInfo {
	inner := embedder
	if cached, ok := embedder.(*CachedEmbedder); ok {
		inner = cached.inner
	}

	info := EmbedderInfo{
		Model:      embedder.ModelName(),
		Dimensions: embedder.Dimensions(),
		Available:  embedder.Available(ctx),
	}

	if _, ok := inner.(*OllamaEmbedder); ok {
		info.Provider = ProviderOllama
	} else {
		info.Provider = ProviderHash
	}

	return info
}

// MustNewEmbedder builds an embedder and panics on failure. Only suitable
// for tests or startup paths where failure is fatal.
func MustNewEmbedder(ctx context.Context, modelURL, model string, allowFallback bool) Embedder {
	embedder, err := NewEmbedder(ctx, modelURL, model, allowFallback)
	if err != nil {
		panic(fmt.Sprintf("failed to create embedder: %v", err))
	}
	return embedder
}
