package embed

import "time"

// Default values for OllamaConfig, applied by NewOllamaEmbedder when the
// caller leaves a field zero.
const (
	DefaultOllamaHost     = "http://localhost:11434"
	DefaultOllamaModel    = "nomic-embed-text"
	OllamaConnectTimeout  = 5 * time.Second
	OllamaPoolSize        = 4
)

// FallbackOllamaModels is tried in order when the configured model isn't
// present on the server.
var FallbackOllamaModels = []string{"nomic-embed-text", "mxbai-embed-large", "all-minilm"}

// OllamaConfig configures the neural embedding backend: an HTTP client
// against an Ollama-compatible embeddings endpoint. Host is populated from
// EMBEDDING_MODEL_URL by the factory; an empty EMBEDDING_MODEL_URL means no
// neural backend and the factory falls back to the hash-based embedder.
type OllamaConfig struct {
	Host            string
	Model           string
	FallbackModels  []string
	Dimensions      int
	BatchSize       int
	Timeout         time.Duration
	ConnectTimeout  time.Duration
	MaxRetries      int
	PoolSize        int
	SkipHealthCheck bool

	// InterBatchDelay, TimeoutProgression, and RetryTimeoutMultiplier tune
	// request pacing and timeout scaling for sustained embedding workloads
	// where a local inference backend slows down over a long run.
	InterBatchDelay        time.Duration
	TimeoutProgression     float64
	RetryTimeoutMultiplier float64

	// ProgressFunc, if set, is called with (completed, total) after each
	// batch EmbedBatch processes.
	ProgressFunc func(completed, total int)
}

// DefaultOllamaConfig returns an OllamaConfig with every field at its
// package default.
func DefaultOllamaConfig() OllamaConfig {
	return OllamaConfig{
		Host:                   DefaultOllamaHost,
		Model:                  DefaultOllamaModel,
		FallbackModels:         FallbackOllamaModels,
		BatchSize:              DefaultBatchSize,
		Timeout:                DefaultTimeout,
		ConnectTimeout:         OllamaConnectTimeout,
		MaxRetries:             DefaultMaxRetries,
		PoolSize:               OllamaPoolSize,
		TimeoutProgression:     1.0,
		RetryTimeoutMultiplier: 1.0,
	}
}

// OllamaEmbedRequest is the request body for POST /api/embed.
type OllamaEmbedRequest struct {
	Model string `json:"model"`
	Input any    `json:"input"`
}

// OllamaEmbedResponse is the response body for POST /api/embed.
type OllamaEmbedResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
}

// OllamaModelInfo is one entry in the /api/tags model list.
type OllamaModelInfo struct {
	Name string `json:"name"`
}

// OllamaModelListResponse is the response body for GET /api/tags.
type OllamaModelListResponse struct {
	Models []OllamaModelInfo `json:"models"`
}
