// Package config loads repoindex's configuration in the layered order the
// defaults, a per-root project file, and recognized environment variables
// each take precedence over the last.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectFileName is the per-root project configuration file, checked in
// the root directory passed to Load.
const ProjectFileName = ".repoindex.yaml"

// Config is the complete resolved configuration for one run.
type Config struct {
	// StorageDir is the filesystem path for the index store (native builds
	// only). Env: STORAGE_DIR. Default: $HOME/.repoindex/indexes.
	StorageDir string `yaml:"storage_dir" json:"storage_dir"`

	// EmbeddingModelURL locates the neural embedding backend. Empty
	// disables it outright and the hash fallback is used. Env:
	// EMBEDDING_MODEL_URL.
	EmbeddingModelURL string `yaml:"embedding_model_url" json:"embedding_model_url"`

	// EmbeddingModelName selects a model at EmbeddingModelURL, if the
	// backend serves more than one. Env: EMBEDDING_MODEL_NAME.
	EmbeddingModelName string `yaml:"embedding_model_name" json:"embedding_model_name"`

	// MaxFileBytes is the default upper bound for chunking; files above it
	// are recorded (in Stats) without being chunked. Env: MAX_FILE_BYTES.
	MaxFileBytes int64 `yaml:"max_file_bytes" json:"max_file_bytes"`

	// ChunkTargetChars and ChunkMaxChars tune the text/markdown chunker's
	// flush thresholds.
	ChunkTargetChars int `yaml:"chunk_target_chars" json:"chunk_target_chars"`
	ChunkMaxChars    int `yaml:"chunk_max_chars" json:"chunk_max_chars"`

	// ANNThreshold is read from the project file and defaults to 50000. The
	// vector store does not consult it: store.NewVectorStore switches from
	// brute-force cosine to the approximate HNSW index at the fixed
	// store.ANNThreshold.
	ANNThreshold int `yaml:"ann_threshold" json:"ann_threshold"`

	// MaxTokens and Limit are the search engine's default token budget and
	// result count, overridable per query.
	MaxTokens int `yaml:"max_tokens" json:"max_tokens"`
	Limit     int `yaml:"limit" json:"limit"`

	// LogLevel controls internal/logging's verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// Defaults returns the hardcoded baseline configuration, matching spec.md
// §6's documented defaults.
func Defaults() Config {
	return Config{
		StorageDir:       defaultStorageDir(),
		MaxFileBytes:     1024 * 1024,
		ChunkTargetChars: 2000,
		ChunkMaxChars:    3000,
		ANNThreshold:     50000,
		MaxTokens:        16000,
		Limit:            10,
		LogLevel:         "info",
	}
}

func defaultStorageDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".repoindex", "indexes")
	}
	return filepath.Join(home, ".repoindex", "indexes")
}

// Load resolves configuration for the project rooted at dir: defaults, then
// dir/.repoindex.yaml if present, then recognized environment variables,
// highest precedence last.
func Load(dir string) (*Config, error) {
	cfg := Defaults()

	if err := cfg.loadProjectFile(dir); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) loadProjectFile(dir string) error {
	path := filepath.Join(dir, ProjectFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read project config %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("parse project config %s: %w", path, err)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith overlays non-zero fields of other onto c.
func (c *Config) mergeWith(other *Config) {
	if other.StorageDir != "" {
		c.StorageDir = other.StorageDir
	}
	if other.EmbeddingModelURL != "" {
		c.EmbeddingModelURL = other.EmbeddingModelURL
	}
	if other.EmbeddingModelName != "" {
		c.EmbeddingModelName = other.EmbeddingModelName
	}
	if other.MaxFileBytes != 0 {
		c.MaxFileBytes = other.MaxFileBytes
	}
	if other.ChunkTargetChars != 0 {
		c.ChunkTargetChars = other.ChunkTargetChars
	}
	if other.ChunkMaxChars != 0 {
		c.ChunkMaxChars = other.ChunkMaxChars
	}
	if other.ANNThreshold != 0 {
		c.ANNThreshold = other.ANNThreshold
	}
	if other.MaxTokens != 0 {
		c.MaxTokens = other.MaxTokens
	}
	if other.Limit != 0 {
		c.Limit = other.Limit
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
}

// applyEnvOverrides applies the recognized environment keys of spec.md §6,
// taking precedence over both defaults and the project file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("STORAGE_DIR"); v != "" {
		c.StorageDir = v
	}
	if v := os.Getenv("EMBEDDING_MODEL_URL"); v != "" {
		c.EmbeddingModelURL = v
	} else if _, set := os.LookupEnv("EMBEDDING_MODEL_URL"); set {
		// Explicitly set to empty disables the neural backend outright,
		// overriding any project-file value (spec.md §4.3/§8 S5).
		c.EmbeddingModelURL = ""
	}
	if v := os.Getenv("EMBEDDING_MODEL_NAME"); v != "" {
		c.EmbeddingModelName = v
	}
	if v := os.Getenv("MAX_FILE_BYTES"); v != "" {
		if n, err := parseInt64(v); err == nil && n > 0 {
			c.MaxFileBytes = n
		}
	}
	if v := os.Getenv("REPOINDEX_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

func parseInt64(s string) (int64, error) {
	var n int64
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}

// Validate rejects a configuration spec.md's invariants would reject.
func (c *Config) Validate() error {
	if c.MaxFileBytes <= 0 {
		return fmt.Errorf("max_file_bytes must be positive, got %d", c.MaxFileBytes)
	}
	if c.ChunkTargetChars <= 0 {
		return fmt.Errorf("chunk_target_chars must be positive, got %d", c.ChunkTargetChars)
	}
	if c.ChunkMaxChars < c.ChunkTargetChars {
		return fmt.Errorf("chunk_max_chars (%d) must be >= chunk_target_chars (%d)", c.ChunkMaxChars, c.ChunkTargetChars)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", c.Limit)
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %s", c.LogLevel)
	}
	return nil
}

// WriteYAML writes c to path, used by `repoindex init` to scaffold a
// project file a user can then hand-edit.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
