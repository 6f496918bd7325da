package handlers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/repoindex/core/internal/config"
)

// newTestService wires a Service with a fresh store root and default config
// (no embedding backend configured, so search exercises lexical ranking).
func newTestService(t *testing.T) *Service {
	t.Helper()
	storeRoot := t.TempDir()
	cfg := config.Defaults()
	return NewService(storeRoot, &cfg)
}

// writeTree creates a small file tree under a fresh temp directory and
// returns its root.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestNewService_ClosesCleanlyWithNoEmbedder(t *testing.T) {
	s := newTestService(t)
	require.NoError(t, s.Close())
}

func TestLoadIndex_UnknownIDIsNotFound(t *testing.T) {
	s := newTestService(t)
	_, err := s.loadIndex("deadbeef")
	require.Error(t, err)
}
