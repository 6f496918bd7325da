package store

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreerrors "github.com/repoindex/core/internal/errors"
)

func TestLoadRegistry_MissingFileReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	reg, err := LoadRegistry(dir)
	require.NoError(t, err)
	assert.Empty(t, reg.Indexes)
}

func TestSaveAndLoadRegistry_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	reg := NewRegistry()
	reg.Put("/repo/one", IndexMetadata{
		IndexID:   "idx-1",
		RootPath:  "/repo/one",
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		FileCount: 3,
	})

	require.NoError(t, SaveRegistry(dir, reg))

	loaded, err := LoadRegistry(dir)
	require.NoError(t, err)

	meta, ok := loaded.Lookup("/repo/one")
	require.True(t, ok)
	assert.Equal(t, "idx-1", meta.IndexID)
	assert.Equal(t, 3, meta.FileCount)
}

func TestRegistry_LookupMissingReturnsFalse(t *testing.T) {
	reg := NewRegistry()
	_, ok := reg.Lookup("/nope")
	assert.False(t, ok)
}

func TestRegistry_Remove(t *testing.T) {
	reg := NewRegistry()
	reg.Put("/repo/one", IndexMetadata{IndexID: "idx-1"})

	reg.Remove("/repo/one")

	_, ok := reg.Lookup("/repo/one")
	assert.False(t, ok)
}

func TestLoadRegistry_QuarantinesCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := registryPath(dir)
	require.NoError(t, os.WriteFile(path, []byte("{not valid json"), 0o644))

	_, err := LoadRegistry(dir)
	require.Error(t, err)
	assert.Equal(t, coreerrors.KindCorruptState, coreerrors.KindOf(err))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "corrupt registry should be renamed away from its canonical path")
	_, quarantineErr := os.Stat(path + ".corrupt")
	assert.NoError(t, quarantineErr, "corrupt registry should be quarantined with a .corrupt suffix")
}

func TestHashRootPath_DeterministicAndDistinct(t *testing.T) {
	a := HashRootPath("/repo/one")
	b := HashRootPath("/repo/one")
	c := HashRootPath("/repo/two")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestWithRegistryLock_PersistsMutation(t *testing.T) {
	dir := t.TempDir()

	err := WithRegistryLock(dir, func(reg *Registry) error {
		reg.Put("/repo/one", IndexMetadata{IndexID: "idx-1"})
		return nil
	})
	require.NoError(t, err)

	reg, err := LoadRegistry(dir)
	require.NoError(t, err)
	meta, ok := reg.Lookup("/repo/one")
	require.True(t, ok)
	assert.Equal(t, "idx-1", meta.IndexID)
}

func TestWithRegistryLock_ErrorSkipsSave(t *testing.T) {
	dir := t.TempDir()

	sentinel := assert.AnError
	err := WithRegistryLock(dir, func(reg *Registry) error {
		reg.Put("/repo/one", IndexMetadata{IndexID: "idx-1"})
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	reg, loadErr := LoadRegistry(dir)
	require.NoError(t, loadErr)
	_, ok := reg.Lookup("/repo/one")
	assert.False(t, ok, "a failed mutation must not be persisted")
}
