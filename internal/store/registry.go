package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	coreerrors "github.com/repoindex/core/internal/errors"
)

func registryPath(storeRoot string) string {
	return filepath.Join(storeRoot, "registry.json")
}

func registryLockPath(storeRoot string) string {
	return filepath.Join(storeRoot, ".registry.lock")
}

// HashRootPath derives a registry key from an absolute project root path,
// so two different absolute paths never collide under case-sensitive or
// length-limited filesystems.
func HashRootPath(absoluteRootPath string) string {
	sum := sha256.Sum256([]byte(absoluteRootPath))
	return hex.EncodeToString(sum[:])
}

// LoadRegistry reads the registry file, returning an empty one if it does
// not exist yet.
func LoadRegistry(storeRoot string) (*Registry, error) {
	path := registryPath(storeRoot)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewRegistry(), nil
	}

	var reg Registry
	if err := readFileJSON(path, &reg); err != nil {
		if isJSONCorrupt(err) {
			if qerr := quarantineCorruptFile(path); qerr != nil {
				return nil, coreerrors.Wrap(coreerrors.KindIOError, fmt.Sprintf("quarantine corrupt registry %s", path), qerr)
			}
			return nil, coreerrors.Wrap(coreerrors.KindCorruptState,
				fmt.Sprintf("registry %s is corrupt, quarantined as %s.corrupt", path, path), err)
		}
		return nil, coreerrors.Wrap(coreerrors.KindIOError, "read registry", err)
	}
	if reg.Indexes == nil {
		reg.Indexes = make(map[string]IndexMetadata)
	}
	return &reg, nil
}

// SaveRegistry atomically writes the registry file.
func SaveRegistry(storeRoot string, reg *Registry) error {
	if err := writeFileAtomic(registryPath(storeRoot), reg, true); err != nil {
		return coreerrors.Wrap(coreerrors.KindIOError, "write registry", err)
	}
	return nil
}

// WithRegistryLock acquires an exclusive cross-process lock on the registry,
// loads it, runs fn, saves any modifications fn made, and releases the lock.
// This is the single-writer gate spec'd for registry mutation: the index and
// manage operations must use it so concurrent processes never interleave
// writes.
func WithRegistryLock(storeRoot string, fn func(reg *Registry) error) error {
	if err := os.MkdirAll(storeRoot, 0o755); err != nil {
		return coreerrors.Wrap(coreerrors.KindIOError, "create store root", err)
	}

	lock := flock.New(registryLockPath(storeRoot))
	if err := lock.Lock(); err != nil {
		return coreerrors.Wrap(coreerrors.KindIOError, "acquire registry lock", err)
	}
	defer lock.Unlock()

	reg, err := LoadRegistry(storeRoot)
	if err != nil {
		return err
	}

	if err := fn(reg); err != nil {
		return err
	}

	return SaveRegistry(storeRoot, reg)
}

// Lookup finds the index metadata for an absolute root path, if indexed.
func (r *Registry) Lookup(absoluteRootPath string) (IndexMetadata, bool) {
	meta, ok := r.Indexes[HashRootPath(absoluteRootPath)]
	return meta, ok
}

// Put records or replaces the index metadata for an absolute root path.
func (r *Registry) Put(absoluteRootPath string, meta IndexMetadata) {
	if r.Indexes == nil {
		r.Indexes = make(map[string]IndexMetadata)
	}
	r.Indexes[HashRootPath(absoluteRootPath)] = meta
}

// Remove deletes the registry entry for an absolute root path.
func (r *Registry) Remove(absoluteRootPath string) {
	delete(r.Indexes, HashRootPath(absoluteRootPath))
}
