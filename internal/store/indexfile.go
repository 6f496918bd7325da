package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	coreerrors "github.com/repoindex/core/internal/errors"
)

// indexFilePath returns the on-disk path for one index's artifact:
// <store_root>/<index_id>.json
func indexFilePath(storeRoot, indexID string) string {
	return filepath.Join(storeRoot, indexID+".json")
}

// SaveIndexFile atomically writes idx to its canonical path under storeRoot.
func SaveIndexFile(storeRoot string, idx *IndexFile) error {
	if idx.Version == 0 {
		idx.Version = CurrentVersion
	}
	path := indexFilePath(storeRoot, idx.IndexID)
	if err := writeFileAtomic(path, idx, false); err != nil {
		return coreerrors.Wrap(coreerrors.KindIOError, fmt.Sprintf("write index file %s", path), err)
	}
	return nil
}

// LoadIndexFile reads and validates one index's artifact from storeRoot.
// A Version newer than CurrentVersion is refused rather than silently
// misread, since this process cannot know what a newer schema added.
func LoadIndexFile(storeRoot, indexID string) (*IndexFile, error) {
	path := indexFilePath(storeRoot, indexID)
	var idx IndexFile
	if err := readFileJSON(path, &idx); err != nil {
		if isJSONCorrupt(err) {
			if qerr := quarantineCorruptFile(path); qerr != nil {
				return nil, coreerrors.Wrap(coreerrors.KindIOError, fmt.Sprintf("quarantine corrupt index file %s", path), qerr)
			}
			return nil, coreerrors.Wrap(coreerrors.KindCorruptState,
				fmt.Sprintf("index file %s is corrupt, quarantined as %s.corrupt", path, path), err)
		}
		return nil, coreerrors.Wrap(coreerrors.KindIOError, fmt.Sprintf("read index file %s", path), err)
	}
	if idx.Version > CurrentVersion {
		return nil, coreerrors.New(coreerrors.KindCorruptState,
			fmt.Sprintf("index %s has version %d, newer than supported version %d", indexID, idx.Version, CurrentVersion))
	}
	return &idx, nil
}

// DeleteIndexFile removes one index's artifact from storeRoot. Deleting an
// index that was never written is not an error.
func DeleteIndexFile(storeRoot, indexID string) error {
	path := indexFilePath(storeRoot, indexID)
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return coreerrors.Wrap(coreerrors.KindIOError, fmt.Sprintf("delete index file %s", path), err)
	}
	return nil
}
