package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// writeFileAtomic serializes v as JSON and writes it to path via a temp
// file plus rename, so a reader never observes a partially written file.
func writeFileAtomic(path string, v any, indent bool) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	var data []byte
	var err error
	if indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	tmp, err := os.Create(tmpPath)
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// jsonCorruptError marks a JSON unmarshal failure on an on-disk artifact,
// distinct from an OS-level read failure (missing file, permission denied).
// Callers use isJSONCorrupt to choose KindCorruptState over KindIOError and
// to quarantine the offending file.
type jsonCorruptError struct {
	err error
}

func (e *jsonCorruptError) Error() string { return e.err.Error() }
func (e *jsonCorruptError) Unwrap() error { return e.err }

func readFileJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &jsonCorruptError{err: err}
	}
	return nil
}

// isJSONCorrupt reports whether err was produced by a JSON unmarshal
// failure in readFileJSON, as opposed to an OS-level read failure.
func isJSONCorrupt(err error) bool {
	var jerr *jsonCorruptError
	return errors.As(err, &jerr)
}

// quarantineCorruptFile renames path to path+".corrupt" so a corrupt
// artifact is preserved for inspection rather than silently overwritten or
// misread again on the next load.
func quarantineCorruptFile(path string) error {
	if err := os.Rename(path, path+".corrupt"); err != nil {
		return fmt.Errorf("quarantine corrupt file %s: %w", path, err)
	}
	return nil
}
