package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LoadJSON decodes the JSON document at path into dst. A file that cannot be
// read yields ErrIO wrapping the *fs.PathError; malformed content yields
// ErrSchemaValidation.
func LoadJSON(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Error{Kind: ErrIO, Index: -1, Err: err}
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return &Error{Kind: ErrSchemaValidation, Index: -1, Err: fmt.Errorf("failed to decode %s: %w", path, err)}
	}
	return nil
}

// SaveJSON writes v to path as indented JSON. The file is replaced atomically:
// readers see either the old content or the new one, never a partial write.
func SaveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	data = append(data, '\n')
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return &Error{Kind: ErrIO, Index: -1, Err: err}
	}
	return nil
}

// SaveTable writes records to path as a table file.
func SaveTable[T Record](path string, records []T) error {
	if records == nil {
		records = []T{}
	}
	return SaveJSON(path, records)
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}
