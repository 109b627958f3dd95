// Package fileutil provides file system utilities.
package fileutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data through a temporary file in the same directory
// and renames it into place, so readers see either no file or the whole file.
// An existing file at filename is replaced.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmpPath, err := writeTemp(filename, data, perm)
	if err != nil {
		return err
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// WriteNewFileAtomic is WriteFileAtomic that refuses to replace an existing
// file. The final step is a hard link, which fails with os.ErrExist when
// another writer already claimed the name.
func WriteNewFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmpPath, err := writeTemp(filename, data, perm)
	if err != nil {
		return err
	}
	defer os.Remove(tmpPath)

	if err := os.Link(tmpPath, filename); err != nil {
		return fmt.Errorf("failed to publish %s: %w", filepath.Base(filename), err)
	}
	return nil
}

// WriteJSON marshals v with indentation and writes it with WriteNewFileAtomic,
// creating the parent directory when needed.
func WriteJSON(filename string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(filename), err)
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return WriteNewFileAtomic(filename, append(data, '\n'), 0o644)
}

// writeTemp writes data to a synced temp file next to filename (renames and
// links across filesystems are not atomic) and returns its path.
func writeTemp(filename string, data []byte, perm os.FileMode) (string, error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	fail := func(format string, err error) (string, error) {
		tmpFile.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf(format, err)
	}

	if _, err := tmpFile.Write(data); err != nil {
		return fail("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fail("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Chmod(perm); err != nil {
		return fail("failed to set permissions: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	return tmpPath, nil
}
