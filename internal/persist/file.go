package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// FileSlot stores each key as a text file in a directory.
type FileSlot struct {
	BasePath string
	// Quota caps the size of a single value in bytes. Zero means unlimited.
	Quota int64
}

// NewFileSlot returns a file slot rooted at basePath. An empty basePath
// defaults to ".markyfy".
func NewFileSlot(basePath string, quota int64) *FileSlot {
	if basePath == "" {
		basePath = ".markyfy"
	}
	return &FileSlot{BasePath: basePath, Quota: quota}
}

func (s *FileSlot) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid slot key %q", key)
	}
	return filepath.Join(s.BasePath, key+".dataurl"), nil
}

// Get reads the value stored under key.
func (s *FileSlot) Get(ctx context.Context, key string) (string, error) {
	p, err := s.path(key)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("read slot file: %w", err)
	}
	return string(data), nil
}

// Set writes value atomically: temp file in the same directory, fsync, then
// rename over the destination.
func (s *FileSlot) Set(ctx context.Context, key, value string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if s.Quota > 0 && int64(len(value)) > s.Quota {
		return ErrQuotaExceeded
	}
	if err := os.MkdirAll(s.BasePath, 0o755); err != nil {
		return fmt.Errorf("ensure slot directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.BasePath, "tmp-"+key+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.WriteString(value); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("fsync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	// Windows refuses to rename over an existing file. Elsewhere rename
	// replaces atomically and the previous value survives a crash.
	if runtime.GOOS == "windows" {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove previous slot file: %w", err)
		}
	}
	if err := os.Rename(tmpPath, p); err != nil {
		return fmt.Errorf("rename slot file: %w", err)
	}
	return nil
}

// Delete removes the file for key.
func (s *FileSlot) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove slot file: %w", err)
	}
	return nil
}
