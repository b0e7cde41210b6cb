// Package writer exposes sinks for serialized style snapshots.
package writer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Sink receives one complete serialized document.
type Sink interface {
	Write(buf []byte) error
}

// DefaultTempPrefix names the scratch file a FileWriter renames into place.
const DefaultTempPrefix = ".stylekit-tmp-*"

// DefaultFileMode is the permission of a written snapshot.
const DefaultFileMode fs.FileMode = 0o644

// Option configures a FileWriter.
type Option func(*FileWriter)

// WithTempPrefix sets the os.CreateTemp pattern of the scratch file.
func WithTempPrefix(pattern string) Option {
	return func(w *FileWriter) { w.tempPrefix = pattern }
}

// WithFileMode sets the permission bits of the written file.
func WithFileMode(mode fs.FileMode) Option {
	return func(w *FileWriter) { w.mode = mode }
}

// WithCreateDirs makes Write create missing parent directories.
func WithCreateDirs() Option {
	return func(w *FileWriter) { w.mkdir = true }
}

// FileWriter replaces a file with each document it receives. Readers of the
// path see either the previous document or the new one, never a mix.
type FileWriter struct {
	Path       string
	tempPrefix string
	mode       fs.FileMode
	mkdir      bool
}

// NewFileWriter returns a writer for path.
func NewFileWriter(path string, opts ...Option) *FileWriter {
	w := &FileWriter{Path: path, tempPrefix: DefaultTempPrefix, mode: DefaultFileMode}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write stores buf at w.Path.
func (w *FileWriter) Write(buf []byte) error {
	if w.Path == "" {
		return errors.New("file writer: empty path")
	}
	dir := filepath.Dir(w.Path)
	if w.mkdir {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	tmpPath, err := w.stage(dir, buf)
	if err != nil {
		return err
	}
	if err := os.Rename(tmpPath, w.Path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", w.Path, err)
	}
	return nil
}

// stage writes buf to a synced scratch file next to the target, so the
// rename stays on one filesystem, and returns its path.
func (w *FileWriter) stage(dir string, buf []byte) (string, error) {
	prefix, mode := w.tempPrefix, w.mode
	if prefix == "" {
		prefix = DefaultTempPrefix
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	f, err := os.CreateTemp(dir, prefix)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	fail := func(step string, err error) (string, error) {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("%s temp file: %w", step, err)
	}

	if _, err := f.Write(buf); err != nil {
		return fail("write", err)
	}
	if err := f.Chmod(mode); err != nil {
		return fail("chmod", err)
	}
	if err := f.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return path, nil
}
