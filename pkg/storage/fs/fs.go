// Package fs implements storage.Storage on the local filesystem.
package fs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"skipmark/pkg/storage"
	"unicode/utf8"

	"github.com/go-faster/errors"
)

// DefaultFileMode is the permission used for files that do not exist yet.
const DefaultFileMode fs.FileMode = 0o644

// Options configure how files are written.
type Options struct {
	// FileMode is applied to newly created files. Existing files keep their mode.
	FileMode fs.FileMode
	// Sync flushes the temp file to stable storage before it replaces the destination.
	Sync bool
}

// FS is a filesystem-backed storage.Storage.
type FS struct {
	options Options
}

var _ storage.Storage = (*FS)(nil)

// New creates a filesystem storage. A zero FileMode falls back to DefaultFileMode.
func New(options Options) *FS {
	if options.FileMode == 0 {
		options.FileMode = DefaultFileMode
	}

	return &FS{options: options}
}

// ReadFile reads path in full and checks that it decodes as UTF-8.
func (f *FS) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if path == "" {
		return nil, storage.ErrEmptyPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	if !utf8.Valid(data) {
		return nil, errors.Wrapf(storage.ErrInvalidEncoding, "decode %s", path)
	}

	return data, nil
}

// WriteFile writes data to a temp file next to path and renames it over path
// once everything is flushed, so readers see either the old or the new content.
// Symlinks are followed: the link stays and its target receives the content.
// Destinations that cannot be replaced by a rename (devices, pipes, files in a
// read-only directory) are written directly from the complete buffer.
func (f *FS) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if path == "" {
		return storage.ErrEmptyPath
	}

	target, err := filepath.EvalSymlinks(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		target = path
	case err != nil:
		return errors.Wrapf(err, "resolve %s", path)
	}

	mode := f.options.FileMode
	if info, err := os.Stat(target); err == nil {
		if !info.Mode().IsRegular() {
			return f.writeDirect(target, data, mode)
		}
		mode = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "stat %s", target)
	}

	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".tmp-*")
	if errors.Is(err, fs.ErrPermission) {
		return f.writeDirect(target, data, mode)
	}
	if err != nil {
		return errors.Wrapf(err, "create temp file in %s", dir)
	}
	tmpPath := tmp.Name()

	if err := f.fill(tmp, data, mode); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)

		return errors.Wrapf(err, "write %s", tmpPath)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)

		return errors.Wrapf(err, "close %s", tmpPath)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)

		return errors.Wrapf(err, "replace %s", target)
	}

	return nil
}

// writeDirect truncates and writes target in one call.
func (f *FS) writeDirect(target string, data []byte, mode fs.FileMode) error {
	if err := os.WriteFile(target, data, mode); err != nil {
		return errors.Wrapf(err, "write %s", target)
	}

	return nil
}

func (f *FS) fill(tmp *os.File, data []byte, mode fs.FileMode) error {
	if err := tmp.Chmod(mode); err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if f.options.Sync {
		return tmp.Sync()
	}

	return nil
}
