package fs_test

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"skipmark/pkg/storage"
	"skipmark/pkg/storage/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "list.txt")
	require.NoError(t, os.WriteFile(path, []byte("foo\nbär\n"), 0o600))

	got, err := fs.New(fs.Options{}).ReadFile(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, "foo\nbär\n", string(got))
}

func TestReadFile_Missing(t *testing.T) {
	_, err := fs.New(fs.Options{}).ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, iofs.ErrNotExist)
}

func TestReadFile_InvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin1.txt")
	require.NoError(t, os.WriteFile(path, []byte{'f', 0xff, 'o', '\n'}, 0o600))

	_, err := fs.New(fs.Options{}).ReadFile(context.Background(), path)
	require.ErrorIs(t, err, storage.ErrInvalidEncoding)
}

func TestReadFile_EmptyPath(t *testing.T) {
	_, err := fs.New(fs.Options{}).ReadFile(context.Background(), "")
	require.ErrorIs(t, err, storage.ErrEmptyPath)
}

func TestReadFile_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fs.New(fs.Options{}).ReadFile(ctx, "whatever")
	require.ErrorIs(t, err, context.Canceled)
}

func TestWriteFile_CreatesWithDefaultMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	require.NoError(t, fs.New(fs.Options{Sync: true}).WriteFile(context.Background(), path, []byte("[skip] bar\n")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[skip] bar\n", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, fs.DefaultFileMode, info.Mode().Perm()&fs.DefaultFileMode)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file must not be left behind")
}

func TestWriteFile_OverwriteKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src.txt")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer\n"), 0o600))
	require.NoError(t, os.Chmod(path, 0o600))

	require.NoError(t, fs.New(fs.Options{FileMode: 0o644}).WriteFile(context.Background(), path, []byte("new\n")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new\n", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, iofs.FileMode(0o600), info.Mode().Perm())
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.txt")

	err := fs.New(fs.Options{}).WriteFile(context.Background(), path, []byte("x"))
	require.Error(t, err)
	require.True(t, errors.Is(err, iofs.ErrNotExist))
}

func TestWriteFile_Directory(t *testing.T) {
	dir := t.TempDir()

	err := fs.New(fs.Options{}).WriteFile(context.Background(), dir, []byte("x"))
	require.Error(t, err)
}

func TestWriteFile_SymlinkKeepsLink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.txt")
	link := filepath.Join(dir, "link.txt")
	require.NoError(t, os.WriteFile(target, []byte("bar\n"), 0o600))
	require.NoError(t, os.Symlink(target, link))

	require.NoError(t, fs.New(fs.Options{}).WriteFile(context.Background(), link, []byte("[skip] bar\n")))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	require.NotZero(t, info.Mode()&iofs.ModeSymlink, "link must survive the write")

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, "[skip] bar\n", string(got))
}

func TestWriteFile_DevNull(t *testing.T) {
	require.NoError(t, fs.New(fs.Options{Sync: true}).WriteFile(context.Background(), os.DevNull, []byte("[skip] bar\n")))
}

func TestWriteFile_ReadOnlyDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "src.txt")
	require.NoError(t, os.WriteFile(path, []byte("bar\n"), 0o600))
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })

	require.NoError(t, fs.New(fs.Options{}).WriteFile(context.Background(), path, []byte("[skip] bar\n")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[skip] bar\n", string(got))
}
