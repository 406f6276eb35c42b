package fileutils

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestAtomicWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "package.json")

	require.NoError(t, AtomicWrite(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "{}")
		return err
	}))
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "{}", string(body))

	// a failing generator leaves the old content and no temp files
	err = AtomicWrite(path, func(w io.Writer) error {
		io.WriteString(w, "partial")
		return errors.New("boom")
	})
	require.Error(t, err)

	body, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "{}", string(body))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestCopyFS(t *testing.T) {
	src := fstest.MapFS{
		"package.json":     {Data: []byte(`{"name":"theme"}`)},
		"src/index.js":     {Data: []byte("export {};")},
		".git/HEAD":        {Data: []byte("ref: refs/heads/main")},
		".git/objects/abc": {Data: []byte("x")},
	}
	dest := filepath.Join(t.TempDir(), "theme")

	files, err := CopyFS(src, ".", dest, func(rel string, d fs.DirEntry) bool {
		return rel == ".git" || strings.HasPrefix(rel, ".git/")
	})
	require.NoError(t, err)
	require.Equal(t, 2, files)

	require.FileExists(t, filepath.Join(dest, "src", "index.js"))
	require.NoDirExists(t, filepath.Join(dest, ".git"))
}
