package iofs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/olimci/frontity-create/pkg/utils/fileutils"
)

var ErrNotDirectory = errors.New("not a directory")

// FromOS wraps a directory on the local filesystem.
func FromOS(path string) *OSFS {
	return &OSFS{path: path}
}

var _ Writable = (*OSFS)(nil)

type OSFS struct {
	path string
}

// EnsureRoot creates the directory if it is missing and reports whether it
// was already there.
func (o *OSFS) EnsureRoot() (bool, error) {
	info, err := os.Stat(o.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err := os.MkdirAll(o.path, 0o755); err != nil {
				return false, fmt.Errorf("creating directory %q: %w", o.path, err)
			}
			return false, nil
		}
		return false, fmt.Errorf("stat directory %q: %w", o.path, err)
	}
	if !info.IsDir() {
		return true, fmt.Errorf("%q: %w", o.path, ErrNotDirectory)
	}
	return true, nil
}

// Entries lists the names of the directory's top-level entries.
func (o *OSFS) Entries() ([]string, error) {
	entries, err := os.ReadDir(o.path)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name()
	}
	return names, nil
}

func (o *OSFS) MkdirAll(rel string, perm fs.FileMode) error {
	return os.MkdirAll(filepath.Join(o.path, rel), perm)
}

func (o *OSFS) RemoveAll(rel string) error {
	return os.RemoveAll(filepath.Join(o.path, rel))
}

// Write creates or replaces rel atomically, creating parent directories.
func (o *OSFS) Write(rel string, gen WriterFunc) error {
	full := filepath.Join(o.path, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return fileutils.AtomicWrite(full, gen)
}
