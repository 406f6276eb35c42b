package fileutils

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// CopyFS copies the tree rooted at root in fsys into dest. Entries for which
// skip returns true are left out; skipping a directory skips its contents.
func CopyFS(fsys fs.FS, root, dest string, skip func(rel string, d fs.DirEntry) bool) (files int, err error) {
	err = fs.WalkDir(fsys, root, func(src string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, src)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if rel == "." {
			return os.MkdirAll(dest, 0o755)
		}

		if skip != nil && skip(rel, d) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		target := filepath.Join(dest, filepath.FromSlash(rel))

		if d.IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", rel, err)
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		source, err := fsys.Open(src)
		if err != nil {
			return fmt.Errorf("opening %s: %w", rel, err)
		}
		defer source.Close()

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("creating parent directory for %s: %w", rel, err)
		}

		out, err := os.Create(target)
		if err != nil {
			return fmt.Errorf("creating %s: %w", rel, err)
		}
		if _, err := io.Copy(out, source); err != nil {
			out.Close()
			return fmt.Errorf("copying %s: %w", rel, err)
		}
		if err := out.Close(); err != nil {
			return err
		}

		files++
		return nil
	})

	return files, err
}
