package npm

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var ErrUnsafePath = errors.New("unsafe path in archive")

// ExtractStats describes what ExtractTarball wrote.
type ExtractStats struct {
	Files int
	Bytes int64
}

// ExtractTarball unpacks a gzipped tar stream into dest, dropping the first
// strip path components of every entry (npm tarballs nest under "package/").
func ExtractTarball(r io.Reader, dest string, strip int) (ExtractStats, error) {
	var stats ExtractStats

	gz, err := gzip.NewReader(r)
	if err != nil {
		return stats, fmt.Errorf("opening gzip stream: %w", err)
	}
	defer gz.Close()

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return stats, fmt.Errorf("creating %s: %w", dest, err)
	}

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("reading archive: %w", err)
		}

		if !filepath.IsLocal(filepath.FromSlash(strings.TrimPrefix(hdr.Name, "./"))) {
			return stats, fmt.Errorf("%w: %s", ErrUnsafePath, hdr.Name)
		}
		rel, ok := stripComponents(hdr.Name, strip)
		if !ok {
			continue
		}
		target := filepath.Join(dest, filepath.FromSlash(rel))

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return stats, fmt.Errorf("creating %s: %w", rel, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return stats, fmt.Errorf("creating parent of %s: %w", rel, err)
			}
			n, err := writeEntry(target, tr, hdr.FileInfo().Mode().Perm()|0o600)
			if err != nil {
				return stats, fmt.Errorf("writing %s: %w", rel, err)
			}
			stats.Files++
			stats.Bytes += n
		default:
			// links and devices are never part of a published package
		}
	}

	return stats, nil
}

func writeEntry(target string, r io.Reader, perm os.FileMode) (int64, error) {
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

func stripComponents(name string, strip int) (string, bool) {
	name = path.Clean(strings.TrimPrefix(name, "./"))
	parts := strings.Split(name, "/")
	if len(parts) <= strip {
		return "", false
	}
	return strings.Join(parts[strip:], "/"), true
}
