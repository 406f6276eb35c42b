package create

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/olimci/frontity-create/pkg/iofs"
	"github.com/olimci/frontity-create/pkg/npm"
	"github.com/olimci/frontity-create/pkg/utils/fileutils"
)

var gitKnownHosts = []string{
	"github.com/",
	"gitlab.com/",
	"bitbucket.org/",
	"codeberg.org/",
}

// DefaultThemeFetcher fetches npm themes from the registry and git themes
// with a shallow clone.
type DefaultThemeFetcher struct {
	Registry *npm.Registry
	Logger   *log.Logger

	// GitStderr receives git's output; nil discards it.
	GitStderr io.Writer
}

func (f *DefaultThemeFetcher) Fetch(ctx context.Context, theme, dir string) error {
	if isGitTheme(theme) {
		return f.fetchGit(ctx, theme, dir)
	}
	return f.fetchNPM(ctx, theme, dir)
}

func (f *DefaultThemeFetcher) fetchNPM(ctx context.Context, theme, dir string) error {
	name, spec := npm.SplitSpec(theme)
	if spec == "" {
		spec = "latest"
	}

	pv, err := f.Registry.Resolve(ctx, name, spec)
	if err != nil {
		return err
	}

	body, err := f.Registry.Tarball(ctx, pv)
	if err != nil {
		return err
	}
	defer body.Close()

	hash := sha1.New()
	r := io.TeeReader(body, hash)

	stats, err := npm.ExtractTarball(r, dir, 1)
	if err != nil {
		return fmt.Errorf("extracting %s@%s: %w", pv.Name, pv.Version, err)
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return fmt.Errorf("reading %s@%s: %w", pv.Name, pv.Version, err)
	}

	if want := pv.Dist.Shasum; want != "" {
		if got := hex.EncodeToString(hash.Sum(nil)); got != want {
			return fmt.Errorf("%w for %s@%s: got %s, want %s", ErrChecksumMismatch, pv.Name, pv.Version, got, want)
		}
	}

	f.logger().Debug("theme extracted", "package", pv.Name, "version", pv.Version, "files", stats.Files, "size", humanize.Bytes(uint64(stats.Bytes)))
	return nil
}

func (f *DefaultThemeFetcher) fetchGit(ctx context.Context, theme, dir string) error {
	url, ref := splitRef(theme)
	if looksLikeGitShorthand(url) {
		url = "https://" + url
	}

	stderr := f.GitStderr
	if stderr == nil {
		stderr = io.Discard
	}

	src := iofs.FromRemote(url).WithRef(ref).WithStderr(stderr)
	defer src.Close()

	fsys, err := src.FS(ctx)
	if err != nil {
		return err
	}

	files, err := fileutils.CopyFS(fsys, src.Root(), dir, func(rel string, d fs.DirEntry) bool {
		return rel == ".git" || strings.HasPrefix(rel, ".git/")
	})
	if err != nil {
		return fmt.Errorf("copying %s: %w", url, err)
	}

	f.logger().Debug("theme cloned", "url", url, "ref", ref, "files", files)
	return nil
}

func (f *DefaultThemeFetcher) logger() *log.Logger {
	if f.Logger == nil {
		return log.New(io.Discard)
	}
	return f.Logger
}

func isGitTheme(theme string) bool {
	return isRemoteURL(theme) || looksLikeGitShorthand(theme)
}

func isRemoteURL(target string) bool {
	return strings.HasPrefix(target, "https://") ||
		strings.HasPrefix(target, "http://") ||
		strings.HasPrefix(target, "git://") ||
		strings.HasPrefix(target, "git@")
}

func looksLikeGitShorthand(target string) bool {
	for _, host := range gitKnownHosts {
		if strings.HasPrefix(target, host) {
			return true
		}
	}
	return false
}

// splitRef splits "url#ref".
func splitRef(theme string) (url, ref string) {
	url, ref, _ = strings.Cut(theme, "#")
	return url, ref
}

// themeDir is the directory name of theme under packages/.
func themeDir(theme string) string {
	if isGitTheme(theme) {
		url, _ := splitRef(theme)
		url = strings.TrimSuffix(strings.TrimSuffix(url, "/"), ".git")
		if i := strings.LastIndexAny(url, "/:"); i >= 0 {
			url = url[i+1:]
		}
		return url
	}

	name, _ := npm.SplitSpec(theme)
	return path.Base(name)
}

// themePackage is the dependency name the theme is registered under.
func themePackage(theme string) string {
	if isGitTheme(theme) {
		return themeDir(theme)
	}
	name, _ := npm.SplitSpec(theme)
	return name
}
