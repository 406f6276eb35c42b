package create

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/olimci/frontity-create/pkg/npm"
)

func ensureProjectDir(ctx context.Context, p *project) error {
	existed, err := p.dir.EnsureRoot()
	if err != nil {
		return err
	}

	var entries []string
	if existed {
		entries, err = p.dir.Entries()
		if err != nil {
			return fmt.Errorf("listing %s: %w", p.opts.Path, err)
		}

		var conflicts []string
		for _, name := range entries {
			if !p.isAllowed(name) {
				conflicts = append(conflicts, name)
			}
		}
		if len(conflicts) > 0 {
			return fmt.Errorf("%w: %s contains %s", ErrDirNotEmpty, p.opts.Path, strings.Join(conflicts, ", "))
		}
	}

	p.exec.record(existed, entries)
	p.logger.Debug("project directory ready", "existed", existed, "entries", len(entries))
	return nil
}

func (p *project) isAllowed(name string) bool {
	for _, pattern := range p.allowed {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

func createReadme(ctx context.Context, p *project) error {
	return p.dir.Write("README.md", render("readme.md.tmpl", readmeData{
		Name:         p.opts.Name,
		Theme:        p.opts.Theme,
		ThemeDir:     themeDir(p.opts.Theme),
		SettingsFile: p.settingsFile(),
	}))
}

func createPackageJSON(ctx context.Context, p *project) error {
	deps, err := p.dependencies(ctx)
	if err != nil {
		return err
	}
	return p.dir.Write("package.json", writeJSON(newPackageManifest(p.opts.Name, deps)))
}

// dependencies resolves the core packages and the extra packages without an
// explicit version, and adds the theme as a local package.
func (p *project) dependencies(ctx context.Context) (map[string]string, error) {
	names := slices.Clone(corePackages)
	pinned := make(map[string]string)
	for _, pkg := range p.opts.Packages {
		name, spec := npm.SplitSpec(pkg)
		if spec != "" {
			pinned[name] = spec
			continue
		}
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	resolved, err := p.versions.Latest(ctx, names...)
	if err != nil {
		return nil, fmt.Errorf("resolving package versions: %w", err)
	}

	deps := make(map[string]string, len(resolved)+len(pinned)+1)
	maps.Copy(deps, resolved)
	maps.Copy(deps, pinned)
	deps[themePackage(p.opts.Theme)] = "./packages/" + themeDir(p.opts.Theme)
	return deps, nil
}

func createSettings(ctx context.Context, p *project) error {
	settings, err := marshalSettings(newFrontitySettings(p.opts.Name, themePackage(p.opts.Theme), p.settings))
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	return p.dir.Write(p.settingsFile(), render("settings.tmpl", settingsData{
		TypeScript: p.opts.UsesTypeScript(),
		Settings:   settings,
	}))
}

func createTSConfig(ctx context.Context, p *project) error {
	return p.dir.Write("tsconfig.json", render("tsconfig.json.tmpl", nil))
}

func cloneStarterTheme(ctx context.Context, p *project) error {
	rel := filepath.Join("packages", themeDir(p.opts.Theme))
	if err := p.dir.MkdirAll(rel, 0o755); err != nil {
		return err
	}
	return p.themes.Fetch(ctx, p.opts.Theme, filepath.Join(p.opts.Path, rel))
}

func installDependencies(ctx context.Context, p *project) error {
	return p.installer.Install(ctx, p.opts.Path)
}

func downloadFavicon(ctx context.Context, p *project) error {
	return p.assets.Download(ctx, p.faviconURL, filepath.Join(p.opts.Path, "favicon.ico"))
}
