package create

import "context"

// Installer installs the declared dependencies of the project in dir.
type Installer interface {
	Install(ctx context.Context, dir string) error
}

// ThemeFetcher places the files of theme into dir.
type ThemeFetcher interface {
	Fetch(ctx context.Context, theme, dir string) error
}

// AssetFetcher downloads url to the file dest.
type AssetFetcher interface {
	Download(ctx context.Context, url, dest string) error
}

// VersionResolver maps package names to the version ranges written to
// package.json.
type VersionResolver interface {
	Latest(ctx context.Context, names ...string) (map[string]string, error)
}
