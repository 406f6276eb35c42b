package create

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/olimci/frontity-create/pkg/config"
	"github.com/olimci/frontity-create/pkg/npm"
)

var ErrInvalidOptions = errors.New("invalid options")

// InvalidOptionsError reports an option that is missing or malformed.
type InvalidOptionsError struct {
	Field  string
	Reason string
}

func (e *InvalidOptionsError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidOptionsError) Is(target error) bool {
	return target == ErrInvalidOptions
}

// Options describes the project to create.
type Options struct {
	// Name is the npm package name of the project.
	Name string
	// Path is the project directory. Defaults to the working directory.
	Path string
	// Theme identifies the starter theme: an npm package ("@scope/name",
	// optionally "@version") or a git URL.
	Theme string
	// TypeScript selects a TypeScript project. Nil leaves the choice to the
	// defaults.
	TypeScript *bool
	// Packages are extra npm packages added to the dependencies.
	Packages []string
}

const maxNameLength = 214

var packageNamePattern = regexp.MustCompile(`^(?:@[a-z0-9-*~][a-z0-9-*._~]*/)?[a-z0-9-~][a-z0-9-._~]*$`)

// DefaultOptions returns the defaults used when Run is not given any.
func DefaultOptions() Options {
	cfg := config.DefaultConfig()
	cwd, _ := os.Getwd()
	return Options{
		Path:       cwd,
		Theme:      cfg.Defaults.Theme,
		TypeScript: Bool(cfg.Defaults.TypeScript),
		Packages:   []string{},
	}
}

// Normalize merges user over defaults and validates the result. Non-empty
// user strings and lists and a non-nil TypeScript replace the defaults. The
// result always carries a non-nil TypeScript.
func Normalize(defaults, user Options) (Options, error) {
	out := Options{
		Name:       pick(user.Name, defaults.Name),
		Path:       pick(user.Path, defaults.Path),
		Theme:      pick(user.Theme, defaults.Theme),
		TypeScript: Bool(defaults.UsesTypeScript()),
		Packages:   defaults.Packages,
	}
	if user.TypeScript != nil {
		out.TypeScript = Bool(*user.TypeScript)
	}
	if len(user.Packages) > 0 {
		out.Packages = user.Packages
	}

	if err := validateName(out.Name); err != nil {
		return Options{}, err
	}

	path, err := normalizePath(out.Path)
	if err != nil {
		return Options{}, err
	}
	out.Path = path

	if out.Theme == "" {
		return Options{}, &InvalidOptionsError{Field: "theme", Reason: "theme is required"}
	}
	if strings.ContainsAny(out.Theme, " \t\n") {
		return Options{}, &InvalidOptionsError{Field: "theme", Reason: fmt.Sprintf("%q contains whitespace", out.Theme)}
	}
	if isGitTheme(out.Theme) {
		if err := validateThemeDir(out.Theme); err != nil {
			return Options{}, err
		}
	} else {
		name, _ := npm.SplitSpec(out.Theme)
		if err := validatePackage("theme", name); err != nil {
			return Options{}, err
		}
	}

	packages, err := normalizePackages(out.Packages)
	if err != nil {
		return Options{}, err
	}
	out.Packages = packages

	return out, nil
}

// UsesTypeScript reports whether o selects a TypeScript project.
func (o Options) UsesTypeScript() bool {
	return o.TypeScript != nil && *o.TypeScript
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

func pick(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// ValidateName reports whether name can be used as the project's package name.
func ValidateName(name string) error {
	return validateName(strings.TrimSpace(name))
}

func validateName(name string) error {
	if name == "" {
		return &InvalidOptionsError{Field: "name", Reason: "name is required"}
	}
	return validatePackage("name", name)
}

func validatePackage(field, name string) error {
	if len(name) > maxNameLength {
		return &InvalidOptionsError{Field: field, Reason: fmt.Sprintf("%q is longer than %d characters", name, maxNameLength)}
	}
	if !packageNamePattern.MatchString(name) {
		return &InvalidOptionsError{Field: field, Reason: fmt.Sprintf("%q is not a valid package name (lower case letters, digits and dashes)", name)}
	}
	return nil
}

// validateThemeDir checks the repository name of a git theme, which becomes
// both packages/<dir> and the dependency key. Upper case is tolerated as npm
// does for legacy names.
func validateThemeDir(theme string) error {
	dir := themeDir(theme)
	if dir == "" || dir == "." || dir == ".." {
		return &InvalidOptionsError{Field: "theme", Reason: fmt.Sprintf("%q does not name a repository", theme)}
	}
	if err := validatePackage("theme", strings.ToLower(dir)); err != nil {
		return &InvalidOptionsError{Field: "theme", Reason: fmt.Sprintf("repository name %q of %q is not a valid package name", dir, theme)}
	}
	return nil
}

func normalizePath(path string) (string, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", &InvalidOptionsError{Field: "path", Reason: fmt.Sprintf("resolving working directory: %v", err)}
		}
		path = cwd
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &InvalidOptionsError{Field: "path", Reason: err.Error()}
	}

	// the path itself, or its closest existing ancestor, has to be a directory
	for dir := abs; ; dir = filepath.Dir(dir) {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return "", &InvalidOptionsError{Field: "path", Reason: fmt.Sprintf("%s is not a directory", dir)}
			}
			break
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", &InvalidOptionsError{Field: "path", Reason: err.Error()}
		}
		if parent := filepath.Dir(dir); parent == dir {
			break
		}
	}

	return abs, nil
}

func normalizePackages(packages []string) ([]string, error) {
	out := make([]string, 0, len(packages))
	for _, pkg := range packages {
		pkg = strings.TrimSpace(pkg)
		if pkg == "" {
			continue
		}
		name, _ := npm.SplitSpec(pkg)
		if err := validatePackage("packages", name); err != nil {
			return nil, err
		}
		if slices.Contains(out, pkg) {
			continue
		}
		out = append(out, pkg)
	}
	return out, nil
}
