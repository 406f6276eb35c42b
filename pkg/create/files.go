package create

import (
	"embed"
	"encoding/json"
	"io"
	"maps"
	"text/template"

	"github.com/olimci/frontity-create/pkg/iofs"
	"github.com/olimci/frontity-create/pkg/utils/lazy"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = lazy.Must(func() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.tmpl")
})

func render(name string, data any) iofs.WriterFunc {
	return func(w io.Writer) error {
		return templates.Get().ExecuteTemplate(w, name, data)
	}
}

// corePackages are always part of a new project's dependencies.
var corePackages = []string{
	"frontity",
	"@frontity/core",
	"@frontity/wp-source",
	"@frontity/tiny-router",
	"@frontity/html2react",
}

type readmeData struct {
	Name         string
	Theme        string
	ThemeDir     string
	SettingsFile string
}

type packageManifest struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Private      bool              `json:"private"`
	Description  string            `json:"description"`
	Keywords     []string          `json:"keywords"`
	Engines      map[string]string `json:"engines"`
	Scripts      map[string]string `json:"scripts"`
	Prettier     struct{}          `json:"prettier"`
	Dependencies map[string]string `json:"dependencies"`
}

func newPackageManifest(name string, deps map[string]string) packageManifest {
	return packageManifest{
		Name:        name,
		Version:     "1.0.0",
		Private:     true,
		Description: "Frontity project",
		Keywords:    []string{"frontity"},
		Engines: map[string]string{
			"node": ">=10.0.0",
			"npm":  ">=6.0.0",
		},
		Scripts: map[string]string{
			"dev":   "frontity dev",
			"build": "frontity build",
			"serve": "frontity serve",
		},
		Dependencies: maps.Clone(deps),
	}
}

type settingsData struct {
	TypeScript bool
	Settings   string
}

type frontitySettings struct {
	Name     string        `json:"name"`
	State    settingsState `json:"state"`
	Packages []any         `json:"packages"`
}

type settingsState struct {
	Frontity settingsSite `json:"frontity"`
}

type settingsSite struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type settingsPackage struct {
	Name  string         `json:"name"`
	State map[string]any `json:"state,omitempty"`
}

func newFrontitySettings(name, themePackage string, s Settings) frontitySettings {
	return frontitySettings{
		Name: name,
		State: settingsState{
			Frontity: settingsSite{
				URL:         s.SourceURL,
				Title:       s.Title,
				Description: s.Description,
			},
		},
		Packages: []any{
			settingsPackage{
				Name: themePackage,
				State: map[string]any{
					"theme": map[string]any{
						"menu": [][2]string{
							{"Home", "/"},
							{"Nature", "/category/nature/"},
							{"Travel", "/category/travel/"},
							{"Japan", "/tag/japan/"},
							{"About Us", "/about-us/"},
						},
						"featured": map[string]bool{
							"showOnList": false,
							"showOnPost": false,
						},
					},
				},
			},
			settingsPackage{
				Name: "@frontity/wp-source",
				State: map[string]any{
					"source": map[string]string{
						"url": s.SourceURL,
					},
				},
			},
			"@frontity/tiny-router",
			"@frontity/html2react",
		},
	}
}

func writeJSON(v any) iofs.WriterFunc {
	return func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	}
}

func marshalSettings(v frontitySettings) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
