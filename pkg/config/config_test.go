package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)

	t.Chdir(t.TempDir())

	cfg, err = Load(DefaultPath)
	require.NoError(t, err)
	require.Equal(t, "@frontity/mars-theme", cfg.Defaults.Theme)

	_, err = Load("missing.toml")
	require.Error(t, err)
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{
			name: "toml",
			file: "frontity.create.toml",
			body: `
[defaults]
theme = "@frontity/twentytwenty-theme"
typescript = true
packages = ["@frontity/head-tags"]

[registry]
url = "https://registry.example.test/"
timeout = "5s"

[install]
command = "pnpm"
args = ["install", "--prefer-offline"]
`,
		},
		{
			name: "yaml",
			file: "frontity.create.yaml",
			body: `
defaults:
  theme: "@frontity/twentytwenty-theme"
  typescript: true
  packages: ["@frontity/head-tags"]
registry:
  url: https://registry.example.test/
  timeout: 5s
install:
  command: pnpm
  args: [install, --prefer-offline]
`,
		},
		{
			name: "json",
			file: "frontity.create.json",
			body: `{
  "defaults": {"theme": "@frontity/twentytwenty-theme", "typescript": true, "packages": ["@frontity/head-tags"]},
  "registry": {"url": "https://registry.example.test/", "timeout": "5s"},
  "install": {"command": "pnpm", "args": ["install", "--prefer-offline"]}
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.file, tt.body))
			require.NoError(t, err)

			require.Equal(t, "@frontity/twentytwenty-theme", cfg.Defaults.Theme)
			require.True(t, cfg.Defaults.TypeScript)
			require.Equal(t, []string{"@frontity/head-tags"}, cfg.Defaults.Packages)
			require.Equal(t, "https://registry.example.test", cfg.Registry.URL)
			require.Equal(t, Duration(5*time.Second), cfg.Registry.Timeout)
			require.Equal(t, 4, cfg.Registry.Concurrency)
			require.Equal(t, "pnpm", cfg.Install.Command)
			require.Equal(t, []string{"install", "--prefer-offline"}, cfg.Install.Args)
			require.Equal(t, "https://favicon.frontity.org/", cfg.Assets.FaviconURL)
			require.Equal(t, DefaultConfig().Project.Allowed, cfg.Project.Allowed)
		})
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{name: "unknown toml key", file: "c.toml", body: "[defaults]\nthem = \"x\"\n"},
		{name: "unknown yaml key", file: "c.yaml", body: "defaults:\n  them: x\n"},
		{name: "unknown json key", file: "c.json", body: `{"defaults": {"them": "x"}}`},
		{name: "bad duration", file: "c.toml", body: "[registry]\ntimeout = \"soon\"\n"},
		{name: "bad registry url", file: "c.toml", body: "[registry]\nurl = \"ftp://registry\"\n"},
		{name: "bad favicon url", file: "c.toml", body: "[assets]\nfavicon_url = \"favicon.ico\"\n"},
		{name: "unsupported extension", file: "c.ini", body: "theme=x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.file, tt.body))
			require.Error(t, err)
		})
	}
}
