package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

const DefaultPath = "frontity.create.toml"

// Config holds the defaults applied to every create invocation.
type Config struct {
	Defaults ConfigDefaults `toml:"defaults" yaml:"defaults" json:"defaults"`
	Registry ConfigRegistry `toml:"registry" yaml:"registry" json:"registry"`
	Install  ConfigInstall  `toml:"install" yaml:"install" json:"install"`
	Assets   ConfigAssets   `toml:"assets" yaml:"assets" json:"assets"`
	Settings ConfigSettings `toml:"settings" yaml:"settings" json:"settings"`
	Project  ConfigProject  `toml:"project" yaml:"project" json:"project"`
}

type ConfigDefaults struct {
	Theme      string   `toml:"theme" yaml:"theme" json:"theme"`
	TypeScript bool     `toml:"typescript" yaml:"typescript" json:"typescript"`
	Packages   []string `toml:"packages" yaml:"packages" json:"packages"`
}

type ConfigRegistry struct {
	URL         string   `toml:"url" yaml:"url" json:"url"`
	Concurrency int      `toml:"concurrency" yaml:"concurrency" json:"concurrency"`
	Timeout     Duration `toml:"timeout" yaml:"timeout" json:"timeout"`
}

type ConfigInstall struct {
	Command string   `toml:"command" yaml:"command" json:"command"`
	Args    []string `toml:"args" yaml:"args" json:"args"`
}

type ConfigAssets struct {
	FaviconURL string `toml:"favicon_url" yaml:"favicon_url" json:"favicon_url"`
}

type ConfigSettings struct {
	SourceURL   string `toml:"source_url" yaml:"source_url" json:"source_url"`
	Title       string `toml:"title" yaml:"title" json:"title"`
	Description string `toml:"description" yaml:"description" json:"description"`
}

type ConfigProject struct {
	// Allowed lists glob patterns of entries tolerated in a pre-existing
	// project directory.
	Allowed []string `toml:"allowed" yaml:"allowed" json:"allowed"`
}

// DefaultConfig constructs a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Defaults: ConfigDefaults{
			Theme:      "@frontity/mars-theme",
			TypeScript: false,
			Packages:   []string{},
		},
		Registry: ConfigRegistry{
			URL:         "https://registry.npmjs.org",
			Concurrency: 4,
			Timeout:     Duration(60 * time.Second),
		},
		Install: ConfigInstall{
			Command: "npm",
			Args:    []string{"install"},
		},
		Assets: ConfigAssets{
			FaviconURL: "https://favicon.frontity.org/",
		},
		Settings: ConfigSettings{
			SourceURL:   "https://test.frontity.org",
			Title:       "Test Frontity Blog",
			Description: "WordPress installation for Frontity development",
		},
		Project: ConfigProject{
			Allowed: []string{".git", ".gitignore", ".DS_Store", "Thumbs.db", ".idea", ".vscode", "*.log", "LICENSE"},
		},
	}
}

// Load loads a Config from a file. A missing file at DefaultPath is not an
// error; the defaults are returned instead.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultPath {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := decodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fills in blank values and checks URLs.
func (c *Config) Validate() error {
	def := DefaultConfig()

	c.Defaults.Theme = strings.TrimSpace(c.Defaults.Theme)
	if c.Defaults.Theme == "" {
		c.Defaults.Theme = def.Defaults.Theme
	}
	if c.Defaults.Packages == nil {
		c.Defaults.Packages = []string{}
	}

	c.Registry.URL = strings.TrimSuffix(strings.TrimSpace(c.Registry.URL), "/")
	if c.Registry.URL == "" {
		c.Registry.URL = def.Registry.URL
	}
	if err := checkURL("registry.url", c.Registry.URL); err != nil {
		return err
	}
	if c.Registry.Concurrency <= 0 {
		c.Registry.Concurrency = def.Registry.Concurrency
	}
	if c.Registry.Timeout <= 0 {
		c.Registry.Timeout = def.Registry.Timeout
	}

	c.Install.Command = strings.TrimSpace(c.Install.Command)
	if c.Install.Command == "" {
		c.Install.Command = def.Install.Command
		if len(c.Install.Args) == 0 {
			c.Install.Args = def.Install.Args
		}
	}

	c.Assets.FaviconURL = strings.TrimSpace(c.Assets.FaviconURL)
	if c.Assets.FaviconURL == "" {
		c.Assets.FaviconURL = def.Assets.FaviconURL
	}
	if err := checkURL("assets.favicon_url", c.Assets.FaviconURL); err != nil {
		return err
	}

	c.Settings.SourceURL = strings.TrimSpace(c.Settings.SourceURL)
	if c.Settings.SourceURL == "" {
		c.Settings.SourceURL = def.Settings.SourceURL
	}
	if err := checkURL("settings.source_url", c.Settings.SourceURL); err != nil {
		return err
	}
	if strings.TrimSpace(c.Settings.Title) == "" {
		c.Settings.Title = def.Settings.Title
	}
	if strings.TrimSpace(c.Settings.Description) == "" {
		c.Settings.Description = def.Settings.Description
	}

	if c.Project.Allowed == nil {
		c.Project.Allowed = def.Project.Allowed
	}

	return nil
}

func checkURL(key, raw string) error {
	if !(strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")) {
		return fmt.Errorf("%s must start with http:// or https:// (got %q)", key, raw)
	}
	if _, err := url.Parse(raw); err != nil {
		return fmt.Errorf("%s is not a valid URL (got %q): %w", key, raw, err)
	}
	return nil
}
