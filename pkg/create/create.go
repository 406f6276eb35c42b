package create

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/olimci/frontity-create/pkg/config"
	"github.com/olimci/frontity-create/pkg/download"
	"github.com/olimci/frontity-create/pkg/events"
	"github.com/olimci/frontity-create/pkg/iofs"
	"github.com/olimci/frontity-create/pkg/npm"
	"github.com/olimci/frontity-create/pkg/steps"
)

const owner = "create"

var (
	IDEnsureDir   = steps.StepID{Owner: owner, Name: "ensure-dir"}
	IDReadme      = steps.StepID{Owner: owner, Name: "readme"}
	IDPackageJSON = steps.StepID{Owner: owner, Name: "package-json"}
	IDSettings    = steps.StepID{Owner: owner, Name: "settings"}
	IDTSConfig    = steps.StepID{Owner: owner, Name: "tsconfig"}
	IDCloneTheme  = steps.StepID{Owner: owner, Name: "clone-theme"}
	IDInstall     = steps.StepID{Owner: owner, Name: "install"}
	IDFavicon     = steps.StepID{Owner: owner, Name: "favicon"}
)

// Settings describes the WordPress source written into the settings file.
type Settings struct {
	SourceURL   string
	Title       string
	Description string
}

type runOptions struct {
	defaults   Options
	handlers   []events.Handler
	logger     *log.Logger
	installer  Installer
	themes     ThemeFetcher
	assets     AssetFetcher
	versions   VersionResolver
	settings   Settings
	faviconURL string
	allowed    []string
}

type Option func(*runOptions)

// WithDefaults sets the options user values are merged over.
func WithDefaults(defaults Options) Option {
	return func(o *runOptions) {
		o.defaults = defaults
	}
}

// WithHandler subscribes h to the task before it starts.
func WithHandler(h events.Handler) Option {
	return func(o *runOptions) {
		if h != nil {
			o.handlers = append(o.handlers, h)
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(o *runOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithInstaller(i Installer) Option {
	return func(o *runOptions) {
		if i != nil {
			o.installer = i
		}
	}
}

func WithThemeFetcher(f ThemeFetcher) Option {
	return func(o *runOptions) {
		if f != nil {
			o.themes = f
		}
	}
}

func WithAssetFetcher(f AssetFetcher) Option {
	return func(o *runOptions) {
		if f != nil {
			o.assets = f
		}
	}
}

func WithVersionResolver(r VersionResolver) Option {
	return func(o *runOptions) {
		if r != nil {
			o.versions = r
		}
	}
}

func WithSettings(s Settings) Option {
	return func(o *runOptions) {
		o.settings = s
	}
}

func WithFaviconURL(url string) Option {
	return func(o *runOptions) {
		o.faviconURL = url
	}
}

// WithAllowed sets the glob patterns of entries tolerated in a pre-existing
// project directory.
func WithAllowed(patterns ...string) Option {
	return func(o *runOptions) {
		o.allowed = patterns
	}
}

// FromConfig returns the options wiring the default collaborators as
// configured by cfg.
func FromConfig(cfg *config.Config, logger *log.Logger) []Option {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	cwd, _ := os.Getwd()
	timeout := time.Duration(cfg.Registry.Timeout)

	registry := npm.NewRegistry(cfg.Registry.URL,
		npm.WithHTTPClient(&http.Client{Timeout: timeout}),
		npm.WithConcurrency(cfg.Registry.Concurrency),
		npm.WithLogger(logger),
	)

	installer := npm.NewInstaller(cfg.Install.Command, cfg.Install.Args...)
	installer.Logger = logger

	assets := download.NewClient(timeout)
	assets.Logger = logger

	return []Option{
		WithDefaults(Options{
			Path:       cwd,
			Theme:      cfg.Defaults.Theme,
			TypeScript: Bool(cfg.Defaults.TypeScript),
			Packages:   cfg.Defaults.Packages,
		}),
		WithLogger(logger),
		WithVersionResolver(registry),
		WithThemeFetcher(&DefaultThemeFetcher{Registry: registry, Logger: logger}),
		WithInstaller(installer),
		WithAssetFetcher(assets),
		WithSettings(Settings{
			SourceURL:   cfg.Settings.SourceURL,
			Title:       cfg.Settings.Title,
			Description: cfg.Settings.Description,
		}),
		WithFaviconURL(cfg.Assets.FaviconURL),
		WithAllowed(cfg.Project.Allowed...),
	}
}

// project is the state shared by the steps of one run.
type project struct {
	opts Options
	dir  iofs.Writable
	exec *ExecutionContext

	installer  Installer
	themes     ThemeFetcher
	assets     AssetFetcher
	versions   VersionResolver
	settings   Settings
	faviconURL string
	allowed    []string
	logger     *log.Logger
}

// Run creates the project described by opts in the background. The returned
// task reports progress to its subscribers and resolves once the project is
// ready, or once rollback has finished after a failure.
func Run(ctx context.Context, opts Options, with ...Option) *steps.Task {
	o := &runOptions{logger: log.New(io.Discard)}
	for _, opt := range append(FromConfig(config.DefaultConfig(), nil), with...) {
		opt(o)
	}

	normalized, err := Normalize(o.defaults, opts)
	if err != nil {
		return steps.Failed(err, o.handlers...)
	}

	p := &project{
		opts:       normalized,
		dir:        iofs.FromOS(normalized.Path),
		exec:       &ExecutionContext{},
		installer:  o.installer,
		themes:     o.themes,
		assets:     o.assets,
		versions:   o.versions,
		settings:   o.settings,
		faviconURL: o.faviconURL,
		allowed:    o.allowed,
		logger:     o.logger.With("project", normalized.Name),
	}

	pipeline, err := steps.New(p.sequence(),
		steps.WithRollback(revert),
		steps.WithLogger[*project](p.logger),
	)
	if err != nil {
		return steps.Failed(err, o.handlers...)
	}

	p.logger.Debug("creating project", "path", normalized.Path, "theme", normalized.Theme, "typescript", normalized.UsesTypeScript())
	return pipeline.Start(ctx, p, o.handlers...)
}

// Create runs the pipeline and waits for it.
func Create(ctx context.Context, opts Options, with ...Option) error {
	return Run(ctx, opts, with...).Wait()
}

func (p *project) sequence() []steps.Step[*project] {
	seq := []steps.Step[*project]{
		steps.StepFunc(IDEnsureDir, fmt.Sprintf("Ensuring %s directory.", p.opts.Path), ensureProjectDir),
		steps.StepFunc(IDReadme, "Creating README.md.", createReadme),
		steps.StepFunc(IDPackageJSON, "Creating package.json.", createPackageJSON),
		steps.StepFunc(IDSettings, fmt.Sprintf("Creating %s.", p.settingsFile()), createSettings),
	}
	if p.opts.UsesTypeScript() {
		seq = append(seq, steps.StepFunc(IDTSConfig, "Creating tsconfig.json.", createTSConfig))
	}
	return append(seq,
		steps.StepFunc(IDCloneTheme, fmt.Sprintf("Cloning %s.", p.opts.Theme), cloneStarterTheme),
		steps.StepFunc(IDInstall, "Installing dependencies.", installDependencies).Irreversible(),
		steps.StepFunc(IDFavicon, "Downloading favicon.ico.", downloadFavicon),
	)
}

func (p *project) settingsFile() string {
	if p.opts.UsesTypeScript() {
		return "frontity.settings.ts"
	}
	return "frontity.settings.js"
}
