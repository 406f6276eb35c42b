package create

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/olimci/frontity-create/pkg/events"
	"github.com/olimci/frontity-create/pkg/steps"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeVersions struct {
	err error
}

func (f fakeVersions) Latest(ctx context.Context, names ...string) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]string, len(names))
	for _, name := range names {
		out[name] = "^1.0.0"
	}
	return out, nil
}

type fakeThemes struct {
	err error
}

func (f fakeThemes) Fetch(ctx context.Context, theme, dir string) error {
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"name":"theme"}`), 0o644)
}

type fakeInstaller struct {
	err   error
	block bool
}

func (f fakeInstaller) Install(ctx context.Context, dir string) error {
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if err := os.MkdirAll(filepath.Join(dir, "node_modules"), 0o755); err != nil {
		return err
	}
	return f.err
}

type fakeAssets struct {
	err error
}

func (f fakeAssets) Download(ctx context.Context, url, dest string) error {
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(dest, []byte("ico"), 0o644)
}

func fakes(extra ...Option) []Option {
	return append([]Option{
		WithVersionResolver(fakeVersions{}),
		WithThemeFetcher(fakeThemes{}),
		WithInstaller(fakeInstaller{}),
		WithAssetFetcher(fakeAssets{}),
	}, extra...)
}

func stepNames(evs []events.Event) []string {
	out := make([]string, len(evs))
	for i, ev := range evs {
		out[i] = ev.Step
	}
	return out
}

func ids(list ...steps.StepID) []string {
	out := make([]string, len(list))
	for i, id := range list {
		out[i] = id.String()
	}
	return out
}

func TestRunCreatesProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proj")
	collector := events.NewCollector(nil)

	err := Run(context.Background(), Options{
		Name:  "my-app",
		Path:  path,
		Theme: "@frontity/mars-theme",
	}, fakes(WithHandler(collector))...).Wait()
	require.NoError(t, err)

	messages := collector.OfType(events.Message)
	require.Len(t, messages, 7)
	require.Equal(t, ids(IDEnsureDir, IDReadme, IDPackageJSON, IDSettings, IDCloneTheme, IDInstall, IDFavicon), stepNames(messages))
	require.Equal(t, "Ensuring "+path+" directory.", messages[0].Message)
	require.False(t, collector.HasType(events.Error))

	for _, name := range []string{"README.md", "package.json", "frontity.settings.js", "favicon.ico", "packages/mars-theme/package.json"} {
		require.FileExists(t, filepath.Join(path, name))
	}
	require.NoFileExists(t, filepath.Join(path, "tsconfig.json"))
	require.NoFileExists(t, filepath.Join(path, "frontity.settings.ts"))

	readme, err := os.ReadFile(filepath.Join(path, "README.md"))
	require.NoError(t, err)
	require.Contains(t, string(readme), "# my-app")

	var manifest packageManifest
	raw, err := os.ReadFile(filepath.Join(path, "package.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &manifest))
	require.Equal(t, "my-app", manifest.Name)
	require.Equal(t, "./packages/mars-theme", manifest.Dependencies["@frontity/mars-theme"])
	for _, pkg := range corePackages {
		require.Equal(t, "^1.0.0", manifest.Dependencies[pkg])
	}
	require.Equal(t, "frontity dev", manifest.Scripts["dev"])

	settings, err := os.ReadFile(filepath.Join(path, "frontity.settings.js"))
	require.NoError(t, err)
	require.Contains(t, string(settings), "const settings = {")
	require.Contains(t, string(settings), `"name": "my-app"`)
	require.Contains(t, string(settings), `"name": "@frontity/mars-theme"`)
	require.Contains(t, string(settings), "export default settings;")
	require.NotContains(t, string(settings), "frontity/types")
}

func TestRunTypeScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proj")
	collector := events.NewCollector(nil)

	err := Create(context.Background(), Options{
		Name:       "my-app",
		Path:       path,
		TypeScript: Bool(true),
	}, fakes(WithHandler(collector))...)
	require.NoError(t, err)

	messages := collector.OfType(events.Message)
	require.Equal(t, ids(IDEnsureDir, IDReadme, IDPackageJSON, IDSettings, IDTSConfig, IDCloneTheme, IDInstall, IDFavicon), stepNames(messages))
	require.Equal(t, "Creating frontity.settings.ts.", messages[3].Message)

	require.FileExists(t, filepath.Join(path, "tsconfig.json"))
	settings, err := os.ReadFile(filepath.Join(path, "frontity.settings.ts"))
	require.NoError(t, err)
	require.Contains(t, string(settings), `import { Settings } from "frontity/types";`)
	require.Contains(t, string(settings), "const settings: Settings = {")
}

func TestRunInstallFailureRemovesNewDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proj")
	collector := events.NewCollector(nil)
	installErr := errors.New("npm exited with 1")

	err := Run(context.Background(), Options{
		Name:  "my-app",
		Path:  path,
		Theme: "@frontity/mars-theme",
	}, fakes(WithInstaller(fakeInstaller{err: installErr}), WithHandler(collector))...).Wait()
	require.ErrorIs(t, err, installErr)

	var stepErr *steps.StepExecutionError
	require.ErrorAs(t, err, &stepErr)
	require.Equal(t, IDInstall, stepErr.Step)

	require.Equal(t, ids(IDEnsureDir, IDReadme, IDPackageJSON, IDSettings, IDCloneTheme, IDInstall), stepNames(collector.OfType(events.Message)))

	all := collector.Events()
	last := all[len(all)-1]
	require.Equal(t, events.Error, last.Type)
	require.ErrorIs(t, last.Error, installErr)

	require.NoDirExists(t, path)
}

func TestRunFailureKeepsPreExistingDirectory(t *testing.T) {
	path := t.TempDir()

	err := Create(context.Background(), Options{Name: "my-app", Path: path},
		fakes(WithAssetFetcher(fakeAssets{err: errors.New("offline")}))...)
	require.Error(t, err)

	require.DirExists(t, path)
	entries, err := os.ReadDir(path)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRunFailureKeepsAllowedEntries(t *testing.T) {
	path := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(path, ".git"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "LICENSE"), []byte("MIT"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(path, "npm-debug.log"), nil, 0o644))

	err := Create(context.Background(), Options{Name: "my-app", Path: path},
		fakes(WithThemeFetcher(fakeThemes{err: errors.New("no such theme")}))...)
	require.Error(t, err)

	entries, err := os.ReadDir(path)
	require.NoError(t, err)
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	require.ElementsMatch(t, []string{".git", "LICENSE", "npm-debug.log"}, names)
}

func TestRunRejectsNonEmptyDirectory(t *testing.T) {
	path := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(path, "index.js"), nil, 0o644))
	collector := events.NewCollector(nil)

	err := Create(context.Background(), Options{Name: "my-app", Path: path}, fakes(WithHandler(collector))...)
	require.ErrorIs(t, err, ErrDirNotEmpty)
	require.Len(t, collector.OfType(events.Message), 1)

	require.FileExists(t, filepath.Join(path, "index.js"))
	require.NoFileExists(t, filepath.Join(path, "README.md"))
}

func TestRunInvalidOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proj")
	collector := events.NewCollector(nil)

	task := Run(context.Background(), Options{Name: "My App", Path: path}, fakes(WithHandler(collector))...)
	<-task.Done()

	err := task.Err()
	require.ErrorIs(t, err, ErrInvalidOptions)
	var invalid *InvalidOptionsError
	require.ErrorAs(t, err, &invalid)
	require.Equal(t, "name", invalid.Field)

	require.Empty(t, collector.OfType(events.Message))
	require.Len(t, collector.OfType(events.Error), 1)
	require.NoDirExists(t, path)
}

func TestRunRejectsGitThemeOutsidePackages(t *testing.T) {
	for _, theme := range []string{"https://github.com/acme/..", "https://github.com/acme/.git"} {
		t.Run(theme, func(t *testing.T) {
			root := t.TempDir()
			path := filepath.Join(root, "proj")

			err := Create(context.Background(), Options{Name: "my-app", Path: path, Theme: theme},
				fakes(WithThemeFetcher(fakeThemes{err: errors.New("fetch must not run")}))...)
			require.ErrorIs(t, err, ErrInvalidOptions)

			var invalid *InvalidOptionsError
			require.ErrorAs(t, err, &invalid)
			require.Equal(t, "theme", invalid.Field)
			require.NoDirExists(t, path)
		})
	}
}

func TestRunInterruptRollsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proj")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// cancel as soon as the install step is announced
	interrupt := events.NewHandlerFunc(func(ev events.Event) {
		if ev.Type == events.Message && ev.Step == IDInstall.String() {
			cancel()
		}
	})

	err := Create(ctx, Options{Name: "my-app", Path: path},
		fakes(WithInstaller(fakeInstaller{block: true}), WithHandler(interrupt))...)
	require.ErrorIs(t, err, context.Canceled)
	require.NoDirExists(t, path)
}

func TestRunCancelledBeforeStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proj")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	collector := events.NewCollector(nil)
	err := Create(ctx, Options{Name: "my-app", Path: path}, fakes(WithHandler(collector))...)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, collector.OfType(events.Message))
	require.NoDirExists(t, path)
}

func TestRunCompletionsResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proj")
	installErr := errors.New("boom")

	task := Run(context.Background(), Options{Name: "my-app", Path: path},
		fakes(WithInstaller(fakeInstaller{err: installErr}))...)
	require.Error(t, task.Wait())

	// late subscribers get the backlog, then an acknowledgement
	collector := events.NewCollector(nil)
	unsubscribe := task.Subscribe(collector)
	defer unsubscribe()

	all := collector.Events()
	require.Equal(t, events.Subscribe, all[len(all)-1].Type)
	require.Equal(t, events.Error, all[len(all)-2].Type)

	for _, ev := range collector.OfType(events.Message) {
		require.NotNil(t, ev.Completion)
		select {
		case <-ev.Completion.Done():
		default:
			t.Fatalf("completion of %s not resolved", ev.Step)
		}
		if ev.Step == IDInstall.String() {
			require.ErrorIs(t, ev.Completion.Err(), installErr)
		} else {
			require.NoError(t, ev.Completion.Err())
		}
	}
}

func TestRunPinnedPackages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proj")

	err := Create(context.Background(), Options{
		Name:     "my-app",
		Path:     path,
		Theme:    "github.com/acme/ocean-theme.git",
		Packages: []string{"lodash@^4.17.0", "@frontity/head-tags", "frontity@2.0.0"},
	}, fakes()...)
	require.NoError(t, err)

	var manifest packageManifest
	raw, err := os.ReadFile(filepath.Join(path, "package.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &manifest))

	require.Equal(t, "^4.17.0", manifest.Dependencies["lodash"])
	require.Equal(t, "^1.0.0", manifest.Dependencies["@frontity/head-tags"])
	require.Equal(t, "2.0.0", manifest.Dependencies["frontity"])
	require.Equal(t, "./packages/ocean-theme", manifest.Dependencies["ocean-theme"])
	require.DirExists(t, filepath.Join(path, "packages", "ocean-theme"))
}

func TestRunVersionResolutionFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proj")
	resolveErr := errors.New("registry down")

	err := Create(context.Background(), Options{Name: "my-app", Path: path},
		fakes(WithVersionResolver(fakeVersions{err: resolveErr}))...)
	require.ErrorIs(t, err, resolveErr)

	var stepErr *steps.StepExecutionError
	require.ErrorAs(t, err, &stepErr)
	require.Equal(t, IDPackageJSON, stepErr.Step)
	require.NoDirExists(t, path)
}
