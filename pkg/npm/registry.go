package npm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"
	"github.com/olimci/frontity-create/pkg/version"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNotFound       = errors.New("package not found")
	ErrNoMatchVersion = errors.New("no matching version")
)

// RegistryError is returned for unexpected registry responses.
type RegistryError struct {
	Package string
	Status  int
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("registry returned status %d for %s", e.Status, e.Package)
}

// Packument is the subset of the registry's package document we use.
type Packument struct {
	Name     string                    `json:"name"`
	DistTags map[string]string         `json:"dist-tags"`
	Versions map[string]PackageVersion `json:"versions"`
}

type PackageVersion struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Dist    Dist   `json:"dist"`
}

type Dist struct {
	Tarball string `json:"tarball"`
	Shasum  string `json:"shasum"`
}

type Registry struct {
	baseURL     string
	client      *http.Client
	concurrency int
	logger      *log.Logger
}

type RegistryOption func(*Registry)

func WithHTTPClient(client *http.Client) RegistryOption {
	return func(r *Registry) {
		if client != nil {
			r.client = client
		}
	}
}

func WithConcurrency(n int) RegistryOption {
	return func(r *Registry) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

func WithLogger(logger *log.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewRegistry(baseURL string, opts ...RegistryOption) *Registry {
	r := &Registry{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		client:      &http.Client{Timeout: 60 * time.Second},
		concurrency: 4,
		logger:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Packument fetches the metadata document of a package.
func (r *Registry) Packument(ctx context.Context, name string) (*Packument, error) {
	endpoint := r.baseURL + "/" + url.PathEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating registry request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.npm.install-v1+json; q=1.0, application/json; q=0.8")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", name, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	case resp.StatusCode != http.StatusOK:
		return nil, &RegistryError{Package: name, Status: resp.StatusCode}
	}

	var doc Packument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding metadata of %s: %w", name, err)
	}

	return &doc, nil
}

// Resolve picks the version of name matching spec. An empty spec or a
// dist-tag resolves through dist-tags; anything else is read as a semver
// constraint and the highest matching version wins.
func (r *Registry) Resolve(ctx context.Context, name, spec string) (*PackageVersion, error) {
	doc, err := r.Packument(ctx, name)
	if err != nil {
		return nil, err
	}

	spec = strings.TrimSpace(spec)
	if spec == "" {
		spec = "latest"
	}

	if tagged, ok := doc.DistTags[spec]; ok {
		v, ok := doc.Versions[tagged]
		if !ok {
			return nil, fmt.Errorf("%w: %s@%s points to missing %s", ErrNoMatchVersion, name, spec, tagged)
		}
		return &v, nil
	}

	constraint, err := semver.NewConstraint(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q for %s: %w", spec, name, err)
	}

	var best *semver.Version
	for raw := range doc.Versions {
		v, err := semver.NewVersion(raw)
		if err != nil || !constraint.Check(v) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: %s@%s", ErrNoMatchVersion, name, spec)
	}

	v := doc.Versions[best.Original()]
	return &v, nil
}

// Latest resolves the latest published version of each name concurrently and
// returns caret ranges keyed by package name.
func (r *Registry) Latest(ctx context.Context, names ...string) (map[string]string, error) {
	var (
		mu  sync.Mutex
		out = make(map[string]string, len(names))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, name := range names {
		g.Go(func() error {
			pv, err := r.Resolve(ctx, name, "latest")
			if err != nil {
				return err
			}

			v, err := semver.NewVersion(pv.Version)
			if err != nil {
				return fmt.Errorf("%s has invalid version %q: %w", name, pv.Version, err)
			}

			r.logger.Debug("resolved package", "name", name, "version", v.String())

			mu.Lock()
			out[name] = CaretRange(v)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// Tarball opens the tarball of a resolved version.
func (r *Registry) Tarball(ctx context.Context, pv *PackageVersion) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pv.Dist.Tarball, nil)
	if err != nil {
		return nil, fmt.Errorf("creating tarball request: %w", err)
	}
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s@%s: %w", pv.Name, pv.Version, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &RegistryError{Package: pv.Name + "@" + pv.Version, Status: resp.StatusCode}
	}

	return resp.Body, nil
}

// CaretRange formats v as the range npm writes for a fresh dependency.
func CaretRange(v *semver.Version) string {
	return "^" + v.String()
}

// SplitSpec splits "name@spec" into its parts, keeping a leading scope.
func SplitSpec(identifier string) (name, spec string) {
	identifier = strings.TrimSpace(identifier)
	if i := strings.LastIndex(identifier, "@"); i > 0 {
		return identifier[:i], identifier[i+1:]
	}
	return identifier, ""
}
