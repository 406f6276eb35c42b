package iofs

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"sync"
)

// FromRemote clones a git repository to a temporary directory on first use.
func FromRemote(url string) *RemoteFS {
	return &RemoteFS{url: url, stderr: os.Stderr}
}

var _ Readable = (*RemoteFS)(nil)

type RemoteFS struct {
	url     string
	ref     string
	stderr  io.Writer
	tempDir string
	once    sync.Once
	err     error
}

// WithRef clones the given branch or tag instead of the default branch.
func (r *RemoteFS) WithRef(ref string) *RemoteFS {
	r.ref = ref
	return r
}

// WithStderr redirects git's diagnostic output.
func (r *RemoteFS) WithStderr(w io.Writer) *RemoteFS {
	r.stderr = w
	return r
}

func (r *RemoteFS) FS(ctx context.Context) (fs.FS, error) {
	r.once.Do(func() {
		r.tempDir, r.err = r.clone(ctx)
	})

	if r.err != nil {
		return nil, r.err
	}

	return os.DirFS(r.tempDir), nil
}

func (r *RemoteFS) Root() string {
	return "."
}

func (r *RemoteFS) Close() error {
	if r.tempDir != "" {
		return os.RemoveAll(r.tempDir)
	}
	return nil
}

// clone performs a shallow git clone of the repository.
func (r *RemoteFS) clone(ctx context.Context) (string, error) {
	if _, err := exec.LookPath("git"); err != nil {
		return "", fmt.Errorf("git is required for remote themes: %w", err)
	}

	tempDir, err := os.MkdirTemp("", "frontity-theme-*")
	if err != nil {
		return "", fmt.Errorf("creating temp directory: %w", err)
	}

	args := []string{"clone", "--depth", "1"}
	if r.ref != "" {
		args = append(args, "--branch", r.ref)
	}
	args = append(args, r.url, tempDir)

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		os.RemoveAll(tempDir)
		return "", fmt.Errorf("cloning repository: %w", err)
	}

	return tempDir, nil
}
