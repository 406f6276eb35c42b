package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/olimci/frontity-create/pkg/utils/fileutils"
	"github.com/olimci/frontity-create/pkg/version"
)

// StatusError reports a non-200 response.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("download of %s returned status %d", e.URL, e.Status)
}

// Client downloads single assets to disk.
type Client struct {
	HTTP   *http.Client
	Logger *log.Logger
}

func NewClient(timeout time.Duration) *Client {
	return &Client{
		HTTP:   &http.Client{Timeout: timeout},
		Logger: log.New(io.Discard),
	}
}

// Download fetches url and writes the body to dest atomically, so a failed
// transfer never leaves a truncated file behind.
func (c *Client) Download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{URL: url, Status: resp.StatusCode}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating download directory: %w", err)
	}

	var written int64
	err = fileutils.AtomicWrite(dest, func(w io.Writer) error {
		n, err := io.Copy(w, resp.Body)
		written = n
		return err
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(dest), err)
	}

	if c.Logger != nil {
		c.Logger.Debug("downloaded", "url", url, "dest", dest, "size", humanize.Bytes(uint64(written)))
	}
	return nil
}
