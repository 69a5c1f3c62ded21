// Package github lists example repositories and fetches their source archives.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/microsoft/deployr-cli/internal/errors"
)

// DefaultUserAgent is sent with every request; the GitHub API rejects requests without one.
const DefaultUserAgent = "deployr-cli"

// Repo is the part of a GitHub repository record the CLI needs.
type Repo struct {
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

// ProgressFunc reports downloaded bytes. total is -1 when unknown.
type ProgressFunc func(done, total int64)

// Client talks to GitHub over HTTP.
type Client struct {
	HTTP      *http.Client
	UserAgent string
}

// NewClient returns a client with sensible timeouts for API calls.
// Archive downloads are bounded by the context instead.
func NewClient() *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: 5 * time.Minute},
		UserAgent: DefaultUserAgent,
	}
}

func (c *Client) get(ctx context.Context, url, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrNetwork, "Invalid URL "+url, "")
	}
	req.Header.Set("User-Agent", c.UserAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrNetwork,
			"Couldn't reach "+hostOf(url),
			"Check your network connection and try again")
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.New(errors.ErrNetwork,
			fmt.Sprintf("%s returned %s", url, resp.Status),
			"Try again later")
	}
	return resp, nil
}

// ListRepos fetches the repository list at url (a GitHub API listing).
func (c *Client) ListRepos(ctx context.Context, url string) ([]Repo, error) {
	resp, err := c.get(ctx, url, "application/vnd.github.v3+json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrNetwork,
			"Failed to parse repository list", "")
	}
	return repos, nil
}

// Download streams url into w, reporting progress when progress is non-nil.
func (c *Client) Download(ctx context.Context, url string, w io.Writer, progress ProgressFunc) (int64, error) {
	resp, err := c.get(ctx, url, "")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var r io.Reader = resp.Body
	if progress != nil {
		r = &progressReader{r: resp.Body, total: resp.ContentLength, fn: progress}
	}

	n, err := io.Copy(w, r)
	if err != nil {
		return n, errors.WrapWithCode(err, errors.ErrNetwork, "Download interrupted: "+url, "Try again")
	}
	return n, nil
}

type progressReader struct {
	r     io.Reader
	done  int64
	total int64
	fn    ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.done += int64(n)
	p.fn(p.done, p.total)
	return n, err
}

// Fetch downloads the zip archive at url and extracts it into dest,
// dropping the archive's top-level directory.
func (c *Client) Fetch(ctx context.Context, url, dest string, progress ProgressFunc) error {
	tmp, err := os.CreateTemp("", "di-example-*.zip")
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrInstall, "Cannot create a temporary file", "")
	}
	defer os.Remove(tmp.Name())

	size, err := c.Download(ctx, url, tmp, progress)
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = errors.WrapWithCode(cerr, errors.ErrInstall, "Cannot write "+tmp.Name(), "")
	}
	if err != nil {
		return err
	}
	if size == 0 {
		return errors.New(errors.ErrInstall, "Empty archive downloaded from "+url, "")
	}

	return Extract(tmp.Name(), dest, 1)
}

func hostOf(url string) string {
	s := url
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, "/?"); i >= 0 {
		s = s[:i]
	}
	return s
}
