package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// Fetcher retrieves the raw CSV text of a data set source.
type Fetcher interface {
	Fetch(ctx context.Context, source string) (io.ReadCloser, error)
}

// HTTPFetcher fetches http(s) sources. Responses outside 2xx are *FetchError.
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string
}

// Fetch issues a GET for source.
func (f *HTTPFetcher) Fetch(ctx context.Context, source string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &FetchError{Source: source, StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}

// FileFetcher reads local paths and file:// URLs.
type FileFetcher struct{}

// Fetch opens the file named by source.
func (FileFetcher) Fetch(ctx context.Context, source string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := LocalPath(source)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open: %w", err)
	}
	return f, nil
}

// LocalPath returns the filesystem path of a local source.
func LocalPath(source string) (string, error) {
	if !strings.HasPrefix(source, "file://") {
		return source, nil
	}
	u, err := url.Parse(source)
	if err != nil {
		return "", fmt.Errorf("invalid file url: %w", err)
	}
	return u.Path, nil
}

// IsRemote reports whether source is fetched over HTTP.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// SourceFetcher dispatches to HTTP or File by the source scheme.
type SourceFetcher struct {
	HTTP Fetcher
	File Fetcher
}

// NewSourceFetcher returns a fetcher for both remote and local sources.
func NewSourceFetcher(userAgent string) *SourceFetcher {
	return &SourceFetcher{
		HTTP: &HTTPFetcher{Client: &http.Client{}, UserAgent: userAgent},
		File: FileFetcher{},
	}
}

// Fetch retrieves source with the matching fetcher.
func (f *SourceFetcher) Fetch(ctx context.Context, source string) (io.ReadCloser, error) {
	if IsRemote(source) {
		return f.HTTP.Fetch(ctx, source)
	}
	return f.File.Fetch(ctx, source)
}
