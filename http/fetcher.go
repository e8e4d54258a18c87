// Package http provides an HTTP implementation of sitesnap.Fetcher.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/sitesnap"
)

// DefaultFetchTimeout bounds each request, including reading the body.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies sitesnap to the sites it crawls.
const DefaultUserAgent = "sitesnap/1.0"

// Ensure Fetcher implements sitesnap.Fetcher at compile time.
var _ sitesnap.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages with plain GET requests. It does not execute
// JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the body of url. Any status other than 200 and any
// transport failure, timeouts included, returns an EFETCH error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", sitesnap.Errorf(sitesnap.EFETCH, "invalid request for %s: %v", url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", sitesnap.Errorf(sitesnap.EFETCH, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", sitesnap.Errorf(sitesnap.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", sitesnap.Errorf(sitesnap.EFETCH, "read %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. It is a no-op for the HTTP fetcher.
func (f *Fetcher) Close() error {
	return nil
}
