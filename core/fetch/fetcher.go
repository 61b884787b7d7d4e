// Package fetch implements the Fetcher interface.
// It performs HTTP GET requests and decodes the body to UTF-8.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html/charset"

	"github.com/gaurav-prasanna/lexipipe/core"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultUserAgent    = "lexipipe/1.0 (https://github.com/gaurav-prasanna/lexipipe)"
	defaultMaxBodyBytes = 10 << 20
)

// HTTPFetcher fetches documents via HTTP.
type HTTPFetcher struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
	logger       *slog.Logger
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithTimeout sets the overall request timeout. Expiry surfaces as ErrFetch.
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) {
		if d > 0 {
			f.client.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMaxBodyBytes caps how much of the body is read.
func WithMaxBodyBytes(n int64) Option {
	return func(f *HTTPFetcher) {
		if n > 0 {
			f.maxBodyBytes = n
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(f *HTTPFetcher) { f.logger = l }
}

// New creates an HTTPFetcher with a sensible timeout.
func New(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client:       &http.Client{Timeout: defaultTimeout},
		userAgent:    defaultUserAgent,
		maxBodyBytes: defaultMaxBodyBytes,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves url and returns its body as UTF-8 text.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &core.FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.9")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &core.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	f.logger.Debug("fetched", "url", url, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &core.FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	contentType := resp.Header.Get("Content-Type")
	body, err := decode(io.LimitReader(resp.Body, f.maxBodyBytes), contentType)
	if err != nil {
		return nil, err
	}

	return &core.Document{
		URL:         url,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        body,
	}, nil
}

// decode converts the body to UTF-8. A charset declared in the header or the
// document is honoured, otherwise one is sniffed. Bodies that claim UTF-8
// must actually be UTF-8; other charsets are transcoded.
func decode(r io.Reader, contentType string) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return "", fmt.Errorf("%w: reading response body: %v", core.ErrFetch, err)
		}
		return "", fmt.Errorf("%w: reading response body: %v", core.ErrDecode, err)
	}

	enc, name, _ := charset.DetermineEncoding(raw, contentType)
	if name != "utf-8" {
		raw, err = enc.NewDecoder().Bytes(raw)
		if err != nil {
			return "", fmt.Errorf("%w: decoding %s: %v", core.ErrDecode, name, err)
		}
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: body is not valid UTF-8", core.ErrDecode)
	}
	if bytes.IndexByte(raw, 0) >= 0 {
		return "", fmt.Errorf("%w: body looks binary", core.ErrDecode)
	}
	return string(raw), nil
}
