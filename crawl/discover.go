// Package crawl discovers the internal pages of a site for site mode.
// It tries sitemap.xml first and falls back to breadth-first link discovery,
// keeping crawling separate from the analysis pipeline.
package crawl

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/gaurav-prasanna/lexipipe/core"
)

const (
	defaultMaxPages       = 100
	defaultSitemapTimeout = 15 * time.Second
	maxSitemapBytes       = 5 << 20
)

// sitemapURL holds a URL from a sitemap.xml.
type sitemapURL struct {
	Loc string `xml:"loc"`
}

// urlSet is the root element of a sitemap.xml.
type urlSet struct {
	URLs []sitemapURL `xml:"url"`
}

// Discoverer finds same-host pages starting from a base URL.
type Discoverer struct {
	fetcher  core.Fetcher
	client   *http.Client
	limiter  *rate.Limiter
	maxPages int
	logger   *slog.Logger
}

// Option configures a Discoverer.
type Option func(*Discoverer)

// WithMaxPages caps how many URLs are returned.
func WithMaxPages(n int) Option {
	return func(d *Discoverer) {
		if n > 0 {
			d.maxPages = n
		}
	}
}

// WithLimiter throttles page fetches during link discovery.
func WithLimiter(l *rate.Limiter) Option {
	return func(d *Discoverer) { d.limiter = l }
}

// WithHTTPClient sets the client used for sitemap.xml.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Discoverer) { d.client = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Discoverer) { d.logger = l }
}

// New creates a Discoverer that fetches pages through fetcher.
func New(fetcher core.Fetcher, opts ...Option) *Discoverer {
	d := &Discoverer{
		fetcher:  fetcher,
		client:   &http.Client{Timeout: defaultSitemapTimeout},
		limiter:  rate.NewLimiter(rate.Inf, 1),
		maxPages: defaultMaxPages,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Discover finds internal URLs to process starting from baseURL.
// It first tries sitemap.xml, then falls back to link crawling. The base URL
// is always the first result.
func (d *Discoverer) Discover(ctx context.Context, baseURL string) ([]string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("parsing base URL %q: invalid", baseURL)
	}
	in := newScope(parsed.Host)

	sitemap := fmt.Sprintf("%s://%s/sitemap.xml", parsed.Scheme, parsed.Host)
	urls, err := d.fromSitemap(ctx, sitemap, in)
	if err == nil && len(urls) > 0 {
		d.logger.Debug("sitemap discovery", "url", sitemap, "pages", len(urls))
		q := NewQueue()
		q.Add(canonical(parsed))
		for _, u := range urls {
			q.Add(u)
		}
		return q.Take(d.maxPages), nil
	}
	if err != nil {
		d.logger.Debug("sitemap unavailable, crawling links", "url", sitemap, "error", err)
	}

	return d.fromLinks(ctx, canonical(parsed), in)
}

// fromSitemap fetches and parses sitemap.xml for internal URLs.
func (d *Discoverer) fromSitemap(ctx context.Context, sitemap string, in scope) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemap, nil)
	if err != nil {
		return nil, err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sitemap returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSitemapBytes))
	if err != nil {
		return nil, err
	}

	var set urlSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil, err
	}

	var urls []string
	for _, u := range set.URLs {
		if loc, ok := in.admit(u.Loc); ok {
			urls = append(urls, loc)
		}
	}
	return urls, nil
}

// fromLinks performs BFS crawling to find internal links.
func (d *Discoverer) fromLinks(ctx context.Context, startURL string, in scope) ([]string, error) {
	queue := NewQueue()
	queue.Add(startURL)

	for fetched := 0; queue.HasNext() && fetched < d.maxPages && queue.Len() < d.maxPages; fetched++ {
		if err := d.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		current := queue.Next()

		doc, err := d.fetcher.Fetch(ctx, current)
		if err != nil {
			d.logger.Debug("skipping page", "url", current, "error", err)
			continue
		}
		if !doc.IsHTML() {
			continue
		}

		links, err := ExtractLinks(doc.Body, current)
		if err != nil {
			continue
		}

		for _, link := range links {
			if page, ok := in.admit(link); ok {
				queue.Add(page)
			}
		}
	}

	return queue.Take(d.maxPages), nil
}

// ExtractLinks returns every href of an <a> tag, resolved against baseURL.
func ExtractLinks(html string, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	var links []string

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if resolved := resolveURL(strings.TrimSpace(href), base); resolved != "" {
			links = append(links, resolved)
		}
	})

	return links, nil
}

// resolveURL resolves a potentially relative URL against a base. Non-HTTP
// schemes and bare fragments resolve to "".
func resolveURL(href string, base *url.URL) string {
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(parsed)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""
	return resolved.String()
}
