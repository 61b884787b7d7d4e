package crawl

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/lexipipe/core"
	"github.com/gaurav-prasanna/lexipipe/core/fetch"
)

// site serves a small link graph and optionally a sitemap.
func site(t *testing.T, sitemap bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		if !sitemap {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprintf(w, `<?xml version="1.0"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>%[1]s/a</loc></url>
  <url><loc>%[1]s/b/</loc></url>
  <url><loc>%[1]s/logo.png</loc></url>
  <url><loc>https://elsewhere.example/c</loc></url>
</urlset>`, srv.URL)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, `<a href="/a">a</a><a href="b#top">b</a><a href="mailto:x@y.z">m</a>
<a href="https://elsewhere.example/">ext</a><a href="/style.css">css</a>`)
		case "/a":
			fmt.Fprint(w, `<a href="/">home</a><a href="/c">c</a>`)
		case "/b", "/c":
			fmt.Fprint(w, `<p>leaf</p>`)
		default:
			http.NotFound(w, r)
		}
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestDiscover_FromLinks(t *testing.T) {
	srv := site(t, false)
	d := New(fetch.New(), WithHTTPClient(srv.Client()))

	urls, err := d.Discover(context.Background(), srv.URL+"/")
	require.NoError(t, err)

	assert.Equal(t, []string{
		srv.URL + "/",
		srv.URL + "/a",
		srv.URL + "/b",
		srv.URL + "/c",
	}, urls)
}

func TestDiscover_FromSitemap(t *testing.T) {
	srv := site(t, true)
	d := New(fetch.New(), WithHTTPClient(srv.Client()))

	urls, err := d.Discover(context.Background(), srv.URL+"/")
	require.NoError(t, err)

	assert.Equal(t, []string{srv.URL + "/", srv.URL + "/a", srv.URL + "/b"}, urls)
}

func TestDiscover_MaxPages(t *testing.T) {
	srv := site(t, false)
	d := New(fetch.New(), WithMaxPages(2))

	urls, err := d.Discover(context.Background(), srv.URL+"/")
	require.NoError(t, err)
	assert.Len(t, urls, 2)
	assert.Equal(t, srv.URL+"/", urls[0])
}

type failingFetcher struct{}

func (failingFetcher) Fetch(_ context.Context, url string) (*core.Document, error) {
	return nil, &core.FetchError{URL: url, StatusCode: http.StatusNotFound}
}

func TestDiscover_UnreachableStartStillReturnsIt(t *testing.T) {
	d := New(failingFetcher{}, WithHTTPClient(&http.Client{Transport: failingTransport{}}))

	urls, err := d.Discover(context.Background(), "https://example.invalid/start")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.invalid/start"}, urls)
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, fmt.Errorf("offline")
}

func TestDiscover_InvalidBase(t *testing.T) {
	_, err := New(failingFetcher{}).Discover(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestExtractLinks(t *testing.T) {
	links, err := ExtractLinks(`<a href="/x#frag">1</a><a href="y">2</a><a href="#top">3</a>
<a href="javascript:void(0)">4</a><a href="tel:123">5</a><a>6</a>`, "https://example.com/dir/page")
	require.NoError(t, err)

	assert.Equal(t, []string{"https://example.com/x", "https://example.com/dir/y"}, links)
}

func TestQueue(t *testing.T) {
	q := NewQueue()
	assert.True(t, q.Add("a"))
	assert.True(t, q.Add("b"))
	assert.False(t, q.Add("a"))
	assert.Equal(t, 2, q.Len())

	assert.True(t, q.HasNext())
	assert.Equal(t, "a", q.Next())
	assert.Equal(t, "b", q.Next())
	assert.False(t, q.HasNext())

	assert.Equal(t, []string{"a"}, q.Take(1))
	assert.Equal(t, []string{"a", "b"}, q.Take(0))
}

func TestScope_Admit(t *testing.T) {
	in := newScope("Example.com")

	tests := []struct {
		url  string
		want string
		ok   bool
	}{
		{"https://EXAMPLE.com/a/#x", "https://example.com/a", true},
		{"https://example.com/", "https://example.com/", true},
		{"https://example.com/docs//", "https://example.com/docs", true},
		{"https://example.com/search?q=hund", "https://example.com/search?q=hund", true},
		{"https://other.com/a", "", false},
		{"https://example.com/img/Logo.PNG", "", false},
		{"https://example.com/feed.xml", "", false},
		{"://bad", "", false},
	}
	for _, tt := range tests {
		got, ok := in.admit(tt.url)
		assert.Equal(t, tt.ok, ok, tt.url)
		assert.Equal(t, tt.want, got, tt.url)
	}
}
