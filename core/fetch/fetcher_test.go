package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/lexipipe/core"
	"github.com/gaurav-prasanna/lexipipe/core/cache"
)

func TestFetch_ReturnsUTF8Body(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "lexipipe")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><p>Der Hund lief.</p></body></html>"))
	}))
	defer srv.Close()

	doc, err := New().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, doc.StatusCode)
	assert.Contains(t, doc.Body, "Der Hund lief.")
	assert.True(t, doc.IsHTML())
}

func TestFetch_DecodesLatin1(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=iso-8859-1")
		// "Grüße" in ISO-8859-1.
		_, _ = w.Write([]byte{'G', 'r', 0xfc, 0xdf, 'e'})
	}))
	defer srv.Close()

	doc, err := New().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Grüße", doc.Body)
	assert.False(t, doc.IsHTML())
}

func TestFetch_NotFoundIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := New().Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, core.ErrFetch)

	var fe *core.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusNotFound, fe.StatusCode)
}

func TestFetch_UnreachableIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New().Fetch(context.Background(), url)
	require.ErrorIs(t, err, core.ErrFetch)
}

func TestFetch_TimeoutIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := New(WithTimeout(20*time.Millisecond)).Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, core.ErrFetch)
}

func TestFetch_BinaryBodyIsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte{'a', 0x00, 'b'})
	}))
	defer srv.Close()

	_, err := New().Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, core.ErrDecode)
}

func TestFetch_InvalidUTF8IsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		// Latin-1 "é" under a UTF-8 label.
		_, _ = w.Write([]byte("<p>caf\xe9</p>"))
	}))
	defer srv.Close()

	_, err := New().Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, core.ErrDecode)
}

func TestCachedFetcher_OneNetworkReadPerURL(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	memo := cache.New[*core.Document]()
	f := NewCached(New(), memo)
	for range 3 {
		doc, err := f.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "hello", doc.Body)
	}

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, 1, memo.Len())
}

func TestCachedFetcher_DoesNotMemoizeFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := NewCached(New(), nil)
	_, err := f.Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, core.ErrFetch)
	_, err = f.Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, core.ErrFetch)

	assert.Equal(t, int32(2), hits.Load())
}
