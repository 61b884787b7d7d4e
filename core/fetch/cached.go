package fetch

import (
	"context"

	"github.com/gaurav-prasanna/lexipipe/core"
	"github.com/gaurav-prasanna/lexipipe/core/cache"
)

// CachedFetcher memoizes successful fetches by exact URL string.
type CachedFetcher struct {
	next core.Fetcher
	memo *cache.Memo[*core.Document]
}

// NewCached wraps next with memo. A nil memo gets a fresh one.
func NewCached(next core.Fetcher, memo *cache.Memo[*core.Document]) *CachedFetcher {
	if memo == nil {
		memo = cache.New[*core.Document]()
	}
	return &CachedFetcher{next: next, memo: memo}
}

// Fetch returns the memoized document for url, fetching it on first use.
func (c *CachedFetcher) Fetch(ctx context.Context, url string) (*core.Document, error) {
	return c.memo.GetOrLoad(url, func() (*core.Document, error) {
		return c.next.Fetch(ctx, url)
	})
}
