// Package cache provides the memo used to avoid repeated network reads and
// model loads within a session. Entries never expire: a key is the exact
// input (URL or model name) and content is treated as immutable.
package cache

import (
	"sync"

	gocache "github.com/patrickmn/go-cache"
)

// Memo is a concurrency-safe, non-expiring key/value memo. The zero value is
// not usable; create one with New.
type Memo[V any] struct {
	store *gocache.Cache

	// inflight serializes loads per key so concurrent callers share one load.
	mu       sync.Mutex
	inflight map[string]*sync.Mutex
}

// New creates an empty Memo.
func New[V any]() *Memo[V] {
	return &Memo[V]{
		store:    gocache.New(gocache.NoExpiration, 0),
		inflight: make(map[string]*sync.Mutex),
	}
}

// Get returns the memoized value for key.
func (m *Memo[V]) Get(key string) (V, bool) {
	var zero V
	v, ok := m.store.Get(key)
	if !ok {
		return zero, false
	}
	return v.(V), true
}

// Set stores a value, replacing any previous one.
func (m *Memo[V]) Set(key string, v V) {
	m.store.Set(key, v, gocache.NoExpiration)
}

// GetOrLoad returns the memoized value for key, calling load at most once per
// key across concurrent callers. Failed loads are not memoized.
func (m *Memo[V]) GetOrLoad(key string, load func() (V, error)) (V, error) {
	if v, ok := m.Get(key); ok {
		return v, nil
	}

	lock := m.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	// Another caller may have finished the load while we waited.
	if v, ok := m.Get(key); ok {
		return v, nil
	}

	v, err := load()
	if err != nil {
		var zero V
		return zero, err
	}
	m.Set(key, v)
	return v, nil
}

// Len returns the number of memoized entries.
func (m *Memo[V]) Len() int {
	return m.store.ItemCount()
}

func (m *Memo[V]) keyLock(key string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.inflight[key]
	if !ok {
		l = &sync.Mutex{}
		m.inflight[key] = l
	}
	return l
}
