package crawl

// Queue is a BFS queue that ignores URLs it has already seen.
type Queue struct {
	items []string
	seen  map[string]struct{}
	next  int
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{seen: make(map[string]struct{})}
}

// Add enqueues url unless it was added before. It reports whether url was new.
func (q *Queue) Add(url string) bool {
	if _, ok := q.seen[url]; ok {
		return false
	}
	q.seen[url] = struct{}{}
	q.items = append(q.items, url)
	return true
}

// HasNext reports whether unprocessed URLs remain.
func (q *Queue) HasNext() bool {
	return q.next < len(q.items)
}

// Next returns the next unprocessed URL and advances.
func (q *Queue) Next() string {
	url := q.items[q.next]
	q.next++
	return url
}

// Len is the number of distinct URLs added so far.
func (q *Queue) Len() int {
	return len(q.items)
}

// Take returns at most n URLs in insertion order; n <= 0 returns all.
func (q *Queue) Take(n int) []string {
	if n <= 0 || n >= len(q.items) {
		return q.items
	}
	return q.items[:n]
}
