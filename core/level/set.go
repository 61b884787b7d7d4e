package level

import (
	"fmt"

	"github.com/gaurav-prasanna/lexipipe/core"
	"github.com/gaurav-prasanna/lexipipe/core/cache"
)

// Paths names one reference CSV per part of speech. Empty paths are skipped.
type Paths struct {
	Noun      string `mapstructure:"noun"`
	Adjective string `mapstructure:"adj"`
	Verb      string `mapstructure:"verb"`
}

// ordered lists the configured files in a fixed order so merged lookups are
// deterministic.
func (p Paths) ordered() []struct {
	pos  core.POS
	path string
} {
	all := []struct {
		pos  core.POS
		path string
	}{
		{core.Noun, p.Noun},
		{core.Adjective, p.Adjective},
		{core.Verb, p.Verb},
	}
	out := all[:0]
	for _, e := range all {
		if e.path != "" {
			out = append(out, e)
		}
	}
	return out
}

// Empty reports whether no reference file is configured.
func (p Paths) Empty() bool { return len(p.ordered()) == 0 }

// Loader loads reference CSVs, reading each path at most once.
type Loader struct {
	paths Paths
	memo  *cache.Memo[*Reference]
}

// NewLoader creates a Loader. A nil memo gets a fresh one.
func NewLoader(paths Paths, memo *cache.Memo[*Reference]) *Loader {
	if memo == nil {
		memo = cache.New[*Reference]()
	}
	return &Loader{paths: paths, memo: memo}
}

// For returns the reference for pos. An empty pos (pattern mode) gets the
// union of every configured file; when a word appears in several files the
// noun file wins, then adjective, then verb.
func (l *Loader) For(pos core.POS) (*Reference, error) {
	files := l.paths.ordered()
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no reference files configured", core.ErrReferenceUnavailable)
	}

	if pos != "" {
		for _, f := range files {
			if f.pos == pos {
				return l.load(f.path)
			}
		}
		return nil, fmt.Errorf("%w: no reference file for %s", core.ErrReferenceUnavailable, pos)
	}

	merged := NewReference()
	for _, f := range files {
		ref, err := l.load(f.path)
		if err != nil {
			return nil, err
		}
		for _, e := range ref.Entries() {
			merged.add(e.Word, e.Level)
		}
	}
	return merged, nil
}

func (l *Loader) load(path string) (*Reference, error) {
	return l.memo.GetOrLoad(path, func() (*Reference, error) {
		return LoadReference(path)
	})
}
