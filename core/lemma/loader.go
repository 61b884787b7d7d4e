package lemma

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/lexipipe/core"
	"github.com/gaurav-prasanna/lexipipe/core/cache"
)

// Loader resolves model names to Lemmatizers, loading each name at most once.
type Loader struct {
	language string
	memo     *cache.Memo[core.Lemmatizer]
}

// NewLoader creates a Loader. language is the Snowball language lexicon
// models stem unknown words in ("english", "german"); empty disables
// stemming. A nil memo gets a fresh one.
func NewLoader(language string, memo *cache.Memo[core.Lemmatizer]) *Loader {
	if memo == nil {
		memo = cache.New[core.Lemmatizer]()
	}
	return &Loader{language: language, memo: memo}
}

// Load returns the Lemmatizer for name. Every failure wraps
// core.ErrModelUnavailable.
func (l *Loader) Load(name string) (core.Lemmatizer, error) {
	name = strings.TrimSpace(name)
	return l.memo.GetOrLoad(name, func() (core.Lemmatizer, error) {
		return l.load(name)
	})
}

func (l *Loader) load(name string) (core.Lemmatizer, error) {
	switch {
	case name == ProseModelName:
		return NewProse(), nil

	case strings.HasPrefix(name, LexiconPrefix):
		path := strings.TrimPrefix(name, LexiconPrefix)
		if path == "" {
			return nil, fmt.Errorf("%w: lexicon model needs a path", core.ErrModelUnavailable)
		}
		stem, err := NewStemmer(l.language)
		if err != nil {
			return nil, err
		}
		return LoadLexicon(path, stem)
	}
	return nil, fmt.Errorf("%w: unknown model %q", core.ErrModelUnavailable, name)
}
