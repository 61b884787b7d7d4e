// Package tokenize implements the two tokenization policies:
//
//   - Pattern: maximal letter runs of at least two runes, lowercased.
//   - Linguistic: a Lemmatizer tags the text and only lemmas carrying the
//     requested part of speech are kept.
//
// Both return lazy sequences that can be ranged over more than once.
package tokenize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/gaurav-prasanna/lexipipe/core"
	"github.com/gaurav-prasanna/lexipipe/core/chunk"
)

// Mode selects a tokenization policy.
type Mode string

const (
	ModePattern    Mode = "pattern"
	ModeLinguistic Mode = "linguistic"
)

// ParseMode accepts "pattern" or "linguistic"; empty means pattern.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModePattern:
		return ModePattern, nil
	case ModeLinguistic:
		return ModeLinguistic, nil
	}
	return "", fmt.Errorf("unknown tokenize mode %q (want pattern or linguistic)", s)
}

const minWordRunes = 2

var wordRun = regexp.MustCompile(`\p{L}+`)

// Pattern extracts lowercase letter runs.
type Pattern struct{}

// NewPattern creates a pattern tokenizer.
func NewPattern() *Pattern {
	return &Pattern{}
}

// Tokenize never fails.
func (p *Pattern) Tokenize(text string) (core.TokenSeq, error) {
	return func(yield func(core.Token) bool) {
		// Full case mapping can add combining marks (İ lowers to i + U+0307),
		// so non-letters are dropped after lowering. Transformers are
		// stateful; each pass gets its own.
		lower := transform.Chain(cases.Lower(language.Und), runes.Remove(runes.NotIn(unicode.L)))
		for _, m := range wordRun.FindAllString(text, -1) {
			w, _, err := transform.String(lower, m)
			if err != nil || utf8.RuneCountInString(w) < minWordRunes {
				continue
			}
			if !yield(core.Token{Text: w}) {
				return
			}
		}
	}, nil
}

// Words collects the pattern tokens of text into a slice.
func (p *Pattern) Words(text string) []string {
	var words []string
	seq, _ := p.Tokenize(text)
	for tok := range seq {
		words = append(words, tok.Text)
	}
	return words
}

// Linguistic keeps lemmas whose POS matches the requested tag.
type Linguistic struct {
	lemmatizer core.Lemmatizer
	pos        core.POS
	chunker    *chunk.Chunker
}

// NewLinguistic creates a linguistic tokenizer filtering on pos. An empty pos
// keeps every word the lemmatizer returns.
func NewLinguistic(l core.Lemmatizer, pos core.POS, chunkSize int) *Linguistic {
	return &Linguistic{lemmatizer: l, pos: pos, chunker: chunk.New(chunkSize)}
}

// Tokenize runs the lemmatizer over text chunk by chunk. Analysis happens up
// front so errors surface here rather than mid-iteration.
func (t *Linguistic) Tokenize(text string) (core.TokenSeq, error) {
	if t.lemmatizer == nil {
		return nil, fmt.Errorf("%w: no lemmatizer configured", core.ErrModelUnavailable)
	}

	var tokens []core.Token
	for _, c := range t.chunker.Chunk(text) {
		analyzed, err := t.lemmatizer.Analyze(c)
		if err != nil {
			return nil, err
		}
		for _, tok := range analyzed {
			if t.pos != "" && tok.POS != t.pos {
				continue
			}
			tok.Lemma = strings.ToLower(tok.Lemma)
			if tok.Lemma == "" {
				tok.Lemma = strings.ToLower(tok.Text)
			}
			tokens = append(tokens, tok)
		}
	}

	return func(yield func(core.Token) bool) {
		for _, tok := range tokens {
			if !yield(tok) {
				return
			}
		}
	}, nil
}
