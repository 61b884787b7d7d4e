package lemma

import (
	"fmt"
	"strings"

	"github.com/kljensen/snowball"

	"github.com/gaurav-prasanna/lexipipe/core"
)

// Stemmer reduces a lowercase word to its Snowball stem.
type Stemmer struct {
	language string
}

// NewStemmer validates language against the Snowball stemmers. An empty
// language disables stemming; Stem then returns its input.
func NewStemmer(language string) (Stemmer, error) {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		return Stemmer{}, nil
	}
	if _, err := snowball.Stem("test", language, true); err != nil {
		return Stemmer{}, fmt.Errorf("%w: stemmer %q: %v", core.ErrModelUnavailable, language, err)
	}
	return Stemmer{language: language}, nil
}

// Stem returns the stem of word, or word itself when stemming is off.
func (s Stemmer) Stem(word string) string {
	if s.language == "" {
		return word
	}
	stemmed, err := snowball.Stem(word, s.language, true)
	if err != nil || stemmed == "" {
		return word
	}
	return stemmed
}
