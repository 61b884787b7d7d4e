// Package lemma provides Lemmatizer implementations and a memoizing loader.
//
// Two model families are supported:
//   - "prose": English part-of-speech tagging with prose. Words keep their
//     lowercased surface form so they join against dictionary-form tables.
//   - "lexicon:<path>": a CSV lexicon (word,lemma,pos) for any language, with a
//     Snowball stem fallback for words the lexicon does not know.
package lemma

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"

	"github.com/gaurav-prasanna/lexipipe/core"
)

// ProseModelName is the model name that selects the prose tagger.
const ProseModelName = "prose"

// Prose tags English text with prose. It has no inflection data, so the
// lemma is the lowercased word.
type Prose struct{}

// NewProse creates a prose-backed Lemmatizer.
func NewProse() *Prose {
	return &Prose{}
}

// Name returns the model name.
func (p *Prose) Name() string { return ProseModelName }

// Analyze tags text and returns one token per word. Punctuation is dropped.
func (p *Prose) Analyze(text string) ([]core.Token, error) {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: prose: %v", core.ErrModelUnavailable, err)
	}

	var tokens []core.Token
	for _, tok := range doc.Tokens() {
		if !strings.ContainsFunc(tok.Text, unicode.IsLetter) {
			continue
		}
		tokens = append(tokens, core.Token{
			Text:  tok.Text,
			Lemma: strings.ToLower(tok.Text),
			POS:   pennToPOS(tok.Tag),
		})
	}
	return tokens, nil
}

// pennToPOS maps Penn Treebank tags to the coarse tag set. Proper nouns and
// modals are not content words here and map to Other.
func pennToPOS(tag string) core.POS {
	switch tag {
	case "NN", "NNS":
		return core.Noun
	case "JJ", "JJR", "JJS":
		return core.Adjective
	case "VB", "VBD", "VBG", "VBN", "VBP", "VBZ":
		return core.Verb
	}
	return core.Other
}
