package lemma

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/lexipipe/core"
)

// LexiconPrefix selects a CSV lexicon model: "lexicon:<path>".
const LexiconPrefix = "lexicon:"

type lexEntry struct {
	lemma string
	pos   core.POS
}

// Lexicon lemmatizes by dictionary lookup. Words missing from the lexicon get
// a stem as lemma and POS Other.
type Lexicon struct {
	name    string
	entries map[string]lexEntry
	stem    Stemmer
}

var letterRun = regexp.MustCompile(`\p{L}+`)

// LoadLexicon reads a lexicon CSV from path. The header must name the
// columns word, lemma and pos; other columns are ignored.
func LoadLexicon(path string, stem Stemmer) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening lexicon: %v", core.ErrModelUnavailable, err)
	}
	defer f.Close()

	lex, err := ReadLexicon(f, stem)
	if err != nil {
		return nil, err
	}
	lex.name = LexiconPrefix + path
	return lex, nil
}

// ReadLexicon parses lexicon CSV from r.
func ReadLexicon(r io.Reader, stem Stemmer) (*Lexicon, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading lexicon header: %v", core.ErrModelUnavailable, err)
	}
	col := columnIndex(header)
	wordCol, okW := col["word"]
	lemmaCol, okL := col["lemma"]
	posCol, okP := col["pos"]
	if !okW || !okL || !okP {
		return nil, fmt.Errorf("%w: lexicon header must contain word, lemma, pos", core.ErrModelUnavailable)
	}

	lex := &Lexicon{name: LexiconPrefix, entries: make(map[string]lexEntry), stem: stem}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: lexicon line %d: %v", core.ErrModelUnavailable, line, err)
		}
		if len(rec) <= max(wordCol, lemmaCol, posCol) {
			return nil, fmt.Errorf("%w: lexicon line %d: too few columns", core.ErrModelUnavailable, line)
		}
		word := strings.ToLower(strings.TrimSpace(rec[wordCol]))
		if word == "" {
			continue
		}
		pos, ok := core.ParsePOS(rec[posCol])
		if !ok {
			pos = core.Other
		}
		lemma := strings.ToLower(strings.TrimSpace(rec[lemmaCol]))
		if lemma == "" {
			lemma = word
		}
		// First entry for a word wins.
		if _, seen := lex.entries[word]; !seen {
			lex.entries[word] = lexEntry{lemma: lemma, pos: pos}
		}
	}
	return lex, nil
}

// Name returns the model name.
func (l *Lexicon) Name() string { return l.name }

// Len is the number of distinct words in the lexicon.
func (l *Lexicon) Len() int { return len(l.entries) }

// Analyze splits text into letter runs and looks each one up.
func (l *Lexicon) Analyze(text string) ([]core.Token, error) {
	words := letterRun.FindAllString(text, -1)
	tokens := make([]core.Token, 0, len(words))
	for _, w := range words {
		lower := strings.ToLower(w)
		if e, ok := l.entries[lower]; ok {
			tokens = append(tokens, core.Token{Text: w, Lemma: e.lemma, POS: e.pos})
			continue
		}
		tokens = append(tokens, core.Token{Text: w, Lemma: l.stem.Stem(lower), POS: core.Other})
	}
	return tokens, nil
}

func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	return idx
}
