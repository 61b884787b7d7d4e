// Package core defines the pipeline types and stage interfaces for lexipipe.
// Each stage of the pipeline is a small, testable interface.
package core

import (
	"context"
	"iter"
	"mime"
	"strings"
)

// Document holds a fetched page after charset decoding.
type Document struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        string // UTF-8
}

// IsHTML reports whether the document should go through markup stripping.
// An empty content type is treated as HTML.
func (d *Document) IsHTML() bool {
	if d.ContentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(d.ContentType)
	if err != nil {
		return strings.Contains(d.ContentType, "html")
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

// POS is a coarse part-of-speech tag.
type POS string

const (
	Noun      POS = "NOUN"
	Adjective POS = "ADJ"
	Verb      POS = "VERB"
	Other     POS = "OTHER"
)

// ParsePOS accepts NOUN, ADJ or VERB in any case.
func ParsePOS(s string) (POS, bool) {
	switch POS(strings.ToUpper(strings.TrimSpace(s))) {
	case Noun:
		return Noun, true
	case Adjective:
		return Adjective, true
	case Verb:
		return Verb, true
	}
	return "", false
}

// Token is a single word occurrence. Lemma and POS are empty in pattern mode.
type Token struct {
	Text  string
	Lemma string
	POS   POS
}

// Key is the string the counter aggregates on.
func (t Token) Key() string {
	if t.Lemma != "" {
		return t.Lemma
	}
	return t.Text
}

// TokenSeq is a lazy, finite token sequence. Ranging over it twice yields the
// same tokens.
type TokenSeq = iter.Seq[Token]

// FrequencyRow is one word and its occurrence count.
type FrequencyRow struct {
	Word  string `json:"word"`
	Count int    `json:"frequency"`
}

// FrequencyTable is ordered by count descending; equal counts keep
// first-seen order.
type FrequencyTable struct {
	Rows []FrequencyRow `json:"rows"`
}

// Total is the sum of all counts.
func (t FrequencyTable) Total() int {
	n := 0
	for _, r := range t.Rows {
		n += r.Count
	}
	return n
}

// Len is the number of distinct words.
func (t FrequencyTable) Len() int { return len(t.Rows) }

// Top returns at most n leading rows. n <= 0 returns every row.
func (t FrequencyTable) Top(n int) []FrequencyRow {
	if n <= 0 || n >= len(t.Rows) {
		return t.Rows
	}
	return t.Rows[:n]
}

// LeveledRow is a frequency row with its resolved CEFR level.
type LeveledRow struct {
	Word  string `json:"word"`
	Count int    `json:"frequency"`
	Level Level  `json:"level"`
}

// Report is everything a renderer needs for one pipeline run.
type Report struct {
	Label     string         `json:"label"`
	Title     string         `json:"title,omitempty"`
	URL       string         `json:"url"`
	Mode      string         `json:"mode"`
	POS       POS            `json:"pos,omitempty"`
	Threshold Level          `json:"threshold,omitempty"`
	Table     FrequencyTable `json:"table"`
	Rows      []LeveledRow   `json:"leveled_rows,omitempty"`
	Leveled   bool           `json:"leveled"`
	Preview   int            `json:"-"`
}

// Fetcher retrieves a document from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Document, error)
}

// Extractor pulls the main content from raw HTML, stripping noise.
type Extractor interface {
	Extract(html string) (string, error)
}

// Cleaner turns a fetched document into plain text.
type Cleaner interface {
	Clean(doc *Document) (string, error)
	// Name returns the cleaner mode for logging.
	Name() string
}

// Tokenizer splits clean text into tokens.
type Tokenizer interface {
	Tokenize(text string) (TokenSeq, error)
}

// Lemmatizer tags and lemmatizes text for one language/model.
type Lemmatizer interface {
	Analyze(text string) ([]Token, error)
	// Name identifies the model, e.g. "prose" or "lexicon:de.csv".
	Name() string
}

// Renderer converts a report into an output format.
type Renderer interface {
	Render(report *Report) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".csv", ".pdf").
	Extension() string
}
