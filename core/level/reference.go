// Package level classifies frequency tables against CEFR reference tables.
package level

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gaurav-prasanna/lexipipe/core"
)

// Reference is a read-only word → level lookup.
type Reference struct {
	levels map[string]core.Level
	order  []string
}

// NewReference builds a Reference from entries. The first entry for a word wins.
func NewReference(entries ...core.LevelEntry) *Reference {
	r := &Reference{levels: make(map[string]core.Level, len(entries))}
	for _, e := range entries {
		r.add(e.Word, e.Level)
	}
	return r
}

func (r *Reference) add(word string, l core.Level) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return
	}
	if _, ok := r.levels[word]; ok {
		return
	}
	r.levels[word] = l
	r.order = append(r.order, word)
}

// Lookup returns the level for word (case-insensitive).
func (r *Reference) Lookup(word string) (core.Level, bool) {
	if r == nil {
		return "", false
	}
	l, ok := r.levels[strings.ToLower(word)]
	return l, ok
}

// Resolve returns the level for word, or C2 when the word is unknown.
func (r *Reference) Resolve(word string) core.Level {
	if l, ok := r.Lookup(word); ok {
		return l
	}
	return core.C2
}

// Len is the number of words in the reference.
func (r *Reference) Len() int {
	if r == nil {
		return 0
	}
	return len(r.levels)
}

// Entries returns the reference in load order.
func (r *Reference) Entries() []core.LevelEntry {
	out := make([]core.LevelEntry, 0, len(r.order))
	for _, w := range r.order {
		out = append(out, core.LevelEntry{Word: w, Level: r.levels[w]})
	}
	return out
}

// LoadReference reads a reference CSV from path.
func LoadReference(path string) (*Reference, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrReferenceUnavailable, err)
	}
	defer f.Close()

	ref, err := ReadReference(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ref, nil
}

// ReadReference parses a CSV whose header contains "word" and "level".
// Other columns are ignored. Any malformed row fails the whole table.
func ReadReference(r io.Reader) (*Reference, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", core.ErrReferenceUnavailable, err)
	}
	wordCol, levelCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "word":
			if wordCol < 0 {
				wordCol = i
			}
		case "level":
			if levelCol < 0 {
				levelCol = i
			}
		}
	}
	if wordCol < 0 || levelCol < 0 {
		return nil, fmt.Errorf("%w: header must contain word and level columns", core.ErrReferenceUnavailable)
	}

	ref := NewReference()
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", core.ErrReferenceUnavailable, line, err)
		}
		if len(rec) <= max(wordCol, levelCol) {
			return nil, fmt.Errorf("%w: line %d: too few columns", core.ErrReferenceUnavailable, line)
		}
		l, err := core.ParseLevel(rec[levelCol])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", core.ErrReferenceUnavailable, line, err)
		}
		ref.add(rec[wordCol], l)
	}
	return ref, nil
}
