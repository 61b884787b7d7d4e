package core

import (
	"fmt"
	"strings"
)

// Level is a CEFR proficiency label.
type Level string

const (
	A1 Level = "A1"
	A2 Level = "A2"
	B1 Level = "B1"
	B2 Level = "B2"
	C1 Level = "C1"
	C2 Level = "C2"
)

// Levels lists every label in ascending difficulty.
var Levels = []Level{A1, A2, B1, B2, C1, C2}

// Rank maps A1..C2 to 1..6. Unknown labels rank 0.
func (l Level) Rank() int {
	for i, v := range Levels {
		if v == l {
			return i + 1
		}
	}
	return 0
}

// Valid reports whether l is one of the six labels.
func (l Level) Valid() bool { return l.Rank() > 0 }

// ParseLevel accepts a label in any case with surrounding whitespace.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q (want one of A1, A2, B1, B2, C1, C2)", ErrInvalidLevel, s)
	}
	return l, nil
}

// LevelEntry is one row of a CEFR reference table.
type LevelEntry struct {
	Word  string `json:"word"`
	Level Level  `json:"level"`
}
