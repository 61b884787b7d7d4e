package count

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gaurav-prasanna/lexipipe/core"
	"github.com/gaurav-prasanna/lexipipe/core/tokenize"
)

func tokens(words ...string) core.TokenSeq {
	return func(yield func(core.Token) bool) {
		for _, w := range words {
			if !yield(core.Token{Text: w}) {
				return
			}
		}
	}
}

func TestCount_GermanExample(t *testing.T) {
	seq, err := tokenize.NewPattern().Tokenize("Der Hund lief. Der Hund bellte.")
	assert.NoError(t, err)

	got := Count(seq)

	want := []core.FrequencyRow{
		{Word: "der", Count: 2},
		{Word: "hund", Count: 2},
		{Word: "lief", Count: 1},
		{Word: "bellte", Count: 1},
	}
	assert.Equal(t, want, got.Rows)
	assert.Equal(t, 6, got.Total())
}

func TestCount_TotalEqualsTokenCount(t *testing.T) {
	texts := []string{
		"",
		"one",
		"the cat and the hat and the bat",
		"Ärger über Öl, über Ärger; ÖL!",
	}
	for _, text := range texts {
		seq, _ := tokenize.NewPattern().Tokenize(text)
		table := Count(seq)
		assert.Equal(t, len(slices.Collect(seq)), table.Total(), text)
	}
}

func TestCount_TieBreakIsFirstSeen(t *testing.T) {
	got := Count(tokens("b", "a", "c", "a", "b", "d"))
	assert.Equal(t, []core.FrequencyRow{
		{Word: "b", Count: 2},
		{Word: "a", Count: 2},
		{Word: "c", Count: 1},
		{Word: "d", Count: 1},
	}, got.Rows)
}

func TestCount_UsesLemmaKey(t *testing.T) {
	seq := func(yield func(core.Token) bool) {
		_ = yield(core.Token{Text: "ran", Lemma: "run"}) &&
			yield(core.Token{Text: "runs", Lemma: "run"}) &&
			yield(core.Token{Text: "dog"})
	}
	got := Count(seq)
	assert.Equal(t, []core.FrequencyRow{{Word: "run", Count: 2}, {Word: "dog", Count: 1}}, got.Rows)
}

func TestCount_Empty(t *testing.T) {
	got := Count(tokens())
	assert.Empty(t, got.Rows)
	assert.Equal(t, 0, got.Total())
}

func TestCountAll_AcrossSequences(t *testing.T) {
	got := CountAll(tokens("x", "y"), nil, tokens("y", "z"))
	assert.Equal(t, []core.FrequencyRow{
		{Word: "y", Count: 2},
		{Word: "x", Count: 1},
		{Word: "z", Count: 1},
	}, got.Rows)
}
