package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name string
		size int
		text string
		want []string
	}{
		{"empty", 3, "", nil},
		{"single chunk", 10, "a b\nc d", []string{"a b\nc d"}},
		{"splits on line boundary", 3, "a b\nc d\ne", []string{"a b", "c d\ne"}},
		{"long line stays whole", 2, "a b c d\ne", []string{"a b c d", "e"}},
		{"skips blank lines", 10, "a\n\n  \nb", []string{"a\nb"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.size).Chunk(tt.text))
		})
	}
}

func TestNew_DefaultSize(t *testing.T) {
	assert.Equal(t, defaultChunkSize, New(0).ChunkSize)
}
