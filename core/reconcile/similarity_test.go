package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("elden ring", "elden ring"))
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 0.0, Similarity("abc", ""))
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))
	assert.InDelta(t, 0.9, Similarity("hollow knigt", "hollow knight"), 0.05)
}

func TestSimilarity_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"the witcher 3", "totally unrelated title"},
		{"a", "abcdefghij"},
		{"pokémon", "pokemon"},
		{"", "x"},
		{"game x", "game y"},
	}

	for _, p := range pairs {
		s := Similarity(p[0], p[1])
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
		assert.Equal(t, s, Similarity(p[1], p[0]), "similarity is symmetric for %q/%q", p[0], p[1])
		assert.Equal(t, 1.0, Similarity(p[0], p[0]))
	}
}

func TestSimilarity_RuneLength(t *testing.T) {
	// one substitution over seven runes
	assert.InDelta(t, 1-1.0/7, Similarity("pokémon", "pokemon"), 1e-9)
}
