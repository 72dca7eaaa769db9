package reconcile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "Elden Ring", "elden ring"},
		{"parenthetical platform", "Game X™ (PlayStation®5)", "game x"},
		{"dashed platform", "Game X - PS5", "game x"},
		{"trailing platform", "Game X PS5", "game x"},
		{"conjunction", "Game X PS4 & PS5", "game x"},
		{"and platform", "Game X and Xbox One", "game x"},
		{"leading platform", "Xbox: Game X", "game x"},
		{"edition suffix", "The Witcher 3: Wild Hunt - GOTY", "the witcher 3 wild hunt"},
		{"edition word", "Cyberpunk 2077 Ultimate Edition", "cyberpunk 2077"},
		{"build suffix", "Some Shooter Open Beta", "some shooter"},
		{"region code", "Some Racer EU", "some racer"},
		{"apostrophe", "Assassin's Creed", "assassins creed"},
		{"whitespace", "  Hollow   Knight  ", "hollow knight"},
		{"only platform kept", "Xbox", "xbox"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalize_Invariance(t *testing.T) {
	a := Normalize("Game X™ (PlayStation®5)")
	assert.Equal(t, a, Normalize("Game X - PS5"))
	assert.Equal(t, a, Normalize("Game X PS5"))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Game X™ (PlayStation®5)",
		"Game X ps5 Deluxe Edition",
		"The Witcher® 3: Wild Hunt — Game of the Year Edition",
		"DOOM Eternal (PC) Standard Edition Demo",
		"Forza Horizon 5 Xbox Series X|S",
		"Rocket League®",
		"Gold",
		"  ",
		"___",
		"Ratchet & Clank: Rift Apart",
		"Game" + strings.Repeat(" Gold Demo", 9),
		"Game" + strings.Repeat(" Deluxe Edition Beta EU", 12),
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalize_LongSuffixChain(t *testing.T) {
	assert.Equal(t, "game", Normalize("Game"+strings.Repeat(" Gold Demo", 9)))
	assert.Equal(t, "game", Normalize("Game"+strings.Repeat(" Deluxe Edition Beta EU", 12)))
}

func TestNewNormalizer_CustomTokens(t *testing.T) {
	n := NewNormalizer([]string{`stadia`}, []string{`preview`}, []string{`royal`})

	assert.Equal(t, "game x", n.Normalize("Game X (Stadia)"))
	assert.Equal(t, "game x", n.Normalize("Game X Preview"))
	assert.Equal(t, "game x", n.Normalize("Game X Royal Edition"))
	assert.Equal(t, "game x ps5", n.Normalize("Game X PS5"))
}
