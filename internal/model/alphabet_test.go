package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLetters_SplitsRunes(t *testing.T) {
	assert.Equal(t, []string{"h", "i"}, Letters("hi"))
	assert.Equal(t, []string{}, Letters(""))
	assert.Equal(t, []string{"ß", "!", "1"}, Letters("ß!1"))
}

func TestLetters_NormalizesDecomposedForms(t *testing.T) {
	// "e" followed by U+0301 COMBINING ACUTE ACCENT composes to U+00E9.
	decomposed := "e\u0301"
	assert.Equal(t, []string{"\u00e9"}, Letters(decomposed))
	assert.Equal(t, "\u00e9", Letter(decomposed))
}

func TestPrefix(t *testing.T) {
	assert.Equal(t, "abc", Prefix("abcdef", 3))
	assert.Equal(t, "ab", Prefix("ab", 5))
	assert.Equal(t, "", Prefix("abc", 0))
}

func TestDistinct(t *testing.T) {
	assert.True(t, Distinct("abc"))
	assert.False(t, Distinct("abca"))
	assert.True(t, Distinct(""))
}

func TestPlugboard_Port(t *testing.T) {
	p := Plugboard{Wiring: []int{2, 1, 3}}
	assert.Equal(t, 2, p.Port(1))
	assert.Equal(t, 1, p.Port(2))
	assert.Equal(t, 3, p.Port(3))

	// Unwired plugboards pass letters straight through.
	assert.Equal(t, 5, Plugboard{}.Port(5))
}
