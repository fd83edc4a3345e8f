package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "caf du march 42", CleanText("  Café du Marché #42! "))
	assert.Equal(t, "a b c", CleanText("a--b__c"))
	assert.Equal(t, "", CleanText("!!! ???"))
}

func TestTokenizeDropsStopWordsAndShortTokens(t *testing.T) {
	tokens := Tokenize("A walk in the park, by the river")
	assert.Equal(t, []string{"walk", "park", "river"}, tokens)
}

func TestTokenizeEmptyInput(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("of the and"))
}
