package relevance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCountPhrase_Substring verifies words containing the phrase count
func TestCountPhrase_Substring(t *testing.T) {
	text := "Venezuelan culture is very rich. Many Venezuelans live in Venezuela."

	assert.Equal(t, 3, CountPhrase(text, "venezuela"))
}

// TestCountPhrase_Repeated verifies repeated exact words
func TestCountPhrase_Repeated(t *testing.T) {
	assert.Equal(t, 2, CountPhrase("hello hello world", "hello"))
	assert.Equal(t, 2, CountPhrase("This is a test sentence for testing.", "test"))
}

// TestCountPhrase_CaseInsensitive verifies case folding on both sides
func TestCountPhrase_CaseInsensitive(t *testing.T) {
	assert.Equal(t, 2, CountPhrase("BASEBALL and Baseball", "baseBall"))
}

// TestCountPhrase_Punctuation verifies apostrophes and colons split words
func TestCountPhrase_Punctuation(t *testing.T) {
	assert.Equal(t, 1, CountPhrase("Trump’s resilience gives California GOP dreams of payback in a state that has long been blue.", "trump"))
	assert.Equal(t, 1, CountPhrase("Column: Don’t cancel those summer plans yet. Who knows if the presidential debates will come off.", "column"))
}

// TestCountPhrase_OncePerWord verifies a word matching twice counts once
func TestCountPhrase_OncePerWord(t *testing.T) {
	assert.Equal(t, 1, CountPhrase("lalala", "la"))
	assert.Equal(t, 2, CountPhrase("banana bandana", "an"))
}

// TestCountPhrase_MultiWord verifies phrases spanning words
func TestCountPhrase_MultiWord(t *testing.T) {
	assert.Equal(t, 2, CountPhrase("Los Angeles loves Los Angeles", "los angeles"))
}

// TestCountPhrase_RegexMetacharacters verifies the phrase is matched literally
func TestCountPhrase_RegexMetacharacters(t *testing.T) {
	assert.Equal(t, 1, CountPhrase("C++ developers", "c++"))
	assert.Equal(t, 0, CountPhrase("abc", "a.c"))
}

// TestCountPhrase_Empty verifies empty inputs return zero
func TestCountPhrase_Empty(t *testing.T) {
	assert.Equal(t, 0, CountPhrase("", "hello"))
	assert.Equal(t, 0, CountPhrase("hello world", ""))
	assert.Equal(t, 0, CountPhrase("", ""))
}

// TestCountPhrase_NoMatch verifies unrelated text
func TestCountPhrase_NoMatch(t *testing.T) {
	assert.Equal(t, 0, CountPhrase("nothing to see here", "baseball"))
}

// TestContainsMoney_Dollar verifies dollar amounts are detected
func TestContainsMoney_Dollar(t *testing.T) {
	assert.True(t, ContainsMoney("The price is $20.50 and €30."))
	assert.True(t, ContainsMoney("A $1,250,000 contract"))
	assert.True(t, ContainsMoney("It cost $5 dollars"))
	assert.True(t, ContainsMoney("about $11 USD"))
	assert.True(t, ContainsMoney("$3"))
}

// TestContainsMoney_NoDollar verifies other currencies and bare signs
func TestContainsMoney_NoDollar(t *testing.T) {
	assert.False(t, ContainsMoney("The price is €30."))
	assert.False(t, ContainsMoney("Costs 20 dollars"))
	assert.False(t, ContainsMoney("Just a $ sign"))
	assert.False(t, ContainsMoney(""))
}
