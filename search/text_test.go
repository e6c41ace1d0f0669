package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	t.Run("lowercases and splits", func(t *testing.T) {
		assert.Equal(t, []string{"mayor", "chicago"}, tokenize("Mayor CHICAGO"))
	})

	t.Run("deduplicates preserving order", func(t *testing.T) {
		assert.Equal(t, []string{"fire", "great"}, tokenize("fire great fire"))
	})

	t.Run("empty query yields no terms", func(t *testing.T) {
		assert.Empty(t, tokenize("   "))
	})
}

func TestLexicalScore(t *testing.T) {
	t.Run("counts distinct matched terms", func(t *testing.T) {
		score := lexicalScore(tokenize("mayor chicago"), "The mayor of Chicago announced the plan.")
		assert.Equal(t, 2, score)
	})

	t.Run("partial match scores one", func(t *testing.T) {
		score := lexicalScore(tokenize("mayor chicago"), "The mayor spoke at length.")
		assert.Equal(t, 1, score)
	})

	t.Run("no match scores zero", func(t *testing.T) {
		score := lexicalScore(tokenize("mayor chicago"), "The canal opened in spring.")
		assert.Equal(t, 0, score)
	})

	t.Run("term recurrence counts once", func(t *testing.T) {
		score := lexicalScore(tokenize("fire"), "fire after fire after fire")
		assert.Equal(t, 1, score)
	})

	t.Run("matching is substring based", func(t *testing.T) {
		score := lexicalScore(tokenize("engineer"), "The engineering works expanded.")
		assert.Equal(t, 1, score)
	})

	t.Run("matching is case insensitive", func(t *testing.T) {
		score := lexicalScore(tokenize("CHICAGO"), "chicago grew rapidly")
		assert.Equal(t, 1, score)
	})
}

func TestExtractYears(t *testing.T) {
	t.Run("extracts years in appearance order", func(t *testing.T) {
		years := ExtractYears("The fire of 1871 led to the 1893 fair.")
		assert.Equal(t, []int{1871, 1893}, years)
	})

	t.Run("range is 1700 through 2099", func(t *testing.T) {
		assert.Equal(t, []int{1700, 2099}, ExtractYears("1700 and 2099"))
		assert.Empty(t, ExtractYears("1699 and 2100"))
	})

	t.Run("requires word boundaries", func(t *testing.T) {
		assert.Empty(t, ExtractYears("item 18720 cost 991"))
	})

	t.Run("keeps duplicates", func(t *testing.T) {
		assert.Equal(t, []int{1871, 1871}, ExtractYears("1871, again 1871"))
	})

	t.Run("no years yields nil", func(t *testing.T) {
		assert.Nil(t, ExtractYears("no dates here"))
	})
}
