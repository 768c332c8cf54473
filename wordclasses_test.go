package conlang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordClasses(t *testing.T) {
	wc := NewWordClasses(nil)
	require.NoError(t, wc.AddMany("noun", "verb", "adjective"))

	assert.Equal(t, []string{"noun", "verb", "adjective"}, wc.All())
	assert.ErrorIs(t, wc.Add("noun"), ErrConflict)
	assert.ErrorIs(t, wc.Add(""), ErrInvalidArgument)
	assert.ErrorIs(t, wc.Rename("adverb", "particle"), ErrUnknownName)
	assert.ErrorIs(t, wc.Rename("noun", "verb"), ErrConflict)
	assert.ErrorIs(t, wc.Remove("adverb"), ErrUnknownName)

	assert.Equal(t, []string{"verb", "noun"}, wc.Filter([]string{"verb", "adverb", "noun", "verb"}))
	assert.Equal(t, []string{"noun", "adjective"}, wc.Parse("Noun, adjective; noun or adverb"))

	err := wc.AddMany("adverb", "noun", "")
	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.True(t, wc.Has("adverb"))
}

func TestWordClassesCascade(t *testing.T) {
	g := tenseNumberGrammar(t)
	pos := func(id string) []string {
		e, ok := g.Exponents.Get(id)
		require.True(t, ok)
		return e.POS.Elements()
	}

	require.NoError(t, g.WordClasses.Rename("noun", "substantive"))
	assert.Equal(t, []string{"substantive"}, pos("e1"))
	assert.Equal(t, []string{"verb"}, pos("e2"))

	require.NoError(t, g.WordClasses.Remove("verb"))
	assert.Empty(t, pos("e2"))
	assert.Equal(t, []string{"substantive"}, g.WordClasses.All())
}
