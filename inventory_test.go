package conlang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventory(t *testing.T) {
	inv := NewInventory(stopsPhonetics(t))

	require.NoError(t, inv.Add("t", []string{"t", "th", "t"}, 2))
	require.NoError(t, inv.Add("a", []string{"a"}, 0))

	ph, ok := inv.Get("t")
	require.True(t, ok)
	assert.Equal(t, []string{"t", "th"}, ph.Letters)
	assert.Equal(t, 2.0, ph.Weight)

	assert.ErrorIs(t, inv.Add("t", []string{"t"}, 1), ErrConflict)
	assert.ErrorIs(t, inv.Add("q", []string{"q"}, 1), ErrUnknownName)
	assert.ErrorIs(t, inv.Add("d", nil, 1), ErrInvalidArgument)
	assert.ErrorIs(t, inv.Add("d", []string{"d"}, -1), ErrInvalidArgument)

	w := 0.5
	require.NoError(t, inv.Update("t", PhonemeUpdate{Symbol: "d", Letters: []string{"d"}, Weight: &w}))
	assert.False(t, inv.Has("t"))
	ph, _ = inv.Get("d")
	assert.Equal(t, Phoneme{Symbol: "d", Letters: []string{"d"}, Weight: 0.5}, ph)
	assert.Equal(t, []string{"d", "a"}, inv.Symbols())

	assert.ErrorIs(t, inv.Update("d", PhonemeUpdate{Symbol: "q"}), ErrUnknownName)
	assert.ErrorIs(t, inv.Update("d", PhonemeUpdate{Symbol: "a"}), ErrConflict)

	require.NoError(t, inv.Remove("d"))
	assert.ErrorIs(t, inv.Remove("d"), ErrUnknownName)
	assert.True(t, inv.phonetics.HasSymbol("d"), "removal leaves phonetics alone")
	assert.Equal(t, 1, inv.Len())
}
