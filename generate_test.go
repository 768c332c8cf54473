package conlang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWord(t *testing.T) {
	ph := stopsPhonology(t)
	_, err := ph.AddSyllable("CV")
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		w, err := ph.BuildWord(BuildOptions{Syllables: 3})
		require.NoError(t, err)
		require.Len(t, w.Sound, 6)
		assert.Equal(t, w.Sound, w.Change)
		assert.Equal(t, w.Sound, w.Spelling)
		assert.Equal(t, -1, w.Midpoint)
		syllables, err := ph.Syllables.Syllabify(w.Sound)
		require.NoError(t, err)
		assert.Len(t, syllables, 3)
	}
}

func TestBuildWordDeterministic(t *testing.T) {
	build := func() [][]string {
		ph := stopsPhonology(t)
		_, err := ph.AddSyllable("CV")
		require.NoError(t, err)
		_, err = ph.AddSyllable("CVC")
		require.NoError(t, err)
		var out [][]string
		for i := 0; i < 10; i++ {
			w, err := ph.BuildWord(BuildOptions{Syllables: 2})
			require.NoError(t, err)
			out = append(out, w.Sound)
		}
		return out
	}
	assert.Equal(t, build(), build())
}

func TestBuildWordWeights(t *testing.T) {
	ph := NewPhonology(stopsPhonetics(t), newRand(7), nil)
	require.NoError(t, ph.AddSound("t", []string{"t"}, 0))
	require.NoError(t, ph.AddSound("k", []string{"k"}, 1))
	require.NoError(t, ph.AddSound("a", []string{"a"}, 0))
	_, err := ph.AddSyllable("CV")
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		w, err := ph.BuildWord(BuildOptions{Syllables: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"k", "a", "k", "a"}, w.Sound)
	}
}

func TestBuildWordExactMatch(t *testing.T) {
	ph := stopsPhonology(t)
	_, err := ph.Syllables.AddStructure([]string{"voiced velar fricative consonant", "V"})
	require.NoError(t, err)

	w, err := ph.BuildWord(BuildOptions{Syllables: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"ɣ", "a"}, w.Sound)
}

func TestBuildWordRulesAndMidpoint(t *testing.T) {
	ph := stopsPhonology(t)
	require.NoError(t, ph.RemoveSound("d"))
	require.NoError(t, ph.RemoveSound("ɣ"))
	require.NoError(t, ph.RemoveSound("x"))
	_, err := ph.AddSyllable("CV")
	require.NoError(t, err)
	_, err = ph.AddRule(RuleSpec{Source: []string{"voiceless dental"}, Target: []string{"voiced dental"}, Environment: "V_"})
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		w, err := ph.BuildWord(BuildOptions{Syllables: 2, ApplyRules: true, SpellAfterChange: true, Midpoint: intp(1)})
		require.NoError(t, err)
		assert.Equal(t, 2, w.Midpoint)
		assert.Equal(t, w.Sound[2] == "t", w.Change[2] == "d")
		assert.Equal(t, w.Sound, w.Spelling, "d spelled through its fallback")
	}
}

func TestBuildWordErrors(t *testing.T) {
	ph := stopsPhonology(t)
	_, err := ph.BuildWord(BuildOptions{Syllables: 1})
	assert.ErrorIs(t, err, ErrUnsatisfiable, "no templates")

	_, err = ph.Syllables.AddStructure([]string{"voiced dental fricative"})
	require.NoError(t, err)
	_, err = ph.BuildWord(BuildOptions{Syllables: 1})
	assert.ErrorIs(t, err, ErrUnsatisfiable, "no phoneme for slot")

	_, err = ph.BuildWord(BuildOptions{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = ph.BuildWord(BuildOptions{Syllables: 1, Midpoint: intp(2)})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
