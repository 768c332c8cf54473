package conlang

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// stopsLanguage returns a language over stopsPhonetics with CV syllables,
// intervocalic voicing, and the tense and number grammar plus a plural
// noun suffix "ta".
func stopsLanguage(t *testing.T, opts ...Option) *Language {
	t.Helper()
	l := New(append([]Option{WithName("stops", "Stops"), WithSeed(3), WithPhonetics(stopsPhonetics(t))}, opts...)...)
	for _, s := range l.Phonetics.Symbols() {
		require.NoError(t, l.Phonology.AddSound(s, []string{s}, 0))
	}
	_, err := l.Phonology.AddSyllable("CV")
	require.NoError(t, err)
	_, err = l.Phonology.AddRule(RuleSpec{ID: "voicing", Source: []string{"voiceless"}, Target: []string{"voiced"}, Environment: "V_V"})
	require.NoError(t, err)

	g := l.Grammar
	require.NoError(t, g.Properties.AddMany(map[string][]string{
		"tense":  {"present", "past"},
		"number": {"singular", "plural"},
	}))
	require.NoError(t, g.WordClasses.AddMany("noun", "verb"))
	_, err = g.Exponents.AddMany([]ExponentSpec{
		{ID: "plural", Post: []string{"t", "a"}, Bound: true, PropertiesText: "plural", POS: []string{"noun"}},
		{ID: "past", Post: []string{"t", "a"}, PropertiesText: "past", POS: []string{"verb"}},
	})
	require.NoError(t, err)
	return l
}

func TestLanguageGenerate(t *testing.T) {
	l := stopsLanguage(t)
	require.NoError(t, l.SetSyllableRange(2, 3))

	lengths := map[int]bool{}
	for range 30 {
		w, err := l.Generate(BuildOptions{})
		require.NoError(t, err)
		syllables, err := l.Syllabify(w.Sound)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(syllables), 2)
		assert.LessOrEqual(t, len(syllables), 3)
		lengths[len(syllables)] = true
	}
	assert.Len(t, lengths, 2)

	w, err := l.Generate(BuildOptions{Syllables: 4})
	require.NoError(t, err)
	assert.Len(t, w.Sound, 8)

	assert.ErrorIs(t, l.SetSyllableRange(0, 2), ErrInvalidArgument)
	assert.ErrorIs(t, l.SetSyllableRange(3, 2), ErrInvalidArgument)
	lo, hi := l.SyllableRange()
	assert.Equal(t, [2]int{2, 3}, [2]int{lo, hi})
}

func TestLanguageGenerateDeterministic(t *testing.T) {
	words := func() [][]string {
		l := stopsLanguage(t)
		var out [][]string
		for range 10 {
			w, err := l.Generate(BuildOptions{ApplyRules: true})
			require.NoError(t, err)
			out = append(out, w.Change)
		}
		return out
	}
	if diff := cmp.Diff(words(), words()); diff != "" {
		t.Errorf("same seed gave different words (-first +second):\n%s", diff)
	}
}

func TestLanguageGenerateExponent(t *testing.T) {
	l := stopsLanguage(t)

	got, err := l.GenerateExponent(ExponentShape{Post: true, Bound: true, PropertiesText: "past", POS: []string{"noun"}}, 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got.ID, "grammatical-exponent-"), got.ID)
	assert.Equal(t, "suffix", got.Form)
	assert.Nil(t, got.Pre)
	assert.Nil(t, got.Mid)
	require.NotNil(t, got.Post)
	assert.Len(t, got.Post.Sound, 2)

	e, ok := l.Grammar.Exponents.Get(got.ID)
	require.True(t, ok)
	assert.Equal(t, got.Post.Sound, e.Post)
	assert.Equal(t, "tense:past", e.Properties.String())

	got, err = l.GenerateExponent(ExponentShape{Pre: true, Post: true, PropertiesText: "singular"}, 2)
	require.NoError(t, err)
	assert.Equal(t, "circumposition", got.Form)
	assert.Len(t, got.Pre.Sound, 4)

	n := l.Grammar.Exponents.Len()
	_, err = l.GenerateExponent(ExponentShape{}, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = l.GenerateExponent(ExponentShape{Mid: true, PropertiesText: "subjunctive"}, 1)
	assert.ErrorIs(t, err, ErrUnknownName)
	assert.Equal(t, n, l.Grammar.Exponents.Len())
}

func TestLanguageAttach(t *testing.T) {
	l := stopsLanguage(t)

	unit, err := l.Attach([]string{"k", "a"}, UnitRequest{PropertiesText: "plural", WordClasses: []string{"noun"}}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"plural"}, unit.Exponents)
	assert.Equal(t, []string{"k", "a", "t", "a"}, unit.Sound)
	assert.Equal(t, []string{"k", "a", "d", "a"}, unit.Change)
	assert.Equal(t, []string{"k", "a", "d", "a"}, unit.Spelling)

	unit, err = l.Attach([]string{"k", "a"}, UnitRequest{PropertiesText: "plural", WordClasses: []string{"noun"}}, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"k", "a", "t", "a"}, unit.Spelling)

	// Free exponents are changed as words of their own.
	unit, err = l.Attach([]string{"k", "a"}, UnitRequest{PropertiesText: "past", WordClasses: []string{"verb"}}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"k", "a", " ", "t", "a"}, unit.Sound)
	assert.Equal(t, []string{"k", "a", " ", "t", "a"}, unit.Change)
	assert.Equal(t, []string{"k", "a", " ", "t", "a"}, unit.Spelling)

	_, err = l.Attach([]string{"k", "a"}, UnitRequest{PropertiesText: "past", AllOrNone: true, ExactPOS: true}, true)
	assert.ErrorIs(t, err, ErrUnsatisfiable)
}

func TestLanguageApplySentence(t *testing.T) {
	l := stopsLanguage(t)
	require.NoError(t, l.Grammar.Sentences.Add("report",
		BlueprintSpec{WordClassesText: "noun", PropertiesText: "plural"},
		BlueprintSpec{WordClassesText: "verb", PropertiesText: "past"},
	))
	ka := Entry{Sound: []string{"k", "a"}, POS: []string{"noun"}}
	ta := Entry{Sound: []string{"t", "a"}, POS: []string{"verb"}}

	unit, err := l.ApplySentence("report", []Entry{ka, ta})
	require.NoError(t, err)
	assert.Equal(t, []string{"plural", "past"}, unit.Exponents)
	assert.Equal(t, []string{"k", "a", "t", "a", " ", "t", "a", " ", "t", "a"}, unit.Sound)
	assert.Equal(t, []string{"k", "a", "d", "a", " ", "t", "a", " ", "t", "a"}, unit.Change)
	assert.Equal(t, unit.Change, unit.Spelling)

	_, err = l.ApplySentence("report", []Entry{ta, ka})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = l.ApplySentence("question", []Entry{ka})
	assert.ErrorIs(t, err, ErrUnknownName)
}

func TestLanguageChangeSounds(t *testing.T) {
	l := stopsLanguage(t, WithSpacing("_"))
	sounds := []string{"a", "_", "t", "a", "t", "a"}

	assert.Equal(t, []string{"a", "_", "t", "a", "d", "a"}, l.ChangeSounds(sounds, true))
	assert.Equal(t, []string{"a", "_", "d", "a", "d", "a"}, l.ChangeSounds(sounds, false))
	assert.Equal(t, []string{"_", "_"}, l.ChangeSounds([]string{"_", "_"}, false))
	assert.Empty(t, l.ChangeSounds(nil, true))
	assert.Equal(t, []string{"a", "_", "t", "a", "t", "a"}, sounds)
}

func TestLanguageTranslate(t *testing.T) {
	l := stopsLanguage(t)
	lex := StaticLexicon{
		{Sound: []string{"x", "a", "t", "a"}, Definition: "hot dog", POS: []string{"noun"}},
		{Sound: []string{"k", "a"}, Definition: "Dog", POS: []string{"noun"}},
		{Sound: []string{"t", "a"}, Definition: "run", POS: []string{"verb"}},
	}

	entries := lex.Search(" DOG ")
	require.Len(t, entries, 2)
	assert.Equal(t, "Dog", entries[0].Definition)
	assert.Equal(t, "hot dog", entries[1].Definition)
	assert.Empty(t, lex.Search(""))

	unit, err := l.Translate(lex, "dog", UnitRequest{PropertiesText: "plural"})
	require.NoError(t, err)
	assert.Equal(t, []string{"k", "a", "d", "a"}, unit.Spelling)

	unit, err = l.Translate(lex, "run", UnitRequest{PropertiesText: "past"})
	require.NoError(t, err)
	assert.Equal(t, []string{"t", "a", " ", "t", "a"}, unit.Sound)

	_, err = l.Translate(lex, "cat", UnitRequest{})
	assert.ErrorIs(t, err, ErrUnknownName)
}

func TestLanguageTerms(t *testing.T) {
	l := stopsLanguage(t)
	var kinds []TermKind
	for _, term := range l.Terms("Tense past, voiced noun and blue") {
		kinds = append(kinds, term.Kind)
	}
	assert.Equal(t, []TermKind{TermCategory, TermGrammeme, TermFeature, TermWordClass, TermUnknown, TermUnknown}, kinds)
	assert.Equal(t, "word class", TermWordClass.String())
}

func TestLanguageLogsUnresolvedChange(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	l := stopsLanguage(t, WithLogger(zap.New(core)))

	// k has no voiced counterpart.
	assert.Equal(t, []string{"a", "k", "a"}, l.ChangeSounds([]string{"a", "k", "a"}, true))
	entries := logs.FilterMessage("sound change left unresolved").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "voicing", fields["rule"])
	assert.Equal(t, "stops", fields["language"])
}
