package conlang

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const kivaConfig = `
name: kiva
display_name: Kiva
seed: 11
logging:
  level: "off"
syllables: {min: 1, max: 2}
phonetics:
  - {symbol: t, features: [voiceless, dental, stop, consonant]}
  - {symbol: d, features: [voiced, dental, stop, consonant]}
  - {symbol: a, features: [vowel, open]}
inventory:
  - {symbol: t, letters: [t], weight: 2}
  - {symbol: d, letters: [d]}
  - {symbol: a, letters: [a, á]}
templates:
  - CV
  - [C, V, dental stop]
rules:
  - id: voicing
    source: [voiceless]
    target: [voiced]
    environment: V_V
  - id: devoicing
    source: [voiced]
    target: [voiceless]
    environment: ["_", "#"]
properties:
  - category: tense
    grammemes: [present, past]
    descriptions: {past: before now}
word_classes: [noun, verb]
exponents:
  - {id: past, post: [d, a], properties: past tense, pos: [verb]}
  - {id: free, pre: [t, a], bound: false, properties: present}
orders:
  - {exponent: past, outer: [free]}
sentences:
  - name: statement
    units:
      - {word_classes: [verb], properties: past}
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(kivaConfig))
	require.NoError(t, err)

	assert.Equal(t, "kiva", cfg.Name)
	assert.Equal(t, uint64(11), cfg.Seed)
	assert.Equal(t, " ", cfg.Spacing, "default spacing")
	assert.Equal(t, "off", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format, "default format")
	assert.Equal(t, SyllableRange{Min: 1, Max: 2}, cfg.Syllables)
	require.Len(t, cfg.Templates, 2)
	assert.Equal(t, SlotList{Compact: "CV"}, cfg.Templates[0])
	assert.Equal(t, SlotList{Slots: []string{"C", "V", "dental stop"}}, cfg.Templates[1])
	assert.Equal(t, []string{"_", "#"}, cfg.Rules[1].Environment.Slots)
	assert.Nil(t, cfg.Exponents[0].Bound)
	require.NotNil(t, cfg.Exponents[1].Bound)
	assert.False(t, *cfg.Exponents[1].Bound)
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"zero syllables", "syllables: {min: 0, max: 2}", ErrInvalidArgument},
		{"inverted range", "syllables: {min: 3, max: 2}", ErrInvalidArgument},
		{"empty spacing", `spacing: ""`, ErrInvalidArgument},
		{"mapping slots", "templates: [{a: b}]", ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := ParseConfig([]byte("name: [unclosed"))
	assert.Error(t, err)
}

func TestNewFromConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(kivaConfig))
	require.NoError(t, err)
	l, err := NewFromConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, "Kiva", l.DisplayName)
	lo, hi := l.SyllableRange()
	assert.Equal(t, [2]int{1, 2}, [2]int{lo, hi})
	assert.Equal(t, []string{"t", "d", "a"}, l.Phonology.Inventory.Symbols())
	assert.Equal(t, 2, l.Phonology.Syllables.Len())
	assert.Equal(t, []string{"voicing", "devoicing"}, l.Phonology.Rules.Order())
	assert.Equal(t, "before now", l.Grammar.Properties.Description("tense", "past"))
	assert.Equal(t, []string{"free"}, l.Grammar.Morphosyntax.Outer("past"))

	past, _ := l.Grammar.Exponents.Get("past")
	assert.True(t, past.Bound)
	free, _ := l.Grammar.Exponents.Get("free")
	assert.False(t, free.Bound)

	assert.Equal(t, []string{"a", "d", "a", "t"}, l.ChangeSounds([]string{"a", "t", "a", "d"}, true))

	unit, err := l.Attach([]string{"t", "a"}, UnitRequest{PropertiesText: "past present", WordClassesText: "verb"}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"free", "past"}, unit.Exponents)
	assert.Equal(t, []string{"t", "a", " ", "t", "a", "d", "a"}, unit.Spelling)

	assert.Equal(t, []string{"statement"}, l.Grammar.Sentences.Names())
	unit, err = l.ApplySentence("statement", []Entry{{Sound: []string{"t", "a"}, POS: []string{"verb"}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"past"}, unit.Exponents)
	assert.Equal(t, []string{"t", "a", "d", "a"}, unit.Spelling)

	syllables, err := l.Syllabify([]string{"t", "a", "d", "t", "a"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"t", "a", "d"}, {"t", "a"}}, syllables)
}

func TestNewFromConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		section string
		want    error
	}{
		{"unknown rule feature", "rules: [{source: [nasal], target: [oral], environment: _}]", "load rules", ErrUnknownName},
		{"unknown phoneme", "inventory: [{symbol: q, letters: [q]}]", "load inventory", ErrUnknownName},
		{"unknown grammeme", "word_classes: [noun]\nexponents: [{post: [s], properties: plural}]", "load exponents", ErrUnknownName},
		{"misspelled grammeme", "properties: [{category: number, grammemes: [plural]}]\nexponents: [{post: [s], properties: plural pats}]", "load exponents", ErrUnknownName},
		{"unknown sentence class", "properties: [{category: tense, grammemes: [past]}]\nsentences: [{name: s, units: [{word_classes: [noun], properties: past}]}]", "load sentences", ErrUnknownName},
		{"duplicate class", "word_classes: [noun, noun]", "load word_classes", ErrConflict},
		{"bad order", "orders: [{exponent: x}]", "load orders", ErrUnknownName},
		{"bad level", "logging: {level: loud}", "", ErrInvalidArgument},
		{"bad format", "logging: {level: info, format: xml}", "", ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig([]byte(tt.yaml))
			require.NoError(t, err)
			_, err = NewFromConfig(cfg)
			assert.ErrorIs(t, err, tt.want)
			if tt.section != "" {
				assert.Contains(t, err.Error(), tt.section)
			}
		})
	}
}

func TestNewFromConfigDefaultPhonetics(t *testing.T) {
	cfg, err := ParseConfig([]byte("default_phonetics: true\nlogging: {level: \"off\"}\ninventory: [{symbol: a, letters: [a]}]\ntemplates: [V]"))
	require.NoError(t, err)
	l, err := NewFromConfig(cfg)
	require.NoError(t, err)
	assert.Len(t, l.Phonetics.Symbols(), 45)

	w, err := l.Generate(BuildOptions{Syllables: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a"}, w.Spelling)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kiva.yaml")
	require.NoError(t, os.WriteFile(path, []byte(kivaConfig), 0o644))

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "kiva", l.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		cfg   LoggingConfig
		debug bool
		warn  bool
	}{
		{cfg: LoggingConfig{}, debug: false, warn: false},
		{cfg: LoggingConfig{Level: "off"}, debug: false, warn: false},
		{cfg: LoggingConfig{Level: "warn"}, debug: false, warn: true},
		{cfg: LoggingConfig{Level: "debug", Format: "console"}, debug: true, warn: true},
	}
	for _, tt := range tests {
		logger, err := NewLogger(tt.cfg)
		require.NoError(t, err)
		assert.Equal(t, tt.debug, logger.Core().Enabled(zap.DebugLevel), "%+v debug", tt.cfg)
		assert.Equal(t, tt.warn, logger.Core().Enabled(zap.WarnLevel), "%+v warn", tt.cfg)
	}
}
