// Package conlang is a constructed-language workbench. A Language holds a
// phonetic feature table, a phoneme inventory, syllable templates, ordered
// sound change rules and a grammar of properties and exponents. It
// generates words, applies sound changes, splits words into syllables,
// builds grammatical units around a base and spells the result.
package conlang

import (
	"math/rand/v2"
	"slices"

	"go.uber.org/zap"
)

// Language ties a phonology and a grammar together.
type Language struct {
	Name        string
	DisplayName string

	Phonetics *Phonetics
	Phonology *Phonology
	Grammar   *Grammar

	logger *zap.Logger
	rng    *rand.Rand

	// syllablesMin and syllablesMax bound generated words whose length is
	// not given.
	syllablesMin int
	syllablesMax int

	// spacing separates words and free exponents.
	spacing string
}

type options struct {
	name           string
	displayName    string
	seed           uint64
	logger         *zap.Logger
	spacing        string
	randomSpelling bool
	phonetics      *Phonetics
}

// Option configures a Language.
type Option func(*options)

// WithName sets the name and display name of the language.
func WithName(name, displayName string) Option {
	return func(o *options) { o.name, o.displayName = name, displayName }
}

// WithSeed seeds the random choices of generation and spelling.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithLogger sets the logger for diagnostics. The default discards them.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithSpacing sets the symbol separating words. The default is a space.
func WithSpacing(spacing string) Option {
	return func(o *options) { o.spacing = spacing }
}

// WithRandomSpelling spells phonemes with several letters by a random
// choice instead of their first letter.
func WithRandomSpelling() Option {
	return func(o *options) { o.randomSpelling = true }
}

// WithPhonetics starts the language from an existing phonetics table, such
// as DefaultPhonetics(). The language takes ownership of it.
func WithPhonetics(p *Phonetics) Option {
	return func(o *options) { o.phonetics = p }
}

// New returns an empty language.
func New(opts ...Option) *Language {
	o := options{logger: zap.NewNop(), spacing: " "}
	for _, opt := range opts {
		opt(&o)
	}
	if o.phonetics == nil {
		o.phonetics = NewPhonetics()
	}
	logger := o.logger.With(zap.String("language", o.name))
	rng := newRand(o.seed)
	phonology := NewPhonology(o.phonetics, rng, logger)
	phonology.randomSpelling = o.randomSpelling
	return &Language{
		Name:         o.name,
		DisplayName:  o.displayName,
		Phonetics:    o.phonetics,
		Phonology:    phonology,
		Grammar:      NewGrammar(logger),
		logger:       logger,
		rng:          rng,
		syllablesMin: 1,
		syllablesMax: 3,
		spacing:      o.spacing,
	}
}

// SetSyllableRange bounds the length of generated words whose length is
// not given.
func (l *Language) SetSyllableRange(lo, hi int) error {
	if lo < 1 || hi < lo {
		return invalidf("syllable range [%d, %d]", lo, hi)
	}
	l.syllablesMin, l.syllablesMax = lo, hi
	return nil
}

// SyllableRange returns the bounds set by SetSyllableRange.
func (l *Language) SyllableRange() (lo, hi int) {
	return l.syllablesMin, l.syllablesMax
}

// Spacing returns the symbol separating words.
func (l *Language) Spacing() string {
	return l.spacing
}

// Generate builds a word. A zero syllable count is drawn from the
// language's syllable range.
func (l *Language) Generate(opts BuildOptions) (*Word, error) {
	if opts.Syllables == 0 {
		opts.Syllables = l.syllablesMin + l.rng.IntN(l.syllablesMax-l.syllablesMin+1)
	}
	return l.Phonology.BuildWord(opts)
}

// ExponentShape describes an exponent to generate: which sides get
// material and what it provides.
type ExponentShape struct {
	Pre, Mid, Post bool
	Bound          bool
	Properties     PropertyMap
	PropertiesText string
	POS            []string
}

// GeneratedExponent is a generated and registered exponent. Sides that
// were not asked for are nil.
type GeneratedExponent struct {
	ID   string
	Form string
	Pre  *Word
	Mid  *Word
	Post *Word
}

// GenerateExponent generates material for each requested side of shape,
// registers the exponent and returns it. A zero syllable count is drawn
// from the language's syllable range for each side.
func (l *Language) GenerateExponent(shape ExponentShape, syllables int) (*GeneratedExponent, error) {
	if !shape.Pre && !shape.Mid && !shape.Post {
		return nil, invalidf("generate exponent: no side requested")
	}
	side := func(want bool) (*Word, error) {
		if !want {
			return nil, nil
		}
		return l.Generate(BuildOptions{Syllables: syllables, ApplyRules: true, SpellAfterChange: true})
	}
	out := &GeneratedExponent{}
	var err error
	if out.Pre, err = side(shape.Pre); err != nil {
		return nil, err
	}
	if out.Mid, err = side(shape.Mid); err != nil {
		return nil, err
	}
	if out.Post, err = side(shape.Post); err != nil {
		return nil, err
	}
	spec := ExponentSpec{
		Bound:          shape.Bound,
		Properties:     shape.Properties,
		PropertiesText: shape.PropertiesText,
		POS:            shape.POS,
	}
	if out.Pre != nil {
		spec.Pre = out.Pre.Sound
	}
	if out.Mid != nil {
		spec.Mid = out.Mid.Sound
	}
	if out.Post != nil {
		spec.Post = out.Post.Sound
	}
	if out.ID, err = l.Grammar.Exponents.Add(spec); err != nil {
		return nil, err
	}
	e, _ := l.Grammar.Exponents.Get(out.ID)
	out.Form = e.Form()
	return out, nil
}

// Unit is a base built up with exponents, or a sentence of such units.
type Unit struct {
	Sound    []string
	Change   []string
	Spelling []string
	// Exponents lists the attached exponents, outermost first, unit by
	// unit.
	Exponents []string
}

// Attach builds a unit around base, applies the sound changes word by word
// and spells it. The spelling reads the changed sounds when
// spellAfterChange is set, falling back to the underlying ones.
func (l *Language) Attach(base []string, req UnitRequest, spellAfterChange bool) (*Unit, error) {
	if req.Spacing == "" {
		req.Spacing = l.spacing
	}
	ids, err := l.Grammar.SelectExponents(req)
	if err != nil {
		return nil, err
	}
	sound := l.Grammar.Attach(base, ids, req.Spacing, unitMidpoint(base, req.Midpoint))
	return l.finish(sound, ids, req.Spacing, spellAfterChange)
}

// ApplySentence fills the named sentence with entries, one headword per
// unit, then changes the sounds word by word and spells the changed
// sounds.
func (l *Language) ApplySentence(name string, entries []Entry) (*Unit, error) {
	sound, ids, err := l.Grammar.applySentence(name, entries, l.spacing)
	if err != nil {
		return nil, err
	}
	return l.finish(sound, ids, l.spacing, true)
}

// finish changes and spells sound, which holds words separated by
// spacing.
func (l *Language) finish(sound, ids []string, spacing string, spellAfterChange bool) (*Unit, error) {
	unit := &Unit{Sound: sound, Exponents: ids}
	unit.Change = l.changeSounds(unit.Sound, true, spacing)
	var err error
	if spellAfterChange {
		unit.Spelling, err = l.spell(unit.Change, unit.Sound, spacing)
	} else {
		unit.Spelling, err = l.spell(unit.Sound, nil, spacing)
	}
	if err != nil {
		return nil, err
	}
	return unit, nil
}

// Translate looks definition up in lex and attaches req around the best
// entry. The entry's word classes and midpoint are used when req leaves
// them out.
func (l *Language) Translate(lex Lexicon, definition string, req UnitRequest) (*Unit, error) {
	entries := lex.Search(definition)
	if len(entries) == 0 {
		return nil, unknownf("translate: no entry for %q", definition)
	}
	entry := entries[0]
	if req.WordClasses == nil && req.WordClassesText == "" {
		req.WordClasses = entry.POS
	}
	if req.Midpoint == nil {
		req.Midpoint = entry.Midpoint
	}
	return l.Attach(entry.Sound, req, true)
}

// ChangeSounds applies the sound changes to a sequence of words separated
// by the language's spacing. When blockedBySpacing is set each word is
// changed on its own, with word boundaries at its edges; otherwise the
// words are changed as one run and split again. Spacing symbols stay where
// they are.
func (l *Language) ChangeSounds(sounds []string, blockedBySpacing bool) []string {
	return l.changeSounds(sounds, blockedBySpacing, l.spacing)
}

func (l *Language) changeSounds(sounds []string, blockedBySpacing bool, spacing string) []string {
	out := slices.Clone(sounds)
	if !blockedBySpacing {
		var run []int
		var flat []string
		for i, s := range sounds {
			if s != spacing {
				run = append(run, i)
				flat = append(flat, s)
			}
		}
		for j, s := range l.Phonology.ApplyRules(flat) {
			out[run[j]] = s
		}
		return out
	}
	start := 0
	for i := 0; i <= len(sounds); i++ {
		if i < len(sounds) && sounds[i] != spacing {
			continue
		}
		if i > start {
			copy(out[start:i], l.Phonology.ApplyRules(sounds[start:i]))
		}
		start = i + 1
	}
	return out
}

// spell spells sounds with fallback, passing spacing symbols through.
func (l *Language) spell(sounds, fallback []string, spacing string) ([]string, error) {
	out := make([]string, len(sounds))
	var (
		idx  []int
		word []string
		back []string
	)
	for i, s := range sounds {
		if s == spacing {
			out[i] = spacing
			continue
		}
		idx = append(idx, i)
		word = append(word, s)
		if i < len(fallback) {
			back = append(back, fallback[i])
		} else {
			back = append(back, "")
		}
	}
	letters, err := l.Phonology.Spell(word, back)
	if err != nil {
		return nil, err
	}
	for j, letter := range letters {
		out[idx[j]] = letter
	}
	return out, nil
}

// Terms classifies every token of text as a category, grammeme, word
// class, phonetic feature or unknown term.
func (l *Language) Terms(text string) []Term {
	return classifyAll(Tokens(text), l.Grammar.Properties, l.Grammar.WordClasses, l.Phonetics)
}

// Syllabify splits sounds into syllables.
func (l *Language) Syllabify(sounds []string) ([][]string, error) {
	return l.Phonology.Syllables.Syllabify(sounds)
}
