package conlang

import (
	"slices"

	"go.uber.org/zap"
)

// Word is a generated word. Change equals Sound when no rules were applied.
type Word struct {
	Sound    []string
	Change   []string
	Spelling []string
	// Midpoint is the index in Sound where infixes go, or -1 when unset.
	Midpoint int
}

// BuildOptions controls word generation.
type BuildOptions struct {
	// Syllables is the number of syllables. The language picks one from
	// its range when zero; Phonology.BuildWord requires it positive.
	Syllables int
	// ApplyRules runs the sound changes over the generated sounds.
	ApplyRules bool
	// SpellAfterChange spells the changed sounds rather than the
	// generated ones.
	SpellAfterChange bool
	// Midpoint, when set, is a syllable index. The word's midpoint is
	// placed after that many syllables.
	Midpoint *int
}

// BuildWord generates a word of opts.Syllables syllables. Templates are
// chosen uniformly; each slot takes its single exact match in the
// inventory when there is one and otherwise samples the inventory symbols
// carrying the slot's features by weight.
func (ph *Phonology) BuildWord(opts BuildOptions) (*Word, error) {
	n := opts.Syllables
	if n <= 0 {
		return nil, invalidf("build word: syllable count %d", n)
	}
	if opts.Midpoint != nil && (*opts.Midpoint < 0 || *opts.Midpoint > n) {
		return nil, invalidf("build word: midpoint %d outside [0, %d]", *opts.Midpoint, n)
	}
	ids := ph.Syllables.order
	if len(ids) == 0 {
		return nil, unsatisfiablef("build word: no syllable templates")
	}

	word := &Word{Midpoint: -1}
	for i := 0; i < n; i++ {
		if opts.Midpoint != nil && *opts.Midpoint == i {
			word.Midpoint = len(word.Sound)
		}
		template := ph.Syllables.templates[ids[ph.rng.IntN(len(ids))]]
		for _, slot := range template {
			symbol, err := ph.pickSymbol(slot)
			if err != nil {
				return nil, err
			}
			word.Sound = append(word.Sound, symbol)
		}
	}
	if opts.Midpoint != nil && *opts.Midpoint == n {
		word.Midpoint = len(word.Sound)
	}

	word.Change = slices.Clone(word.Sound)
	if opts.ApplyRules {
		word.Change = ph.ApplyRules(word.Sound)
	}
	var err error
	if opts.SpellAfterChange {
		word.Spelling, err = ph.Spell(word.Change, word.Sound)
	} else {
		word.Spelling, err = ph.Spell(word.Sound, nil)
	}
	if err != nil {
		return nil, err
	}
	ph.logger.Debug("built word",
		zap.Strings("sound", word.Sound),
		zap.Strings("change", word.Change))
	return word, nil
}

// pickSymbol chooses an inventory symbol for a template slot.
func (ph *Phonology) pickSymbol(slot Slot) (string, error) {
	candidates := ph.Phonetics.SymbolsWith(slot.Features, false, ph.Inventory.order...)
	if len(candidates) == 0 {
		return "", unsatisfiablef("build word: no phoneme for slot %s", slot.String())
	}
	if exact := ph.Phonetics.SymbolsWith(slot.Features, true, candidates...); len(exact) == 1 {
		return exact[0], nil
	}
	return ph.sample(candidates), nil
}

// sample picks one of symbols by phoneme weight, or uniformly when every
// weight is zero.
func (ph *Phonology) sample(symbols []string) string {
	total := 0.0
	for _, s := range symbols {
		total += ph.Inventory.phonemes[s].Weight
	}
	if total == 0 {
		return symbols[ph.rng.IntN(len(symbols))]
	}
	r := ph.rng.Float64() * total
	for _, s := range symbols {
		r -= ph.Inventory.phonemes[s].Weight
		if r < 0 {
			return s
		}
	}
	return symbols[len(symbols)-1]
}
