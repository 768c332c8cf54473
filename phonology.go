package conlang

import (
	"math/rand/v2"

	"go.uber.org/zap"
)

// Phonology owns the sound side of a language: its inventory, syllable
// templates and sound change rules over a shared phonetics table.
type Phonology struct {
	Phonetics *Phonetics
	Inventory *Inventory
	Syllables *Syllables
	Rules     *Rules

	logger *zap.Logger
	rng    *rand.Rand

	// randomSpelling picks a random letter for phonemes spelled more
	// than one way instead of the first declared one.
	randomSpelling bool
}

// NewPhonology returns an empty phonology over phonetics. A nil rng is
// replaced by one seeded with zero and a nil logger by a no-op logger.
func NewPhonology(phonetics *Phonetics, rng *rand.Rand, logger *zap.Logger) *Phonology {
	if rng == nil {
		rng = newRand(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Phonology{
		Phonetics: phonetics,
		Inventory: NewInventory(phonetics),
		Syllables: NewSyllables(phonetics),
		Rules:     NewRules(phonetics),
		logger:    logger,
		rng:       rng,
	}
}

// newRand returns a generator fully determined by seed.
func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// AddSound adds a phoneme to the inventory.
func (ph *Phonology) AddSound(symbol string, letters []string, weight float64) error {
	return ph.Inventory.Add(symbol, letters, weight)
}

// UpdateSound changes a phoneme of the inventory.
func (ph *Phonology) UpdateSound(symbol string, u PhonemeUpdate) error {
	return ph.Inventory.Update(symbol, u)
}

// RemoveSound removes a phoneme from the inventory.
func (ph *Phonology) RemoveSound(symbol string) error {
	return ph.Inventory.Remove(symbol)
}

// AddSyllable adds a compact syllable template such as "CVC".
func (ph *Phonology) AddSyllable(raw string) (string, error) {
	return ph.Syllables.Add(raw)
}

// UpdateSyllable replaces a syllable template.
func (ph *Phonology) UpdateSyllable(id, raw string) error {
	return ph.Syllables.Update(id, raw)
}

// RemoveSyllable removes a syllable template.
func (ph *Phonology) RemoveSyllable(id string) error {
	return ph.Syllables.Remove(id)
}

// AddRule adds a sound change rule at the end of the order.
func (ph *Phonology) AddRule(spec RuleSpec) (string, error) {
	return ph.Rules.Add(spec)
}

// RemoveRule removes a sound change rule.
func (ph *Phonology) RemoveRule(id string) error {
	return ph.Rules.Remove(id)
}
