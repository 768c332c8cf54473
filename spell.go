package conlang

// Spell renders sounds as letters. A symbol missing from the inventory is
// spelled from the fallback symbol at the same index when that one is
// known; otherwise spelling fails.
func (ph *Phonology) Spell(sounds []string, fallback []string) ([]string, error) {
	out := make([]string, 0, len(sounds))
	for i, s := range sounds {
		p, ok := ph.Inventory.phonemes[s]
		if !ok && i < len(fallback) {
			p, ok = ph.Inventory.phonemes[fallback[i]]
		}
		if !ok {
			return nil, unknownf("spell: no letters for %q at %d", s, i)
		}
		out = append(out, ph.letter(p))
	}
	return out, nil
}

// letter chooses how to write a phoneme.
func (ph *Phonology) letter(p *Phoneme) string {
	if ph.randomSpelling && len(p.Letters) > 1 {
		return p.Letters[ph.rng.IntN(len(p.Letters))]
	}
	return p.Letters[0]
}
