package conlang

import (
	"slices"
)

// Phoneme is a symbol a language actually uses, with the letters that
// spell it and a weight for random selection.
type Phoneme struct {
	// Symbol is the phonetics symbol.
	Symbol string
	// Letters spell the symbol, in declaration order.
	Letters []string
	// Weight is the relative likelihood of picking this phoneme when
	// several satisfy a template slot. Zero everywhere means uniform.
	Weight float64
}

// PhonemeUpdate lists the fields to change on a phoneme. Nil and empty
// fields are left alone.
type PhonemeUpdate struct {
	Symbol  string
	Letters []string
	Weight  *float64
}

// Inventory is the set of phonemes declared for a language.
type Inventory struct {
	phonetics *Phonetics

	// phonemes maps symbol → *Phoneme.
	phonemes map[string]*Phoneme

	// order records symbols in insertion order.
	order []string
}

// NewInventory returns an empty inventory drawing on phonetics.
func NewInventory(phonetics *Phonetics) *Inventory {
	return &Inventory{
		phonetics: phonetics,
		phonemes:  make(map[string]*Phoneme),
	}
}

// Add declares symbol with its letters and weight. The symbol must exist in
// phonetics and must not already be in the inventory.
func (inv *Inventory) Add(symbol string, letters []string, weight float64) error {
	if symbol == "" {
		return invalidf("inventory add: empty symbol")
	}
	letters = unique(stripEmpty(letters))
	if len(letters) == 0 {
		return invalidf("inventory add %q: no letters", symbol)
	}
	if weight < 0 {
		return invalidf("inventory add %q: negative weight %v", symbol, weight)
	}
	if !inv.phonetics.HasSymbol(symbol) {
		return unknownf("inventory add: unknown symbol %q", symbol)
	}
	if inv.Has(symbol) {
		return conflictf("inventory add: symbol %q exists", symbol)
	}
	inv.phonemes[symbol] = &Phoneme{Symbol: symbol, Letters: letters, Weight: weight}
	inv.order = append(inv.order, symbol)
	return nil
}

// Update changes the letters, weight or symbol of a phoneme. A new symbol
// must exist in phonetics and must not already be in the inventory.
func (inv *Inventory) Update(symbol string, u PhonemeUpdate) error {
	ph, ok := inv.phonemes[symbol]
	if !ok {
		return unknownf("inventory update: unknown symbol %q", symbol)
	}
	var letters []string
	if u.Letters != nil {
		letters = unique(stripEmpty(u.Letters))
		if len(letters) == 0 {
			return invalidf("inventory update %q: no letters", symbol)
		}
	}
	if u.Weight != nil && *u.Weight < 0 {
		return invalidf("inventory update %q: negative weight %v", symbol, *u.Weight)
	}
	if u.Symbol != "" && u.Symbol != symbol {
		if !inv.phonetics.HasSymbol(u.Symbol) {
			return unknownf("inventory update %q: unknown symbol %q", symbol, u.Symbol)
		}
		if inv.Has(u.Symbol) {
			return conflictf("inventory update %q: symbol %q exists", symbol, u.Symbol)
		}
	}

	if letters != nil {
		ph.Letters = letters
	}
	if u.Weight != nil {
		ph.Weight = *u.Weight
	}
	if u.Symbol != "" && u.Symbol != symbol {
		delete(inv.phonemes, symbol)
		ph.Symbol = u.Symbol
		inv.phonemes[u.Symbol] = ph
		inv.order[slices.Index(inv.order, symbol)] = u.Symbol
	}
	return nil
}

// Remove deletes symbol from the inventory. Phonetics is unaffected.
func (inv *Inventory) Remove(symbol string) error {
	if !inv.Has(symbol) {
		return unknownf("inventory remove: unknown symbol %q", symbol)
	}
	delete(inv.phonemes, symbol)
	inv.order = slices.DeleteFunc(inv.order, func(s string) bool { return s == symbol })
	return nil
}

// Has reports whether symbol is in the inventory.
func (inv *Inventory) Has(symbol string) bool {
	_, ok := inv.phonemes[symbol]
	return ok
}

// Get returns a copy of the phoneme for symbol.
func (inv *Inventory) Get(symbol string) (Phoneme, bool) {
	ph, ok := inv.phonemes[symbol]
	if !ok {
		return Phoneme{}, false
	}
	cp := *ph
	cp.Letters = slices.Clone(ph.Letters)
	return cp, true
}

// Symbols returns the inventory symbols in insertion order.
func (inv *Inventory) Symbols() []string {
	return slices.Clone(inv.order)
}

// Letters returns the letters of symbol, or nil when it is not declared.
func (inv *Inventory) Letters(symbol string) []string {
	if ph, ok := inv.phonemes[symbol]; ok {
		return slices.Clone(ph.Letters)
	}
	return nil
}

// Len returns the number of phonemes.
func (inv *Inventory) Len() int {
	return len(inv.order)
}
