package conlang

import (
	"slices"
	"strings"

	"bitbucket.org/creachadair/stringset"
	"github.com/patrickmn/go-cache"
)

// Phonetics is the two-way table between phonetic symbols and their
// features. For every symbol s and feature f, s is listed under f exactly
// when f is listed under s.
type Phonetics struct {
	// symbols maps symbol → feature set.
	symbols map[string]stringset.Set

	// features maps feature → symbol set. A feature may outlive its last
	// symbol and then maps to an empty set.
	features map[string]stringset.Set

	// order records symbols in insertion order. Lookups that must pick one
	// symbol among several pick the earliest.
	order []string

	// resolved caches Resolve results keyed by featureKey. Flushed on
	// every mutation.
	resolved *cache.Cache
}

// NewPhonetics returns an empty table.
func NewPhonetics() *Phonetics {
	return &Phonetics{
		symbols:  make(map[string]stringset.Set),
		features: make(map[string]stringset.Set),
		resolved: cache.New(cache.NoExpiration, 0),
	}
}

// Add records symbol with the given features, merging them into the
// symbol's set when it already exists.
func (p *Phonetics) Add(symbol string, features ...string) error {
	if symbol == "" {
		return invalidf("phonetics add: empty symbol")
	}
	if len(features) == 0 {
		return invalidf("phonetics add %q: no features", symbol)
	}
	for _, f := range features {
		if f == "" {
			return invalidf("phonetics add %q: empty feature", symbol)
		}
	}
	if _, ok := p.symbols[symbol]; !ok {
		p.symbols[symbol] = stringset.New()
		p.order = append(p.order, symbol)
	}
	for _, f := range features {
		p.link(symbol, f)
	}
	p.resolved.Flush()
	return nil
}

// AddMap adds every symbol of m. Symbols are added in sorted order so that
// insertion order does not depend on map iteration.
func (p *Phonetics) AddMap(m map[string][]string) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := p.Add(k, m[k]...); err != nil {
			return err
		}
	}
	return nil
}

// AddFeature declares feature and attaches it to each of the given symbols.
func (p *Phonetics) AddFeature(feature string, symbols ...string) error {
	if feature == "" {
		return invalidf("phonetics add feature: empty feature")
	}
	for _, s := range symbols {
		if !p.HasSymbol(s) {
			return unknownf("phonetics add feature %q: unknown symbol %q", feature, s)
		}
	}
	if _, ok := p.features[feature]; !ok {
		p.features[feature] = stringset.New()
	}
	for _, s := range symbols {
		p.link(s, feature)
	}
	p.resolved.Flush()
	return nil
}

// link records the pair (symbol, feature) on both sides.
func (p *Phonetics) link(symbol, feature string) {
	if _, ok := p.features[feature]; !ok {
		p.features[feature] = stringset.New()
	}
	p.features[feature][symbol] = struct{}{}
	p.symbols[symbol][feature] = struct{}{}
}

// RemoveSymbol deletes symbol and returns the features it had.
func (p *Phonetics) RemoveSymbol(symbol string) ([]string, error) {
	fs, ok := p.symbols[symbol]
	if !ok {
		return nil, unknownf("phonetics remove: unknown symbol %q", symbol)
	}
	for f := range fs {
		delete(p.features[f], symbol)
	}
	delete(p.symbols, symbol)
	p.order = slices.DeleteFunc(p.order, func(s string) bool { return s == symbol })
	p.resolved.Flush()
	return fs.Elements(), nil
}

// RemoveFeature deletes feature from the table and from every symbol that
// carried it. It returns the symbols that had it.
func (p *Phonetics) RemoveFeature(feature string) ([]string, error) {
	ss, ok := p.features[feature]
	if !ok {
		return nil, unknownf("phonetics remove: unknown feature %q", feature)
	}
	for s := range ss {
		delete(p.symbols[s], feature)
	}
	delete(p.features, feature)
	p.resolved.Flush()
	return ss.Elements(), nil
}

// RenameSymbol renames symbol to newSymbol, keeping its features and its
// place in insertion order.
func (p *Phonetics) RenameSymbol(symbol, newSymbol string) error {
	if newSymbol == "" {
		return invalidf("phonetics rename: empty symbol")
	}
	fs, ok := p.symbols[symbol]
	if !ok {
		return unknownf("phonetics rename: unknown symbol %q", symbol)
	}
	if symbol == newSymbol {
		return nil
	}
	if p.HasSymbol(newSymbol) {
		return conflictf("phonetics rename %q: symbol %q exists", symbol, newSymbol)
	}
	for f := range fs {
		delete(p.features[f], symbol)
		p.features[f][newSymbol] = struct{}{}
	}
	delete(p.symbols, symbol)
	p.symbols[newSymbol] = fs
	p.order[slices.Index(p.order, symbol)] = newSymbol
	p.resolved.Flush()
	return nil
}

// RenameFeature renames feature to newFeature on every symbol carrying it.
func (p *Phonetics) RenameFeature(feature, newFeature string) error {
	if newFeature == "" {
		return invalidf("phonetics rename: empty feature")
	}
	ss, ok := p.features[feature]
	if !ok {
		return unknownf("phonetics rename: unknown feature %q", feature)
	}
	if feature == newFeature {
		return nil
	}
	if p.HasFeature(newFeature) {
		return conflictf("phonetics rename %q: feature %q exists", feature, newFeature)
	}
	for s := range ss {
		delete(p.symbols[s], feature)
		p.symbols[s][newFeature] = struct{}{}
	}
	delete(p.features, feature)
	p.features[newFeature] = ss
	p.resolved.Flush()
	return nil
}

// HasSymbol reports whether symbol is declared.
func (p *Phonetics) HasSymbol(symbol string) bool {
	_, ok := p.symbols[symbol]
	return ok
}

// HasFeature reports whether feature is declared.
func (p *Phonetics) HasFeature(feature string) bool {
	_, ok := p.features[feature]
	return ok
}

// Symbols returns every symbol in insertion order.
func (p *Phonetics) Symbols() []string {
	return slices.Clone(p.order)
}

// Features returns every declared feature, sorted.
func (p *Phonetics) Features() []string {
	out := make([]string, 0, len(p.features))
	for f := range p.features {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// FeaturesOf returns a copy of the features of symbol.
func (p *Phonetics) FeaturesOf(symbol string) (stringset.Set, error) {
	fs, ok := p.symbols[symbol]
	if !ok {
		return nil, unknownf("phonetics: unknown symbol %q", symbol)
	}
	return cloneSet(fs), nil
}

// featuresOf returns the stored features of symbol, or an empty set for an
// undeclared symbol. The result must not be modified.
func (p *Phonetics) featuresOf(symbol string) stringset.Set {
	if fs, ok := p.symbols[symbol]; ok {
		return fs
	}
	return stringset.New()
}

// SymbolsWith returns the symbols whose features equal features (exact) or
// include them (not exact). When filter is given only its symbols are
// considered, in filter order; otherwise symbols come in insertion order.
// An empty query matches nothing.
func (p *Phonetics) SymbolsWith(features stringset.Set, exact bool, filter ...string) []string {
	if features.Empty() {
		return nil
	}
	candidates := p.order
	if len(filter) > 0 {
		candidates = filter
	}
	var out []string
	for _, s := range unique(candidates) {
		fs, ok := p.symbols[s]
		if !ok {
			continue
		}
		if exact && fs.Equals(features) || !exact && features.IsSubset(fs) {
			out = append(out, s)
		}
	}
	return out
}

// Resolve returns the first symbol, in insertion order, whose features are
// exactly features. The boolean is false when no symbol has them.
func (p *Phonetics) Resolve(features stringset.Set) (string, bool) {
	key := featureKey(features)
	if v, ok := p.resolved.Get(key); ok {
		s := v.(string)
		return s, s != ""
	}
	var found string
	if matches := p.SymbolsWith(features, true); len(matches) > 0 {
		found = matches[0]
	}
	p.resolved.Set(key, found, cache.NoExpiration)
	return found, found != ""
}

// ParseFeatures splits text on whitespace and returns the recognized
// features in order of first appearance. Tokens are matched as typed and
// then case-folded.
func (p *Phonetics) ParseFeatures(text string) []string {
	var out []string
	for _, tok := range strings.Fields(text) {
		if f, ok := p.lookupFeature(tok); ok && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// lookupFeature finds the declared feature a user-typed token names.
func (p *Phonetics) lookupFeature(token string) (string, bool) {
	if p.HasFeature(token) {
		return token, true
	}
	if f := foldTerm(token); p.HasFeature(f) {
		return f, true
	}
	return "", false
}

// featureKey is a canonical string for a feature set.
func featureKey(features stringset.Set) string {
	return strings.Join(features.Elements(), "\x00")
}
