package conlang

import (
	"slices"

	"bitbucket.org/creachadair/stringset"
	"github.com/pkg/errors"
)

// Blueprint is one unit of a named sentence: the word classes its headword
// may belong to and the properties the unit is built with. Empty
// WordClasses admit a headword of any class.
type Blueprint struct {
	WordClasses stringset.Set
	Properties  PropertyMap
}

func (b Blueprint) clone() Blueprint {
	return Blueprint{WordClasses: cloneSet(b.WordClasses), Properties: b.Properties.Clone()}
}

// BlueprintSpec describes a blueprint. The typed and text fields are
// merged, and every term given must be declared.
type BlueprintSpec struct {
	WordClasses     []string
	WordClassesText string
	Properties      PropertyMap
	PropertiesText  string
}

// Sentences stores named sentences. Each is a sequence of blueprints,
// filled in with one headword per blueprint when applied. Property and
// word class changes are carried into the stored blueprints.
type Sentences struct {
	properties *Properties
	classes    *WordClasses

	// sentences maps name → blueprints, left to right.
	sentences map[string][]Blueprint

	// order records names in insertion order.
	order []string
}

// NewSentences returns an empty sentence store validating against
// properties and classes.
func NewSentences(properties *Properties, classes *WordClasses) *Sentences {
	return &Sentences{
		properties: properties,
		classes:    classes,
		sentences:  make(map[string][]Blueprint),
	}
}

// Add stores a sentence under name.
func (ss *Sentences) Add(name string, units ...BlueprintSpec) error {
	if name == "" {
		return invalidf("sentences add: empty name")
	}
	if ss.Has(name) {
		return conflictf("sentences add: %q exists", name)
	}
	blueprints, err := ss.vet(units)
	if err != nil {
		return errors.Wrapf(err, "sentences add %q", name)
	}
	ss.sentences[name] = blueprints
	ss.order = append(ss.order, name)
	return nil
}

// Update replaces the units of a sentence. Nothing changes when the new
// units are invalid.
func (ss *Sentences) Update(name string, units ...BlueprintSpec) error {
	if !ss.Has(name) {
		return unknownf("sentences update: unknown sentence %q", name)
	}
	blueprints, err := ss.vet(units)
	if err != nil {
		return errors.Wrapf(err, "sentences update %q", name)
	}
	ss.sentences[name] = blueprints
	return nil
}

// Remove deletes a sentence.
func (ss *Sentences) Remove(name string) error {
	if !ss.Has(name) {
		return unknownf("sentences remove: unknown sentence %q", name)
	}
	delete(ss.sentences, name)
	ss.order = slices.DeleteFunc(ss.order, func(n string) bool { return n == name })
	return nil
}

// Has reports whether name is a stored sentence.
func (ss *Sentences) Has(name string) bool {
	_, ok := ss.sentences[name]
	return ok
}

// Get returns a copy of the blueprints of a sentence.
func (ss *Sentences) Get(name string) ([]Blueprint, bool) {
	blueprints, ok := ss.sentences[name]
	if !ok {
		return nil, false
	}
	out := make([]Blueprint, len(blueprints))
	for i, b := range blueprints {
		out[i] = b.clone()
	}
	return out, true
}

// Names returns the sentence names in insertion order.
func (ss *Sentences) Names() []string {
	return slices.Clone(ss.order)
}

// Len returns the number of sentences.
func (ss *Sentences) Len() int {
	return len(ss.order)
}

// Headwords lists, for each unit of a sentence, the word classes its
// headword may belong to. A nil entry admits any class.
func (ss *Sentences) Headwords(name string) ([][]string, error) {
	blueprints, ok := ss.sentences[name]
	if !ok {
		return nil, unknownf("sentences headwords: unknown sentence %q", name)
	}
	out := make([][]string, len(blueprints))
	for i, b := range blueprints {
		out[i] = b.WordClasses.Elements()
	}
	return out, nil
}

func (ss *Sentences) vet(units []BlueprintSpec) ([]Blueprint, error) {
	if len(units) == 0 {
		return nil, invalidf("no units")
	}
	out := make([]Blueprint, 0, len(units))
	for i, u := range units {
		b, err := ss.blueprint(u)
		if err != nil {
			return nil, errors.Wrapf(err, "unit %d", i)
		}
		out = append(out, b)
	}
	return out, nil
}

// blueprint resolves spec against the declared properties and word
// classes.
func (ss *Sentences) blueprint(spec BlueprintSpec) (Blueprint, error) {
	var dropped []string

	props := make(PropertyMap)
	for c, s := range spec.Properties {
		for g := range s {
			if !ss.properties.Has(c, g) {
				dropped = append(dropped, c+":"+g)
				continue
			}
			props.Add(c, g)
		}
	}
	if spec.PropertiesText != "" {
		parsed, d := ss.properties.parse(classifyAll(Tokens(spec.PropertiesText), ss.properties, nil, nil))
		dropped = append(dropped, d...)
		for c, s := range parsed {
			props.Add(c, s.Elements()...)
		}
	}

	pos := stringset.New()
	for _, wc := range spec.WordClasses {
		if !ss.classes.Has(wc) {
			dropped = append(dropped, wc)
			continue
		}
		pos[wc] = struct{}{}
	}
	if spec.WordClassesText != "" {
		parsed, d := ss.classes.parse(classifyAll(Tokens(spec.WordClassesText), nil, ss.classes, nil))
		dropped = append(dropped, d...)
		for _, wc := range parsed {
			pos[wc] = struct{}{}
		}
	}

	if len(dropped) > 0 {
		return Blueprint{}, unknownf("unknown terms %q", dropped)
	}
	if props.Len() == 0 {
		return Blueprint{}, invalidf("no properties")
	}
	return Blueprint{WordClasses: pos, Properties: props}, nil
}

// rewriteProperties replaces the properties of every blueprint with fn of
// a copy of them.
func (ss *Sentences) rewriteProperties(fn func(PropertyMap) PropertyMap) {
	for _, name := range ss.order {
		for i := range ss.sentences[name] {
			b := &ss.sentences[name][i]
			b.Properties = fn(b.Properties.Clone())
		}
	}
}

// renameWordClass renames a word class in every blueprint, or drops it
// when newName is empty.
func (ss *Sentences) renameWordClass(name, newName string) {
	for _, blueprints := range ss.sentences {
		for _, b := range blueprints {
			if !b.WordClasses.Contains(name) {
				continue
			}
			delete(b.WordClasses, name)
			if newName != "" {
				b.WordClasses[newName] = struct{}{}
			}
		}
	}
}

// ApplySentence fills the named sentence with entries, one per unit in
// order, and joins the built units with spacing. Each entry must belong
// to a word class its unit admits.
func (g *Grammar) ApplySentence(name string, entries []Entry, spacing string) ([]string, error) {
	sound, _, err := g.applySentence(name, entries, spacing)
	return sound, err
}

// applySentence also returns the attached exponents, unit by unit.
func (g *Grammar) applySentence(name string, entries []Entry, spacing string) ([]string, []string, error) {
	blueprints, ok := g.Sentences.sentences[name]
	if !ok {
		return nil, nil, unknownf("apply sentence: unknown sentence %q", name)
	}
	if len(entries) != len(blueprints) {
		return nil, nil, invalidf("apply sentence %q: %d headwords for %d units", name, len(entries), len(blueprints))
	}
	if spacing == "" {
		spacing = " "
	}
	var sound, ids []string
	for i, b := range blueprints {
		entry := entries[i]
		if len(entry.Sound) == 0 {
			return nil, nil, invalidf("apply sentence %q: headword %d has no sound", name, i)
		}
		if !b.WordClasses.Empty() && !slices.ContainsFunc(entry.POS, func(pos string) bool { return b.WordClasses.Contains(pos) }) {
			return nil, nil, invalidf("apply sentence %q: headword %d is %v, want one of %v",
				name, i, entry.POS, b.WordClasses.Elements())
		}
		unitIDs, err := g.SelectExponents(UnitRequest{Properties: b.Properties, WordClasses: entry.POS})
		if err != nil {
			return nil, nil, errors.Wrapf(err, "apply sentence %q: unit %d", name, i)
		}
		if i > 0 {
			sound = append(sound, spacing)
		}
		sound = append(sound, g.Attach(entry.Sound, unitIDs, spacing, unitMidpoint(entry.Sound, entry.Midpoint))...)
		ids = append(ids, unitIDs...)
	}
	return sound, ids, nil
}
