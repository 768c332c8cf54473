package conlang

import (
	"slices"

	"bitbucket.org/creachadair/stringset"
	"github.com/google/uuid"
)

// Syllables stores the syllable templates of a language by id and splits
// sound sequences against them.
type Syllables struct {
	phonetics *Phonetics

	// templates maps id → slots.
	templates map[string][]Slot

	// order records ids in insertion order.
	order []string
}

// NewSyllables returns an empty template store drawing on phonetics.
func NewSyllables(phonetics *Phonetics) *Syllables {
	return &Syllables{
		phonetics: phonetics,
		templates: make(map[string][]Slot),
	}
}

// Add parses a compact template such as "CVC" and stores it. It returns
// the new template id.
func (sy *Syllables) Add(raw string) (string, error) {
	slots, err := sy.phonetics.ParseSlots(raw)
	if err != nil {
		return "", err
	}
	return sy.AddSlots("", slots)
}

// AddStructure stores a template given one slot text per entry, as in
// ["C", "velar stop", "V"].
func (sy *Syllables) AddStructure(raw []string) (string, error) {
	slots, err := sy.phonetics.StructureSlots(raw)
	if err != nil {
		return "", err
	}
	return sy.AddSlots("", slots)
}

// AddSlots stores parsed slots under id, or under a generated id when id is
// empty.
func (sy *Syllables) AddSlots(id string, slots []Slot) (string, error) {
	if err := checkTemplate(slots); err != nil {
		return "", err
	}
	if id == "" {
		id = "syllable-" + uuid.NewString()
	}
	if _, ok := sy.templates[id]; ok {
		return "", conflictf("syllables add: id %q exists", id)
	}
	sy.templates[id] = cloneSlots(slots)
	sy.order = append(sy.order, id)
	return id, nil
}

// Update replaces the template stored under id with a compact template.
func (sy *Syllables) Update(id, raw string) error {
	if _, ok := sy.templates[id]; !ok {
		return unknownf("syllables update: unknown template %q", id)
	}
	slots, err := sy.phonetics.ParseSlots(raw)
	if err != nil {
		return err
	}
	if err := checkTemplate(slots); err != nil {
		return err
	}
	sy.templates[id] = slots
	return nil
}

// Remove deletes the template stored under id.
func (sy *Syllables) Remove(id string) error {
	if _, ok := sy.templates[id]; !ok {
		return unknownf("syllables remove: unknown template %q", id)
	}
	delete(sy.templates, id)
	sy.order = slices.DeleteFunc(sy.order, func(s string) bool { return s == id })
	return nil
}

// Get returns a copy of the template stored under id.
func (sy *Syllables) Get(id string) ([]Slot, bool) {
	slots, ok := sy.templates[id]
	if !ok {
		return nil, false
	}
	return cloneSlots(slots), true
}

// Find returns the id of the first template equal to the compact template
// raw.
func (sy *Syllables) Find(raw string) (string, bool) {
	slots, err := sy.phonetics.ParseSlots(raw)
	if err != nil {
		return "", false
	}
	for _, id := range sy.order {
		if slices.EqualFunc(sy.templates[id], slots, Slot.equal) {
			return id, true
		}
	}
	return "", false
}

// IDs returns the template ids in insertion order.
func (sy *Syllables) IDs() []string {
	return slices.Clone(sy.order)
}

// Len returns the number of templates.
func (sy *Syllables) Len() int {
	return len(sy.order)
}

// MaxLen returns the length of the longest template.
func (sy *Syllables) MaxLen() int {
	n := 0
	for _, slots := range sy.templates {
		n = max(n, len(slots))
	}
	return n
}

// checkTemplate rejects empty templates and templates holding focus or
// boundary slots.
func checkTemplate(slots []Slot) error {
	if len(slots) == 0 {
		return invalidf("syllables: empty template")
	}
	for _, s := range slots {
		if s.Kind != SlotFeatures {
			return invalidf("syllables: %q not allowed in a template", s.String())
		}
	}
	return nil
}

// IsSyllable reports whether some template has the length of fragment and
// every symbol carries the features of the matching slot.
func (sy *Syllables) IsSyllable(fragment []string) bool {
	feats := make([]stringset.Set, len(fragment))
	for i, s := range fragment {
		feats[i] = sy.phonetics.featuresOf(s)
	}
	return sy.isSyllable(feats)
}

func (sy *Syllables) isSyllable(feats []stringset.Set) bool {
	if len(feats) == 0 {
		return false
	}
	for _, id := range sy.order {
		slots := sy.templates[id]
		if len(slots) != len(feats) {
			continue
		}
		ok := true
		for i, slot := range slots {
			if !slot.matches(feats[i]) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// known drops symbols phonetics does not declare.
func (sy *Syllables) known(sounds []string) []string {
	out := make([]string, 0, len(sounds))
	for _, s := range sounds {
		if sy.phonetics.HasSymbol(s) {
			out = append(out, s)
		}
	}
	return out
}

// Syllabify splits sounds into syllables whose concatenation is sounds
// without its undeclared symbols. At each step it takes the longest
// syllable that leaves a remainder which can itself be split completely.
// An empty input gives an empty result.
func (sy *Syllables) Syllabify(sounds []string) ([][]string, error) {
	sounds = sy.known(sounds)
	n := len(sounds)
	if n == 0 {
		return nil, nil
	}
	feats := make([]stringset.Set, n)
	for i, s := range sounds {
		feats[i] = sy.phonetics.featuresOf(s)
	}
	longest := sy.MaxLen()

	// splittable[i] reports whether sounds[i:] splits completely.
	splittable := make([]bool, n+1)
	splittable[n] = true
	for i := n - 1; i >= 0; i-- {
		for k := 1; k <= longest && i+k <= n; k++ {
			if splittable[i+k] && sy.isSyllable(feats[i:i+k]) {
				splittable[i] = true
				break
			}
		}
	}
	if !splittable[0] {
		return nil, unsatisfiablef("syllabify %v: no template split", sounds)
	}

	var out [][]string
	for i := 0; i < n; {
		for k := min(longest, n-i); k > 0; k-- {
			if splittable[i+k] && sy.isSyllable(feats[i:i+k]) {
				out = append(out, slices.Clone(sounds[i:i+k]))
				i += k
				break
			}
		}
	}
	return out, nil
}

// SyllabifyMin splits sounds greedily, closing a syllable as soon as it
// matches a template. Symbols left over at the end are returned as the
// remainder. The result is only good for counting.
func (sy *Syllables) SyllabifyMin(sounds []string) (syllables [][]string, remainder []string) {
	sounds = sy.known(sounds)
	start := 0
	for end := 1; end <= len(sounds); end++ {
		if sy.IsSyllable(sounds[start:end]) {
			syllables = append(syllables, slices.Clone(sounds[start:end]))
			start = end
		}
	}
	return syllables, slices.Clone(sounds[start:])
}

// Count returns the number of syllables in sounds, falling back to the
// greedy split when no complete split exists.
func (sy *Syllables) Count(sounds []string) int {
	if syllables, err := sy.Syllabify(sounds); err == nil {
		return len(syllables)
	}
	syllables, _ := sy.SyllabifyMin(sounds)
	return len(syllables)
}
