package conlang

import (
	"strings"

	"bitbucket.org/creachadair/stringset"
)

// SlotKind tells what a template or environment slot matches.
type SlotKind int

const (
	// SlotFeatures matches a symbol carrying every feature of the slot.
	SlotFeatures SlotKind = iota
	// SlotFocus marks the rewritten position of a rule environment ("_").
	SlotFocus
	// SlotBoundary matches the start or end of the sequence ("#").
	SlotBoundary
)

// Slot is one position of a syllable template or rule environment.
type Slot struct {
	Kind SlotKind
	// Features is set for SlotFeatures only and is never empty there.
	Features stringset.Set
}

// FeatureSlot returns a slot requiring the given features.
func FeatureSlot(features ...string) Slot {
	return Slot{Kind: SlotFeatures, Features: stringset.New(features...)}
}

var (
	// Focus is the "_" slot.
	Focus = Slot{Kind: SlotFocus}
	// Boundary is the "#" slot.
	Boundary = Slot{Kind: SlotBoundary}
)

// matches reports whether a symbol with features fills a feature slot.
func (s Slot) matches(features stringset.Set) bool {
	return s.Kind == SlotFeatures && s.Features.IsSubset(features)
}

func (s Slot) equal(o Slot) bool {
	return s.Kind == o.Kind && s.Features.Equals(o.Features)
}

// String renders the slot in compact notation: "_", "#", "C", "V",
// "C(+voiced)" or "[front open]".
func (s Slot) String() string {
	switch s.Kind {
	case SlotFocus:
		return "_"
	case SlotBoundary:
		return "#"
	}
	head := ""
	switch {
	case s.Features.Contains("consonant"):
		head = "C"
	case s.Features.Contains("vowel"):
		head = "V"
	}
	if head == "" {
		return "[" + strings.Join(s.Features.Elements(), " ") + "]"
	}
	var extra []string
	for _, f := range s.Features.Elements() {
		if f != "consonant" && f != "vowel" {
			extra = append(extra, "+"+f)
		}
	}
	if len(extra) == 0 {
		return head
	}
	return head + "(" + strings.Join(extra, ",") + ")"
}

// formatSlots renders slots one after another.
func formatSlots(slots []Slot) string {
	var b strings.Builder
	for _, s := range slots {
		b.WriteString(s.String())
	}
	return b.String()
}

// cloneSlots deep-copies slots.
func cloneSlots(slots []Slot) []Slot {
	out := make([]Slot, len(slots))
	for i, s := range slots {
		out[i] = Slot{Kind: s.Kind}
		if s.Kind == SlotFeatures {
			out[i].Features = cloneSet(s.Features)
		}
	}
	return out
}

// ParseSlots reads a compact slot string such as "CVC" or "V_#". Each
// character is one of C, V, _ or #.
func (p *Phonetics) ParseSlots(raw string) ([]Slot, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, invalidf("slots: empty structure")
	}
	var out []Slot
	for _, r := range raw {
		s, err := p.parseSlot(string(r))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// StructureSlots reads one slot per entry. An entry is "C", "V", "_", "#"
// or a whitespace-separated list of features, where C and V may stand in
// for consonant and vowel.
func (p *Phonetics) StructureSlots(raw []string) ([]Slot, error) {
	if len(raw) == 0 {
		return nil, invalidf("slots: empty structure")
	}
	out := make([]Slot, 0, len(raw))
	for _, text := range raw {
		s, err := p.parseSlot(text)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// parseSlot reads a single slot. Every feature must be declared.
func (p *Phonetics) parseSlot(text string) (Slot, error) {
	switch strings.TrimSpace(text) {
	case "_":
		return Focus, nil
	case "#":
		return Boundary, nil
	}
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return Slot{}, invalidf("slots: empty slot")
	}
	features := stringset.New()
	for _, tok := range tokens {
		if full, ok := shorthand[tok]; ok {
			tok = full
		}
		f, ok := p.lookupFeature(tok)
		if !ok {
			return Slot{}, unknownf("slots: unknown feature %q", tok)
		}
		features[f] = struct{}{}
	}
	return Slot{Kind: SlotFeatures, Features: features}, nil
}
