package conlang

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"bitbucket.org/creachadair/stringset"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Rule rewrites the focus symbol of a matching environment: the source
// features are taken away and the target features added.
type Rule struct {
	ID          string
	Source      stringset.Set
	Target      stringset.Set
	Environment []Slot
}

// focus returns the index of the "_" slot.
func (r *Rule) focus() int {
	return slices.IndexFunc(r.Environment, func(s Slot) bool { return s.Kind == SlotFocus })
}

// String renders the rule in notation: "voiceless -> voiced / V_V".
func (r *Rule) String() string {
	return fmt.Sprintf("%s -> %s / %s",
		strings.Join(r.Source.Elements(), " "),
		strings.Join(r.Target.Elements(), " "),
		formatSlots(r.Environment))
}

// Describe renders the rule as a sentence:
// "Change voiceless to voiced when it's between a vowel and a vowel."
func (r *Rule) Describe() string {
	text := fmt.Sprintf("Change %s to %s",
		strings.Join(r.Source.Elements(), " "),
		strings.Join(r.Target.Elements(), " "))
	i := r.focus()
	before := describeSlots(r.Environment[:i])
	after := describeSlots(r.Environment[i+1:])
	switch {
	case before != "" && after != "":
		text += fmt.Sprintf(" when it's between %s and %s", before, after)
	case before != "":
		text += " when it's after " + before
	case after != "":
		text += " when it's before " + after
	}
	return text + "."
}

// describeSlots renders slots as a comma-separated noun phrase list.
func describeSlots(slots []Slot) string {
	parts := make([]string, 0, len(slots))
	for _, s := range slots {
		if s.Kind == SlotBoundary {
			parts = append(parts, "a word break")
			continue
		}
		var words, class []string
		for _, f := range s.Features.Elements() {
			if f == "consonant" || f == "vowel" {
				class = append(class, f)
			} else {
				words = append(words, f)
			}
		}
		phrase := strings.Join(append(words, class...), " ")
		article := "a "
		if initial, _ := utf8.DecodeRuneInString(norm.NFD.String(phrase)); strings.ContainsRune("aeiou", initial) {
			article = "an "
		}
		parts = append(parts, article+phrase)
	}
	return strings.Join(parts, ", ")
}

// RuleSpec describes a rule to add or the fields to change on one.
// Source and Target entries may each hold several whitespace-separated
// features. The environment is given either compactly ("V_V") or one slot
// per entry; EnvironmentSlots wins when both are set.
type RuleSpec struct {
	ID               string
	Source           []string
	Target           []string
	Environment      string
	EnvironmentSlots []string
}

// Rules stores the sound change rules of a language and their order of
// application.
type Rules struct {
	phonetics *Phonetics

	// rules maps id → *Rule.
	rules map[string]*Rule

	// order is the application order.
	order []string
}

// NewRules returns an empty rule set drawing on phonetics.
func NewRules(phonetics *Phonetics) *Rules {
	return &Rules{
		phonetics: phonetics,
		rules:     make(map[string]*Rule),
	}
}

// Add compiles spec into a rule, appends it to the application order and
// returns its id.
func (rs *Rules) Add(spec RuleSpec) (string, error) {
	source, err := rs.featureSet(spec.Source)
	if err != nil {
		return "", err
	}
	target, err := rs.featureSet(spec.Target)
	if err != nil {
		return "", err
	}
	if source.Empty() && target.Empty() {
		return "", invalidf("rules add: empty source and target")
	}
	env, err := rs.environment(spec.Environment, spec.EnvironmentSlots)
	if err != nil {
		return "", err
	}
	id := spec.ID
	if id == "" {
		id = "rule-" + uuid.NewString()
	}
	if _, ok := rs.rules[id]; ok {
		return "", conflictf("rules add: id %q exists", id)
	}
	rs.rules[id] = &Rule{ID: id, Source: source, Target: target, Environment: env}
	rs.order = append(rs.order, id)
	return id, nil
}

// Update replaces the source, target or environment of a rule. Empty
// fields of spec are left alone; the rule keeps its place in the order.
func (rs *Rules) Update(id string, spec RuleSpec) error {
	r, ok := rs.rules[id]
	if !ok {
		return unknownf("rules update: unknown rule %q", id)
	}
	next := *r
	if spec.Source != nil {
		s, err := rs.featureSet(spec.Source)
		if err != nil {
			return err
		}
		next.Source = s
	}
	if spec.Target != nil {
		t, err := rs.featureSet(spec.Target)
		if err != nil {
			return err
		}
		next.Target = t
	}
	if spec.Environment != "" || spec.EnvironmentSlots != nil {
		env, err := rs.environment(spec.Environment, spec.EnvironmentSlots)
		if err != nil {
			return err
		}
		next.Environment = env
	}
	if next.Source.Empty() && next.Target.Empty() {
		return invalidf("rules update %q: empty source and target", id)
	}
	rs.rules[id] = &next
	return nil
}

// Remove deletes a rule and drops it from the order.
func (rs *Rules) Remove(id string) error {
	if _, ok := rs.rules[id]; !ok {
		return unknownf("rules remove: unknown rule %q", id)
	}
	delete(rs.rules, id)
	rs.order = slices.DeleteFunc(rs.order, func(s string) bool { return s == id })
	return nil
}

// Get returns a copy of the rule stored under id.
func (rs *Rules) Get(id string) (*Rule, bool) {
	r, ok := rs.rules[id]
	if !ok {
		return nil, false
	}
	return &Rule{
		ID:          r.ID,
		Source:      cloneSet(r.Source),
		Target:      cloneSet(r.Target),
		Environment: cloneSlots(r.Environment),
	}, true
}

// Order returns the rule ids in application order.
func (rs *Rules) Order() []string {
	return slices.Clone(rs.order)
}

// Len returns the number of rules.
func (rs *Rules) Len() int {
	return len(rs.order)
}

// OrderBefore moves rule a to the position just before rule b.
func (rs *Rules) OrderBefore(a, b string) error {
	if err := rs.known(a, b); err != nil {
		return err
	}
	if a == b {
		return nil
	}
	rs.order = slices.DeleteFunc(rs.order, func(s string) bool { return s == a })
	i := slices.Index(rs.order, b)
	rs.order = slices.Insert(rs.order, i, a)
	return nil
}

// OrderAbsolute moves rule id to index i of the order.
func (rs *Rules) OrderAbsolute(id string, i int) error {
	if err := rs.known(id); err != nil {
		return err
	}
	if i < 0 || i >= len(rs.order) {
		return invalidf("rules order: index %d out of range [0, %d)", i, len(rs.order))
	}
	rs.order = slices.DeleteFunc(rs.order, func(s string) bool { return s == id })
	rs.order = slices.Insert(rs.order, i, id)
	return nil
}

// OrderSwap exchanges the positions of rules a and b.
func (rs *Rules) OrderSwap(a, b string) error {
	if err := rs.known(a, b); err != nil {
		return err
	}
	i, j := slices.Index(rs.order, a), slices.Index(rs.order, b)
	rs.order[i], rs.order[j] = rs.order[j], rs.order[i]
	return nil
}

func (rs *Rules) known(ids ...string) error {
	for _, id := range ids {
		if _, ok := rs.rules[id]; !ok {
			return unknownf("rules: unknown rule %q", id)
		}
	}
	return nil
}

// featureSet reads rule features. Every feature must be declared.
func (rs *Rules) featureSet(raw []string) (stringset.Set, error) {
	out := stringset.New()
	for _, entry := range raw {
		for _, tok := range strings.Fields(entry) {
			f, ok := rs.phonetics.lookupFeature(tok)
			if !ok {
				return nil, unknownf("rules: unknown feature %q", tok)
			}
			out[f] = struct{}{}
		}
	}
	return out, nil
}

// environment parses a rule environment, which must hold exactly one
// focus slot.
func (rs *Rules) environment(compact string, structured []string) ([]Slot, error) {
	var (
		env []Slot
		err error
	)
	if structured != nil {
		env, err = rs.phonetics.StructureSlots(structured)
	} else {
		env, err = rs.phonetics.ParseSlots(compact)
	}
	if err != nil {
		return nil, err
	}
	focus := 0
	for _, s := range env {
		if s.Kind == SlotFocus {
			focus++
		}
	}
	if focus != 1 {
		return nil, invalidf("rules: environment %q has %d focus slots, want 1", formatSlots(env), focus)
	}
	return env, nil
}
