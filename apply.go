package conlang

import (
	"slices"
	"sort"

	"bitbucket.org/creachadair/stringset"
	"go.uber.org/zap"
)

// track is a live attempt to match a rule environment starting at some
// position of the padded input.
type track struct {
	// count indexes the next environment slot to match.
	count int
	// sourceIndex is the unpadded index of the symbol matched by the
	// focus slot, or -1 before the focus is reached.
	sourceIndex  int
	sourceSymbol string
}

// Change records one rewrite attempted by a rule.
type Change struct {
	Rule  string
	Index int
	From  string
	To    string
	// Err is non-nil, wrapping ErrSoft, when the rewritten features name no
	// symbol. To equals From then.
	Err error
}

// ApplyRule runs one rule over sounds and returns the rewritten sequence.
// It fails only when ruleID is unknown.
func (ph *Phonology) ApplyRule(sounds []string, ruleID string) ([]string, error) {
	r, ok := ph.Rules.rules[ruleID]
	if !ok {
		return nil, unknownf("apply rule: unknown rule %q", ruleID)
	}
	out, _ := ph.applyRule(sounds, r)
	return out, nil
}

// ApplyRules runs every rule in order, each one reading the output of the
// one before.
func (ph *Phonology) ApplyRules(sounds []string) []string {
	out, _ := ph.Trace(sounds)
	return out
}

// Trace is ApplyRules that also returns every rewrite it attempted.
func (ph *Phonology) Trace(sounds []string) ([]string, []Change) {
	out := slices.Clone(sounds)
	var changes []Change
	for _, id := range ph.Rules.order {
		var c []Change
		out, c = ph.applyRule(out, ph.Rules.rules[id])
		changes = append(changes, c...)
	}
	return out, changes
}

// applyRule finds every match of r in sounds first, then rewrites the
// matched symbols in ascending index order. The result has the length of
// sounds.
func (ph *Phonology) applyRule(sounds []string, r *Rule) ([]string, []Change) {
	matches := ph.matchRule(sounds, r)
	out := slices.Clone(sounds)
	var changes []Change
	for _, m := range matches {
		current := out[m.sourceIndex]
		feats := ph.Phonetics.featuresOf(current)
		if !r.Source.IsSubset(feats) {
			continue
		}
		next := feats.Diff(r.Source).Union(r.Target)
		if next.Equals(feats) {
			continue
		}
		symbol, ok := ph.Phonetics.Resolve(next)
		if !ok {
			err := softf("rule %s: no symbol for %v", r.ID, next.Elements())
			ph.logger.Warn("sound change left unresolved",
				zap.String("rule", r.ID),
				zap.String("symbol", current),
				zap.Int("index", m.sourceIndex),
				zap.Strings("features", next.Elements()))
			changes = append(changes, Change{Rule: r.ID, Index: m.sourceIndex, From: current, To: current, Err: err})
			continue
		}
		out[m.sourceIndex] = symbol
		changes = append(changes, Change{Rule: r.ID, Index: m.sourceIndex, From: current, To: symbol})
	}
	return out, changes
}

// matchRule walks the boundary-padded sounds left to right. At each
// position a new track starts and every live track tries to match its
// next slot; tracks that fail are dropped and tracks that reach the end
// of the environment are kept as matches.
func (ph *Phonology) matchRule(sounds []string, r *Rule) []track {
	env := r.Environment
	last := len(sounds) + 1

	feats := make([]stringset.Set, len(sounds))
	for i, s := range sounds {
		feats[i] = ph.Phonetics.featuresOf(s)
	}

	var active, matches []track
	for i := 0; i <= last; i++ {
		active = append(active, track{sourceIndex: -1})
		next := active[:0]
		for _, t := range active {
			slot := env[t.count]
			switch slot.Kind {
			case SlotBoundary:
				if i != 0 && i != last {
					continue
				}
			case SlotFocus:
				if i == 0 || i == last || !r.Source.IsSubset(feats[i-1]) {
					continue
				}
				t.sourceIndex = i - 1
				t.sourceSymbol = sounds[i-1]
			default:
				if i == 0 || i == last || !slot.matches(feats[i-1]) {
					continue
				}
			}
			t.count++
			if t.count == len(env) {
				matches = append(matches, t)
				continue
			}
			next = append(next, t)
		}
		active = next
	}
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].sourceIndex < matches[b].sourceIndex
	})
	return matches
}
