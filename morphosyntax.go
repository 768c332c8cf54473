package conlang

import (
	"maps"
	"slices"
)

// relations holds the inner and outer neighbours of one exponent in
// insertion order.
type relations struct {
	inner []string
	outer []string
}

// Morphosyntax orders exponents relative to each other. For every pair,
// y is inner of x exactly when x is outer of y, and the inner relation has
// no cycle.
type Morphosyntax struct {
	exponents *Exponents

	// orders maps exponent id → its relations.
	orders map[string]*relations
}

// NewMorphosyntax returns an empty ordering over exponents and follows
// their renames and removals.
func NewMorphosyntax(exponents *Exponents) *Morphosyntax {
	ms := &Morphosyntax{
		exponents: exponents,
		orders:    make(map[string]*relations),
	}
	exponents.onRename = append(exponents.onRename, ms.renameExponent)
	exponents.onRemove = append(exponents.onRemove, ms.removeExponent)
	return ms
}

// AddExponentOrder records that every id of inner sits closer to the base
// than id and every id of outer sits further. Each neighbour is updated to
// mirror the change. A change that would make the ordering cyclic is
// rejected and leaves nothing changed.
func (ms *Morphosyntax) AddExponentOrder(id string, inner, outer []string) error {
	for _, x := range append(append([]string{id}, inner...), outer...) {
		if !ms.exponents.Has(x) {
			return unknownf("morphosyntax: unknown exponent %q", x)
		}
	}
	for _, x := range inner {
		if x == id {
			return conflictf("morphosyntax: %q inner of itself", id)
		}
		if slices.Contains(outer, x) {
			return conflictf("morphosyntax: %q both inner and outer of %q", x, id)
		}
	}
	if slices.Contains(outer, id) {
		return conflictf("morphosyntax: %q outer of itself", id)
	}

	staged := ms.clone()
	for _, x := range inner {
		staged.link(x, id)
	}
	for _, x := range outer {
		staged.link(id, x)
	}
	if cyc := staged.cycle(); cyc != "" {
		return conflictf("morphosyntax: ordering %q makes a cycle through %q", id, cyc)
	}
	ms.orders = staged.orders
	return nil
}

// link records in as inner of out, removing any opposite relation.
func (ms *Morphosyntax) link(in, out string) {
	o, i := ms.get(out), ms.get(in)
	o.inner = appendUnique(o.inner, in)
	o.outer = slices.DeleteFunc(o.outer, func(s string) bool { return s == in })
	i.outer = appendUnique(i.outer, out)
	i.inner = slices.DeleteFunc(i.inner, func(s string) bool { return s == out })
}

func (ms *Morphosyntax) get(id string) *relations {
	r, ok := ms.orders[id]
	if !ok {
		r = &relations{}
		ms.orders[id] = r
	}
	return r
}

func (ms *Morphosyntax) clone() *Morphosyntax {
	out := &Morphosyntax{exponents: ms.exponents, orders: make(map[string]*relations, len(ms.orders))}
	for id, r := range ms.orders {
		out.orders[id] = &relations{inner: slices.Clone(r.inner), outer: slices.Clone(r.outer)}
	}
	return out
}

// cycle returns an exponent on a cycle of the inner relation, or "".
func (ms *Morphosyntax) cycle() string {
	const (
		unseen = iota
		open
		done
	)
	state := make(map[string]int, len(ms.orders))
	var visit func(id string) string
	visit = func(id string) string {
		switch state[id] {
		case open:
			return id
		case done:
			return ""
		}
		state[id] = open
		if r, ok := ms.orders[id]; ok {
			for _, in := range r.inner {
				if c := visit(in); c != "" {
					return c
				}
			}
		}
		state[id] = done
		return ""
	}
	for _, id := range slices.Sorted(maps.Keys(ms.orders)) {
		if c := visit(id); c != "" {
			return c
		}
	}
	return ""
}

// Inner returns the exponents that sit closer to the base than id.
func (ms *Morphosyntax) Inner(id string) []string {
	if r, ok := ms.orders[id]; ok {
		return slices.Clone(r.inner)
	}
	return nil
}

// Outer returns the exponents that sit further from the base than id.
func (ms *Morphosyntax) Outer(id string) []string {
	if r, ok := ms.orders[id]; ok {
		return slices.Clone(r.outer)
	}
	return nil
}

// Arrange returns the known exponents among ids from outermost to
// innermost. Exponents outside ids are walked through but left out.
func (ms *Morphosyntax) Arrange(ids []string) []string {
	requested := make(map[string]bool)
	var known []string
	for _, id := range ids {
		if ms.exponents.Has(id) && !requested[id] {
			requested[id] = true
			known = append(known, id)
		}
	}
	visited := make(map[string]bool)
	var out []string
	for _, id := range known {
		if !visited[id] {
			out = append(out, ms.chain(id, requested, visited)...)
		}
	}
	return out
}

// chain lists id between everything reachable outward from it and
// everything reachable inward, keeping only requested exponents.
func (ms *Morphosyntax) chain(id string, requested, visited map[string]bool) []string {
	if visited[id] {
		return nil
	}
	visited[id] = true
	var outers, inners []string
	if r, ok := ms.orders[id]; ok {
		outers = slices.DeleteFunc(slices.Clone(r.outer), func(s string) bool { return visited[s] })
		inners = slices.DeleteFunc(slices.Clone(r.inner), func(s string) bool { return visited[s] })
	}
	var out []string
	for _, o := range outers {
		out = append(out, ms.chain(o, requested, visited)...)
	}
	if requested[id] {
		out = append(out, id)
	}
	for _, i := range inners {
		out = append(out, ms.chain(i, requested, visited)...)
	}
	return out
}

func (ms *Morphosyntax) renameExponent(id, newID string) {
	for _, r := range ms.orders {
		for i, s := range r.inner {
			if s == id {
				r.inner[i] = newID
			}
		}
		for i, s := range r.outer {
			if s == id {
				r.outer[i] = newID
			}
		}
	}
	if r, ok := ms.orders[id]; ok {
		delete(ms.orders, id)
		ms.orders[newID] = r
	}
}

func (ms *Morphosyntax) removeExponent(id string) {
	delete(ms.orders, id)
	for _, r := range ms.orders {
		r.inner = slices.DeleteFunc(r.inner, func(s string) bool { return s == id })
		r.outer = slices.DeleteFunc(r.outer, func(s string) bool { return s == id })
	}
}

// appendUnique appends s to ss unless it is already there.
func appendUnique(ss []string, s string) []string {
	if slices.Contains(ss, s) {
		return ss
	}
	return append(ss, s)
}
