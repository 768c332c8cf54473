package conlang

import (
	"slices"
	"strings"

	"bitbucket.org/creachadair/stringset"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// Exponent is a piece of grammatical material: sounds placed before,
// inside or after a base, providing some properties and optionally
// restricted to some word classes.
type Exponent struct {
	ID   string
	Pre  []string
	Mid  []string
	Post []string
	// Bound exponents attach without spacing.
	Bound      bool
	Properties PropertyMap
	// POS lists the word classes the exponent applies to. Empty means any.
	POS stringset.Set
}

// Form names the shape of the exponent: prefix, suffix, infix, circumfix
// or multifix when bound, and the matching -position names when free.
func (e *Exponent) Form() string {
	pre, mid, post := len(e.Pre) > 0, len(e.Mid) > 0, len(e.Post) > 0
	var form string
	switch {
	case pre && !mid && !post:
		form = "pre"
	case post && !pre && !mid:
		form = "post"
	case mid && !pre && !post:
		form = "inter"
	case pre && post && !mid:
		form = "circum"
	default:
		form = "multi"
	}
	if !e.Bound {
		return form + "position"
	}
	switch form {
	case "post":
		return "suffix"
	case "inter":
		return "infix"
	}
	return form + "fix"
}

// String renders the exponent material with hyphens marking where the
// base goes, as "ed-" or "-s" or "ge- -t".
func (e *Exponent) String() string {
	pre, mid, post := strings.Join(e.Pre, ""), strings.Join(e.Mid, ""), strings.Join(e.Post, "")
	link := "-"
	if !e.Bound {
		link = "..."
	}
	var parts []string
	if pre != "" {
		parts = append(parts, pre+link)
	}
	if mid != "" {
		parts = append(parts, link+mid+link)
	}
	if post != "" {
		parts = append(parts, link+post)
	}
	return strings.Join(parts, " ")
}

func (e *Exponent) clone() *Exponent {
	return &Exponent{
		ID:         e.ID,
		Pre:        slices.Clone(e.Pre),
		Mid:        slices.Clone(e.Mid),
		Post:       slices.Clone(e.Post),
		Bound:      e.Bound,
		Properties: e.Properties.Clone(),
		POS:        cloneSet(e.POS),
	}
}

// ExponentSpec describes an exponent to add. Properties and
// PropertiesText are merged; at least one pair is required. Every term of
// PropertiesText must be used.
type ExponentSpec struct {
	ID             string
	Pre, Mid, Post []string
	Bound          bool
	Properties     PropertyMap
	PropertiesText string
	POS            []string
}

// ExponentUpdate lists the fields to change on an exponent. Nil fields are
// left alone; an empty non-nil slice clears a side.
type ExponentUpdate struct {
	Pre, Mid, Post []string
	Bound          *bool
	Properties     PropertyMap
	POS            []string
}

// ExponentQuery selects exponents. Nil fields match anything.
type ExponentQuery struct {
	Pre, Mid, Post []string
	Bound          *bool
	// POS matches exponents restricted to at least these word classes.
	POS []string
	// Properties matches exponents providing at least these pairs.
	Properties PropertyMap
}

// Exponents stores the exponents of a language by id.
type Exponents struct {
	properties *Properties
	classes    *WordClasses

	// exponents maps id → *Exponent.
	exponents map[string]*Exponent

	// order records ids in insertion order.
	order []string

	// onRename and onRemove are told about id changes so that orderings
	// stay in step.
	onRename []func(id, newID string)
	onRemove []func(id string)
}

// NewExponents returns an empty exponent store validating against
// properties and classes.
func NewExponents(properties *Properties, classes *WordClasses) *Exponents {
	return &Exponents{
		properties: properties,
		classes:    classes,
		exponents:  make(map[string]*Exponent),
	}
}

// Add validates spec, stores the exponent and returns its id.
func (ex *Exponents) Add(spec ExponentSpec) (string, error) {
	e := &Exponent{
		ID:    spec.ID,
		Pre:   stripEmpty(spec.Pre),
		Mid:   stripEmpty(spec.Mid),
		Post:  stripEmpty(spec.Post),
		Bound: spec.Bound,
	}
	props := make(PropertyMap)
	for c, s := range spec.Properties {
		props.Add(c, s.Elements()...)
	}
	if spec.PropertiesText != "" {
		parsed, dropped := ex.properties.parse(classifyAll(Tokens(spec.PropertiesText), ex.properties, nil, nil))
		if len(dropped) > 0 {
			return "", unknownf("exponent: unknown property terms %q", dropped)
		}
		for c, s := range parsed {
			props.Add(c, s.Elements()...)
		}
	}
	e.Properties = props.compact()
	e.POS = stringset.New(spec.POS...)
	if err := ex.check(e); err != nil {
		return "", err
	}
	if e.ID == "" {
		e.ID = "grammatical-exponent-" + uuid.NewString()
	}
	if ex.Has(e.ID) {
		return "", conflictf("exponents add: id %q exists", e.ID)
	}
	ex.exponents[e.ID] = e
	ex.order = append(ex.order, e.ID)
	return e.ID, nil
}

// AddMany adds every spec and returns the ids of the ones added. Specs
// that fail are skipped and their errors combined.
func (ex *Exponents) AddMany(specs []ExponentSpec) ([]string, error) {
	var (
		ids []string
		err error
	)
	for _, spec := range specs {
		id, addErr := ex.Add(spec)
		if addErr != nil {
			err = multierr.Append(err, addErr)
			continue
		}
		ids = append(ids, id)
	}
	return ids, err
}

// check validates material, properties and word classes of e.
func (ex *Exponents) check(e *Exponent) error {
	if len(e.Pre) == 0 && len(e.Mid) == 0 && len(e.Post) == 0 {
		return invalidf("exponent: no material")
	}
	if e.Properties.Len() == 0 {
		return invalidf("exponent: no properties")
	}
	for c, s := range e.Properties {
		for g := range s {
			if !ex.properties.Has(c, g) {
				return unknownf("exponent: unknown property %s:%s", c, g)
			}
		}
	}
	for pos := range e.POS {
		if !ex.classes.Has(pos) {
			return unknownf("exponent: unknown word class %q", pos)
		}
	}
	return nil
}

// Update changes fields of an exponent. The result is validated as a whole
// and nothing changes when it is invalid.
func (ex *Exponents) Update(id string, u ExponentUpdate) error {
	e, ok := ex.exponents[id]
	if !ok {
		return unknownf("exponents update: unknown exponent %q", id)
	}
	next := e.clone()
	if u.Pre != nil {
		next.Pre = stripEmpty(u.Pre)
	}
	if u.Mid != nil {
		next.Mid = stripEmpty(u.Mid)
	}
	if u.Post != nil {
		next.Post = stripEmpty(u.Post)
	}
	if u.Bound != nil {
		next.Bound = *u.Bound
	}
	if u.Properties != nil {
		next.Properties = u.Properties.Clone().compact()
	}
	if u.POS != nil {
		next.POS = stringset.New(u.POS...)
	}
	if err := ex.check(next); err != nil {
		return err
	}
	ex.exponents[id] = next
	return nil
}

// Rename moves an exponent to a new id.
func (ex *Exponents) Rename(id, newID string) error {
	if newID == "" {
		return invalidf("exponents rename: empty id")
	}
	e, ok := ex.exponents[id]
	if !ok {
		return unknownf("exponents rename: unknown exponent %q", id)
	}
	if id == newID {
		return nil
	}
	if ex.Has(newID) {
		return conflictf("exponents rename %q: id %q exists", id, newID)
	}
	delete(ex.exponents, id)
	e.ID = newID
	ex.exponents[newID] = e
	ex.order[slices.Index(ex.order, id)] = newID
	for _, fn := range ex.onRename {
		fn(id, newID)
	}
	return nil
}

// Remove deletes an exponent along with its orderings.
func (ex *Exponents) Remove(id string) error {
	if !ex.Has(id) {
		return unknownf("exponents remove: unknown exponent %q", id)
	}
	delete(ex.exponents, id)
	ex.order = slices.DeleteFunc(ex.order, func(s string) bool { return s == id })
	for _, fn := range ex.onRemove {
		fn(id)
	}
	return nil
}

// Has reports whether id names an exponent.
func (ex *Exponents) Has(id string) bool {
	_, ok := ex.exponents[id]
	return ok
}

// Get returns a copy of the exponent stored under id.
func (ex *Exponents) Get(id string) (*Exponent, bool) {
	e, ok := ex.exponents[id]
	if !ok {
		return nil, false
	}
	return e.clone(), true
}

// IDs returns the exponent ids in insertion order.
func (ex *Exponents) IDs() []string {
	return slices.Clone(ex.order)
}

// Len returns the number of exponents.
func (ex *Exponents) Len() int {
	return len(ex.order)
}

// Exists reports whether some exponent has exactly the given material.
func (ex *Exponents) Exists(pre, mid, post []string) bool {
	return len(ex.Find(ExponentQuery{
		Pre:  stripEmpty(pre),
		Mid:  stripEmpty(mid),
		Post: stripEmpty(post),
	})) > 0
}

// Find returns the ids of the exponents matching q, in insertion order.
func (ex *Exponents) Find(q ExponentQuery) []string {
	var out []string
	for _, id := range ex.order {
		e := ex.exponents[id]
		switch {
		case q.Pre != nil && !slices.Equal(q.Pre, e.Pre),
			q.Mid != nil && !slices.Equal(q.Mid, e.Mid),
			q.Post != nil && !slices.Equal(q.Post, e.Post),
			q.Bound != nil && *q.Bound != e.Bound,
			q.POS != nil && !stringset.New(q.POS...).IsSubset(e.POS),
			q.Properties != nil && !IsSubproperties(q.Properties, e.Properties):
			continue
		}
		out = append(out, id)
	}
	return out
}

// AddPOS restricts an exponent to more word classes.
func (ex *Exponents) AddPOS(id string, pos ...string) error {
	e, err := ex.posTarget(id, pos)
	if err != nil {
		return err
	}
	for _, p := range pos {
		e.POS[p] = struct{}{}
	}
	return nil
}

// RemovePOS lifts restrictions from an exponent.
func (ex *Exponents) RemovePOS(id string, pos ...string) error {
	e, err := ex.posTarget(id, pos)
	if err != nil {
		return err
	}
	for _, p := range pos {
		delete(e.POS, p)
	}
	return nil
}

// ReplacePOS sets the word classes of an exponent to exactly pos.
func (ex *Exponents) ReplacePOS(id string, pos ...string) error {
	e, err := ex.posTarget(id, pos)
	if err != nil {
		return err
	}
	e.POS = stringset.New(pos...)
	return nil
}

func (ex *Exponents) posTarget(id string, pos []string) (*Exponent, error) {
	e, ok := ex.exponents[id]
	if !ok {
		return nil, unknownf("exponents: unknown exponent %q", id)
	}
	for _, p := range pos {
		if !ex.classes.Has(p) {
			return nil, unknownf("exponents: unknown word class %q", p)
		}
	}
	return e, nil
}

// rewriteProperties replaces the properties of every exponent, in
// insertion order, with fn of a copy of them.
func (ex *Exponents) rewriteProperties(fn func(PropertyMap) PropertyMap) {
	for _, id := range ex.order {
		e := ex.exponents[id]
		e.Properties = fn(e.Properties.Clone())
	}
}

// renamePOS renames a word class in every exponent, or drops it when
// newName is empty.
func (ex *Exponents) renamePOS(name, newName string) {
	for _, id := range ex.order {
		e := ex.exponents[id]
		if !e.POS.Contains(name) {
			continue
		}
		delete(e.POS, name)
		if newName != "" {
			e.POS[newName] = struct{}{}
		}
	}
}
