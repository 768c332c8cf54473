package conlang

import (
	"slices"
	"strings"

	"bitbucket.org/creachadair/stringset"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// PropertyMap maps a grammatical category to a set of its grammemes, as in
// {tense: {past}, number: {plural}}.
type PropertyMap map[string]stringset.Set

// Add records grammemes under category.
func (m PropertyMap) Add(category string, grammemes ...string) {
	s, ok := m[category]
	if !ok {
		s = stringset.New()
		m[category] = s
	}
	for _, g := range grammemes {
		s[g] = struct{}{}
	}
}

// Has reports whether m holds the pair (category, grammeme).
func (m PropertyMap) Has(category, grammeme string) bool {
	return m[category].Contains(grammeme)
}

// Clone returns a deep copy of m.
func (m PropertyMap) Clone() PropertyMap {
	out := make(PropertyMap, len(m))
	for c, s := range m {
		out[c] = cloneSet(s)
	}
	return out
}

// Len returns the number of (category, grammeme) pairs.
func (m PropertyMap) Len() int {
	n := 0
	for _, s := range m {
		n += s.Len()
	}
	return n
}

// Categories returns the categories of m, sorted.
func (m PropertyMap) Categories() []string {
	out := make([]string, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// Equal reports whether m and o hold the same pairs. Categories with no
// grammemes are ignored.
func (m PropertyMap) Equal(o PropertyMap) bool {
	return IsSubproperties(m, o) && IsSubproperties(o, m)
}

// String renders m as "number:plural tense:past".
func (m PropertyMap) String() string {
	var parts []string
	for _, c := range m.Categories() {
		for _, g := range m[c].Elements() {
			parts = append(parts, c+":"+g)
		}
	}
	return strings.Join(parts, " ")
}

// compact drops categories with no grammemes.
func (m PropertyMap) compact() PropertyMap {
	for c, s := range m {
		if s.Empty() {
			delete(m, c)
		}
	}
	return m
}

// IsSubproperties reports whether every category of a is in b with a
// superset of a's grammemes. An empty a is a subproperties of anything.
func IsSubproperties(a, b PropertyMap) bool {
	for c, s := range a {
		if s.Empty() {
			continue
		}
		bs, ok := b[c]
		if !ok || !s.IsSubset(bs) {
			return false
		}
	}
	return true
}

// Properties is the store of grammatical categories and their grammemes.
// Every mutation is carried into the properties of the language's
// exponents.
type Properties struct {
	// categories records categories in insertion order.
	categories []string

	// grammemes maps category → grammemes in insertion order.
	grammemes map[string][]string

	// descriptions maps category → grammeme → free text.
	descriptions map[string]map[string]string

	// exponents and sentences receive cascaded renames and removals.
	// Either may be nil.
	exponents *Exponents
	sentences *Sentences

	logger *zap.Logger
}

// NewProperties returns an empty property store.
func NewProperties(logger *zap.Logger) *Properties {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Properties{
		grammemes:    make(map[string][]string),
		descriptions: make(map[string]map[string]string),
		logger:       logger,
	}
}

// Add declares grammeme under category, creating the category if needed.
func (p *Properties) Add(category, grammeme string) error {
	if category == "" || grammeme == "" {
		return invalidf("properties add: empty category or grammeme")
	}
	if p.Has(category, grammeme) {
		return conflictf("properties add: %s:%s exists", category, grammeme)
	}
	if !p.HasCategory(category) {
		p.categories = append(p.categories, category)
	}
	p.grammemes[category] = append(p.grammemes[category], grammeme)
	return nil
}

// AddMany adds every pair of m, categories in sorted order and grammemes
// in the given order. Pairs that fail are skipped and their errors
// combined.
func (p *Properties) AddMany(m map[string][]string) error {
	categories := make([]string, 0, len(m))
	for c := range m {
		categories = append(categories, c)
	}
	slices.Sort(categories)
	var err error
	for _, c := range categories {
		for _, g := range m[c] {
			err = multierr.Append(err, p.Add(c, g))
		}
	}
	return err
}

// Describe attaches a description to a declared grammeme.
func (p *Properties) Describe(category, grammeme, description string) error {
	if !p.Has(category, grammeme) {
		return unknownf("properties describe: unknown property %s:%s", category, grammeme)
	}
	if p.descriptions[category] == nil {
		p.descriptions[category] = make(map[string]string)
	}
	p.descriptions[category][grammeme] = description
	return nil
}

// Description returns the description of a grammeme, if any.
func (p *Properties) Description(category, grammeme string) string {
	return p.descriptions[category][grammeme]
}

// Remove deletes grammeme from category, or the whole category when
// grammeme is empty. Exponents lose the removed pairs.
func (p *Properties) Remove(category, grammeme string) error {
	if !p.HasCategory(category) {
		return unknownf("properties remove: unknown category %q", category)
	}
	if grammeme == "" {
		p.categories = slices.DeleteFunc(p.categories, func(c string) bool { return c == category })
		delete(p.grammemes, category)
		delete(p.descriptions, category)
		p.cascade(func(m PropertyMap) {
			delete(m, category)
		})
		return nil
	}
	if !p.Has(category, grammeme) {
		return unknownf("properties remove: unknown grammeme %s:%s", category, grammeme)
	}
	p.grammemes[category] = slices.DeleteFunc(p.grammemes[category], func(g string) bool { return g == grammeme })
	delete(p.descriptions[category], grammeme)
	p.cascade(func(m PropertyMap) {
		if s, ok := m[category]; ok {
			delete(s, grammeme)
		}
	})
	return nil
}

// RenameCategory renames a category here and in every exponent.
func (p *Properties) RenameCategory(category, newCategory string) error {
	if newCategory == "" {
		return invalidf("properties rename: empty category")
	}
	if !p.HasCategory(category) {
		return unknownf("properties rename: unknown category %q", category)
	}
	if category == newCategory {
		return nil
	}
	if p.HasCategory(newCategory) {
		return conflictf("properties rename %q: category %q exists", category, newCategory)
	}
	p.categories[slices.Index(p.categories, category)] = newCategory
	p.grammemes[newCategory] = p.grammemes[category]
	delete(p.grammemes, category)
	if d, ok := p.descriptions[category]; ok {
		p.descriptions[newCategory] = d
		delete(p.descriptions, category)
	}
	p.cascade(func(m PropertyMap) {
		if s, ok := m[category]; ok {
			delete(m, category)
			m[newCategory] = s
		}
	})
	return nil
}

// RenameGrammeme renames a grammeme within its category here and in every
// exponent.
func (p *Properties) RenameGrammeme(category, grammeme, newGrammeme string) error {
	if newGrammeme == "" {
		return invalidf("properties rename: empty grammeme")
	}
	if !p.Has(category, grammeme) {
		return unknownf("properties rename: unknown grammeme %s:%s", category, grammeme)
	}
	if grammeme == newGrammeme {
		return nil
	}
	if p.Has(category, newGrammeme) {
		return conflictf("properties rename %s:%s: %q exists", category, grammeme, newGrammeme)
	}
	gs := p.grammemes[category]
	gs[slices.Index(gs, grammeme)] = newGrammeme
	if d, ok := p.descriptions[category][grammeme]; ok {
		delete(p.descriptions[category], grammeme)
		p.descriptions[category][newGrammeme] = d
	}
	p.cascade(func(m PropertyMap) {
		if s, ok := m[category]; ok && s.Contains(grammeme) {
			delete(s, grammeme)
			s[newGrammeme] = struct{}{}
		}
	})
	return nil
}

// Recategorize moves grammeme from category to newCategory, creating
// newCategory when needed. Exponents follow.
func (p *Properties) Recategorize(category, grammeme, newCategory string) error {
	if newCategory == "" {
		return invalidf("properties recategorize: empty category")
	}
	if !p.Has(category, grammeme) {
		return unknownf("properties recategorize: unknown grammeme %s:%s", category, grammeme)
	}
	if category == newCategory {
		return nil
	}
	if p.Has(newCategory, grammeme) {
		return conflictf("properties recategorize: %s:%s exists", newCategory, grammeme)
	}
	description, described := p.descriptions[category][grammeme]
	p.grammemes[category] = slices.DeleteFunc(p.grammemes[category], func(g string) bool { return g == grammeme })
	delete(p.descriptions[category], grammeme)
	if err := p.Add(newCategory, grammeme); err != nil {
		return err
	}
	if described {
		if p.descriptions[newCategory] == nil {
			p.descriptions[newCategory] = make(map[string]string)
		}
		p.descriptions[newCategory][grammeme] = description
	}
	p.cascade(func(m PropertyMap) {
		if s, ok := m[category]; ok && s.Contains(grammeme) {
			delete(s, grammeme)
			m.Add(newCategory, grammeme)
		}
	})
	return nil
}

// cascade applies edit to the properties of every exponent and sentence
// unit, and drops categories left empty.
func (p *Properties) cascade(edit func(PropertyMap)) {
	rewrite := func(m PropertyMap) PropertyMap {
		edit(m)
		return m.compact()
	}
	if p.exponents != nil {
		p.exponents.rewriteProperties(rewrite)
	}
	if p.sentences != nil {
		p.sentences.rewriteProperties(rewrite)
	}
}

// HasCategory reports whether category is declared.
func (p *Properties) HasCategory(category string) bool {
	_, ok := p.grammemes[category]
	return ok
}

// Has reports whether grammeme is declared under category.
func (p *Properties) Has(category, grammeme string) bool {
	return slices.Contains(p.grammemes[category], grammeme)
}

// Categories returns the categories in insertion order.
func (p *Properties) Categories() []string {
	return slices.Clone(p.categories)
}

// Grammemes returns the grammemes of category in insertion order.
func (p *Properties) Grammemes(category string) []string {
	return slices.Clone(p.grammemes[category])
}

// Find returns the categories holding grammeme, in insertion order.
func (p *Properties) Find(grammeme string) []string {
	var out []string
	for _, c := range p.categories {
		if slices.Contains(p.grammemes[c], grammeme) {
			out = append(out, c)
		}
	}
	return out
}

// Map returns every declared pair as a PropertyMap.
func (p *Properties) Map() PropertyMap {
	out := make(PropertyMap, len(p.categories))
	for _, c := range p.categories {
		out.Add(c, p.grammemes[c]...)
	}
	return out
}

// Filter returns a copy of m keeping only declared pairs. Categories left
// with no grammemes are dropped.
func (p *Properties) Filter(m PropertyMap) PropertyMap {
	out := make(PropertyMap)
	for c, s := range m {
		for g := range s {
			if p.Has(c, g) {
				out.Add(c, g)
			}
		}
	}
	return out
}

// IsSubproperties reports whether a is a subproperties of b.
func (p *Properties) IsSubproperties(a, b PropertyMap) bool {
	return IsSubproperties(a, b)
}

// Parse reads properties from text such as "past tense, plural".
// A category binds the grammeme next to it on either side. A grammeme
// with no category is resolved to the first category holding it.
// Unrecognized tokens are skipped.
func (p *Properties) Parse(text string) PropertyMap {
	m, _ := p.parse(classifyAll(Tokens(text), p, nil, nil))
	return m
}

// parse builds a PropertyMap from classified terms and returns the text
// of every term it could not use.
func (p *Properties) parse(terms []Term) (PropertyMap, []string) {
	out := make(PropertyMap)
	var (
		dropped  []string
		category string
		stranded string
	)
	resolve := func() {
		if stranded == "" {
			return
		}
		out.Add(p.Find(stranded)[0], stranded)
		stranded = ""
	}
	dangling := func() {
		if category == "" {
			return
		}
		p.logger.Warn("category without grammeme", zap.String("category", category))
		dropped = append(dropped, category)
		category = ""
	}

	for _, t := range terms {
		switch t.Kind {
		case TermCategory:
			if stranded != "" && p.Has(t.Name, stranded) {
				out.Add(t.Name, stranded)
				stranded = ""
				continue
			}
			resolve()
			dangling()
			category = t.Name
		case TermGrammeme:
			if category != "" && p.Has(category, t.Name) {
				resolve()
				out.Add(category, t.Name)
				category = ""
				continue
			}
			dangling()
			resolve()
			stranded = t.Name
		default:
			p.logger.Warn("skipped unrecognized property term", zap.String("term", t.Text))
			dropped = append(dropped, t.Text)
		}
	}
	resolve()
	dangling()
	return out, dropped
}
