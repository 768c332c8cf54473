package conlang

import (
	"slices"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// WordClasses is the flat set of parts of speech of a language. Renames
// and removals are carried into the exponents restricted to them.
type WordClasses struct {
	// classes records word classes in insertion order.
	classes []string

	// exponents and sentences receive cascaded renames and removals.
	// Either may be nil.
	exponents *Exponents
	sentences *Sentences

	logger *zap.Logger
}

// NewWordClasses returns an empty word class set.
func NewWordClasses(logger *zap.Logger) *WordClasses {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WordClasses{logger: logger}
}

// Add declares a word class.
func (wc *WordClasses) Add(name string) error {
	if name == "" {
		return invalidf("word classes add: empty name")
	}
	if wc.Has(name) {
		return conflictf("word classes add: %q exists", name)
	}
	wc.classes = append(wc.classes, name)
	return nil
}

// AddMany declares every name, skipping the ones that fail and combining
// their errors.
func (wc *WordClasses) AddMany(names ...string) error {
	var err error
	for _, n := range names {
		err = multierr.Append(err, wc.Add(n))
	}
	return err
}

// Rename renames a word class here, in every exponent and in every
// sentence unit.
func (wc *WordClasses) Rename(name, newName string) error {
	if newName == "" {
		return invalidf("word classes rename: empty name")
	}
	if !wc.Has(name) {
		return unknownf("word classes rename: unknown word class %q", name)
	}
	if name == newName {
		return nil
	}
	if wc.Has(newName) {
		return conflictf("word classes rename %q: %q exists", name, newName)
	}
	wc.classes[slices.Index(wc.classes, name)] = newName
	if wc.exponents != nil {
		wc.exponents.renamePOS(name, newName)
	}
	if wc.sentences != nil {
		wc.sentences.renameWordClass(name, newName)
	}
	return nil
}

// Remove deletes a word class and drops it from every exponent and
// sentence unit.
func (wc *WordClasses) Remove(name string) error {
	if !wc.Has(name) {
		return unknownf("word classes remove: unknown word class %q", name)
	}
	wc.classes = slices.DeleteFunc(wc.classes, func(c string) bool { return c == name })
	if wc.exponents != nil {
		wc.exponents.renamePOS(name, "")
	}
	if wc.sentences != nil {
		wc.sentences.renameWordClass(name, "")
	}
	return nil
}

// Has reports whether name is declared.
func (wc *WordClasses) Has(name string) bool {
	return slices.Contains(wc.classes, name)
}

// All returns the word classes in insertion order.
func (wc *WordClasses) All() []string {
	return slices.Clone(wc.classes)
}

// Filter returns the declared names among names, deduplicated, in the
// given order.
func (wc *WordClasses) Filter(names []string) []string {
	var out []string
	for _, n := range unique(names) {
		if wc.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

// Parse reads word classes from text such as "noun, verb". Unrecognized
// tokens are skipped.
func (wc *WordClasses) Parse(text string) []string {
	out, _ := wc.parse(classifyAll(Tokens(text), nil, wc, nil))
	return out
}

// parse keeps the word class terms and returns the text of the others.
func (wc *WordClasses) parse(terms []Term) (classes, dropped []string) {
	for _, t := range terms {
		if t.Kind != TermWordClass {
			wc.logger.Warn("skipped unrecognized word class", zap.String("term", t.Text))
			dropped = append(dropped, t.Text)
			continue
		}
		if !slices.Contains(classes, t.Name) {
			classes = append(classes, t.Name)
		}
	}
	return classes, dropped
}
