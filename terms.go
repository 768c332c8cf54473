package conlang

// TermKind tells what a user-typed token names.
type TermKind int

const (
	TermUnknown TermKind = iota
	TermCategory
	TermGrammeme
	TermWordClass
	TermFeature
)

// String returns the name of the kind.
func (k TermKind) String() string {
	switch k {
	case TermCategory:
		return "category"
	case TermGrammeme:
		return "grammeme"
	case TermWordClass:
		return "word class"
	case TermFeature:
		return "feature"
	}
	return "unknown"
}

// Term is a classified token.
type Term struct {
	// Text is the token as typed.
	Text string
	// Name is the declared name the token matched, empty when unknown.
	Name string
	Kind TermKind
}

// classify decides what tok names. Categories win over grammemes, which
// win over word classes and then features. Any of the stores may be nil.
// The token is tried as typed and then case-folded.
func classify(tok string, props *Properties, classes *WordClasses, phonetics *Phonetics) Term {
	for _, name := range []string{tok, foldTerm(tok)} {
		switch {
		case props != nil && props.HasCategory(name):
			return Term{Text: tok, Name: name, Kind: TermCategory}
		case props != nil && len(props.Find(name)) > 0:
			return Term{Text: tok, Name: name, Kind: TermGrammeme}
		case classes != nil && classes.Has(name):
			return Term{Text: tok, Name: name, Kind: TermWordClass}
		case phonetics != nil && phonetics.HasFeature(name):
			return Term{Text: tok, Name: name, Kind: TermFeature}
		}
	}
	return Term{Text: tok, Kind: TermUnknown}
}

// classifyAll classifies each token in order.
func classifyAll(tokens []string, props *Properties, classes *WordClasses, phonetics *Phonetics) []Term {
	out := make([]Term, len(tokens))
	for i, tok := range tokens {
		out[i] = classify(tok, props, classes, phonetics)
	}
	return out
}
