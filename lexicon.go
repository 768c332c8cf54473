package conlang

import (
	"strings"
)

// Entry is a dictionary entry of a language.
type Entry struct {
	Spelling   []string
	Sound      []string
	Change     []string
	Definition string
	// Midpoint is where infixes go in Sound, or nil.
	Midpoint *int
	POS      []string
}

// Lexicon looks up dictionary entries by definition. Languages do not own
// a dictionary; Translate reads whichever one the caller passes.
type Lexicon interface {
	// Search returns the entries matching definition, best first.
	Search(definition string) []Entry
}

// StaticLexicon is a Lexicon over a fixed list of entries. Search matches
// definitions case-insensitively, exact matches before partial ones.
type StaticLexicon []Entry

// Search implements Lexicon.
func (sl StaticLexicon) Search(definition string) []Entry {
	want := foldTerm(definition)
	if want == "" {
		return nil
	}
	var exact, partial []Entry
	for _, e := range sl {
		got := foldTerm(e.Definition)
		switch {
		case got == want:
			exact = append(exact, e)
		case strings.Contains(got, want):
			partial = append(partial, e)
		}
	}
	return append(exact, partial...)
}
