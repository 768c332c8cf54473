package conlang

import (
	"regexp"
	"strings"

	"bitbucket.org/creachadair/stringset"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// wordSplitter separates terms in property and word class text. Anything
// that is not a letter, digit or underscore is a separator.
var wordSplitter = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// Tokens splits text on non-word characters and drops empty pieces.
// "tense:past, number plural" gives ["tense" "past" "number" "plural"].
func Tokens(text string) []string {
	var out []string
	for _, tok := range wordSplitter.Split(text, -1) {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// foldTerm trims and lowercases a user-typed term.
// A Caser is stateful, so each call builds its own.
func foldTerm(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// shorthand expands the single-letter slot abbreviations used in compact
// templates and environments.
var shorthand = map[string]string{
	"C": "consonant",
	"V": "vowel",
}

// unique returns a deduplicated slice preserving order.
func unique(ss []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range ss {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// stripEmpty returns ss without empty strings.
func stripEmpty(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// cloneSet returns a non-nil copy of s.
func cloneSet(s stringset.Set) stringset.Set {
	out := make(stringset.Set, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}
