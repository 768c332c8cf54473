package conlang

import (
	"go.uber.org/zap"
)

// Grammar owns the grammatical side of a language and wires its stores
// together: property and word class changes reach the exponents and
// sentences, and exponent renames and removals reach the morphosyntax.
type Grammar struct {
	Properties   *Properties
	WordClasses  *WordClasses
	Exponents    *Exponents
	Morphosyntax *Morphosyntax
	Sentences    *Sentences

	logger *zap.Logger
}

// NewGrammar returns an empty grammar. A nil logger is replaced by a no-op
// logger.
func NewGrammar(logger *zap.Logger) *Grammar {
	if logger == nil {
		logger = zap.NewNop()
	}
	props := NewProperties(logger)
	classes := NewWordClasses(logger)
	exponents := NewExponents(props, classes)
	sentences := NewSentences(props, classes)
	props.exponents, props.sentences = exponents, sentences
	classes.exponents, classes.sentences = exponents, sentences
	return &Grammar{
		Properties:   props,
		WordClasses:  classes,
		Exponents:    exponents,
		Morphosyntax: NewMorphosyntax(exponents),
		Sentences:    sentences,
		logger:       logger,
	}
}

// Terms classifies every token of text as a category, grammeme, word
// class or unknown term.
func (g *Grammar) Terms(text string) []Term {
	return classifyAll(Tokens(text), g.Properties, g.WordClasses, nil)
}
