package conlang

import (
	"slices"

	"bitbucket.org/creachadair/stringset"
	"go.uber.org/zap"
)

// UnitRequest asks for a base to be built up with exponents.
type UnitRequest struct {
	// Properties and PropertiesText are merged into the requested
	// properties; undeclared pairs are dropped.
	Properties     PropertyMap
	PropertiesText string
	// WordClasses and WordClassesText are merged into the requested word
	// classes; undeclared ones are dropped.
	WordClasses     []string
	WordClassesText string
	// Spacing separates free exponents from what they attach to.
	// Defaults to a single space.
	Spacing string
	// Midpoint is where infixes go in the base. Defaults to the middle.
	Midpoint *int
	// AllRequested fails the request when any requested term was dropped.
	AllRequested bool
	// AllOrNone fails the request when some requested grammeme is
	// provided by no exponent.
	AllOrNone bool
	// ExactPOS makes exponents with no word classes match only a request
	// with no word classes.
	ExactPOS bool
}

// request is a UnitRequest after parsing and filtering.
type request struct {
	properties PropertyMap
	pos        stringset.Set
}

// resolve parses and filters the terms of req.
func (g *Grammar) resolve(req UnitRequest) (request, error) {
	var dropped []string

	props := g.Properties.Filter(req.Properties)
	if req.Properties.Len() != props.Len() {
		dropped = append(dropped, req.Properties.String())
	}
	if req.PropertiesText != "" {
		parsed, d := g.Properties.parse(classifyAll(Tokens(req.PropertiesText), g.Properties, nil, nil))
		dropped = append(dropped, d...)
		for c, s := range parsed {
			props.Add(c, s.Elements()...)
		}
	}

	pos := stringset.New(g.WordClasses.Filter(req.WordClasses)...)
	for _, wc := range req.WordClasses {
		if !g.WordClasses.Has(wc) {
			dropped = append(dropped, wc)
		}
	}
	if req.WordClassesText != "" {
		parsed, d := g.WordClasses.parse(classifyAll(Tokens(req.WordClassesText), nil, g.WordClasses, nil))
		dropped = append(dropped, d...)
		for _, wc := range parsed {
			pos[wc] = struct{}{}
		}
	}

	if req.AllRequested && len(dropped) > 0 {
		return request{}, unknownf("build unit: unrecognized terms %q", dropped)
	}
	return request{properties: props, pos: pos}, nil
}

// SelectExponents finds the exponents that provide req, outermost first.
// An exponent is a candidate when its word classes agree with the request
// and its properties are a subproperties of the request. Candidates whose
// properties are strictly contained in another candidate's are dropped.
func (g *Grammar) SelectExponents(req UnitRequest) ([]string, error) {
	r, err := g.resolve(req)
	if err != nil {
		return nil, err
	}

	coverage := make(map[[2]string]int)
	for c, s := range r.properties {
		for gr := range s {
			coverage[[2]string{c, gr}] = 0
		}
	}
	var candidates []*Exponent
	for _, id := range g.Exponents.order {
		e := g.Exponents.exponents[id]
		if (!e.POS.Empty() || req.ExactPOS) && !e.POS.Equals(r.pos) {
			continue
		}
		if e.Properties.Len() == 0 || !IsSubproperties(e.Properties, r.properties) {
			continue
		}
		candidates = append(candidates, e)
		for c, s := range e.Properties {
			for gr := range s {
				coverage[[2]string{c, gr}]++
			}
		}
	}

	if req.AllOrNone {
		var missing []string
		for pair, n := range coverage {
			if n == 0 {
				missing = append(missing, pair[0]+":"+pair[1])
			}
		}
		if len(missing) > 0 {
			slices.Sort(missing)
			return nil, unsatisfiablef("build unit: no exponent for %v", missing)
		}
	}

	var reduced []string
	for _, a := range candidates {
		dominated := false
		for _, b := range candidates {
			if a != b && IsSubproperties(a.Properties, b.Properties) && !a.Properties.Equal(b.Properties) {
				dominated = true
				break
			}
		}
		if !dominated {
			reduced = append(reduced, a.ID)
		}
	}
	return g.Morphosyntax.Arrange(reduced), nil
}

// BuildUnit selects, orders and attaches the exponents requested by req
// around base.
func (g *Grammar) BuildUnit(base []string, req UnitRequest) ([]string, error) {
	ids, err := g.SelectExponents(req)
	if err != nil {
		g.logger.Debug("build unit failed", zap.Strings("base", base), zap.Error(err))
		return nil, err
	}
	spacing := req.Spacing
	if spacing == "" {
		spacing = " "
	}
	return g.Attach(base, ids, spacing, unitMidpoint(base, req.Midpoint)), nil
}

// unitMidpoint returns midpoint, or the middle of base when it is nil.
func unitMidpoint(base []string, midpoint *int) int {
	if midpoint != nil {
		return *midpoint
	}
	return len(base) / 2
}

// Attach places the material of ids, ordered outermost first, around base.
// The result reads prepositions, prefixes, the base up to midpoint,
// infixes, the rest of the base, suffixes and postpositions. Free material
// is separated by spacing; midpoint is clamped to the base. Unknown ids
// are skipped.
func (g *Grammar) Attach(base []string, ids []string, spacing string, midpoint int) []string {
	midpoint = max(0, min(midpoint, len(base)))
	var preposition, prefix, infix, postfix, postposition []string

	for _, id := range ids {
		e, ok := g.Exponents.exponents[id]
		if !ok {
			g.logger.Warn("attach skipped unknown exponent", zap.String("exponent", id))
			continue
		}
		if len(e.Pre) > 0 {
			if e.Bound {
				prefix = append(prefix, e.Pre...)
			} else {
				preposition = append(preposition, e.Pre...)
				preposition = append(preposition, spacing)
			}
		}
		infix = append(infix, e.Mid...)
	}
	for _, id := range slices.Backward(ids) {
		e, ok := g.Exponents.exponents[id]
		if !ok || len(e.Post) == 0 {
			continue
		}
		if e.Bound {
			postfix = append(postfix, e.Post...)
		} else {
			postposition = append(postposition, spacing)
			postposition = append(postposition, e.Post...)
		}
	}

	out := slices.Concat(preposition, prefix, base[:midpoint], infix, base[midpoint:], postfix, postposition)
	return stripEmpty(out)
}
