package conlang

import (
	_ "embed"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed ipa.yaml
var ipaChart []byte

// AddDefaults adds the built-in IPA chart of vowels and pulmonic
// consonants, in chart order.
func (p *Phonetics) AddDefaults() error {
	var chart []SymbolConfig
	if err := yaml.Unmarshal(ipaChart, &chart); err != nil {
		return errors.Wrap(err, "parse ipa chart")
	}
	for _, s := range chart {
		if err := p.Add(s.Symbol, s.Features...); err != nil {
			return err
		}
	}
	return nil
}

// DefaultPhonetics returns a table holding the built-in IPA chart.
func DefaultPhonetics() (*Phonetics, error) {
	p := NewPhonetics()
	if err := p.AddDefaults(); err != nil {
		return nil, err
	}
	return p, nil
}
