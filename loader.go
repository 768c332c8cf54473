package conlang

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Load reads the YAML config at path and builds the language it declares.
func Load(path string) (*Language, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg)
}

// NewFromConfig builds the language declared by cfg. Sections are loaded
// in dependency order and the first failure stops loading.
func NewFromConfig(cfg *Config) (*Language, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := NewLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}
	phonetics := NewPhonetics()
	if cfg.DefaultPhonetics {
		if err := phonetics.AddDefaults(); err != nil {
			return nil, err
		}
	}
	opts := []Option{
		WithName(cfg.Name, cfg.DisplayName),
		WithSeed(cfg.Seed),
		WithLogger(logger),
		WithSpacing(cfg.Spacing),
		WithPhonetics(phonetics),
	}
	if cfg.RandomSpelling {
		opts = append(opts, WithRandomSpelling())
	}
	l := New(opts...)
	if err := l.SetSyllableRange(cfg.Syllables.Min, cfg.Syllables.Max); err != nil {
		return nil, err
	}

	loaders := []struct {
		section string
		load    func(*Config) error
	}{
		{"phonetics", l.loadPhonetics},
		{"inventory", l.loadInventory},
		{"templates", l.loadTemplates},
		{"rules", l.loadRules},
		{"properties", l.loadProperties},
		{"word_classes", l.loadWordClasses},
		{"exponents", l.loadExponents},
		{"orders", l.loadOrders},
		{"sentences", l.loadSentences},
	}
	for _, ld := range loaders {
		if err := ld.load(cfg); err != nil {
			return nil, errors.Wrapf(err, "load %s", ld.section)
		}
	}
	l.logger.Info("language loaded",
		zap.Int("symbols", len(l.Phonetics.order)),
		zap.Int("phonemes", l.Phonology.Inventory.Len()),
		zap.Int("templates", l.Phonology.Syllables.Len()),
		zap.Int("rules", l.Phonology.Rules.Len()),
		zap.Int("exponents", l.Grammar.Exponents.Len()),
		zap.Int("sentences", l.Grammar.Sentences.Len()))
	return l, nil
}

// loadPhonetics adds the declared symbols in order.
func (l *Language) loadPhonetics(cfg *Config) error {
	for _, s := range cfg.Phonetics {
		if err := l.Phonetics.Add(s.Symbol, s.Features...); err != nil {
			return err
		}
	}
	return nil
}

// loadInventory adds the declared phonemes in order.
func (l *Language) loadInventory(cfg *Config) error {
	for _, p := range cfg.Inventory {
		if err := l.Phonology.AddSound(p.Symbol, p.Letters, p.Weight); err != nil {
			return err
		}
	}
	return nil
}

// loadTemplates adds the declared syllable templates in order.
func (l *Language) loadTemplates(cfg *Config) error {
	for _, t := range cfg.Templates {
		var err error
		if t.Slots != nil {
			_, err = l.Phonology.Syllables.AddStructure(t.Slots)
		} else {
			_, err = l.Phonology.AddSyllable(t.Compact)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// loadRules adds the declared rules in application order.
func (l *Language) loadRules(cfg *Config) error {
	for _, r := range cfg.Rules {
		_, err := l.Phonology.AddRule(RuleSpec{
			ID:               r.ID,
			Source:           r.Source,
			Target:           r.Target,
			Environment:      r.Environment.Compact,
			EnvironmentSlots: r.Environment.Slots,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// loadProperties adds the declared categories, grammemes and descriptions.
func (l *Language) loadProperties(cfg *Config) error {
	props := l.Grammar.Properties
	for _, c := range cfg.Properties {
		for _, g := range c.Grammemes {
			if err := props.Add(c.Category, g); err != nil {
				return err
			}
		}
		for g, d := range c.Descriptions {
			if err := props.Describe(c.Category, g, d); err != nil {
				return err
			}
		}
	}
	return nil
}

// loadWordClasses adds the declared word classes.
func (l *Language) loadWordClasses(cfg *Config) error {
	for _, wc := range cfg.WordClasses {
		if err := l.Grammar.WordClasses.Add(wc); err != nil {
			return err
		}
	}
	return nil
}

// loadExponents adds the declared exponents in order.
func (l *Language) loadExponents(cfg *Config) error {
	for _, e := range cfg.Exponents {
		bound := true
		if e.Bound != nil {
			bound = *e.Bound
		}
		_, err := l.Grammar.Exponents.Add(ExponentSpec{
			ID:             e.ID,
			Pre:            e.Pre,
			Mid:            e.Mid,
			Post:           e.Post,
			Bound:          bound,
			PropertiesText: e.Properties,
			POS:            e.POS,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// loadOrders records the declared exponent orderings.
func (l *Language) loadOrders(cfg *Config) error {
	for _, o := range cfg.Orders {
		if err := l.Grammar.Morphosyntax.AddExponentOrder(o.Exponent, o.Inner, o.Outer); err != nil {
			return err
		}
	}
	return nil
}

// loadSentences adds the declared sentences in order.
func (l *Language) loadSentences(cfg *Config) error {
	for _, sc := range cfg.Sentences {
		units := make([]BlueprintSpec, 0, len(sc.Units))
		for _, u := range sc.Units {
			units = append(units, BlueprintSpec{WordClasses: u.WordClasses, PropertiesText: u.Properties})
		}
		if err := l.Grammar.Sentences.Add(sc.Name, units...); err != nil {
			return err
		}
	}
	return nil
}
