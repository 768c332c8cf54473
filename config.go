package conlang

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config declares a language: generation settings, diagnostics and the
// definition of its sounds and grammar. Sections are listed so that
// declaration order is kept.
type Config struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`

	// Seed fixes the random choices of generation and spelling.
	Seed uint64 `yaml:"seed"`

	// Spacing separates free exponents and words.
	Spacing string `yaml:"spacing"`

	// RandomSpelling picks a random letter for phonemes spelled more than
	// one way.
	RandomSpelling bool `yaml:"random_spelling"`

	// DefaultPhonetics preloads the built-in IPA chart before Phonetics.
	DefaultPhonetics bool `yaml:"default_phonetics"`

	Syllables SyllableRange `yaml:"syllables"`
	Logging   LoggingConfig `yaml:"logging"`

	Phonetics   []SymbolConfig   `yaml:"phonetics"`
	Inventory   []PhonemeConfig  `yaml:"inventory"`
	Templates   []SlotList       `yaml:"templates"`
	Rules       []RuleConfig     `yaml:"rules"`
	Properties  []CategoryConfig `yaml:"properties"`
	WordClasses []string         `yaml:"word_classes"`
	Exponents   []ExponentConfig `yaml:"exponents"`
	Orders      []OrderConfig    `yaml:"orders"`
	Sentences   []SentenceConfig `yaml:"sentences"`
}

// SyllableRange bounds the length of generated words.
type SyllableRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// SymbolConfig declares a phonetic symbol.
type SymbolConfig struct {
	Symbol   string   `yaml:"symbol"`
	Features []string `yaml:"features"`
}

// PhonemeConfig declares an inventory phoneme.
type PhonemeConfig struct {
	Symbol  string   `yaml:"symbol"`
	Letters []string `yaml:"letters"`
	Weight  float64  `yaml:"weight"`
}

// RuleConfig declares a sound change rule.
type RuleConfig struct {
	ID          string   `yaml:"id"`
	Source      []string `yaml:"source"`
	Target      []string `yaml:"target"`
	Environment SlotList `yaml:"environment"`
}

// CategoryConfig declares a category with its grammemes and their
// optional descriptions.
type CategoryConfig struct {
	Category     string            `yaml:"category"`
	Grammemes    []string          `yaml:"grammemes"`
	Descriptions map[string]string `yaml:"descriptions"`
}

// ExponentConfig declares an exponent. Bound defaults to true.
type ExponentConfig struct {
	ID         string   `yaml:"id"`
	Pre        []string `yaml:"pre"`
	Mid        []string `yaml:"mid"`
	Post       []string `yaml:"post"`
	Bound      *bool    `yaml:"bound"`
	Properties string   `yaml:"properties"`
	POS        []string `yaml:"pos"`
}

// OrderConfig declares the inner and outer neighbours of an exponent.
type OrderConfig struct {
	Exponent string   `yaml:"exponent"`
	Inner    []string `yaml:"inner"`
	Outer    []string `yaml:"outer"`
}

// SentenceConfig declares a named sentence, one entry per unit.
type SentenceConfig struct {
	Name  string               `yaml:"name"`
	Units []SentenceUnitConfig `yaml:"units"`
}

// SentenceUnitConfig declares the word classes and properties of one
// sentence unit.
type SentenceUnitConfig struct {
	WordClasses []string `yaml:"word_classes"`
	Properties  string   `yaml:"properties"`
}

// SlotList is a template or environment written either compactly, as
// "CVC", or as one slot text per entry, as ["C", "velar stop", "V"].
type SlotList struct {
	Compact string
	Slots   []string
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (s *SlotList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		s.Compact = node.Value
		return nil
	case yaml.SequenceNode:
		return node.Decode(&s.Slots)
	}
	return invalidf("line %d: slots must be a string or a list", node.Line)
}

// MarshalYAML writes the form the list was read from.
func (s SlotList) MarshalYAML() (interface{}, error) {
	if s.Slots != nil {
		return s.Slots, nil
	}
	return s.Compact, nil
}

// DefaultConfig returns the settings used when a config leaves them out.
func DefaultConfig() *Config {
	return &Config{
		Spacing:   " ",
		Syllables: SyllableRange{Min: 1, Max: 3},
		Logging:   LoggingConfig{Level: "warn", Format: "json"},
	}
}

// ParseConfig reads a YAML config over the defaults.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the YAML config at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return ParseConfig(data)
}

// Validate checks the settings that do not depend on the definition.
func (c *Config) Validate() error {
	if c.Syllables.Min < 1 || c.Syllables.Max < c.Syllables.Min {
		return invalidf("config: syllable range [%d, %d]", c.Syllables.Min, c.Syllables.Max)
	}
	if c.Spacing == "" {
		return invalidf("config: empty spacing")
	}
	return nil
}
