package format

import (
	"fmt"
	"io"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

type yamlDocument struct {
	Name     string      `yaml:"name"`
	Alphabet []yaml.Node `yaml:"alphabet"`
	Rules    []yaml.Node `yaml:"rules"`
}

// ParseYAML reads a machine in the YAML format.
// Scalars are taken as written, so `alphabet: [0, 1]` declares "0" and "1".
func ParseYAML(r io.Reader) (domain.Definition, error) {
	var doc yamlDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return domain.Definition{}, domain.ErrEmptyAlphabet
		}
		return domain.Definition{}, fmt.Errorf("failed to decode yaml: %w", err)
	}

	def := domain.Definition{Name: doc.Name}
	for _, n := range doc.Alphabet {
		if n.Kind != yaml.ScalarNode || !identifier.MatchString(n.Value) {
			return domain.Definition{}, &domain.ParseError{Line: n.Line, Reason: fmt.Sprintf("invalid symbol %q", n.Value)}
		}
		def.Alphabet = append(def.Alphabet, n.Value)
	}
	if len(def.Alphabet) == 0 {
		return domain.Definition{}, domain.ErrEmptyAlphabet
	}

	for _, n := range doc.Rules {
		rule, err := decodeRule(n)
		if err != nil {
			return domain.Definition{}, err
		}
		def.Rules = append(def.Rules, rule)
	}
	if len(def.Rules) == 0 {
		return domain.Definition{}, domain.ErrNoRules
	}
	return def, nil
}

func decodeRule(n yaml.Node) (domain.RawRule, error) {
	switch n.Kind {
	case yaml.SequenceNode:
		fields := make([]string, 0, len(n.Content))
		for _, c := range n.Content {
			if c.Kind != yaml.ScalarNode {
				return domain.RawRule{}, &domain.ParseError{Line: c.Line, Reason: "rule fields must be scalars"}
			}
			fields = append(fields, c.Value)
		}
		return parseRule(n.Line, fields)

	case yaml.MappingNode:
		raw, err := scalarMap(n)
		if err != nil {
			return domain.RawRule{}, err
		}
		var rule domain.RawRule
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			ErrorUnused: true,
			Result:      &rule,
		})
		if err != nil {
			return domain.RawRule{}, err
		}
		if err := dec.Decode(raw); err != nil {
			return domain.RawRule{}, &domain.ParseError{Line: n.Line, Reason: "invalid rule", Err: err}
		}
		return parseRule(n.Line, []string{rule.From, rule.Read, rule.To, rule.Write, rule.Move})
	}
	return domain.RawRule{}, &domain.ParseError{Line: n.Line, Reason: "rule must be a list or a map"}
}

// scalarMap reads a mapping with every value kept as its source text, so 01
// and true stay symbol names.
func scalarMap(n yaml.Node) (map[string]string, error) {
	out := make(map[string]string, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		if key.Kind != yaml.ScalarNode || val.Kind != yaml.ScalarNode {
			return nil, &domain.ParseError{Line: key.Line, Reason: "rule fields must be scalars"}
		}
		out[key.Value] = val.Value
	}
	return out, nil
}

type yamlRule struct {
	From  string `yaml:"from"`
	Read  string `yaml:"read"`
	To    string `yaml:"to"`
	Write string `yaml:"write"`
	Move  string `yaml:"move"`
}

// WriteYAML writes def in the YAML format, rules as maps.
func WriteYAML(w io.Writer, def domain.Definition) error {
	out := struct {
		Name     string     `yaml:"name,omitempty"`
		Alphabet []string   `yaml:"alphabet"`
		Rules    []yamlRule `yaml:"rules"`
	}{Name: def.Name, Alphabet: def.Alphabet}
	for _, r := range def.Rules {
		out.Rules = append(out.Rules, yamlRule{From: r.From, Read: r.Read, To: r.To, Write: r.Write, Move: r.Move})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
