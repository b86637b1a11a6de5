package domain

// RawRule is a rule as written in a machine file, before interning.
type RawRule struct {
	From  string `json:"from" yaml:"from" mapstructure:"from"`
	Read  string `json:"read" yaml:"read" mapstructure:"read"`
	To    string `json:"to" yaml:"to" mapstructure:"to"`
	Write string `json:"write" yaml:"write" mapstructure:"write"`
	Move  string `json:"move" yaml:"move" mapstructure:"move"`

	// Line is the source line, 0 when the rule did not come from a file.
	Line int `json:"-" yaml:"-" mapstructure:"-"`
}

// Definition is an uncompiled machine: the alphabet (first symbol is the
// blank) and the rules (first rule's source state is the start state).
type Definition struct {
	Name     string    `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Alphabet []string  `json:"alphabet" yaml:"alphabet" mapstructure:"alphabet"`
	Rules    []RawRule `json:"rules" yaml:"rules" mapstructure:"rules"`
}
