package format

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// Kind identifies a definition format.
type Kind string

const (
	KindText Kind = "text"
	KindYAML Kind = "yaml"
)

// KindOf guesses the format from a file name. Anything that is not .yaml or
// .yml is read as text.
func KindOf(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return KindYAML
	}
	return KindText
}

// Parse reads a definition of the given kind.
func Parse(r io.Reader, kind Kind) (domain.Definition, error) {
	switch kind {
	case KindYAML:
		return ParseYAML(r)
	case KindText, "":
		return ParseText(r)
	}
	return domain.Definition{}, fmt.Errorf("unknown format %q", kind)
}

// ParseString reads a definition from memory, sniffing the format: a document
// whose first meaningful line starts with "name:", "alphabet:" or "rules:" is YAML.
func ParseString(s string) (domain.Definition, error) {
	return Parse(strings.NewReader(s), sniff(s))
}

func sniff(s string) Kind {
	for _, line := range strings.Split(s, "\n") {
		t := strings.TrimSpace(line)
		if t == "" || strings.HasPrefix(t, "#") || t == "---" {
			continue
		}
		for _, key := range []string{"name:", "alphabet:", "rules:"} {
			if strings.HasPrefix(t, key) {
				return KindYAML
			}
		}
		return KindText
	}
	return KindText
}

// LoadFile reads a definition from disk. The machine is named after the file
// unless the definition names itself.
func LoadFile(path string) (domain.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Definition{}, fmt.Errorf("failed to read machine file: %w", err)
	}
	def, err := Parse(bytes.NewReader(data), KindOf(path))
	if err != nil {
		return domain.Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	if def.Name == "" {
		base := filepath.Base(path)
		def.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return def, nil
}

// LoadInput reads a tape file: a single line of symbols. Empty files are an
// empty tape.
func LoadInput(path string, alphabet []string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	var lines []string
	for _, l := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) > 1 {
		return nil, fmt.Errorf("%s: input must be a single line, got %d", path, len(lines))
	}
	if len(lines) == 0 {
		return []string{}, nil
	}
	return ParseInput(lines[0], alphabet)
}
