package format

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

var identifier = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ParseText reads a machine in the text format.
func ParseText(r io.Reader) (domain.Definition, error) {
	var def domain.Definition
	haveAlphabet := false

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)

		if !haveAlphabet {
			for _, f := range fields {
				if !identifier.MatchString(f) {
					return domain.Definition{}, &domain.ParseError{Line: line, Reason: fmt.Sprintf("invalid symbol %q", f)}
				}
			}
			def.Alphabet = fields
			haveAlphabet = true
			continue
		}

		rule, err := parseRule(line, fields)
		if err != nil {
			return domain.Definition{}, err
		}
		def.Rules = append(def.Rules, rule)
	}
	if err := sc.Err(); err != nil {
		return domain.Definition{}, fmt.Errorf("failed to read machine: %w", err)
	}
	if !haveAlphabet {
		return domain.Definition{}, domain.ErrEmptyAlphabet
	}
	if len(def.Rules) == 0 {
		return domain.Definition{}, domain.ErrNoRules
	}
	return def, nil
}

func parseRule(line int, fields []string) (domain.RawRule, error) {
	if len(fields) != 5 {
		return domain.RawRule{}, &domain.ParseError{Line: line, Reason: fmt.Sprintf("expected 5 fields, got %d", len(fields))}
	}
	for i, f := range fields[:4] {
		if i == 1 && f == domain.Wildcard {
			continue
		}
		if !identifier.MatchString(f) {
			return domain.RawRule{}, &domain.ParseError{Line: line, Reason: fmt.Sprintf("invalid name %q", f)}
		}
	}
	if _, _, err := domain.ParseDirection(fields[4]); err != nil {
		return domain.RawRule{}, &domain.ParseError{Line: line, Reason: "bad direction", Err: err}
	}
	return domain.RawRule{
		From:  fields[0],
		Read:  fields[1],
		To:    fields[2],
		Write: fields[3],
		Move:  fields[4],
		Line:  line,
	}, nil
}

// ParseInput splits a tape line into symbols.
// When alphabet is non-nil every symbol must belong to it.
func ParseInput(s string, alphabet []string) ([]string, error) {
	fields := strings.Fields(s)
	var known map[string]bool
	if alphabet != nil {
		known = make(map[string]bool, len(alphabet))
		for _, a := range alphabet {
			known[a] = true
		}
	}
	for _, f := range fields {
		if !identifier.MatchString(f) {
			return nil, fmt.Errorf("invalid input symbol %q", f)
		}
		if known != nil && !known[f] {
			return nil, &domain.UnknownSymbolError{Symbol: f, Rule: -1}
		}
	}
	return fields, nil
}

// WriteText writes def in the text format, columns aligned.
func WriteText(w io.Writer, def domain.Definition) error {
	if def.Name != "" {
		if _, err := fmt.Fprintf(w, "# %s\n", def.Name); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, strings.Join(def.Alphabet, " ")); err != nil {
		return err
	}

	var widths [4]int
	for _, r := range def.Rules {
		for i, f := range []string{r.From, r.Read, r.To, r.Write} {
			widths[i] = max(widths[i], len(f))
		}
	}
	for _, r := range def.Rules {
		_, err := fmt.Fprintf(w, "%-*s %-*s %-*s %-*s %s\n",
			widths[0], r.From, widths[1], r.Read, widths[2], r.To, widths[3], r.Write, r.Move)
		if err != nil {
			return err
		}
	}
	return nil
}
