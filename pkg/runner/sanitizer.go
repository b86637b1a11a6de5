package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/turing/pkg/format"
)

var (
	// DefaultMaxInputSize is 4KB (conservative default)
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "TURING_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
	ErrControlChars  = errors.New("input contains control characters")
)

// SanitizeInput checks a tape line received from an untrusted source (HTTP,
// MCP) and splits it into symbols. Oversized input, invalid UTF-8 and control
// characters other than whitespace are rejected rather than repaired, so a run
// always sees exactly what the client sent.
func SanitizeInput(input string, alphabet []string) ([]string, error) {
	limit := MaxInputSize()
	if len(input) > limit {
		return nil, fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return nil, ErrInvalidUTF8
	}
	for _, r := range input {
		if unicode.IsControl(r) && !isSafeControl(r) {
			return nil, fmt.Errorf("%w: %U", ErrControlChars, r)
		}
	}
	return format.ParseInput(input, alphabet)
}

// SanitizeSymbols applies the same checks to input that is already split.
func SanitizeSymbols(symbols []string, alphabet []string) ([]string, error) {
	line := strings.Join(symbols, " ")
	out, err := SanitizeInput(line, alphabet)
	if err != nil {
		return nil, err
	}
	if len(out) != len(symbols) {
		return nil, fmt.Errorf("input symbols must not be empty or contain whitespace")
	}
	return out, nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

// MaxInputSize returns the limit in bytes, honouring TURING_MAX_INPUT_SIZE.
func MaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
