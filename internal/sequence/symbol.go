// Package sequence produces the randomized symbol sequences a round is
// played with. It has no dependency on the game state machine.
package sequence

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind distinguishes digit symbols from letter symbols.
type Kind int

const (
	KindInvalid Kind = iota
	KindDigit
	KindLetter
)

func (k Kind) String() string {
	switch k {
	case KindDigit:
		return "digit"
	case KindLetter:
		return "letter"
	default:
		return "invalid"
	}
}

// Symbol is a single element of a sequence, stored as its character code.
// The zero value is not a valid symbol.
type Symbol byte

// Digit returns the symbol for the digit n (0-9).
func Digit(n int) Symbol {
	return Symbol('0' + byte(n))
}

// Letter returns the symbol for an uppercase ASCII letter.
func Letter(c byte) Symbol {
	return Symbol(c)
}

// ParseSymbol maps a typed rune to a symbol. Lowercase letters are
// accepted and upper-cased; anything other than 0-9 and A-Z is rejected.
func ParseSymbol(r rune) (Symbol, bool) {
	switch {
	case r >= '0' && r <= '9':
		return Symbol(r), true
	case r >= 'A' && r <= 'Z':
		return Symbol(r), true
	case r >= 'a' && r <= 'z':
		return Symbol(r - 'a' + 'A'), true
	}
	return 0, false
}

// Kind reports whether s is a digit or a letter.
func (s Symbol) Kind() Kind {
	switch {
	case s >= '0' && s <= '9':
		return KindDigit
	case s >= 'A' && s <= 'Z':
		return KindLetter
	default:
		return KindInvalid
	}
}

// IsValid reports whether s is a digit or an uppercase letter.
func (s Symbol) IsValid() bool {
	return s.Kind() != KindInvalid
}

func (s Symbol) Rune() rune {
	return rune(s)
}

func (s Symbol) String() string {
	if !s.IsValid() {
		return "?"
	}
	return string(rune(s))
}

// MarshalJSON encodes the symbol as a one-character string.
func (s Symbol) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Symbol) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	r := []rune(str)
	if len(r) != 1 {
		return fmt.Errorf("symbol must be one character, got %q", str)
	}
	v, ok := ParseSymbol(r[0])
	if !ok {
		return fmt.Errorf("invalid symbol %q", str)
	}
	*s = v
	return nil
}

// Reversed returns a reversed copy of seq.
func Reversed(seq []Symbol) []Symbol {
	out := make([]Symbol, len(seq))
	for i, s := range seq {
		out[len(seq)-1-i] = s
	}
	return out
}

// Join renders seq with sep between each symbol.
func Join(seq []Symbol, sep string) string {
	parts := make([]string, len(seq))
	for i, s := range seq {
		parts[i] = s.String()
	}
	return strings.Join(parts, sep)
}
