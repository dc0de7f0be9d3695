// Package core holds the domain model and the period reconciliation
// rules: the payment ledger, the status resolver, and the per-property
// aggregation that both the dashboard and the exported reports consume.
//
// This file covers money parsing and formatting. Amounts are kept as
// integer cents everywhere; fractional representations exist only at
// the encoding and display boundaries.
package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var ErrInvalidAmount = errors.New("invalid amount")

// ParseMoney converts a decimal string to cents with half-up rounding
// on the third decimal place. Both dot and comma separators are
// accepted. Zero and negative values parse fine: rejecting them is a
// form-layer policy, not a money concern.
//
//	ParseMoney("12.34")  -> 1234 cents
//	ParseMoney("12,345") -> 1234 cents (rounds down)
//	ParseMoney("-5")     -> -500 cents
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")

	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	if intPart == "0" && fracPart == "" && len(parts) == 2 {
		return Money{}, ErrInvalidAmount
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return Money{}, ErrInvalidAmount
	}

	// First two fractional digits are cents; the third rounds half-up.
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	cents := iv*100 + fracCents
	if neg {
		cents = -cents
	}
	return Money{Cents: cents}, nil
}

// String renders the amount with exactly two decimals, e.g. "1234.56".
func (m Money) String() string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// FormatBRL renders the amount the way every surface shows it:
// a literal "R$ " prefix and two decimals.
func (m Money) FormatBRL() string {
	return "R$ " + m.String()
}

// Snapshots store amounts as plain decimal numbers, matching the
// entity schema. Two decimals round-trip cents exactly.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		m.Cents = 0
		return nil
	}
	parsed, err := ParseMoney(s)
	if err != nil {
		return fmt.Errorf("decode money %q: %w", s, err)
	}
	m.Cents = parsed.Cents
	return nil
}
