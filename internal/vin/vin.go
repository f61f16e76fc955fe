// Package vin normalizes and validates 17-character Vehicle Identification
// Numbers using the North American check digit in position 9.
package vin

import (
	"errors"
	"fmt"
	"strings"
)

// Length is the number of characters in a modern VIN.
const Length = 17

var (
	ErrLength     = errors.New("vin must be 17 characters")
	ErrCharacter  = errors.New("vin contains an invalid character")
	ErrCheckDigit = errors.New("vin check digit does not match")
)

var weights = [Length]int{8, 7, 6, 5, 4, 3, 2, 10, 0, 9, 8, 7, 6, 5, 4, 3, 2}

// Normalize trims surrounding space and upper-cases s.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// CheckDigit computes the expected character for position 9.
func CheckDigit(v string) (byte, error) {
	if len(v) != Length {
		return 0, fmt.Errorf("%w: got %d", ErrLength, len(v))
	}
	sum := 0
	for i := 0; i < Length; i++ {
		value, ok := transliterate(v[i])
		if !ok {
			return 0, fmt.Errorf("%w: %q at position %d", ErrCharacter, v[i], i+1)
		}
		sum += value * weights[i]
	}
	rem := sum % 11
	if rem == 10 {
		return 'X', nil
	}
	return byte('0' + rem), nil
}

// Validate reports whether v is a well-formed VIN with a matching check digit.
// v is expected to be normalized.
func Validate(v string) error {
	want, err := CheckDigit(v)
	if err != nil {
		return err
	}
	if got := v[8]; got != want {
		return fmt.Errorf("%w: position 9 is %q, want %q", ErrCheckDigit, got, want)
	}
	return nil
}

// transliterate maps a VIN character to its numeric value. I, O and Q are
// never valid.
func transliterate(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'A' && c <= 'H':
		return int(c-'A') + 1, true
	case c >= 'J' && c <= 'N':
		return int(c-'J') + 1, true
	case c == 'P':
		return 7, true
	case c == 'R':
		return 9, true
	case c >= 'S' && c <= 'Z':
		return int(c-'S') + 2, true
	}
	return 0, false
}
