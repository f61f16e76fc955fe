package vin

import (
	"errors"
	"testing"
)

func TestValidate_Valid(t *testing.T) {
	for _, v := range []string{"1M8GDM9AXKP042788", "2G1WT57K291223396", "11111111111111111"} {
		if err := Validate(v); err != nil {
			t.Fatalf("Validate(%q) returned error: %v", v, err)
		}
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		vin  string
		want error
	}{
		{"short", "1M8GDM9AX", ErrLength},
		{"long", "1M8GDM9AXKP0427881", ErrLength},
		{"letter O", "1M8GDM9AXKP0O2788", ErrCharacter},
		{"lower case", "1m8gdm9axkp042788", ErrCharacter},
		{"bad check digit", "1M8GDM9A1KP042788", ErrCheckDigit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.vin); !errors.Is(err, tt.want) {
				t.Fatalf("Validate(%q) error = %v, want %v", tt.vin, err, tt.want)
			}
		})
	}
}

func TestCheckDigit(t *testing.T) {
	got, err := CheckDigit("1M8GDM9AXKP042788")
	if err != nil {
		t.Fatalf("CheckDigit returned error: %v", err)
	}
	if got != 'X' {
		t.Fatalf("CheckDigit = %q, want 'X'", got)
	}
}

func TestTransliterate(t *testing.T) {
	tests := map[byte]int{'A': 1, 'H': 8, 'J': 1, 'N': 5, 'P': 7, 'R': 9, 'S': 2, 'Z': 9, '7': 7}
	for c, want := range tests {
		got, ok := transliterate(c)
		if !ok || got != want {
			t.Errorf("transliterate(%q) = %d, %v, want %d", c, got, ok, want)
		}
	}
	for _, c := range []byte{'I', 'O', 'Q', '-', 'a'} {
		if _, ok := transliterate(c); ok {
			t.Errorf("transliterate(%q) ok = true, want false", c)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  1m8gdm9axkp042788 \n"); got != "1M8GDM9AXKP042788" {
		t.Fatalf("Normalize = %q", got)
	}
}
