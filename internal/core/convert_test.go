package core

import (
	"strings"
	"testing"
)

// ----------------------------------------------------------------------------
// ToPgNumeric Tests
// ----------------------------------------------------------------------------

func TestToPgNumeric(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantValue float64
	}{
		{name: "positive integer", input: "123", wantValid: true, wantValue: 123},
		{name: "zero", input: "0", wantValid: true, wantValue: 0},
		{name: "decimal number", input: "12.99", wantValid: true, wantValue: 12.99},
		{name: "leading decimal point", input: ".99", wantValid: true, wantValue: 0.99},
		{name: "negative number", input: "-4.50", wantValid: true, wantValue: -4.5},
		{name: "dollar sign", input: "$14.99", wantValid: true, wantValue: 14.99},
		{name: "thousands separator", input: "1,234.50", wantValid: true, wantValue: 1234.5},
		{name: "surrounding whitespace", input: "  8.00  ", wantValid: true, wantValue: 8},
		{name: "empty string", input: "", wantValid: false},
		{name: "whitespace only", input: "   ", wantValid: false},
		{name: "letters", input: "abc", wantValid: false},
		{name: "mixed", input: "12abc", wantValid: false},
		{name: "two decimal points", input: "1.2.3", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToPgNumeric(tt.input)
			if got.Valid != tt.wantValid {
				t.Fatalf("ToPgNumeric(%q).Valid = %v, want %v", tt.input, got.Valid, tt.wantValid)
			}
			if !tt.wantValid {
				return
			}
			f, err := got.Float64Value()
			if err != nil {
				t.Fatalf("Float64Value() error = %v", err)
			}
			if f.Float64 != tt.wantValue {
				t.Errorf("ToPgNumeric(%q) = %v, want %v", tt.input, f.Float64, tt.wantValue)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ParsePrice / FormatPrice Tests
// ----------------------------------------------------------------------------

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr string
	}{
		{name: "plain", input: "12.99", want: 12.99},
		{name: "zero is allowed", input: "0", want: 0},
		{name: "currency", input: "$9.50", want: 9.5},
		{name: "excel formula cleaned first", input: CleanCell(`="7.25"`), want: 7.25},
		{name: "not a number", input: "abc", wantErr: `invalid price "abc"`},
		{name: "empty", input: "", wantErr: "invalid price"},
		{name: "negative", input: "-1", wantErr: "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrice(tt.input)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("ParsePrice(%q) expected error containing %q", tt.input, tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("ParsePrice(%q) error = %q, want containing %q", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePrice(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParsePrice(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{9.99, "9.99"},
		{14, "14.00"},
		{2.5, "2.50"},
		{1234.567, "1234.57"},
	}

	for _, tt := range tests {
		if got := FormatPrice(tt.in); got != tt.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ----------------------------------------------------------------------------
// CleanCell Tests
// ----------------------------------------------------------------------------

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "Wings", want: "Wings"},
		{name: "whitespace", input: "  Wings \t", want: "Wings"},
		{name: "excel formula string", input: `="00123"`, want: "00123"},
		{name: "excel formula bare", input: "=42", want: "42"},
		{name: "double quotes", input: `"Salads"`, want: "Salads"},
		{name: "single quotes", input: "'Dips'", want: "Dips"},
		{name: "mismatched quotes kept", input: `"Dips'`, want: `"Dips'`},
		{name: "inner quote kept", input: `Joe's`, want: `Joe's`},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCell(tt.input); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// MakeHeaderIndex Tests
// ----------------------------------------------------------------------------

func TestMakeHeaderIndex(t *testing.T) {
	idx := MakeHeaderIndex([]string{" Name ", "CATEGORY", "Price", "name"})

	tests := []struct {
		key  string
		want int
		ok   bool
	}{
		{"name", 0, true},
		{"category", 1, true},
		{"price", 2, true},
		{"sku", 0, false},
	}

	for _, tt := range tests {
		got, ok := idx[tt.key]
		if ok != tt.ok {
			t.Errorf("idx[%q] present = %v, want %v", tt.key, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("idx[%q] = %d, want %d (first occurrence wins)", tt.key, got, tt.want)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncate me", 8, "truncate"},
		{"crème brûlée", 5, "crème"},
		{"", 3, ""},
	}

	for _, tt := range tests {
		if got := truncateRunes(tt.in, tt.n); got != tt.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
