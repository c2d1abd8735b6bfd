package core

// convert.go turns raw form and CSV text into typed menu values.
//
// User-provided prices are messy: currency symbols and thousands
// separators. Parsing goes through pgtype.Numeric so the same rules apply
// whether the value came from a form or an import file. Spreadsheet
// artifacts such as Excel formula prefixes (="12.00") only appear in import
// files and are removed by CleanCell.

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// ToPgNumeric converts a string to pgtype.Numeric.
// Handles currency symbols and thousands separators. Returns Valid=false
// for empty or malformed input.
func ToPgNumeric(s string) pgtype.Numeric {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Numeric{Valid: false}
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if !numericRegex.MatchString(s) {
		return pgtype.Numeric{Valid: false}
	}

	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		return pgtype.Numeric{Valid: false}
	}
	return n
}

// ParsePrice parses a price field. Negative prices are rejected.
func ParsePrice(s string) (float64, error) {
	n := ToPgNumeric(s)
	if !n.Valid {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	f, err := n.Float64Value()
	if err != nil || !f.Valid {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	if f.Float64 < 0 {
		return 0, fmt.Errorf("invalid price %q: must not be negative", s)
	}
	return f.Float64, nil
}

// FormatPrice renders a price with exactly two decimal digits.
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

// MakeHeaderIndex creates a HeaderIndex from a CSV header row.
// Keys are lowercased for case-insensitive matching.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		if _, dup := idx[key]; dup {
			continue
		}
		idx[key] = i
	}
	return idx
}

// CleanCell removes common CSV artifacts from an imported cell value:
// surrounding whitespace, the Excel formula prefix (="...") and
// one pair of matching surrounding quotes. Form and API input is only
// trimmed.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		s = s[1 : len(s)-1]
	}

	return strings.TrimSpace(s)
}

// truncateRunes returns the first n characters of s.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
