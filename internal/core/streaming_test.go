package core

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestBOMSkippingReader(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello,world")...),
			expected: "hello,world",
		},
		{
			name:     "file without BOM",
			input:    []byte("hello,world"),
			expected: "hello,world",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "partial BOM at start",
			input:    []byte{0xEF, 0xBB, 'a', 'b', 'c'},
			expected: string([]byte{0xEF, 0xBB, 'a', 'b', 'c'}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewBOMSkippingReader(bytes.NewReader(tt.input))
			result, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
		})
	}
}

func TestLimitedReader(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		max     int64
		wantErr bool
	}{
		{name: "under limit", input: "abc", max: 10},
		{name: "at limit", input: "abcdefghij", max: 10},
		{name: "over limit", input: "abcdefghijk", max: 10, wantErr: true},
		{name: "no limit", input: strings.Repeat("x", 4096), max: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lr := &LimitedReader{R: strings.NewReader(tt.input), Max: tt.max}
			_, err := io.ReadAll(lr)
			if tt.wantErr {
				if !errors.Is(err, ErrFileTooLarge) {
					t.Errorf("error = %v, want ErrFileTooLarge", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if lr.BytesRead != int64(len(tt.input)) {
				t.Errorf("BytesRead = %d, want %d", lr.BytesRead, len(tt.input))
			}
		})
	}
}

func TestSanitizeRow(t *testing.T) {
	row := []string{"Caf\xe9", "Wings", "ok \xff\xfe"}
	got := SanitizeRow(row)

	want := []string{"Caf?", "Wings", "ok ?"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cell %d = %q, want %q", i, got[i], want[i])
		}
	}
}
