package core

// streaming.go provides readers for CSV imports.
//
// Files exported from Excel on Windows start with a UTF-8 BOM and sometimes
// contain stray Latin-1 bytes. The BOM is stripped before the CSV reader sees
// the header, and cells are sanitized after parsing so that a single bad byte
// never rejects a row.

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrFileTooLarge is returned when an import exceeds the configured size.
var ErrFileTooLarge = errors.New("file too large")

// NewBOMSkippingReader returns a reader positioned after a leading UTF-8 BOM,
// if there is one.
func NewBOMSkippingReader(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// LimitedReader fails with ErrFileTooLarge once more than Max bytes are read.
// A Max of zero or less disables the limit.
type LimitedReader struct {
	R         io.Reader
	Max       int64
	BytesRead int64
}

// Read implements io.Reader.
func (l *LimitedReader) Read(p []byte) (int, error) {
	n, err := l.R.Read(p)
	l.BytesRead += int64(n)
	if l.Max > 0 && l.BytesRead > l.Max {
		return n, ErrFileTooLarge
	}
	return n, err
}

// SanitizeRow replaces invalid UTF-8 in every cell with '?'.
func SanitizeRow(row []string) []string {
	for i, cell := range row {
		row[i] = strings.ToValidUTF8(cell, "?")
	}
	return row
}
