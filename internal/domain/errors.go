package domain

import (
	"fmt"
	"strings"
)

// NotFoundError is returned when the input file does not exist.
type NotFoundError struct {
	Path  string
	cause error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("input file not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error { return e.cause }

// FormatError indicates a malformed header, a row whose arity does not
// match the header, or a cell that cannot be parsed as its column type.
// Line is the 1-based source line, 0 when unknown.
type FormatError struct {
	Line   int
	Column string
	Reason string
	cause  error
}

func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString("format error")
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " in column %q", e.Column)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

func (e *FormatError) Unwrap() error { return e.cause }

// ColumnNotFoundError is returned when a requested column is absent from a Table.
type ColumnNotFoundError struct {
	Column    string
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found (available: %s)", e.Column, strings.Join(e.Available, ", "))
}
