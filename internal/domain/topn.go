package domain

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// TopN returns a new Table holding the min(n, t.Len()) rows with the largest
// numeric value in column key, ordered descending. Rows with equal values
// keep their relative file order. The input Table is not modified.
//
// A key cell that is not a finite number yields a FormatError. n <= 0 yields
// an empty Table with the same columns.
func TopN(t *Table, key string, n int) (*Table, error) {
	col, err := t.ColumnIndex(key)
	if err != nil {
		return nil, err
	}

	type keyed struct {
		row   Row
		value float64
	}
	ranked := make([]keyed, len(t.Rows))
	for i, r := range t.Rows {
		v, err := parseNumber(r.Values[col])
		if err != nil {
			return nil, &FormatError{Line: r.Line, Column: key, Reason: err.Error(), cause: err}
		}
		ranked[i] = keyed{row: r, value: v}
	}

	// SortStableFunc keeps file order among equal values; sort.Slice would not.
	slices.SortStableFunc(ranked, func(a, b keyed) int {
		return cmp.Compare(b.value, a.value)
	})

	n = max(0, min(n, len(ranked)))
	rows := make([]Row, n)
	for i := range n {
		rows[i] = ranked[i].row
	}
	return t.derive(rows), nil
}

// parseNumber parses a numeric cell, tolerating surrounding whitespace and
// digit-group commas.
func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return v, nil
}

// parseCount parses a non-negative integer count. It is stricter than
// parseNumber: "9938.0" ranks under TopN but is not a valid patent count.
func parseCount(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty count")
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative count: %d", v)
	}
	return v, nil
}
