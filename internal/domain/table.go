package domain

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Row is one data line of the input, with cells aligned to the table's columns.
type Row struct {
	Line   int // 1-based source line
	Values []string
}

// Table is an ordered sequence of rows sharing a fixed column schema.
// Row order equals file order.
type Table struct {
	Columns []string
	Rows    []Row

	index map[string]int
}

// LoadOptions controls how a delimited file is read.
type LoadOptions struct {
	// Delimiter separates fields. Zero means ','.
	Delimiter rune
}

// NewTable builds a Table from a header and rows. It validates that header
// names are non-empty and unique and that every row matches the header arity.
func NewTable(columns []string, rows []Row) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if c == "" {
			return nil, &FormatError{Line: 1, Reason: fmt.Sprintf("header column %d is blank", i+1)}
		}
		if _, dup := index[c]; dup {
			return nil, &FormatError{Line: 1, Column: c, Reason: "duplicate header column"}
		}
		index[c] = i
	}
	for _, r := range rows {
		if len(r.Values) != len(columns) {
			return nil, &FormatError{
				Line:   r.Line,
				Reason: fmt.Sprintf("expected %d fields, got %d", len(columns), len(r.Values)),
			}
		}
	}
	return &Table{Columns: columns, Rows: rows, index: index}, nil
}

// Load reads the delimited file at path into a Table.
func Load(path string, opts LoadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: path, cause: err}
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return t, nil
}

// Read parses a delimited table from r. The first record is the header.
func Read(r io.Reader, opts LoadOptions) (*Table, error) {
	cr := csv.NewReader(r)
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	// Arity is checked by NewTable so the error carries our taxonomy.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &FormatError{Reason: "missing header"}
	}
	if err != nil {
		return nil, csvFormatError(err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		columns[i] = strings.TrimSpace(h)
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvFormatError(err)
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, Row{Line: line, Values: rec})
	}

	return NewTable(columns, rows)
}

func csvFormatError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &FormatError{Line: pe.Line, Reason: pe.Err.Error(), cause: err}
	}
	return &FormatError{Reason: err.Error(), cause: err}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// ColumnIndex returns the position of name, or a ColumnNotFoundError.
func (t *Table) ColumnIndex(name string) (int, error) {
	i, ok := t.index[name]
	if t.index == nil {
		i, ok = linearIndex(t.Columns, name)
	}
	if !ok {
		return 0, &ColumnNotFoundError{Column: name, Available: append([]string(nil), t.Columns...)}
	}
	return i, nil
}

func linearIndex(columns []string, name string) (int, bool) {
	for i, c := range columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// Value returns the cell of row r in column name.
func (t *Table) Value(r Row, name string) (string, error) {
	i, err := t.ColumnIndex(name)
	if err != nil {
		return "", err
	}
	return r.Values[i], nil
}

// derive returns a new Table sharing the column layout of t.
func (t *Table) derive(rows []Row) *Table {
	return &Table{Columns: t.Columns, Rows: rows, index: t.index}
}
