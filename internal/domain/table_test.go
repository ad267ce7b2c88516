package domain

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stateCSV = `State,No of Patents in 2015
CA,40106
NY,12244
TX,9938
FL,4024
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeTemp(t, stateCSV)

	tbl, err := Load(path, LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"State", "No of Patents in 2015"}, tbl.Columns)
	require.Equal(t, 4, tbl.Len())
	assert.Equal(t, []string{"CA", "40106"}, tbl.Rows[0].Values)
	assert.Equal(t, 2, tbl.Rows[0].Line)
	assert.Equal(t, []string{"FL", "4024"}, tbl.Rows[3].Values)
	assert.Equal(t, 5, tbl.Rows[3].Line)
}

func TestLoad_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")

	_, err := Load(path, LoadOptions{})
	require.Error(t, err)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, path, nf.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestRead(t *testing.T) {
	t.Run("BOM and padded header", func(t *testing.T) {
		tbl, err := Read(strings.NewReader("\ufeff State , No of Patents in 2015\nCA,40106\n"), LoadOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"State", "No of Patents in 2015"}, tbl.Columns)
	})

	t.Run("custom delimiter", func(t *testing.T) {
		tbl, err := Read(strings.NewReader("State;Count\nCA;40106\n"), LoadOptions{Delimiter: ';'})
		require.NoError(t, err)
		v, err := tbl.Value(tbl.Rows[0], "Count")
		require.NoError(t, err)
		assert.Equal(t, "40106", v)
	})

	t.Run("quoted field with comma", func(t *testing.T) {
		tbl, err := Read(strings.NewReader("MSA,Count\n\"Austin-Round Rock, TX\",\"3,210\"\n"), LoadOptions{})
		require.NoError(t, err)
		assert.Equal(t, "Austin-Round Rock, TX", tbl.Rows[0].Values[0])
		assert.Equal(t, "3,210", tbl.Rows[0].Values[1])
	})

	t.Run("blank lines skipped", func(t *testing.T) {
		tbl, err := Read(strings.NewReader("State,Count\n\nCA,1\n\nNY,2\n"), LoadOptions{})
		require.NoError(t, err)
		assert.Equal(t, 2, tbl.Len())
		assert.Equal(t, 5, tbl.Rows[1].Line)
	})

	t.Run("header only", func(t *testing.T) {
		tbl, err := Read(strings.NewReader("State,Count\n"), LoadOptions{})
		require.NoError(t, err)
		assert.Equal(t, 0, tbl.Len())
	})
}

func TestRead_FormatErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		line     int
		contains string
	}{
		{"empty input", "", 0, "missing header"},
		{"blank header column", "State,,Count\nCA,x,1\n", 1, "blank"},
		{"duplicate header column", "State,State\nCA,CA\n", 1, "duplicate"},
		{"too few fields", "State,Count\nCA,1\nNY\n", 3, "expected 2 fields, got 1"},
		{"too many fields", "State,Count\nCA,1,extra\n", 2, "expected 2 fields, got 3"},
		{"bare quote", "State,Count\nC\"A,1\n", 2, "bare"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), LoadOptions{})
			require.Error(t, err)

			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.line, fe.Line)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoad_FormatErrorIsWrapped(t *testing.T) {
	path := writeTemp(t, "State,Count\nCA\n")

	_, err := Load(path, LoadOptions{})
	require.Error(t, err)

	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, err.Error(), path)
}

func TestTable_ColumnIndex(t *testing.T) {
	tbl, err := Read(strings.NewReader(stateCSV), LoadOptions{})
	require.NoError(t, err)

	i, err := tbl.ColumnIndex("No of Patents in 2015")
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	_, err = tbl.ColumnIndex("Population")
	var cnf *ColumnNotFoundError
	require.ErrorAs(t, err, &cnf)
	assert.Equal(t, "Population", cnf.Column)
	assert.Equal(t, tbl.Columns, cnf.Available)
}

func TestTable_ColumnIndexWithoutConstructor(t *testing.T) {
	tbl := &Table{Columns: []string{"a", "b"}}

	i, err := tbl.ColumnIndex("b")
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	_, err = tbl.ColumnIndex("c")
	require.Error(t, err)
}
