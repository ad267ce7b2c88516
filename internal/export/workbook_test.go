package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/patent-dashboard/internal/domain"
)

func msaDataset(t *testing.T) *domain.Dataset {
	t.Helper()
	csv := `MSA,No of Patents in 2015,Latitude,Longitude
"Boston-Cambridge-Newton, MA-NH",6210,42.36,-71.06
"San Jose-Sunnyvale-Santa Clara, CA",12289,37.36,-121.92
"Austin-Round Rock, TX",2880,,
`
	table, err := domain.Read(strings.NewReader(csv), domain.LoadOptions{})
	require.NoError(t, err)
	regions, err := domain.Regions(table, domain.MSASchema)
	require.NoError(t, err)
	ds, err := domain.NewDataset(table, domain.MSASchema, regions, 2)
	require.NoError(t, err)
	return ds
}

func openWorkbook(t *testing.T, b []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWriteWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, msaDataset(t)))

	f := openWorkbook(t, buf.Bytes())
	assert.Equal(t, []string{AllSheet, TopSheet}, f.GetSheetList())

	all, err := f.GetRows(AllSheet)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, allLayout.header, all[0])
	assert.Equal(t, "Boston-Cambridge-Newton, MA-NH", all[1][0])
	assert.Equal(t, "6210", all[1][1])
	assert.Equal(t, "original", all[1][6])
	assert.Equal(t, "2", all[1][7])
	assert.Equal(t, "Austin-Round Rock, TX", all[3][0])
	assert.Equal(t, "4", all[3][len(all[3])-1])

	top, err := f.GetRows(TopSheet)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, topLayout.header, top[0])
	assert.Equal(t, []string{"1", "San Jose-Sunnyvale-Santa Clara, CA", "12289"}, top[1][:3])
	assert.Equal(t, []string{"2", "Boston-Cambridge-Newton, MA-NH", "6210"}, top[2][:3])
}

func TestWriteWorkbook_ShareIsFraction(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, msaDataset(t)))

	f := openWorkbook(t, buf.Bytes())
	raw, err := f.GetCellValue(TopSheet, "D2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(raw, "0.57"), "got %q", raw)
}

func TestWriteWorkbook_Empty(t *testing.T) {
	table, err := domain.Read(strings.NewReader("State,No of Patents in 2015\n"), domain.LoadOptions{})
	require.NoError(t, err)
	ds, err := domain.NewDataset(table, domain.StateSchema, nil, 10)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, ds))

	f := openWorkbook(t, buf.Bytes())
	rows, err := f.GetRows(TopSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestShare(t *testing.T) {
	assert.InDelta(t, 0.25, share(1, 4), 1e-9)
	assert.Zero(t, share(1, 0))
}
