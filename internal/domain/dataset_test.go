package domain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDataset(t *testing.T) {
	frozen := time.Date(2015, 12, 31, 23, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	t.Cleanup(func() { SetClock(nil) })

	tbl := mustRead(t, stateCSV)
	regions, err := Regions(tbl, StateSchema)
	require.NoError(t, err)

	ds, err := NewDataset(tbl, StateSchema, regions, 2)
	require.NoError(t, err)

	want := []Region{
		{Name: "CA", PatentCount: 40106, Line: 2},
		{Name: "NY", PatentCount: 12244, Line: 3},
	}
	if diff := cmp.Diff(want, ds.Top); diff != "" {
		t.Errorf("top regions mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, int64(40106+12244+9938+4024), ds.Total)
	assert.Equal(t, frozen, ds.GeneratedAt)
	assert.Equal(t, 2, ds.TopN)
	assert.Equal(t, 4, ds.Table.Len())
	assert.Equal(t, 2, ds.TopTable.Len())
	assert.InDelta(t, float64(52350)/float64(66312), ds.TopShare(), 1e-9)
}

func TestNewDataset_KeepsEnrichment(t *testing.T) {
	tbl := mustRead(t, msaCSV)
	regions, err := Regions(tbl, MSASchema)
	require.NoError(t, err)
	regions[1].Geo = &Geo{Lat: 43.6, Lon: -116.2}
	regions[1].GeoSource = "forward"

	ds, err := NewDataset(tbl, MSASchema, regions, 3)
	require.NoError(t, err)

	require.Len(t, ds.Top, 3)
	assert.Equal(t, "Boise City, ID", ds.Top[2].Name)
	assert.Equal(t, "forward", ds.Top[2].GeoSource)
	require.NotNil(t, ds.Top[2].Geo)
}

func TestNewDataset_RegionCountMismatch(t *testing.T) {
	tbl := mustRead(t, stateCSV)

	_, err := NewDataset(tbl, StateSchema, nil, 10)
	require.Error(t, err)
}

func TestNewDataset_MissingCountColumn(t *testing.T) {
	tbl := mustRead(t, stateCSV)
	regions, err := Regions(tbl, StateSchema)
	require.NoError(t, err)

	_, err = NewDataset(tbl, Schema{Name: "State", Count: "Population"}, regions, 10)
	var cnf *ColumnNotFoundError
	require.ErrorAs(t, err, &cnf)
}

func TestDataset_TopShareEmpty(t *testing.T) {
	assert.Zero(t, (&Dataset{}).TopShare())
}
