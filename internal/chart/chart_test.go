package chart

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/patent-dashboard/internal/domain"
)

func stateRegions() []domain.Region {
	return []domain.Region{
		{Name: "CA", PatentCount: 40106, Line: 2},
		{Name: "NY", PatentCount: 12244, Line: 3},
		{Name: "TX", PatentCount: 9938, Line: 4},
		{Name: "MA", PatentCount: 6839, Line: 5},
		{Name: "WY", PatentCount: 88, Line: 6},
	}
}

func msaRegions() []domain.Region {
	return []domain.Region{
		{Name: "San Jose-Sunnyvale-Santa Clara, CA", PatentCount: 15060, Geo: &domain.Geo{Lat: 37.36, Lon: -121.92}},
		{Name: "San Francisco-Oakland-Hayward, CA", PatentCount: 10162, Geo: &domain.Geo{Lat: 37.77, Lon: -122.27}},
		{Name: "Seattle-Tacoma-Bellevue, WA", PatentCount: 6350, Geo: &domain.Geo{Lat: 47.61, Lon: -122.33}},
		{Name: "Nowhere, ZZ", PatentCount: 12},
	}
}

func assertSVG(t *testing.T, b []byte) {
	t.Helper()
	require.NotEmpty(t, b)
	assert.True(t, bytes.Contains(b, []byte("<svg")), "output should contain an <svg> element")
}

func TestStateTileMap(t *testing.T) {
	c, err := StateTileMap("Patents by state", stateRegions())
	require.NoError(t, err)

	assert.Equal(t, "map.svg", c.Name)
	assert.Equal(t, "Patents by state", c.Title)
	assert.Empty(t, c.Unplaced)
	assertSVG(t, c.SVG)
}

func TestStateTileMap_LowercaseAndUnknownCodes(t *testing.T) {
	regions := []domain.Region{
		{Name: "ca", PatentCount: 10},
		{Name: "PR", PatentCount: 3},
		{Name: "Guam", PatentCount: 1},
	}

	c, err := StateTileMap("t", regions)
	require.NoError(t, err)
	assert.Equal(t, []string{"PR", "Guam"}, c.Unplaced)
	assertSVG(t, c.SVG)
}

func TestStateTileMap_Empty(t *testing.T) {
	c, err := StateTileMap("t", nil)
	require.NoError(t, err)
	assertSVG(t, c.SVG)
}

func TestStateTiles_Layout(t *testing.T) {
	assert.Len(t, stateTiles, 51)

	seen := make(map[tile]string, len(stateTiles))
	for code, pos := range stateTiles {
		assert.GreaterOrEqual(t, pos.col, 0, code)
		assert.Less(t, pos.col, 11, code)
		assert.GreaterOrEqual(t, pos.row, 0, code)
		assert.Less(t, pos.row, tileRows, code)
		if other, dup := seen[pos]; dup {
			t.Errorf("%s and %s share tile %v", code, other, pos)
		}
		seen[pos] = code
	}
}

func TestBubbleMap(t *testing.T) {
	regions := msaRegions()
	c, err := BubbleMap("Patents by MSA", regions)
	require.NoError(t, err)

	assert.Equal(t, "map.svg", c.Name)
	assert.Equal(t, []string{"Nowhere, ZZ"}, c.Unplaced)
	assertSVG(t, c.SVG)

	// The caller's slice order is untouched.
	assert.Equal(t, "San Jose-Sunnyvale-Santa Clara, CA", regions[0].Name)
	assert.Equal(t, "Seattle-Tacoma-Bellevue, WA", regions[2].Name)
}

func TestBubbleMap_NoneLocated(t *testing.T) {
	c, err := BubbleMap("t", []domain.Region{{Name: "A", PatentCount: 1}})
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, c.Unplaced)
	assertSVG(t, c.SVG)
}

func TestRankedBar(t *testing.T) {
	c, err := RankedBar("Top states", "Patents", stateRegions())
	require.NoError(t, err)

	assert.Equal(t, "top.svg", c.Name)
	assertSVG(t, c.SVG)
}

func TestRankedBar_LongLabelsAndEmpty(t *testing.T) {
	c, err := RankedBar("Top MSAs", "Patents", msaRegions())
	require.NoError(t, err)
	assertSVG(t, c.SVG)

	c, err = RankedBar("Nothing", "Patents", nil)
	require.NoError(t, err)
	assertSVG(t, c.SVG)
}

func TestSharePie(t *testing.T) {
	top := stateRegions()[:3]
	c, err := SharePie("Share of patents", top, 100000)
	require.NoError(t, err)

	assert.Equal(t, "share.svg", c.Name)
	assertSVG(t, c.SVG)
}

func TestSharePie_NoData(t *testing.T) {
	_, err := SharePie("t", nil, 0)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestSliceLabel(t *testing.T) {
	assert.Equal(t, "CA 40%", sliceLabel("CA", 40106, 100000))
	assert.Equal(t, "All others 50%", sliceLabel("All others", 1, 2))
	assert.Empty(t, sliceLabel("WY", 1, 100), "shares under 2% are unlabelled")
}

func TestShortLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"San Jose-Sunnyvale-Santa Clara, CA", "San Jose, CA"},
		{"New York-Newark-Jersey City, NY-NJ-PA", "New York, NY"},
		{"Boston, MA", "Boston, MA"},
		{"CA", "CA"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ShortLabel(tt.in))
		})
	}
}

func TestIsDark(t *testing.T) {
	assert.True(t, isDark(bluesDark))
	assert.False(t, isDark(bluesLight))
	assert.True(t, isDark(color.Black))
	assert.False(t, isDark(color.White))
}

func TestBlues_LightToDark(t *testing.T) {
	cm, err := blues(40106)
	require.NoError(t, err)
	assert.InDelta(t, 0, cm.Min(), 0)
	assert.InDelta(t, 40106, cm.Max(), 0)

	assert.False(t, isDark(shade(cm, 0)), "low counts are light")
	assert.True(t, isDark(shade(cm, 40106)), "high counts are dark")

	luma := func(c color.Color) uint32 {
		r, g, b, _ := c.RGBA()
		return (299*r + 587*g + 114*b) / 1000
	}
	lo, mid, hi := luma(shade(cm, 0)), luma(shade(cm, 20000)), luma(shade(cm, 40106))
	assert.Greater(t, lo, mid)
	assert.Greater(t, mid, hi)
}

func TestBlues_ZeroMax(t *testing.T) {
	cm, err := blues(0)
	require.NoError(t, err)
	assert.InDelta(t, 1, cm.Max(), 0)
}

func TestShade_Clamps(t *testing.T) {
	cm, err := blues(100)
	require.NoError(t, err)

	assert.Equal(t, shade(cm, 100), shade(cm, 1e9))
	assert.Equal(t, shade(cm, 0), shade(cm, -5))
	assert.NotEqual(t, shade(cm, 0), shade(cm, 100))
}

func TestToDrawing(t *testing.T) {
	d := toDrawing(color.RGBA{R: 0x31, G: 0x82, B: 0xbd, A: 0xff})
	assert.Equal(t, uint8(0x31), d.R)
	assert.Equal(t, uint8(0x82), d.G)
	assert.Equal(t, uint8(0xbd), d.B)
	assert.Equal(t, uint8(0xff), d.A)
}
