package chart

import (
	"cmp"
	"fmt"
	"image/color"
	"math"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/couchcryptid/patent-dashboard/internal/domain"
)

type tile struct{ col, row int }

// stateTiles is an 11x8 tile-grid layout of the 50 states and DC. Row 0 is
// the top of the map.
var stateTiles = map[string]tile{
	"AK": {0, 0}, "ME": {10, 0},
	"VT": {9, 1}, "NH": {10, 1},
	"WA": {0, 2}, "ID": {1, 2}, "MT": {2, 2}, "ND": {3, 2}, "MN": {4, 2}, "IL": {5, 2},
	"WI": {6, 2}, "MI": {7, 2}, "NY": {8, 2}, "RI": {9, 2}, "MA": {10, 2},
	"OR": {0, 3}, "NV": {1, 3}, "WY": {2, 3}, "SD": {3, 3}, "IA": {4, 3}, "IN": {5, 3},
	"OH": {6, 3}, "PA": {7, 3}, "NJ": {8, 3}, "CT": {9, 3},
	"CA": {0, 4}, "UT": {1, 4}, "CO": {2, 4}, "NE": {3, 4}, "MO": {4, 4}, "KY": {5, 4},
	"WV": {6, 4}, "VA": {7, 4}, "MD": {8, 4}, "DE": {9, 4},
	"AZ": {1, 5}, "NM": {2, 5}, "KS": {3, 5}, "AR": {4, 5}, "TN": {5, 5}, "NC": {6, 5},
	"SC": {7, 5}, "DC": {8, 5},
	"OK": {3, 6}, "LA": {4, 6}, "MS": {5, 6}, "AL": {6, 6}, "GA": {7, 6},
	"HI": {0, 7}, "TX": {3, 7}, "FL": {8, 7},
}

const tileRows = 8

// StateTileMap renders a choropleth of state-level counts on a tile grid.
// States absent from regions are drawn in a neutral colour; regions whose
// name is not a known state code are reported in Chart.Unplaced.
func StateTileMap(title string, regions []domain.Region) (*Chart, error) {
	counts := make(map[string]int64, len(regions))
	var unplaced []string
	var peak int64
	for _, r := range regions {
		code := strings.ToUpper(r.Name)
		if _, ok := stateTiles[code]; !ok {
			unplaced = append(unplaced, r.Name)
			continue
		}
		counts[code] += r.PatentCount
		peak = max(peak, counts[code])
	}

	cm, err := blues(float64(peak))
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(stateTiles))
	for code := range stateTiles {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	xys := make(plotter.XYs, len(codes))
	fills := make([]color.Color, len(codes))
	for i, code := range codes {
		t := stateTiles[code]
		xys[i] = plotter.XY{X: float64(t.col), Y: float64(tileRows - 1 - t.row)}
		fills[i] = noData
		if n, ok := counts[code]; ok {
			fills[i] = shade(cm, float64(n))
		}
	}

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.HideAxes()
	p.X.Min, p.X.Max = -0.7, 10.7
	p.Y.Min, p.Y.Max = -0.7, tileRows-0.3

	tiles, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, fmt.Errorf("state tiles: %w", err)
	}
	tiles.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{Color: fills[i], Radius: vg.Points(19), Shape: draw.BoxGlyph{}}
	}
	p.Add(tiles)

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: codes})
	if err != nil {
		return nil, fmt.Errorf("state labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
		labels.TextStyle[i].Font.Size = vg.Points(9)
		if isDark(fills[i]) {
			labels.TextStyle[i].Color = color.White
		} else {
			labels.TextStyle[i].Color = color.Black
		}
	}
	p.Add(labels)

	svg, err := renderSVG(p, MapSize)
	if err != nil {
		return nil, err
	}
	return &Chart{Name: "map.svg", Title: title, SVG: svg, Unplaced: unplaced}, nil
}

const (
	minBubble    = 3.0
	maxBubble    = 22.0
	bubbleLabels = 5
)

// BubbleMap renders located regions as bubbles on a longitude/latitude
// plane. Bubble area is proportional to the patent count. The largest
// regions are labelled. Regions without coordinates are reported in
// Chart.Unplaced.
func BubbleMap(title string, regions []domain.Region) (*Chart, error) {
	var located []domain.Region
	var unplaced []string
	var peak int64
	for _, r := range regions {
		if r.Geo == nil {
			unplaced = append(unplaced, r.Name)
			continue
		}
		located = append(located, r)
		peak = max(peak, r.PatentCount)
	}

	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"
	p.Add(plotter.NewGrid())

	if len(located) > 0 {
		// Draw small bubbles last so they stay visible on top of large ones.
		slices.SortStableFunc(located, func(a, b domain.Region) int {
			return cmp.Compare(b.PatentCount, a.PatentCount)
		})

		cm, err := blues(float64(peak))
		if err != nil {
			return nil, err
		}

		xys := make(plotter.XYs, len(located))
		for i, r := range located {
			xys[i] = plotter.XY{X: r.Geo.Lon, Y: r.Geo.Lat}
		}
		bubbles, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("msa bubbles: %w", err)
		}
		bubbles.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			frac := math.Sqrt(float64(located[i].PatentCount) / float64(max(peak, 1)))
			return draw.GlyphStyle{
				Color:  shade(cm, float64(located[i].PatentCount)),
				Radius: vg.Points(minBubble + (maxBubble-minBubble)*frac),
				Shape:  draw.CircleGlyph{},
			}
		}
		p.Add(bubbles)

		n := min(bubbleLabels, len(located))
		names := make([]string, n)
		for i := range n {
			names[i] = fmt.Sprintf("%s (%s)", ShortLabel(located[i].Name), humanize.Comma(located[i].PatentCount))
		}
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys[:n], Labels: names})
		if err != nil {
			return nil, fmt.Errorf("msa labels: %w", err)
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].Font.Size = vg.Points(9)
		}
		p.Add(labels)
	}

	svg, err := renderSVG(p, MapSize)
	if err != nil {
		return nil, err
	}
	return &Chart{Name: "map.svg", Title: title, SVG: svg, Unplaced: unplaced}, nil
}
