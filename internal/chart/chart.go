// Package chart renders dashboard figures to SVG.
//
// The geographic and ranked charts are drawn with gonum/plot; the share
// chart uses go-chart. Every function is a pure mapping from regions to
// bytes, so figures can be rendered once at startup and served verbatim.
package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/vg"
)

// Chart is a rendered figure.
type Chart struct {
	Name  string // file name under /charts/, e.g. "map.svg"
	Title string
	SVG   []byte

	// Unplaced lists regions that could not be positioned on a map.
	Unplaced []string
}

// Size is the rendered canvas size.
type Size struct {
	Width  vg.Length
	Height vg.Length
}

var (
	MapSize   = Size{Width: 10 * vg.Inch, Height: 6.5 * vg.Inch}
	BarSize   = Size{Width: 10 * vg.Inch, Height: 5 * vg.Inch}
	ShareSize = Size{Width: 7 * vg.Inch, Height: 5 * vg.Inch}
)

var (
	// Light-to-dark blues, matching the usual "Blues" sequential scale.
	bluesLight = color.RGBA{R: 0xde, G: 0xeb, B: 0xf7, A: 0xff}
	bluesDark  = color.RGBA{R: 0x08, G: 0x30, B: 0x6b, A: 0xff}
	noData     = color.RGBA{R: 0x6c, G: 0x75, B: 0x7d, A: 0xff}
	barColor   = color.RGBA{R: 0x31, G: 0x82, B: 0xbd, A: 0xff}
)

// blues returns a luminance-monotone colormap spanning [0, maxValue], light
// at 0 and dark at maxValue. NewLuminance needs control colours in
// increasing luminance, so the dark-to-light map is reversed.
func blues(maxValue float64) (palette.ColorMap, error) {
	lum, err := moreland.NewLuminance([]color.Color{bluesDark, bluesLight})
	if err != nil {
		return nil, fmt.Errorf("build colormap: %w", err)
	}
	cm := palette.Reverse(lum)
	cm.SetMin(0)
	cm.SetMax(max(maxValue, 1))
	return cm, nil
}

// shade maps v through cm, clamping to the colormap range.
func shade(cm palette.ColorMap, v float64) color.Color {
	v = min(max(v, cm.Min()), cm.Max())
	c, err := cm.At(v)
	if err != nil {
		return noData
	}
	return c
}

// isDark reports whether white text reads better than black on c.
func isDark(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	// ITU-R BT.601 luma on 16-bit channels.
	luma := (299*r + 587*g + 114*b) / 1000
	return luma < 0x8000
}

func renderSVG(p *plot.Plot, size Size) ([]byte, error) {
	wt, err := p.WriterTo(size.Width, size.Height, "svg")
	if err != nil {
		return nil, fmt.Errorf("create svg writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write svg: %w", err)
	}
	return buf.Bytes(), nil
}

// ShortLabel abbreviates an MSA title to its principal city and state,
// e.g. "San Jose-Sunnyvale-Santa Clara, CA" -> "San Jose, CA".
// Names without a comma (state codes) are returned unchanged.
func ShortLabel(name string) string {
	i := strings.LastIndex(name, ",")
	if i < 0 {
		return name
	}
	cities, states := strings.TrimSpace(name[:i]), strings.TrimSpace(name[i+1:])
	city, _, _ := strings.Cut(cities, "-")
	state, _, _ := strings.Cut(states, "-")
	return city + ", " + state
}

func toDrawing(c color.Color) drawing.Color {
	r, g, b, a := c.RGBA()
	return drawing.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
