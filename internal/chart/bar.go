package chart

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/couchcryptid/patent-dashboard/internal/domain"
)

// RankedBar renders top regions as bars in the given order, with each
// exact count printed above its bar.
func RankedBar(title, yLabel string, top []domain.Region) (*Chart, error) {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Y.Label.Text = yLabel
	p.Y.Min = 0

	if len(top) > 0 {
		values := make(plotter.Values, len(top))
		names := make([]string, len(top))
		longest := 0
		var peak float64
		for i, r := range top {
			values[i] = float64(r.PatentCount)
			names[i] = ShortLabel(r.Name)
			longest = max(longest, len(names[i]))
			peak = max(peak, values[i])
		}

		bars, err := plotter.NewBarChart(values, vg.Points(28))
		if err != nil {
			return nil, fmt.Errorf("bar chart: %w", err)
		}
		bars.Color = barColor
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)

		p.NominalX(names...)
		if longest > 4 {
			p.X.Tick.Label.Rotation = math.Pi / 6
			p.X.Tick.Label.XAlign = draw.XRight
			p.X.Tick.Label.YAlign = draw.YCenter
		}
		p.Y.Max = max(peak, 1) * 1.15

		xys := make(plotter.XYs, len(top))
		texts := make([]string, len(top))
		for i, v := range values {
			xys[i] = plotter.XY{X: float64(i), Y: v + peak*0.02}
			texts[i] = humanize.Comma(top[i].PatentCount)
		}
		labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
		if err != nil {
			return nil, fmt.Errorf("bar labels: %w", err)
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].XAlign = draw.XCenter
			labels.TextStyle[i].Font.Size = vg.Points(9)
		}
		p.Add(labels)
	}

	svg, err := renderSVG(p, BarSize)
	if err != nil {
		return nil, err
	}
	return &Chart{Name: "top.svg", Title: title, SVG: svg}, nil
}
