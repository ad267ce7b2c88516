package chart

import (
	"bytes"
	"errors"
	"fmt"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/couchcryptid/patent-dashboard/internal/domain"
)

// ErrNoData is returned when a chart has nothing to draw.
var ErrNoData = errors.New("chart: no data")

// minLabelledShare hides slice labels that would overlap their neighbours.
const minLabelledShare = 0.02

// SharePie renders each top region's share of total as a pie slice, with
// the remainder as a single "All others" slice.
func SharePie(title string, top []domain.Region, total int64) (*Chart, error) {
	if total <= 0 {
		return nil, ErrNoData
	}

	cm, err := blues(float64(len(top) + 1))
	if err != nil {
		return nil, err
	}

	values := make([]gochart.Value, 0, len(top)+1)
	var covered int64
	for i, r := range top {
		covered += r.PatentCount
		// Darkest slice for rank 1.
		values = append(values, gochart.Value{
			Value: float64(r.PatentCount),
			Label: sliceLabel(ShortLabel(r.Name), r.PatentCount, total),
			Style: gochart.Style{FillColor: toDrawing(shade(cm, float64(len(top)-i+1)))},
		})
	}
	if rest := total - covered; rest > 0 {
		values = append(values, gochart.Value{
			Value: float64(rest),
			Label: sliceLabel("All others", rest, total),
			Style: gochart.Style{FillColor: drawing.ColorFromHex("adb5bd")},
		})
	}

	pie := gochart.PieChart{
		Title:  title,
		Width:  int(ShareSize.Width.Points()),
		Height: int(ShareSize.Height.Points()),
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(gochart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render share chart: %w", err)
	}
	return &Chart{Name: "share.svg", Title: title, SVG: buf.Bytes()}, nil
}

func sliceLabel(name string, count, total int64) string {
	share := float64(count) / float64(total)
	if share < minLabelledShare {
		return ""
	}
	return fmt.Sprintf("%s %.0f%%", name, share*100)
}
