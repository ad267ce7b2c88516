package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/patent-dashboard/internal/chart"
	"github.com/couchcryptid/patent-dashboard/internal/domain"
	"github.com/couchcryptid/patent-dashboard/internal/export"
	"github.com/couchcryptid/patent-dashboard/internal/page"
)

// DashboardRenderer implements Renderer with SVG charts, the HTML page,
// JSON views and the XLSX workbook.
type DashboardRenderer struct {
	text   page.Copy
	author string
	logger *slog.Logger
}

// NewRenderer creates a DashboardRenderer. An empty author omits the page
// footer.
func NewRenderer(text page.Copy, author string, logger *slog.Logger) *DashboardRenderer {
	return &DashboardRenderer{text: text, author: author, logger: logger}
}

func (r *DashboardRenderer) Render(_ context.Context, ds *domain.Dataset) (*Artifacts, error) {
	geo, err := r.geoChart(ds)
	if err != nil {
		return nil, fmt.Errorf("geographic chart: %w", err)
	}
	if len(geo.Unplaced) > 0 {
		r.logger.Warn("regions not shown on map", "count", len(geo.Unplaced), "regions", geo.Unplaced)
	}

	top, err := chart.RankedBar(r.text.TopTitle, r.text.CountLabel, ds.Top)
	if err != nil {
		return nil, fmt.Errorf("ranked chart: %w", err)
	}

	share, err := chart.SharePie(r.text.ShareTitle, ds.Top, ds.Total)
	switch {
	case errors.Is(err, chart.ErrNoData):
		r.logger.Warn("share chart skipped", "reason", "no patents in dataset")
		share = nil
	case err != nil:
		return nil, fmt.Errorf("share chart: %w", err)
	}

	html, err := page.Render(page.Input{
		Dataset: ds,
		Copy:    r.text,
		Map:     geo,
		Top:     top,
		Share:   share,
		Author:  r.author,
	})
	if err != nil {
		return nil, err
	}

	regionsJSON, err := json.Marshal(ds.Regions)
	if err != nil {
		return nil, fmt.Errorf("encode regions: %w", err)
	}
	topJSON, err := json.Marshal(ds.Top)
	if err != nil {
		return nil, fmt.Errorf("encode top regions: %w", err)
	}

	var xlsx bytes.Buffer
	if err := export.WriteWorkbook(&xlsx, ds); err != nil {
		return nil, err
	}

	charts := map[string][]byte{geo.Name: geo.SVG, top.Name: top.SVG}
	if share != nil {
		charts[share.Name] = share.SVG
	}
	return &Artifacts{
		Dataset:     ds,
		Page:        html,
		Charts:      charts,
		RegionsJSON: regionsJSON,
		TopJSON:     topJSON,
		Workbook:    xlsx.Bytes(),
	}, nil
}

// geoChart picks the map for the schema: bubbles when rows carry
// coordinates, state tiles otherwise.
func (r *DashboardRenderer) geoChart(ds *domain.Dataset) (*chart.Chart, error) {
	if ds.Schema.HasCoordinates() {
		return chart.BubbleMap(r.text.MapTitle, ds.Regions)
	}
	return chart.StateTileMap(r.text.MapTitle, ds.Regions)
}
