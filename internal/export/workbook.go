// Package export writes the dashboard dataset as an XLSX workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/patent-dashboard/internal/domain"
)

// Sheet names.
const (
	AllSheet = "All Regions"
	TopSheet = "Top N"
)

type layout struct {
	header   []string
	nameCol  int // 1-based
	shareCol int // 1-based, formatted as a percentage
}

var (
	allLayout = layout{
		header:   []string{"Region", "Patents", "Share", "Latitude", "Longitude", "Geohash", "Geo Source", "Source Line"},
		nameCol:  1,
		shareCol: 3,
	}
	topLayout = layout{
		header:   []string{"Rank", "Region", "Patents", "Share"},
		nameCol:  2,
		shareCol: 4,
	}
)

// WriteWorkbook writes ds to w. The "All Regions" sheet keeps file order;
// the "Top N" sheet is in rank order.
func WriteWorkbook(w io.Writer, ds *domain.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", AllSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(TopSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return err
	}

	all := make([][]any, len(ds.Regions))
	for i, r := range ds.Regions {
		var lat, lon any
		if r.Geo != nil {
			lat, lon = r.Geo.Lat, r.Geo.Lon
		}
		all[i] = []any{r.Name, r.PatentCount, share(r.PatentCount, ds.Total), lat, lon, r.Geohash, r.GeoSource, r.Line}
	}
	if err := writeSheet(f, AllSheet, allLayout, all, st); err != nil {
		return err
	}

	top := make([][]any, len(ds.Top))
	for i, r := range ds.Top {
		top[i] = []any{i + 1, r.Name, r.PatentCount, share(r.PatentCount, ds.Total)}
	}
	if err := writeSheet(f, TopSheet, topLayout, top, st); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

type styles struct {
	header  int
	percent int
}

func newStyles(f *excelize.File) (styles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DEEBF7"}},
	})
	if err != nil {
		return styles{}, fmt.Errorf("header style: %w", err)
	}
	// Built-in number format 10 is "0.00%".
	percent, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	if err != nil {
		return styles{}, fmt.Errorf("percent style: %w", err)
	}
	return styles{header: header, percent: percent}, nil
}

// writeSheet writes a styled header row followed by rows.
func writeSheet(f *excelize.File, sheet string, l layout, rows [][]any, st styles) error {
	hdr := make([]any, len(l.header))
	for i, h := range l.header {
		hdr[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &hdr); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(l.header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, st.header); err != nil {
		return fmt.Errorf("%s header style: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+2, err)
		}
	}

	if len(rows) > 0 {
		from, _ := excelize.CoordinatesToCellName(l.shareCol, 2)
		to, _ := excelize.CoordinatesToCellName(l.shareCol, len(rows)+1)
		if err := f.SetCellStyle(sheet, from, to, st.percent); err != nil {
			return fmt.Errorf("%s share style: %w", sheet, err)
		}
	}

	nameCol, _ := excelize.ColumnNumberToName(l.nameCol)
	if err := f.SetColWidth(sheet, nameCol, nameCol, 40); err != nil {
		return fmt.Errorf("%s column width: %w", sheet, err)
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("%s freeze header: %w", sheet, err)
	}
	return nil
}

func share(count, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total)
}
