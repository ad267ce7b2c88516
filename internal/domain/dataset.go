package domain

import (
	"fmt"
	"time"
)

// Dataset is everything the dashboard renders, derived once from a Table.
type Dataset struct {
	Schema      Schema
	Table       *Table
	TopTable    *Table
	Regions     []Region // file order
	Top         []Region // rank order
	TopN        int
	Total       int64
	GeneratedAt time.Time
}

// NewDataset ranks t by the schema's count column and pairs the ranked rows
// with their (possibly enriched) regions. regions must be the projection of
// t through s, in file order.
func NewDataset(t *Table, s Schema, regions []Region, n int) (*Dataset, error) {
	if len(regions) != t.Len() {
		return nil, fmt.Errorf("dataset: %d regions for %d rows", len(regions), t.Len())
	}

	top, err := TopN(t, s.Count, n)
	if err != nil {
		return nil, fmt.Errorf("select top %d: %w", n, err)
	}
	topRegions, err := Regions(top, s)
	if err != nil {
		return nil, fmt.Errorf("project top %d: %w", n, err)
	}

	byLine := make(map[int]Region, len(regions))
	for _, r := range regions {
		if r.Line > 0 {
			byLine[r.Line] = r
		}
	}
	for i, r := range topRegions {
		if enriched, ok := byLine[r.Line]; ok {
			topRegions[i] = enriched
		}
	}

	return &Dataset{
		Schema:      s,
		Table:       t,
		TopTable:    top,
		Regions:     regions,
		Top:         topRegions,
		TopN:        n,
		Total:       TotalPatents(regions),
		GeneratedAt: now(),
	}, nil
}

// TopShare returns the fraction of all patents held by the Top regions.
func (d *Dataset) TopShare() float64 {
	if d.Total == 0 {
		return 0
	}
	return float64(TotalPatents(d.Top)) / float64(d.Total)
}
