package domain

import (
	"fmt"
	"strconv"
	"strings"

	geohash "github.com/TomiHiltunen/geohash-golang"
)

// Schema binds the semantic fields of a Region to column names of a Table.
// Latitude and Longitude are optional; set both or neither.
type Schema struct {
	Name      string
	Count     string
	Latitude  string
	Longitude string
}

// StateSchema matches the state-grouped extract.
var StateSchema = Schema{
	Name:  "State",
	Count: "No of Patents in 2015",
}

// MSASchema matches the MSA-grouped extract with centroid coordinates.
var MSASchema = Schema{
	Name:      "MSA",
	Count:     "No of Patents in 2015",
	Latitude:  "Latitude",
	Longitude: "Longitude",
}

// HasCoordinates reports whether the schema carries latitude/longitude columns.
func (s Schema) HasCoordinates() bool {
	return s.Latitude != "" && s.Longitude != ""
}

// Validate checks that the schema is internally consistent.
func (s Schema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("schema: name column is required")
	}
	if s.Count == "" {
		return fmt.Errorf("schema: count column is required")
	}
	if (s.Latitude == "") != (s.Longitude == "") {
		return fmt.Errorf("schema: latitude and longitude columns must be set together")
	}
	return nil
}

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Region is one geographic entity: a state or a metropolitan statistical area.
type Region struct {
	Name        string `json:"name"`
	PatentCount int64  `json:"patent_count"`
	Geo         *Geo   `json:"geo,omitempty"`
	Line        int    `json:"line"`

	// Geocoding enrichment fields.
	Geohash          string  `json:"geohash,omitempty"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
	GeoConfidence    float64 `json:"geo_confidence,omitempty"`
	GeoSource        string  `json:"geo_source,omitempty"` // "original", "forward", "failed"
}

// Regions projects every row of t through s, preserving row order.
func Regions(t *Table, s Schema) ([]Region, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	nameCol, err := t.ColumnIndex(s.Name)
	if err != nil {
		return nil, err
	}
	countCol, err := t.ColumnIndex(s.Count)
	if err != nil {
		return nil, err
	}
	latCol, lonCol := -1, -1
	if s.HasCoordinates() {
		if latCol, err = t.ColumnIndex(s.Latitude); err != nil {
			return nil, err
		}
		if lonCol, err = t.ColumnIndex(s.Longitude); err != nil {
			return nil, err
		}
	}

	regions := make([]Region, 0, len(t.Rows))
	for _, r := range t.Rows {
		count, err := parseCount(r.Values[countCol])
		if err != nil {
			return nil, &FormatError{Line: r.Line, Column: s.Count, Reason: err.Error(), cause: err}
		}
		region := Region{
			Name:        strings.TrimSpace(r.Values[nameCol]),
			PatentCount: count,
			Line:        r.Line,
		}
		if latCol >= 0 {
			geo, err := parseGeo(r, s, latCol, lonCol)
			if err != nil {
				return nil, err
			}
			if geo != nil {
				region.Geo = geo
				region.Geohash = geohash.Encode(geo.Lat, geo.Lon)
				region.GeoSource = "original"
			}
		}
		regions = append(regions, region)
	}
	return regions, nil
}

// parseGeo returns nil when both coordinate cells are empty.
func parseGeo(r Row, s Schema, latCol, lonCol int) (*Geo, error) {
	latStr := strings.TrimSpace(r.Values[latCol])
	lonStr := strings.TrimSpace(r.Values[lonCol])
	if latStr == "" && lonStr == "" {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || !(lat >= -90 && lat <= 90) {
		return nil, &FormatError{Line: r.Line, Column: s.Latitude, Reason: fmt.Sprintf("invalid latitude %q", latStr)}
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || !(lon >= -180 && lon <= 180) {
		return nil, &FormatError{Line: r.Line, Column: s.Longitude, Reason: fmt.Sprintf("invalid longitude %q", lonStr)}
	}
	return &Geo{Lat: lat, Lon: lon}, nil
}

// TotalPatents sums PatentCount across regions.
func TotalPatents(regions []Region) int64 {
	var total int64
	for _, r := range regions {
		total += r.PatentCount
	}
	return total
}
