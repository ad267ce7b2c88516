// Package domain models U.S. patent counts per region and the pure
// transforms that shape them for the dashboard.
//
// # Data Source
//
// Inputs are CSV extracts of USPTO patent counts for 2015, pre-grouped by
// region. Two shapes exist:
//
//	State level:  State,No of Patents in 2015
//	              CA,40106
//	MSA level:    MSA,No of Patents in 2015,Latitude,Longitude
//	              "San Jose-Sunnyvale-Santa Clara, CA",12289,37.36,-121.92
//
// Column names differ between extracts, so they are bound through a
// [Schema] rather than hardcoded. State names are USPS two-letter codes.
// MSA titles follow the Census Bureau "Principal City-Other City, ST"
// convention.
//
// # Tables and Regions
//
// [Load] reads the file verbatim into a [Table]: every cell is kept as a
// string and rows keep their source line numbers. [Regions] projects a
// Table through a Schema into typed [Region] values. Counts must be
// non-negative integers; a leading UTF-8 BOM and digit-group commas
// ("40,106") are tolerated because spreadsheet exports produce both.
//
// # Ranking
//
// [TopN] returns a new Table holding the N rows with the largest value in
// a numeric column. Equal values keep their file order, so the ranking is
// reproducible across runs of the same input. See [TopN].
//
// # Coordinates
//
// MSA rows may carry WGS-84 latitude/longitude. Rows missing them can be
// forward geocoded by name (see [EnrichWithGeocoding]). Rows with
// coordinates are tagged with a geohash for client-side clustering.
package domain
