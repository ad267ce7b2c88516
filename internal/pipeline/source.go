package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/patent-dashboard/internal/domain"
)

// FileSource loads a delimited file from disk.
type FileSource struct {
	path   string
	schema domain.Schema
	opts   domain.LoadOptions
}

// NewFileSource creates a Source that reads path with the given schema.
func NewFileSource(path string, schema domain.Schema, opts domain.LoadOptions) *FileSource {
	return &FileSource{path: path, schema: schema, opts: opts}
}

func (s *FileSource) Load(_ context.Context) (*domain.Table, error) {
	return domain.Load(s.path, s.opts)
}

func (s *FileSource) Schema() domain.Schema { return s.schema }

// GeocodeEnricher forward geocodes regions that lack coordinates.
type GeocodeEnricher struct {
	geocoder domain.Geocoder
	logger   *slog.Logger
}

// NewGeocodeEnricher creates a GeocodeEnricher. A nil geocoder leaves
// regions unchanged.
func NewGeocodeEnricher(geocoder domain.Geocoder, logger *slog.Logger) *GeocodeEnricher {
	return &GeocodeEnricher{geocoder: geocoder, logger: logger}
}

func (e *GeocodeEnricher) Enrich(ctx context.Context, regions []domain.Region) []domain.Region {
	return domain.EnrichWithGeocoding(ctx, regions, e.geocoder, e.logger)
}
