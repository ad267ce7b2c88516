package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/patent-dashboard/internal/domain"
	"github.com/couchcryptid/patent-dashboard/internal/observability"
)

// Source produces the input table and the schema that binds its columns.
type Source interface {
	Load(ctx context.Context) (*domain.Table, error)
	Schema() domain.Schema
}

// Enricher fills in fields the input lacks, such as missing coordinates.
// It must not fail; unresolved regions are returned unchanged or marked.
type Enricher interface {
	Enrich(ctx context.Context, regions []domain.Region) []domain.Region
}

// Renderer turns a dataset into servable artifacts.
type Renderer interface {
	Render(ctx context.Context, ds *domain.Dataset) (*Artifacts, error)
}

// Artifacts is the immutable output of a build.
type Artifacts struct {
	Dataset     *domain.Dataset
	Page        []byte
	Charts      map[string][]byte // keyed by file name, e.g. "map.svg"
	RegionsJSON []byte
	TopJSON     []byte
	Workbook    []byte
}

// Chart returns the named chart, if it was rendered.
func (a *Artifacts) Chart(name string) ([]byte, bool) {
	b, ok := a.Charts[name]
	return b, ok
}

// Build stages, used as the "stage" label on failures.
const (
	StageLoad    = "load"
	StageProject = "project"
	StageRank    = "rank"
	StageRender  = "render"
)

// StageError reports which build stage failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return e.Stage + ": " + e.Err.Error() }

func (e *StageError) Unwrap() error { return e.Err }

// Pipeline runs the load, project, enrich, rank, and render stages once.
type Pipeline struct {
	source   Source
	enricher Enricher
	renderer Renderer
	logger   *slog.Logger
	metrics  *observability.Metrics
	ready    atomic.Bool
	topN     int
}

// New creates a Pipeline with the given stages and observability. enricher
// may be nil.
func New(src Source, enr Enricher, r Renderer, logger *slog.Logger, metrics *observability.Metrics, topN int) *Pipeline {
	return &Pipeline{
		source:   src,
		enricher: enr,
		renderer: r,
		logger:   logger,
		metrics:  metrics,
		topN:     topN,
	}
}

// CheckReadiness returns nil once a build has completed, or an error
// describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("dashboard has not been built yet")
	}
	return nil
}

// Run executes the build. Any stage error aborts the build and is returned
// as a *StageError.
func (p *Pipeline) Run(ctx context.Context) (*Artifacts, error) {
	start := time.Now()
	schema := p.source.Schema()
	p.logger.Info("build started", "top_n", p.topN, "name_column", schema.Name, "count_column", schema.Count)

	if err := ctx.Err(); err != nil {
		return nil, p.fail(StageLoad, err)
	}

	table, err := p.source.Load(ctx)
	if err != nil {
		return nil, p.fail(StageLoad, err)
	}
	p.metrics.RowsLoaded.Set(float64(table.Len()))
	p.logger.Debug("table loaded", "rows", table.Len(), "columns", len(table.Columns))

	regions, err := domain.Regions(table, schema)
	if err != nil {
		return nil, p.fail(StageProject, err)
	}

	if p.enricher != nil && schema.HasCoordinates() {
		regions = p.enricher.Enrich(ctx, regions)
	}

	ds, err := domain.NewDataset(table, schema, regions, p.topN)
	if err != nil {
		return nil, p.fail(StageRank, err)
	}
	p.metrics.TopRows.Set(float64(len(ds.Top)))

	arts, err := p.renderer.Render(ctx, ds)
	if err != nil {
		return nil, p.fail(StageRender, err)
	}

	elapsed := time.Since(start)
	p.metrics.BuildDuration.Observe(elapsed.Seconds())
	p.ready.Store(true)
	p.logger.Info("build complete",
		"rows", table.Len(),
		"top", len(ds.Top),
		"total_patents", ds.Total,
		"duration", elapsed,
	)
	return arts, nil
}

func (p *Pipeline) fail(stage string, err error) error {
	p.metrics.BuildFailures.WithLabelValues(stage).Inc()
	p.logger.Error("build failed", "stage", stage, "error", err)
	return &StageError{Stage: stage, Err: err}
}
