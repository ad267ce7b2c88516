// Command export builds the dashboard with the same environment
// configuration as the server and writes it to a directory as a static
// site: index.html, charts/*.svg, export.xlsx and the JSON views.
//
// Usage:
//
//	DATASET=msa DATA_FILE=data/msa_grouped.csv go run ./cmd/export -out site
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/couchcryptid/patent-dashboard/internal/config"
	"github.com/couchcryptid/patent-dashboard/internal/domain"
	"github.com/couchcryptid/patent-dashboard/internal/observability"
	"github.com/couchcryptid/patent-dashboard/internal/page"
	"github.com/couchcryptid/patent-dashboard/internal/pipeline"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output directory")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := observability.NewLogger(cfg)

	// Exported sites use coordinates from the file only.
	p := pipeline.New(
		pipeline.NewFileSource(cfg.DataFile, cfg.Schema, domain.LoadOptions{}),
		nil,
		pipeline.NewRenderer(page.CopyFor(cfg.Dataset, cfg.TopN), cfg.Author, logger),
		logger,
		observability.NewMetricsForTesting(),
		cfg.TopN,
	)
	arts, err := p.Run(context.Background())
	if err != nil {
		return err
	}

	if err := writeSite(*out, arts, logger); err != nil {
		return err
	}
	log.Printf("wrote %d charts, %d regions to %s", len(arts.Charts), len(arts.Dataset.Regions), *out)
	return nil
}

func writeSite(dir string, arts *pipeline.Artifacts, logger *slog.Logger) error {
	if err := os.MkdirAll(filepath.Join(dir, "charts"), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	files := map[string][]byte{
		"index.html":   arts.Page,
		"export.xlsx":  arts.Workbook,
		"regions.json": arts.RegionsJSON,
		"top.json":     arts.TopJSON,
	}
	for name, svg := range arts.Charts {
		files[filepath.Join("charts", name)] = svg
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, files[name], 0o644); err != nil { //nolint:gosec // static site output
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Debug("wrote file", "path", path, "bytes", len(files[name]))
	}
	return nil
}
