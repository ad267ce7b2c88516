// Package page renders the dashboard HTML document.
package page

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/couchcryptid/patent-dashboard/internal/chart"
	"github.com/couchcryptid/patent-dashboard/internal/domain"
)

//go:embed templates/*.tmpl
var templates embed.FS

var tmpl = template.Must(template.New("index.html.tmpl").Funcs(template.FuncMap{
	"comma":  humanize.Comma,
	"inline": inlineSVG,
}).ParseFS(templates, "templates/index.html.tmpl"))

// Input is everything the page shows.
type Input struct {
	Dataset *domain.Dataset
	Copy    Copy
	Map     *chart.Chart
	Top     *chart.Chart
	Share   *chart.Chart // optional
	Author  string       // footer omitted when empty
}

type view struct {
	Input
	Summary     []Bullet
	GeneratedAt string
}

// Render executes the page template and returns the document.
func Render(in Input) ([]byte, error) {
	if in.Dataset == nil {
		return nil, errors.New("page: dataset is required")
	}
	if in.Map == nil || in.Top == nil {
		return nil, errors.New("page: map and top charts are required")
	}

	v := view{
		Input:       in,
		Summary:     Summary(in.Dataset, in.Copy),
		GeneratedAt: in.Dataset.GeneratedAt.UTC().Format(time.RFC3339),
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, v); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

// inlineSVG drops any XML prolog so the figure can be embedded in HTML.
func inlineSVG(b []byte) template.HTML {
	if i := bytes.Index(b, []byte("<svg")); i > 0 {
		b = b[i:]
	}
	return template.HTML(b) //nolint:gosec // chart output is generated locally
}
