// Command validate runs data-quality checks over a grouped patent-count CSV
// before it is served. It verifies the header against the dataset schema,
// that every count is a non-negative integer, that region names are unique
// and recognised, that coordinates are present and in range, and that the
// top-N ranking is well formed.
//
// Usage:
//
//	go run ./cmd/validate -file data/state_grouped.csv -schema state -top 10
//	go run ./cmd/validate -file data/msa_grouped.csv -schema msa
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/couchcryptid/patent-dashboard/internal/domain"
	"github.com/couchcryptid/patent-dashboard/internal/page"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name     string
	errors   []string
	warnings []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

// warnf records a finding that does not fail the phase.
func (p *phase) warnf(format string, args ...any) {
	p.warnings = append(p.warnings, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	file := flag.String("file", "", "path to the grouped CSV")
	schemaName := flag.String("schema", "state", "dataset schema: state or msa")
	top := flag.Int("top", 10, "number of top regions to rank")
	flag.Parse()

	if *file == "" || *top <= 0 {
		flag.Usage()
		os.Exit(1)
	}

	schema, err := schemaFor(*schemaName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}

	os.Exit(run(os.Stdout, *file, *schemaName, schema, *top))
}

func schemaFor(name string) (domain.Schema, error) {
	switch name {
	case "state":
		return domain.StateSchema, nil
	case "msa":
		return domain.MSASchema, nil
	}
	return domain.Schema{}, fmt.Errorf("unknown schema %q: must be state or msa", name)
}

func run(w io.Writer, path, schemaName string, schema domain.Schema, top int) int {
	fmt.Fprintln(w, "=== Patent Data Validation ===")
	fmt.Fprintln(w)

	t, err := domain.Load(path, domain.LoadOptions{})
	if err != nil {
		fmt.Fprintf(w, "FATAL: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateHeader(t, schema),
		validateCounts(t, schema),
		validateNames(t, schema, schemaName == "state"),
		validateCoordinates(t, schema),
		validateRanking(t, schema, top),
	}

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-36s %s\n", p.name, status)
	}

	fmt.Fprintln(w)
	if regions, err := domain.Regions(t, schema); err == nil {
		fmt.Fprintf(w, "Rows: %d, total patents: %s\n", t.Len(), humanize.Comma(domain.TotalPatents(regions)))
	} else {
		fmt.Fprintf(w, "Rows: %d\n", t.Len())
	}

	for _, p := range phases {
		if p.passed() && len(p.warnings) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
		for _, warn := range p.warnings {
			fmt.Fprintf(w, "  [warn] %s\n", warn)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(w, "\nValidation FAILED.")
	return 1
}

// ── Phase 1: Header ──

func validateHeader(t *domain.Table, s domain.Schema) *phase {
	p := &phase{name: "Phase 1: Header"}
	for _, col := range []string{s.Name, s.Count, s.Latitude, s.Longitude} {
		if col == "" {
			continue
		}
		if _, err := t.ColumnIndex(col); err != nil {
			p.errorf("%v", err)
		}
	}
	if t.Len() == 0 {
		p.errorf("no data rows")
	}
	return p
}

// ── Phase 2: Counts ──
// Every row is projected on its own so that all bad rows are reported.

func validateCounts(t *domain.Table, s domain.Schema) *phase {
	p := &phase{name: "Phase 2: Counts"}
	if !hasColumns(t, s.Name, s.Count) {
		p.errorf("name or count column missing")
		return p
	}
	countOnly := domain.Schema{Name: s.Name, Count: s.Count}
	for _, r := range t.Rows {
		if err := projectRow(t, r, countOnly); err != nil {
			p.errorf("%v", err)
		}
	}
	return p
}

// ── Phase 3: Names ──

func validateNames(t *domain.Table, s domain.Schema, stateCodes bool) *phase {
	p := &phase{name: "Phase 3: Region Names"}
	col, err := t.ColumnIndex(s.Name)
	if err != nil {
		p.errorf("%v", err)
		return p
	}

	seen := make(map[string]int, t.Len())
	for _, r := range t.Rows {
		name := strings.TrimSpace(r.Values[col])
		if name == "" {
			p.errorf("line %d: empty region name", r.Line)
			continue
		}
		key := strings.ToUpper(name)
		if first, dup := seen[key]; dup {
			p.errorf("line %d: duplicate region %q (first at line %d)", r.Line, name, first)
			continue
		}
		seen[key] = r.Line
		if stateCodes && page.DisplayName(key) == key {
			p.errorf("line %d: %q is not a USPS state code", r.Line, name)
		}
	}
	return p
}

// ── Phase 4: Coordinates ──

func validateCoordinates(t *domain.Table, s domain.Schema) *phase {
	p := &phase{name: "Phase 4: Coordinates"}
	if !s.HasCoordinates() {
		return p
	}
	if !hasColumns(t, s.Name, s.Count, s.Latitude, s.Longitude) {
		p.errorf("coordinate columns missing")
		return p
	}
	for _, r := range t.Rows {
		err := projectRow(t, r, s)
		var fe *domain.FormatError
		if errors.As(err, &fe) && fe.Column == s.Count {
			continue // reported by phase 2
		}
		if err != nil {
			p.errorf("%v", err)
			continue
		}
		lat, _ := t.Value(r, s.Latitude)
		lon, _ := t.Value(r, s.Longitude)
		if strings.TrimSpace(lat) == "" && strings.TrimSpace(lon) == "" {
			name, _ := t.Value(r, s.Name)
			p.warnf("line %d: %q has no coordinates and needs geocoding", r.Line, name)
		}
	}
	return p
}

// ── Phase 5: Ranking ──

func validateRanking(t *domain.Table, s domain.Schema, n int) *phase {
	p := &phase{name: fmt.Sprintf("Phase 5: Top %d Ranking", n)}
	topT, err := domain.TopN(t, s.Count, n)
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	if want := min(n, t.Len()); topT.Len() != want {
		p.errorf("expected %d ranked rows, got %d", want, topT.Len())
	}

	regions, err := domain.Regions(topT, domain.Schema{Name: s.Name, Count: s.Count})
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	for i := 1; i < len(regions); i++ {
		prev, cur := regions[i-1], regions[i]
		switch {
		case cur.PatentCount > prev.PatentCount:
			p.errorf("rank %d (%s, %d) exceeds rank %d (%s, %d)", i+1, cur.Name, cur.PatentCount, i, prev.Name, prev.PatentCount)
		case cur.PatentCount == prev.PatentCount && cur.Line < prev.Line:
			p.errorf("tie at %d between %s and %s breaks file order", cur.PatentCount, prev.Name, cur.Name)
		}
	}
	return p
}

func hasColumns(t *domain.Table, names ...string) bool {
	for _, n := range names {
		if _, err := t.ColumnIndex(n); err != nil {
			return false
		}
	}
	return true
}

func projectRow(t *domain.Table, r domain.Row, s domain.Schema) error {
	single, err := domain.NewTable(t.Columns, []domain.Row{r})
	if err != nil {
		return err
	}
	_, err = domain.Regions(single, s)
	return err
}
