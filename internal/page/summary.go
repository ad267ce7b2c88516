package page

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/couchcryptid/patent-dashboard/internal/domain"
)

// Bullet is one summary point with optional nested points.
type Bullet struct {
	Text  string
	Items []string
}

// Summary derives the summary bullets from ds.
func Summary(ds *domain.Dataset, c Copy) []Bullet {
	if len(ds.Top) == 0 || ds.Total == 0 {
		return []Bullet{{Text: fmt.Sprintf("No patent counts were found for %s.", c.Scope)}}
	}

	leader := ds.Top[0]
	overview := Bullet{
		Text: fmt.Sprintf("The map provides an overview of patent distribution across %s in 2015:", c.Scope),
		Items: []string{
			fmt.Sprintf("%s leads with %s patents, %s of the total.",
				DisplayName(leader.Name), humanize.Comma(leader.PatentCount), percent(leader.PatentCount, ds.Total)),
		},
	}
	if others := len(ds.Regions) - 1; others > 0 {
		rest := ds.Total - leader.PatentCount
		overview.Items = append(overview.Items, fmt.Sprintf("The other %d %s share the remaining %s patents.",
			others, c.Unit, humanize.Comma(rest)))
	}

	ranked := Bullet{
		Text:  fmt.Sprintf("The bar chart shows the top %d %s with the highest patent counts in 2015:", len(ds.Top), c.Unit),
		Items: []string{fmt.Sprintf("%s tops the list with %s patents.", DisplayName(leader.Name), humanize.Comma(leader.PatentCount))},
	}
	switch len(ds.Top) {
	case 1:
	case 2:
		ranked.Items = append(ranked.Items, fmt.Sprintf("%s follows with %s patents.",
			DisplayName(ds.Top[1].Name), humanize.Comma(ds.Top[1].PatentCount)))
	default:
		ranked.Items = append(ranked.Items, fmt.Sprintf("%s follows with %s patents, and %s with %s.",
			DisplayName(ds.Top[1].Name), humanize.Comma(ds.Top[1].PatentCount),
			DisplayName(ds.Top[2].Name), humanize.Comma(ds.Top[2].PatentCount)))
	}
	if rest := ds.Top[min(3, len(ds.Top)):]; len(rest) > 0 {
		ranked.Items = append(ranked.Items, rangeSentence(rest))
	}
	ranked.Items = append(ranked.Items, fmt.Sprintf("Together the top %d hold %s of all patents.",
		len(ds.Top), percent(domain.TotalPatents(ds.Top), ds.Total)))

	return []Bullet{overview, ranked}
}

func rangeSentence(rest []domain.Region) string {
	names := make([]string, len(rest))
	for i, r := range rest {
		names[i] = DisplayName(r.Name)
	}
	hi, lo := rest[0], rest[len(rest)-1]
	if len(rest) == 1 {
		return fmt.Sprintf("%s is next with %s patents.", names[0], humanize.Comma(hi.PatentCount))
	}
	return fmt.Sprintf("%s have between %s and %s patents.",
		joinNames(names), humanize.Comma(hi.PatentCount), humanize.Comma(lo.PatentCount))
}

// joinNames renders "A, B, and C".
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	}
	return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
}

func percent(part, total int64) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", math.Round(float64(part)/float64(total)*100))
}
