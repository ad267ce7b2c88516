package page

import "fmt"

// Copy is the fixed prose of the dashboard for one dataset preset.
type Copy struct {
	Heading    string
	MapTitle   string
	MapIntro   string
	TopTitle   string
	TopIntro   string
	ShareTitle string
	ShareIntro string
	CountLabel string // y-axis label of the ranked chart

	// Unit is the plural noun for regions, e.g. "states".
	Unit string
	// Scope names the whole population, e.g. "U.S. states".
	Scope string
}

// CopyFor returns the prose for the named dataset preset with n substituted
// into the ranked titles. Unknown presets get the state copy.
func CopyFor(dataset string, n int) Copy {
	switch dataset {
	case "msa":
		return Copy{
			Heading:    "Patents Visualization",
			MapTitle:   "U.S. Patents by Metropolitan Area in 2015",
			MapIntro:   "The map below places each metropolitan statistical area at its centroid. Larger, darker bubbles indicate a higher number of patents.",
			TopTitle:   fmt.Sprintf("Top %d Metropolitan Areas with Highest Number of Patents in 2015", n),
			TopIntro:   fmt.Sprintf("The bar chart below highlights the top %d metropolitan areas with the highest number of patents in 2015. The exact count of patents is displayed above each bar for clarity.", n),
			ShareTitle: fmt.Sprintf("Share of Patents Held by the Top %d", n),
			ShareIntro: fmt.Sprintf("Each slice is one of the top %d metropolitan areas; the grey slice combines all other areas.", n),
			CountLabel: "Number of Patents",
			Unit:       "metropolitan areas",
			Scope:      "U.S. metropolitan areas",
		}
	default:
		return Copy{
			Heading:    "Patents Visualization",
			MapTitle:   "U.S. Patents Distribution in 2015",
			MapIntro:   "The map below shows the distribution of patents across various U.S. States in 2015. Darker regions indicate a higher number of patents.",
			TopTitle:   fmt.Sprintf("Top %d States with Highest Number of Patents in 2015", n),
			TopIntro:   fmt.Sprintf("The bar chart below highlights the top %d states with the highest number of patents in 2015. The exact count of patents is displayed above each bar for clarity.", n),
			ShareTitle: fmt.Sprintf("Share of Patents Held by the Top %d States", n),
			ShareIntro: fmt.Sprintf("Each slice is one of the top %d states; the grey slice combines all other states.", n),
			CountLabel: "Number of Patents",
			Unit:       "states",
			Scope:      "U.S. states",
		}
	}
}

var stateNames = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas", "CA": "California",
	"CO": "Colorado", "CT": "Connecticut", "DE": "Delaware", "DC": "District of Columbia",
	"FL": "Florida", "GA": "Georgia", "HI": "Hawaii", "ID": "Idaho", "IL": "Illinois",
	"IN": "Indiana", "IA": "Iowa", "KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana",
	"ME": "Maine", "MD": "Maryland", "MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota",
	"MS": "Mississippi", "MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico", "NY": "New York",
	"NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio", "OK": "Oklahoma", "OR": "Oregon",
	"PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina", "SD": "South Dakota",
	"TN": "Tennessee", "TX": "Texas", "UT": "Utah", "VT": "Vermont", "VA": "Virginia",
	"WA": "Washington", "WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming",
}

// DisplayName expands a USPS state code to the state name. Other names are
// returned as is.
func DisplayName(name string) string {
	if full, ok := stateNames[name]; ok {
		return full
	}
	return name
}
