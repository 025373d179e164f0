package widgets

import (
	"fmt"

	"github.com/bryanwahyu/marineiq/internal/domain/roles"
)

var months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var (
	healthIndex = []float64{7.2, 7.4, 6.8, 6.9, 7.1, 6.5, 6.3, 6.4, 6.7, 7.0, 7.3, 7.2}
	seaSurface  = []float64{26.4, 26.8, 27.2, 27.6, 28.1, 28.8, 29.2, 29.4, 28.9, 28.2, 27.4, 26.9}
)

func monthly(vals []float64) []Point {
	pts := make([]Point, len(vals))
	for i, v := range vals {
		pts[i] = Point{Label: months[i], X: float64(i), Y: v}
	}
	return pts
}

func fisheries() []Widget {
	return []Widget{
		{
			ID:    "fleet-status",
			Kind:  KindStats,
			Title: "Global Fishing Fleet Status",
			Stats: []Stat{
				{Label: "Fleet Carbon (kt CO₂e)", Value: "4,120", Tone: "blue"},
				{Label: "Forecasted Catch (tons)", Value: "285.5k", Tone: "green"},
				{Label: "Active Vessels", Value: "847", Tone: "orange"},
			},
		},
		{
			ID:     "top-species",
			Kind:   KindBar,
			Title:  "Global Top 5 Species by Catch Volume (2024)",
			XLabel: "Species",
			YLabel: "Volume",
			Series: []Series{{
				Name: "volume",
				Points: []Point{
					{Label: "Anchoveta", X: 0, Y: 7000},
					{Label: "Alaska Pollock", X: 1, Y: 3500},
					{Label: "Skipjack Tuna", X: 2, Y: 3100},
					{Label: "Atlantic Herring", X: 3, Y: 2000},
					{Label: "Blue Whiting", X: 4, Y: 1800},
				},
			}},
		},
		{
			ID:     "effort-catch",
			Kind:   KindScatter,
			Title:  "Fishing Effort vs. Catch Efficiency",
			XLabel: "Effort (thousands of hours)",
			YLabel: "Catch (thousands of tons)",
			Series: []Series{{
				Name: "catch",
				Points: []Point{
					{Label: "North Atlantic", X: 120, Y: 85},
					{Label: "Pacific", X: 200, Y: 140},
					{Label: "Indian Ocean", X: 180, Y: 95},
					{Label: "Mediterranean", X: 150, Y: 110},
					{Label: "Southern Ocean", X: 300, Y: 180},
					{Label: "Arctic", X: 250, Y: 160},
				},
			}},
		},
	}
}

func biodiversity() []Widget {
	return []Widget{
		{
			ID:    "conservation-status",
			Kind:  KindStats,
			Title: "Global Conservation Status",
			Stats: []Stat{
				{Label: "Ocean Under Protection", Value: "8.2%", Tone: "green"},
				{Label: "Active Biodiversity Alerts", Value: "23", Tone: "orange"},
				{Label: "eDNA Samples (This Month)", Value: "1,247", Tone: "blue"},
			},
		},
		{
			ID:    "edna-diversity",
			Kind:  KindPie,
			Title: "eDNA Species Diversity by Marine Ecosystem",
			Series: []Series{{
				Name: "percentage",
				Points: []Point{
					{Label: "Coral Triangle", Y: 40, Color: "#FF6B6B"},
					{Label: "Amazon Reef", Y: 15, Color: "#4ECDC4"},
					{Label: "Mesoamerican Reef", Y: 15, Color: "#45B7D1"},
					{Label: "Tropical E. Pacific", Y: 10, Color: "#96CEB4"},
					{Label: "Mediterranean Sea", Y: 10, Color: "#FECA57"},
					{Label: "Other", Y: 10, Color: "#A8E6CF"},
				},
			}},
		},
		{
			ID:     "ecosystem-health",
			Kind:   KindLine,
			Title:  "Global Ecosystem Health Index (2024)",
			XLabel: "Month",
			YRange: &Range{Min: 6, Max: 8},
			Series: []Series{{Name: "Ecosystem Health Index", Points: monthly(healthIndex)}},
		},
	}
}

func researcher() []Widget {
	return []Widget{
		{
			ID:    "research-analytics",
			Kind:  KindStats,
			Title: "Research Analytics Overview",
			Stats: []Stat{
				{Label: "Active Datasets", Value: "47", Tone: "purple"},
				{Label: "Correlation Analyses", Value: "156", Tone: "blue"},
				{Label: "Data Coverage", Value: "89%", Tone: "green"},
				{Label: "New Insights", Value: "12", Tone: "orange"},
			},
		},
		{
			ID:      "multi-parameter",
			Kind:    KindLine,
			Title:   "Multi-Parameter Ecosystem Analysis",
			XLabel:  "Month",
			YRange:  &Range{Min: 6, Max: 8},
			Y2Range: &Range{Min: 25, Max: 30},
			Series: []Series{
				{Name: "Ecosystem Health Index", Axis: AxisPrimary, Points: monthly(healthIndex)},
				{Name: "Sea Surface Temperature (°C)", Axis: AxisSecondary, Points: monthly(seaSurface)},
			},
		},
		{
			ID:    "data-integration",
			Kind:  KindSummary,
			Title: "Data Integration Summary",
			Summary: []SummaryRow{
				{Source: "Otolith", Label: "Fish Life History Data", Count: "8,429 samples"},
				{Source: "eDNA", Label: "Environmental DNA Analysis", Count: "12,847 sequences"},
				{Source: "Satellite", Label: "Environmental Parameters", Count: "2.4M data points"},
			},
		},
	}
}

// ForRole returns the widget set of role. Each call builds fresh values,
// so callers may modify the result.
func ForRole(role roles.Role) []Widget {
	switch role {
	case roles.Fisheries:
		return fisheries()
	case roles.Biodiversity:
		return biodiversity()
	case roles.Researcher:
		return researcher()
	}
	return nil
}

// Find looks up a widget of role by id.
func Find(role roles.Role, id string) (Widget, error) {
	for _, w := range ForRole(role) {
		if w.ID == id {
			return w, nil
		}
	}
	return Widget{}, fmt.Errorf("%w: %q for role %s", ErrUnknownWidget, id, role)
}
