package widgets

import "errors"

var ErrUnknownWidget = errors.New("unknown widget")

// Kind enum
type Kind string

const (
	KindStats   Kind = "stats"
	KindBar     Kind = "bar"
	KindLine    Kind = "line"
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
	KindSummary Kind = "summary"
)

// Chart reports whether widgets of this kind render to an image.
func (k Kind) Chart() bool {
	switch k {
	case KindBar, KindLine, KindPie, KindScatter:
		return true
	}
	return false
}

type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Tone  string `json:"tone,omitempty"`
}

// Point is one datum. Label names the x category (month, species, region).
type Point struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color,omitempty"`
}

type Axis string

const (
	AxisPrimary   Axis = "primary"
	AxisSecondary Axis = "secondary"
)

type Series struct {
	Name   string  `json:"name"`
	Axis   Axis    `json:"axis,omitempty"`
	Color  string  `json:"color,omitempty"`
	Points []Point `json:"points"`
}

type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type SummaryRow struct {
	Source string `json:"source"`
	Label  string `json:"label"`
	Count  string `json:"count"`
}

// Widget is one card of a role dashboard.
type Widget struct {
	ID      string       `json:"id"`
	Kind    Kind         `json:"kind"`
	Title   string       `json:"title"`
	XLabel  string       `json:"xLabel,omitempty"`
	YLabel  string       `json:"yLabel,omitempty"`
	YRange  *Range       `json:"yRange,omitempty"`
	Y2Range *Range       `json:"y2Range,omitempty"`
	Stats   []Stat       `json:"stats,omitempty"`
	Series  []Series     `json:"series,omitempty"`
	Summary []SummaryRow `json:"summary,omitempty"`
}
