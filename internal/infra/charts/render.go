package charts

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bryanwahyu/marineiq/internal/domain/widgets"
)

var ErrNotChart = errors.New("widget has no chart")

const (
	width  = 640
	height = 360
)

var (
	primary   = hex("#3B82F6")
	accent    = hex("#14B8A6")
	secondary = hex("#F97316")
	invisible = drawing.Color{R: 255, G: 255, B: 255, A: 0}
)

// hex parses #RRGGBB. Bad input yields a neutral grey.
func hex(s string) drawing.Color {
	s = strings.TrimPrefix(s, "#")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil || len(s) != 6 {
		return chart.ColorAlternateGray
	}
	return drawing.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// pointStyle renders points only (no connecting line)
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		StrokeColor: invisible,
		DotWidth:    5,
		DotColor:    col,
	}
}

func background() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}}
}

// Render writes the chart of w as SVG.
func Render(out io.Writer, w widgets.Widget) error {
	switch w.Kind {
	case widgets.KindBar:
		return renderBar(out, w)
	case widgets.KindPie:
		return renderPie(out, w)
	case widgets.KindLine:
		return renderLine(out, w)
	case widgets.KindScatter:
		return renderScatter(out, w)
	}
	return fmt.Errorf("%w: %s is %s", ErrNotChart, w.ID, w.Kind)
}

func firstSeries(w widgets.Widget) (widgets.Series, error) {
	if len(w.Series) == 0 || len(w.Series[0].Points) == 0 {
		return widgets.Series{}, fmt.Errorf("%w: %s has no data", ErrNotChart, w.ID)
	}
	return w.Series[0], nil
}

func renderBar(out io.Writer, w widgets.Widget) error {
	s, err := firstSeries(w)
	if err != nil {
		return err
	}
	bars := make([]chart.Value, len(s.Points))
	for i, p := range s.Points {
		bars[i] = chart.Value{
			Label: p.Label,
			Value: p.Y,
			Style: chart.Style{FillColor: primary, StrokeColor: primary},
		}
	}
	bc := chart.BarChart{
		Title:      w.Title,
		Background: background(),
		Width:      width,
		Height:     height,
		BarWidth:   60,
		Bars:       bars,
	}
	return bc.Render(chart.SVG, out)
}

func renderPie(out io.Writer, w widgets.Widget) error {
	s, err := firstSeries(w)
	if err != nil {
		return err
	}
	values := make([]chart.Value, len(s.Points))
	for i, p := range s.Points {
		v := chart.Value{Label: fmt.Sprintf("%s %.0f%%", p.Label, p.Y), Value: p.Y}
		if p.Color != "" {
			c := hex(p.Color)
			v.Style = chart.Style{FillColor: c, StrokeColor: c}
		}
		values[i] = v
	}
	pc := chart.PieChart{
		Title:  w.Title,
		Width:  height,
		Height: height,
		Values: values,
	}
	return pc.Render(chart.SVG, out)
}

func labelTicks(points []widgets.Point) []chart.Tick {
	ticks := make([]chart.Tick, len(points))
	for i, p := range points {
		ticks[i] = chart.Tick{Value: p.X, Label: p.Label}
	}
	return ticks
}

func yRange(r *widgets.Range) chart.Range {
	if r == nil {
		return nil
	}
	return &chart.ContinuousRange{Min: r.Min, Max: r.Max}
}

func xyValues(points []widgets.Point) ([]float64, []float64) {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}

func renderLine(out io.Writer, w widgets.Widget) error {
	first, err := firstSeries(w)
	if err != nil {
		return err
	}
	palette := []drawing.Color{primary, secondary, accent}

	series := make([]chart.Series, 0, len(w.Series))
	for i, s := range w.Series {
		xs, ys := xyValues(s.Points)
		col := palette[i%len(palette)]
		cs := chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: col, StrokeWidth: 2, DotColor: col, DotWidth: 3},
		}
		if s.Axis == widgets.AxisSecondary {
			cs.YAxis = chart.YAxisSecondary
		}
		series = append(series, cs)
	}

	ch := chart.Chart{
		Title:      w.Title,
		Width:      width,
		Height:     height,
		Background: background(),
		XAxis:      chart.XAxis{Name: w.XLabel, Ticks: labelTicks(first.Points)},
		YAxis:      chart.YAxis{Name: w.YLabel, Range: yRange(w.YRange)},
		Series:     series,
	}
	if w.Y2Range != nil {
		ch.YAxisSecondary = chart.YAxis{Range: yRange(w.Y2Range)}
	}
	if len(series) > 1 {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return ch.Render(chart.SVG, out)
}

func renderScatter(out io.Writer, w widgets.Widget) error {
	s, err := firstSeries(w)
	if err != nil {
		return err
	}
	xs, ys := xyValues(s.Points)
	ch := chart.Chart{
		Title:      w.Title,
		Width:      width,
		Height:     height,
		Background: background(),
		XAxis:      chart.XAxis{Name: w.XLabel},
		YAxis:      chart.YAxis{Name: w.YLabel},
		Series: []chart.Series{chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(accent),
		}},
	}
	return ch.Render(chart.SVG, out)
}
