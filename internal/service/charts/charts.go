// Package charts prepares link statistics for rendering as charts.
package charts

import (
	"math"
	"sort"

	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/modellink"
)

// Kind is a chart type as understood by the browser side charting library.
type Kind string

const (
	KindBar       Kind = "bar"
	KindLine      Kind = "line"
	KindDoughnut  Kind = "doughnut"
	KindPolarArea Kind = "polarArea"
)

const (
	scaleSteps = 10
	fillAlpha  = "0.75"
	lineAlpha  = "1"
	dayKeyLen  = 8
)

// LegendItem is one entry of a segment chart legend.
type LegendItem struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Value int    `json:"value"`
}

// Chart defines everything needed to draw a single chart.
type Chart struct {
	Kind      Kind         `json:"kind"`
	Title     string       `json:"title"`
	Labels    []string     `json:"labels"`
	Values    []int        `json:"values"`
	Fill      string       `json:"fill,omitempty"`
	Stroke    string       `json:"stroke,omitempty"`
	Colors    []string     `json:"colors,omitempty"`
	Steps     int          `json:"steps,omitempty"`
	StepWidth int          `json:"stepWidth,omitempty"`
	ScaleMax  int          `json:"scaleMax,omitempty"`
	Legend    []LegendItem `json:"legend,omitempty"`
}

// Empty reports whether the chart has nothing to draw.
func (c *Chart) Empty() bool {
	return c == nil || len(c.Values) == 0
}

// Set groups the charts of a single link.
type Set struct {
	Browsers  *Chart `json:"browsers"`
	Platforms *Chart `json:"platforms"`
	Days      *Chart `json:"days"`
	Referrers *Chart `json:"referrers"`
	Countries *Chart `json:"countries"`
}

// Point is a labelled value.
type Point struct {
	Label string
	Value int
}

// Builder turns statistics into charts.
type Builder struct {
	palette *Palette
}

// NewBuilder initializes a Builder.
func NewBuilder(p *Palette) *Builder {
	if p == nil {
		p = NewPalette(nil)
	}
	return &Builder{palette: p}
}

// Build prepares all charts for the given statistics.
func (b *Builder) Build(stats *modellink.Statistics) *Set {
	if stats == nil {
		stats = &modellink.Statistics{}
	}
	return &Set{
		Browsers:  b.Bar("Browsers", stats.Browsers),
		Platforms: b.Bar("Platforms", stats.Platforms),
		Days:      b.Line("Clicks per day", Days(stats.Hours)),
		Referrers: b.Segments(KindDoughnut, "Referrers", stats.Referrers),
		Countries: b.Segments(KindPolarArea, "Countries", stats.Countries),
	}
}

// Bar returns a bar chart of the given breakdown ordered by value descending.
func (b *Builder) Bar(title string, data map[string]int) *Chart {
	return b.series(KindBar, title, Ranked(data))
}

// Line returns a line chart keeping the order of points.
func (b *Builder) Line(title string, points []Point) *Chart {
	return b.series(KindLine, title, points)
}

// Segments returns a doughnut or polar area chart where every segment has its own colour.
func (b *Builder) Segments(kind Kind, title string, data map[string]int) *Chart {
	points := Ranked(data)
	c := &Chart{
		Kind:   kind,
		Title:  title,
		Labels: make([]string, 0, len(points)),
		Values: make([]int, 0, len(points)),
		Colors: make([]string, 0, len(points)),
		Legend: make([]LegendItem, 0, len(points)),
	}
	for _, pt := range points {
		color := b.palette.Hex()
		c.Labels = append(c.Labels, pt.Label)
		c.Values = append(c.Values, pt.Value)
		c.Colors = append(c.Colors, color)
		c.Legend = append(c.Legend, LegendItem{Name: pt.Label, Color: color, Value: pt.Value})
	}
	return c
}

func (b *Builder) series(kind Kind, title string, points []Point) *Chart {
	colors := b.palette.RGBA(fillAlpha, lineAlpha)
	c := &Chart{
		Kind:   kind,
		Title:  title,
		Labels: make([]string, 0, len(points)),
		Values: make([]int, 0, len(points)),
		Fill:   colors[0],
		Stroke: colors[1],
		Steps:  scaleSteps,
	}
	max := 0
	for _, pt := range points {
		c.Labels = append(c.Labels, pt.Label)
		c.Values = append(c.Values, pt.Value)
		if pt.Value > max {
			max = pt.Value
		}
	}
	c.ScaleMax, c.StepWidth = Scale(max)
	return c
}

// Scale returns the axis maximum and the step width for a series whose largest value is max.
func Scale(max int) (scaleMax, stepWidth int) {
	scaleMax = int(math.Round(float64(max)/10))*10 + 10
	return scaleMax, scaleMax / scaleSteps
}

// Ranked orders a breakdown by value descending, equal values by label.
func Ranked(data map[string]int) []Point {
	points := make([]Point, 0, len(data))
	for k, v := range data {
		points = append(points, Point{Label: k, Value: v})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Value != points[j].Value {
			return points[i].Value > points[j].Value
		}
		return points[i].Label < points[j].Label
	})
	return points
}

// Days sums hourly counters into daily totals labelled YYYY-MM-DD and ordered by day.
//
// Keys are expected to start with eight digits (YYYYMMDD), others are skipped.
func Days(hours map[string]int) []Point {
	totals := make(map[string]int)
	for k, v := range hours {
		if len(k) < dayKeyLen || !digits(k[:dayKeyLen]) {
			continue
		}
		day := k[:4] + "-" + k[4:6] + "-" + k[6:8]
		totals[day] += v
	}
	points := make([]Point, 0, len(totals))
	for k, v := range totals {
		points = append(points, Point{Label: k, Value: v})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Label < points[j].Label
	})
	return points
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
