package render

import (
	"github.com/DSchneidersAH/ai-fit-tool/internal/fit"
)

// TaskSeriesName labels the user's polygon on the chart.
const TaskSeriesName = "Your Task"

// Style is the cosmetic appearance of one polygon. Assignment is arbitrary
// and has no effect on scoring.
type Style struct {
	Color string  `json:"color"`
	Fill  string  `json:"fill"`
	Dash  string  `json:"dash"`
	Width float64 `json:"width"`
}

var palette = map[string]Style{
	"Human":  {Color: "#1f77b4", Fill: "rgba(31, 119, 180, 0.08)", Dash: "dash", Width: 1.4},
	"System": {Color: "#ff7f0e", Fill: "rgba(255, 127, 14, 0.08)", Dash: "dash", Width: 1.4},
	"AI":     {Color: "#2ca02c", Fill: "rgba(44, 160, 44, 0.08)", Dash: "dash", Width: 1.4},
}

var (
	defaultStyle = Style{Color: "#6c757d", Fill: "rgba(0,0,0,0.05)", Dash: "dash", Width: 1.4}
	taskStyle    = Style{Color: "#111111", Fill: "rgba(17, 17, 17, 0.12)", Dash: "solid", Width: 2.2}
)

// StyleFor returns the palette entry for a profile name, falling back to a
// neutral default for profiles added through configuration.
func StyleFor(name string) Style {
	if s, ok := palette[name]; ok {
		return s
	}
	return defaultStyle
}

// Series is one named, styled polygon ready for the renderer.
type Series struct {
	Name   string           `json:"name"`
	Values fit.Vector       `json:"values"`
	Points []fit.PolarPoint `json:"points"`
	Style  Style            `json:"style"`
}

// Chart bundles everything the client-side renderer needs: axis labels in
// order, the radial range, and one closed polygon per vector.
type Chart struct {
	Categories []string         `json:"categories"`
	Scale      fit.Scale        `json:"scale"`
	Options    fit.RadarOptions `json:"options"`
	Series     []Series         `json:"series"`
}

// BuildChart assembles profile polygons plus the task polygon on top, all
// with identical radar options so the overlay stays comparable.
func BuildChart(reg *fit.Registry, task fit.Vector, opts fit.RadarOptions) (Chart, error) {
	dims := reg.Dimensions()
	categories := make([]string, len(dims))
	for i, d := range dims {
		categories[i] = d.Name
	}

	chart := Chart{
		Categories: categories,
		Scale:      reg.Scale(),
		Options:    opts,
		Series:     make([]Series, 0, 4),
	}

	for _, p := range reg.Profiles() {
		points, err := fit.BuildPolygon(p.Vector, opts)
		if err != nil {
			return Chart{}, err
		}
		chart.Series = append(chart.Series, Series{
			Name:   p.Name,
			Values: p.Vector,
			Points: points,
			Style:  StyleFor(p.Name),
		})
	}

	taskPoints, err := fit.BuildPolygon(task, opts)
	if err != nil {
		return Chart{}, err
	}
	chart.Series = append(chart.Series, Series{
		Name:   TaskSeriesName,
		Values: task.Clone(),
		Points: taskPoints,
		Style:  taskStyle,
	})

	return chart, nil
}
