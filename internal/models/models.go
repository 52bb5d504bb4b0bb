package models

import (
	"encoding/json"
	"time"

	"cloud.google.com/go/civil"
	"github.com/guregu/null/v5"
)

// DashboardData is everything one render of the dashboard needs.
type DashboardData struct {
	Selection        Selection `json:"selection"`
	ShowRaw          bool      `json:"show_raw"`
	SubindexOptions  []string  `json:"subindex_options"`
	CompetingOptions []string  `json:"competing_options"`
	MainIndex        string    `json:"main_index"`

	Upper Panel     `json:"upper"`
	Lower Panel     `json:"lower"`
	Raw   *RawPanel `json:"raw,omitempty"`
}

// Panel is one chart area. Exactly one of Chart and Error is set.
type Panel struct {
	Heading string     `json:"heading"`
	Chart   *ChartSpec `json:"chart,omitempty"`
	Error   string     `json:"error,omitempty"`
}

type RawPanel struct {
	Table *RawTable `json:"table,omitempty"`
	Error string    `json:"error,omitempty"`
}

// Selection is the pair of user-chosen columns.
type Selection struct {
	Subindex  string `json:"subindex"`
	Competing string `json:"competing"`
}

type Options struct {
	Subindices []string `json:"subindices"`
	MainIndex  string   `json:"main_index"`
	Competing  []string `json:"competing"`
}

// ChartSpec describes a line chart for the browser renderer.
type ChartSpec struct {
	Title       string                 `json:"title,omitempty"`
	Template    string                 `json:"template"`
	XField      string                 `json:"x_field"`
	YFields     []string               `json:"y_fields"`
	AxisLabels  map[string]string      `json:"axis_labels"`
	Styles      map[string]SeriesStyle `json:"styles,omitempty"`
	XAxisTitle  string                 `json:"x_axis_title"`
	YAxisTitle  string                 `json:"y_axis_title"`
	ShowLegend  bool                   `json:"show_legend"`
	Legend      *Legend                `json:"legend,omitempty"`
	RangeSlider bool                   `json:"range_slider"`
	Series      []Series               `json:"series"`
}

type SeriesStyle struct {
	Color string `json:"color"`
}

// Legend places the legend box; anchors follow plotly naming.
type Legend struct {
	XAnchor string  `json:"xanchor"`
	YAnchor string  `json:"yanchor"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

type Series struct {
	Name   string       `json:"name"`
	Label  string       `json:"label"`
	Style  *SeriesStyle `json:"style,omitempty"`
	Points []Point      `json:"points"`
}

type Point struct {
	X time.Time
	Y null.Float
}

func (p Point) MarshalJSON() ([]byte, error) {
	layout := "2006-01-02 15:04:05"
	if p.X.Hour() == 0 && p.X.Minute() == 0 && p.X.Second() == 0 {
		layout = time.DateOnly
	}
	return json.Marshal(struct {
		X string     `json:"x"`
		Y null.Float `json:"y"`
	}{X: p.X.Format(layout), Y: p.Y})
}

// RawTable is the side-by-side projection of the selected columns.
type RawTable struct {
	Columns []string `json:"columns"`
	Rows    []RawRow `json:"rows"`
}

type RawRow struct {
	Date   *civil.Date  `json:"date"`
	Values []null.Float `json:"values"`
}
