package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Column names of the persisted labor-statistics table
const (
	DateColumn            = "date"
	UnemploymentRate      = "Unemployment_Rate"
	TotalNonfarmEmployees = "Total_Nonfarm_Employees"
	AvgHourlyEarnings     = "Avg_Hourly_Earnings"
	AvgWeeklyHours        = "Avg_Weekly_Hours"
)

// MetricKind selects how a value is displayed
type MetricKind string

const (
	KindRate      MetricKind = "rate"
	KindEmployees MetricKind = "employees"
	KindEarnings  MetricKind = "earnings"
	KindHours     MetricKind = "hours"
)

// SeriesDescriptor maps an opaque BLS series ID to its table column and display settings
type SeriesDescriptor struct {
	ID      string
	Column  string
	Label   string     // summary card label
	Legend  string     // chart trace label
	Color   string     // chart trace color
	Kind    MetricKind // value formatting
	Inverse bool       // an increase is unfavorable
}

// TrackedSeries is the fixed set of indicators the fetcher requests, in display order.
var TrackedSeries = []SeriesDescriptor{
	{ID: "LNS14000000", Column: UnemploymentRate, Label: "Unemployment Rate", Legend: "Unemployment Rate (%)", Color: "#FF6B6B", Kind: KindRate, Inverse: true},
	{ID: "CES0000000001", Column: TotalNonfarmEmployees, Label: "Total Nonfarm Employees", Legend: "Total Nonfarm Employees (thousands)", Color: "#4ECDC4", Kind: KindEmployees},
	{ID: "CES0500000003", Column: AvgHourlyEarnings, Label: "Avg Hourly Earnings", Legend: "Avg Hourly Earnings ($)", Color: "#45B7D1", Kind: KindEarnings},
	{ID: "CES0500000007", Column: AvgWeeklyHours, Label: "Avg Weekly Hours", Legend: "Avg Weekly Hours", Color: "#FFA07A", Kind: KindHours},
}

// SeriesIDs returns the BLS identifiers of TrackedSeries
func SeriesIDs() []string {
	ids := make([]string, len(TrackedSeries))
	for i, s := range TrackedSeries {
		ids[i] = s.ID
	}
	return ids
}

// SeriesNames returns the ID -> column name mapping of TrackedSeries
func SeriesNames() map[string]string {
	names := make(map[string]string, len(TrackedSeries))
	for _, s := range TrackedSeries {
		names[s.ID] = s.Column
	}
	return names
}

// DescriptorByColumn looks up a tracked series by its table column
func DescriptorByColumn(column string) (SeriesDescriptor, bool) {
	for _, s := range TrackedSeries {
		if s.Column == column {
			return s, true
		}
	}
	return SeriesDescriptor{}, false
}

// Observation is one (date, indicator, value) data point in long format.
// Valid is false when the API value could not be parsed.
type Observation struct {
	Date   time.Time
	Series string
	Value  decimal.Decimal
	Valid  bool
}

// DeltaColor mirrors the favorable/unfavorable coloring of a metric card
type DeltaColor string

const (
	DeltaGreen DeltaColor = "green"
	DeltaRed   DeltaColor = "red"
	DeltaGray  DeltaColor = "gray"
)

// View is everything the dashboard page shows for one (table, filters) pair
type View struct {
	Title      string     `json:"title"`
	RangeStart time.Time  `json:"range_start"`
	RangeEnd   time.Time  `json:"range_end"`
	RangeLabel string     `json:"range_label"`
	TimeRange  string     `json:"time_range"`
	Selected   []string   `json:"selected_series"`
	Cards      []Card     `json:"cards"`
	Chart      *ChartSpec `json:"chart,omitempty"`
	Prompt     string     `json:"prompt,omitempty"`
	RawColumns []string   `json:"raw_columns"`
	RawRows    []RawRow   `json:"raw_rows"`
	Order      string     `json:"order"`
}

// Card is a summary metric: latest value and change vs the previous month
type Card struct {
	Column     string     `json:"column"`
	Label      string     `json:"label"`
	Value      string     `json:"value"`
	Delta      string     `json:"delta"`
	DeltaColor DeltaColor `json:"delta_color"`
	Inverse    bool       `json:"inverse"`
}

// ChartSpec describes a multi-series line chart sharing one time axis
type ChartSpec struct {
	Title  string  `json:"title"`
	XAxis  string  `json:"x_axis"`
	YAxis  string  `json:"y_axis"`
	Height int     `json:"height"`
	Legend Legend  `json:"legend"`
	Traces []Trace `json:"traces"`
}

// Legend placement; Orientation "h" with YAnchor "bottom" at Y>1 sits above the plot
type Legend struct {
	Orientation string  `json:"orientation"`
	XAnchor     string  `json:"xanchor"`
	YAnchor     string  `json:"yanchor"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
}

// Trace is one line+marker series of a chart
type Trace struct {
	Column    string      `json:"column"`
	Name      string      `json:"name"`
	Color     string      `json:"color"`
	LineWidth float64     `json:"line_width"`
	Mode      string      `json:"mode"`
	X         []time.Time `json:"x"`
	Y         []float64   `json:"y"`
}

// RawRow is one row of the raw-data panel, values in RawColumns order
type RawRow struct {
	Date   string   `json:"date"`
	Values []string `json:"values"`
}
