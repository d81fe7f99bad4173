package dashboard

import (
	"errors"
	"fmt"
	"time"

	"laborstats/internal/engine"
	"laborstats/internal/models"
)

const (
	PageTitle   = "US Labor Statistics Dashboard"
	ChartTitle  = "US Labor Statistics Trends"
	EmptyPrompt = "Please select at least one series to display."

	chartHeight    = 500
	traceLineWidth = 2
	traceMode      = "lines+markers"
	rawDateLayout  = "2006-01-02"
)

// Render builds the whole dashboard view from the loaded table and the user's
// filters. It is pure: the table is never modified.
func Render(t *engine.Table, f Filters) (*models.View, error) {
	if t == nil {
		return nil, errors.New("dashboard: no table")
	}
	order, err := ParseSortOrder(string(f.Order))
	if err != nil {
		return nil, err
	}
	series, err := ParseSeries(f.Series)
	if err != nil {
		return nil, err
	}
	filtered, err := FilterRange(t, f.Range)
	if err != nil {
		return nil, err
	}

	view := &models.View{
		Title:     PageTitle,
		TimeRange: string(f.Range),
		Selected:  series,
		Order:     string(order),
	}
	if view.TimeRange == "" {
		view.TimeRange = string(FullRange)
	}

	if first, last, ok := t.DateRange(); ok {
		view.RangeStart, view.RangeEnd = first, last
		view.RangeLabel = first.Format("January 2006") + " to " + last.Format("January 2006")
	}

	view.Cards = Cards(filtered)

	if len(series) == 0 {
		view.Prompt = EmptyPrompt
	} else {
		chart, err := BuildChart(filtered, series)
		if err != nil {
			return nil, err
		}
		view.Chart = chart
	}

	view.RawColumns, view.RawRows = RawRows(filtered, order)
	return view, nil
}

// Cards computes one summary card per tracked series present in the table.
// An empty table yields no cards.
func Cards(t *engine.Table) []models.Card {
	if t.Len() == 0 {
		return nil
	}
	changes := t.Aggregate()

	cards := make([]models.Card, 0, len(models.TrackedSeries))
	for _, s := range models.TrackedSeries {
		c, ok := changes[s.Column]
		if !ok {
			continue
		}
		cards = append(cards, models.Card{
			Column:     s.Column,
			Label:      s.Label,
			Value:      FormatValue(c.Latest, s.Kind),
			Delta:      FormatDelta(c.Delta, s.Kind),
			DeltaColor: DeltaColor(c.Delta, s.Kind, s.Inverse),
			Inverse:    s.Inverse,
		})
	}
	return cards
}

// BuildChart creates one line+marker trace per selected column, in selection order
func BuildChart(t *engine.Table, series []string) (*models.ChartSpec, error) {
	spec := &models.ChartSpec{
		Title:  ChartTitle,
		XAxis:  "Date",
		YAxis:  "Value",
		Height: chartHeight,
		Legend: models.Legend{Orientation: "h", YAnchor: "bottom", Y: 1.02, XAnchor: "right", X: 1},
		Traces: make([]models.Trace, 0, len(series)),
	}

	for _, col := range series {
		d, ok := models.DescriptorByColumn(col)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSeries, col)
		}
		if !t.HasColumn(col) {
			return nil, fmt.Errorf("%w: %s", engine.ErrMissingColumn, col)
		}

		values := t.Column(col)
		y := make([]float64, len(values))
		for i, v := range values {
			y[i] = v.InexactFloat64()
		}
		spec.Traces = append(spec.Traces, models.Trace{
			Column:    col,
			Name:      d.Legend,
			Color:     d.Color,
			LineWidth: traceLineWidth,
			Mode:      traceMode,
			X:         append([]time.Time(nil), t.Dates...),
			Y:         y,
		})
	}
	return spec, nil
}

// RawRows lists the table for the raw-data panel, sorted by date
func RawRows(t *engine.Table, order SortOrder) ([]string, []models.RawRow) {
	columns := append([]string(nil), t.Columns...)
	rows := make([]models.RawRow, 0, t.Len())

	for k := 0; k < t.Len(); k++ {
		i := k
		if order != Ascending {
			i = t.Len() - 1 - k
		}
		values := make([]string, len(columns))
		for j, v := range t.Row(i) {
			values[j] = v.String()
		}
		rows = append(rows, models.RawRow{Date: t.Dates[i].Format(rawDateLayout), Values: values})
	}
	return columns, rows
}
