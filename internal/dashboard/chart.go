package dashboard

import (
	"errors"
	"io"
	"math"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"laborstats/internal/models"
)

const markerWidth = 3

// x-axis padding around a lone date; go-chart rejects a zero-width x range
const singleDatePad = 15 * 24 * time.Hour

// relative y padding when every plotted value is equal
const flatValuePad = 0.05

// RenderChartSVG draws a ChartSpec as SVG with a horizontal legend above the plot
func RenderChartSVG(w io.Writer, spec *models.ChartSpec, width int) error {
	if spec == nil || len(spec.Traces) == 0 {
		return errors.New("dashboard: nothing to plot")
	}

	series := make([]chart.Series, 0, len(spec.Traces))
	for _, tr := range spec.Traces {
		series = append(series, chart.TimeSeries{
			Name:    tr.Name,
			XValues: tr.X,
			YValues: tr.Y,
			Style:   traceStyle(tr),
		})
	}

	graph := chart.Chart{
		Title:      spec.Title,
		Width:      width,
		Height:     spec.Height,
		Background: chart.Style{Padding: chart.Box{Top: 60, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           spec.XAxis,
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 2006"),
		},
		YAxis:  chart.YAxis{Name: spec.YAxis},
		Series: series,
	}
	if d, ok := singleDate(spec.Traces); ok {
		graph.XAxis.Range = &chart.ContinuousRange{
			Min: chart.TimeToFloat64(d.Add(-singleDatePad)),
			Max: chart.TimeToFloat64(d.Add(singleDatePad)),
		}
	}
	if v, ok := flatValue(spec.Traces); ok {
		pad := math.Abs(v) * flatValuePad
		if pad == 0 {
			pad = 1
		}
		graph.YAxis.Range = &chart.ContinuousRange{Min: v - pad, Max: v + pad}
	}
	graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}

	return graph.Render(chart.SVG, w)
}

// singleDate reports the only x value when all traces share one date
func singleDate(traces []models.Trace) (time.Time, bool) {
	var only time.Time
	found := false
	for _, tr := range traces {
		for _, x := range tr.X {
			if !found {
				only, found = x, true
			} else if !x.Equal(only) {
				return time.Time{}, false
			}
		}
	}
	return only, found
}

// flatValue reports the only y value when all plotted points are equal
func flatValue(traces []models.Trace) (float64, bool) {
	var only float64
	found := false
	for _, tr := range traces {
		for _, y := range tr.Y {
			if !found {
				only, found = y, true
			} else if y != only {
				return 0, false
			}
		}
	}
	return only, found
}

// traceStyle renders lines with markers in the trace's fixed color
func traceStyle(tr models.Trace) chart.Style {
	col := drawing.ColorFromHex(strings.TrimPrefix(tr.Color, "#"))
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: tr.LineWidth,
		DotColor:    col,
		DotWidth:    markerWidth,
	}
}
