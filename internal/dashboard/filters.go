package dashboard

import (
	"errors"
	"fmt"

	"laborstats/internal/engine"
	"laborstats/internal/models"
)

var (
	ErrUnknownTimeRange = errors.New("dashboard: unknown time range")
	ErrUnknownSeries    = errors.New("dashboard: unknown series")
	ErrUnknownOrder     = errors.New("dashboard: unknown sort order")
)

// TimeRange is one of the selectable chart windows
type TimeRange string

const (
	FullRange    TimeRange = "Full Range"
	Last12Months TimeRange = "Last 12 Months"
	Last6Months  TimeRange = "Last 6 Months"
)

// TimeRanges lists the selectable options; the first is the default
var TimeRanges = []TimeRange{FullRange, Last12Months, Last6Months}

// SortOrder of the raw-data panel by date
type SortOrder string

const (
	Descending SortOrder = "desc"
	Ascending  SortOrder = "asc"
)

// Filters is the complete user selection driving one render
type Filters struct {
	Range  TimeRange
	Series []string
	Order  SortOrder
}

// DefaultFilters shows the full range with the rate and employment series
func DefaultFilters() Filters {
	return Filters{
		Range:  FullRange,
		Series: []string{models.UnemploymentRate, models.TotalNonfarmEmployees},
		Order:  Descending,
	}
}

// ParseTimeRange validates a range option; empty means FullRange
func ParseTimeRange(s string) (TimeRange, error) {
	if s == "" {
		return FullRange, nil
	}
	for _, r := range TimeRanges {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTimeRange, s)
}

// ParseSortOrder validates a sort order; empty means Descending
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case "", Descending:
		return Descending, nil
	case Ascending:
		return Ascending, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOrder, s)
}

// ParseSeries validates selected columns against the tracked set, keeping
// selection order and dropping repeats. An empty selection is valid.
func ParseSeries(values []string) ([]string, error) {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if _, ok := models.DescriptorByColumn(v); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSeries, v)
		}
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out, nil
}

func (r TimeRange) rows() int {
	switch r {
	case Last12Months:
		return 12
	case Last6Months:
		return 6
	}
	return 0
}

// FilterRange keeps the chronologically last N rows for the "Last N Months"
// options; FullRange returns t itself.
func FilterRange(t *engine.Table, r TimeRange) (*engine.Table, error) {
	if _, err := ParseTimeRange(string(r)); err != nil {
		return nil, err
	}
	n := r.rows()
	if n == 0 {
		return t, nil
	}
	return t.Tail(n), nil
}
