package engine

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"laborstats/internal/models"
)

// ErrNoCompleteRows is returned when no date has a value for every column
var ErrNoCompleteRows = errors.New("engine: no complete rows after pivot")

type cell struct {
	value decimal.Decimal
	valid bool
}

// Pivot reshapes long-format observations into the wide table: one row per
// date, one column per series, ascending by date. Rows missing any column are
// dropped. A repeated (date, series) pair keeps the last observation.
func Pivot(observations []models.Observation) (*Table, error) {
	grid := make(map[time.Time]map[string]cell)
	seen := make(map[string]struct{})

	for _, o := range observations {
		row, ok := grid[o.Date]
		if !ok {
			row = make(map[string]cell)
			grid[o.Date] = row
		}
		row[o.Series] = cell{value: o.Value, valid: o.Valid}
		seen[o.Series] = struct{}{}
	}

	dates := make([]time.Time, 0, len(grid))
	for d := range grid {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	table := NewTable(orderColumns(seen))
	values := make([]decimal.Decimal, len(table.Columns))

	for _, d := range dates {
		row := grid[d]
		complete := true
		for j, c := range table.Columns {
			v, ok := row[c]
			if !ok || !v.valid {
				complete = false
				break
			}
			values[j] = v.value
		}
		if complete {
			table.AppendRow(d, values)
		}
	}

	if table.Len() == 0 {
		return nil, ErrNoCompleteRows
	}
	return table, nil
}

// Unpivot flattens the table back into long-format observations, row by row
func Unpivot(t *Table) []models.Observation {
	out := make([]models.Observation, 0, t.Len()*len(t.Columns))
	for i, d := range t.Dates {
		for _, c := range t.Columns {
			out = append(out, models.Observation{Date: d, Series: c, Value: t.Values[c][i], Valid: true})
		}
	}
	return out
}

// orderColumns puts tracked series first in display order, then any
// unrecognized series alphabetically.
func orderColumns(seen map[string]struct{}) []string {
	columns := make([]string, 0, len(seen))
	for _, s := range models.TrackedSeries {
		if _, ok := seen[s.Column]; ok {
			columns = append(columns, s.Column)
			delete(seen, s.Column)
		}
	}
	extra := make([]string, 0, len(seen))
	for c := range seen {
		extra = append(extra, c)
	}
	sort.Strings(extra)
	return append(columns, extra...)
}
