package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// Table holds the wide labor-statistics table in Struct-of-Arrays format.
// Dates are strictly increasing; every column has exactly len(Dates) values.
type Table struct {
	Dates   []time.Time
	Columns []string // indicator columns in file order, "date" excluded
	Values  map[string][]decimal.Decimal
}

// NewTable allocates an empty table with the given indicator columns
func NewTable(columns []string) *Table {
	t := &Table{
		Columns: append([]string(nil), columns...),
		Values:  make(map[string][]decimal.Decimal, len(columns)),
	}
	for _, c := range columns {
		t.Values[c] = nil
	}
	return t
}

// Len returns the number of rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Dates)
}

// HasColumn reports whether the table carries column
func (t *Table) HasColumn(column string) bool {
	_, ok := t.Values[column]
	return ok
}

// Column returns the values of one indicator, nil if absent
func (t *Table) Column(column string) []decimal.Decimal {
	return t.Values[column]
}

// Row returns the values of row i in Columns order
func (t *Table) Row(i int) []decimal.Decimal {
	row := make([]decimal.Decimal, len(t.Columns))
	for j, c := range t.Columns {
		row[j] = t.Values[c][i]
	}
	return row
}

// AppendRow adds a row; values must be in Columns order
func (t *Table) AppendRow(date time.Time, values []decimal.Decimal) {
	t.Dates = append(t.Dates, date)
	for j, c := range t.Columns {
		t.Values[c] = append(t.Values[c], values[j])
	}
}

// Tail returns a table holding the last min(n, Len) rows. The receiver is not modified.
func (t *Table) Tail(n int) *Table {
	start := t.Len() - n
	if start < 0 {
		start = 0
	}
	return t.slice(start, t.Len())
}

func (t *Table) slice(start, end int) *Table {
	out := NewTable(t.Columns)
	out.Dates = t.Dates[start:end:end]
	for _, c := range t.Columns {
		out.Values[c] = t.Values[c][start:end:end]
	}
	return out
}

// DateRange returns the first and last dates; ok is false for an empty table
func (t *Table) DateRange() (first, last time.Time, ok bool) {
	if t.Len() == 0 {
		return time.Time{}, time.Time{}, false
	}
	return t.Dates[0], t.Dates[len(t.Dates)-1], true
}
