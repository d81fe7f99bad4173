package engine

import (
	"github.com/shopspring/decimal"
)

// Change is the derived month-over-month metric of one column
type Change struct {
	Latest   decimal.Decimal
	Previous decimal.Decimal
	Delta    decimal.Decimal
}

// Delta computes latest vs previous row for column. With fewer than two rows
// the delta is zero; with no rows everything is zero.
func (t *Table) Delta(column string) Change {
	values := t.Column(column)
	n := len(values)
	switch {
	case n == 0:
		return Change{}
	case n == 1:
		return Change{Latest: values[0], Previous: values[0]}
	}
	latest, previous := values[n-1], values[n-2]
	return Change{
		Latest:   latest,
		Previous: previous,
		Delta:    latest.Sub(previous),
	}
}

// Aggregate computes Change for every column of the table
func (t *Table) Aggregate() map[string]Change {
	out := make(map[string]Change, len(t.Columns))
	for _, c := range t.Columns {
		out[c] = t.Delta(c)
	}
	return out
}
