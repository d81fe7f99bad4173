package dashboard

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"laborstats/internal/models"
)

// All display rounding is half away from zero (decimal.Round).

func places(kind models.MetricKind) int32 {
	switch kind {
	case models.KindEmployees:
		return 0
	case models.KindEarnings:
		return 2
	}
	return 1
}

// FormatValue renders a metric value:
// rate "3.9%", employees "150,234K", earnings "$28.50", hours "34.3".
func FormatValue(v decimal.Decimal, kind models.MetricKind) string {
	switch kind {
	case models.KindRate:
		return v.StringFixed(1) + "%"
	case models.KindEmployees:
		return humanize.Comma(v.Round(0).IntPart()) + "K"
	case models.KindEarnings:
		return "$" + v.StringFixed(2)
	case models.KindHours:
		return v.StringFixed(1)
	}
	return v.String()
}

// FormatDelta renders a change with an explicit sign:
// rate "+0.1%", employees "-1,234K", earnings "$+0.12", hours "+0.1".
func FormatDelta(v decimal.Decimal, kind models.MetricKind) string {
	switch kind {
	case models.KindRate:
		return signed(v, 1) + "%"
	case models.KindEmployees:
		r := v.Round(0)
		return sign(r) + humanize.Comma(r.Abs().IntPart()) + "K"
	case models.KindEarnings:
		return "$" + signed(v, 2)
	case models.KindHours:
		return signed(v, 1)
	}
	return sign(v) + v.Abs().String()
}

func signed(v decimal.Decimal, n int32) string {
	r := v.Round(n)
	return sign(r) + r.Abs().StringFixed(n)
}

// zero counts as positive, as in "+0.0"
func sign(v decimal.Decimal) string {
	if v.IsNegative() {
		return "-"
	}
	return "+"
}

// DeltaColor colors a change at display precision: zero is gray, an increase
// is green unless inverse.
func DeltaColor(delta decimal.Decimal, kind models.MetricKind, inverse bool) models.DeltaColor {
	r := delta.Round(places(kind))
	switch {
	case r.IsZero():
		return models.DeltaGray
	case r.IsPositive() != inverse:
		return models.DeltaGreen
	}
	return models.DeltaRed
}
