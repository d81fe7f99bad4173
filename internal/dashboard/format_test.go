package dashboard

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"laborstats/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		value string
		kind  models.MetricKind
		want  string
	}{
		{"4.963", models.KindRate, "5.0%"},
		{"3.95", models.KindRate, "4.0%"},
		{"3.9", models.KindRate, "3.9%"},
		{"150234", models.KindEmployees, "150,234K"},
		{"157581.5", models.KindEmployees, "157,582K"},
		{"999", models.KindEmployees, "999K"},
		{"28.5", models.KindEarnings, "$28.50"},
		{"34.555", models.KindEarnings, "$34.56"},
		{"34.3", models.KindHours, "34.3"},
		{"34.25", models.KindHours, "34.3"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatValue(d(tc.value), tc.kind), "%s %s", tc.value, tc.kind)
	}
}

func TestFormatValueFromFloat(t *testing.T) {
	assert.Equal(t, "4.0%", FormatValue(decimal.NewFromFloat(3.95), models.KindRate))
	assert.Equal(t, "$28.50", FormatValue(decimal.NewFromFloat(28.5), models.KindEarnings))
}

func TestFormatValueIdempotent(t *testing.T) {
	v := d("3.95")
	assert.Equal(t, FormatValue(v, models.KindRate), FormatValue(v, models.KindRate))
	assert.Equal(t, "3.95", v.String(), "formatting does not modify the value")
}

func TestFormatDelta(t *testing.T) {
	cases := []struct {
		value string
		kind  models.MetricKind
		want  string
	}{
		{"0.1", models.KindRate, "+0.1%"},
		{"-0.1", models.KindRate, "-0.1%"},
		{"0", models.KindRate, "+0.0%"},
		{"-0.04", models.KindRate, "+0.0%"},
		{"-0.05", models.KindRate, "-0.1%"},
		{"0.05", models.KindRate, "+0.1%"},
		{"310", models.KindEmployees, "+310K"},
		{"-1234.4", models.KindEmployees, "-1,234K"},
		{"-1234.5", models.KindEmployees, "-1,235K"},
		{"0.11", models.KindEarnings, "$+0.11"},
		{"-0.125", models.KindEarnings, "$-0.13"},
		{"0", models.KindHours, "+0.0"},
		{"-0.2", models.KindHours, "-0.2"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatDelta(d(tc.value), tc.kind), "%s %s", tc.value, tc.kind)
	}
}

func TestDeltaColor(t *testing.T) {
	// Unemployment: increase is bad
	assert.Equal(t, models.DeltaRed, DeltaColor(d("0.1"), models.KindRate, true))
	assert.Equal(t, models.DeltaGreen, DeltaColor(d("-0.1"), models.KindRate, true))

	// Others: increase is good
	assert.Equal(t, models.DeltaGreen, DeltaColor(d("310"), models.KindEmployees, false))
	assert.Equal(t, models.DeltaRed, DeltaColor(d("-0.02"), models.KindEarnings, false))

	// Rounds to zero at display precision
	assert.Equal(t, models.DeltaGray, DeltaColor(d("0"), models.KindHours, false))
	assert.Equal(t, models.DeltaGray, DeltaColor(d("0.04"), models.KindRate, true))
	assert.Equal(t, models.DeltaGray, DeltaColor(d("0.4"), models.KindEmployees, false))
}
