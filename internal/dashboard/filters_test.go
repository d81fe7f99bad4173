package dashboard

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laborstats/internal/engine"
	"laborstats/internal/models"
)

// monthlyTable builds n consecutive months starting Jan 2023 with rate = 3.0 + i/10
func monthlyTable(t *testing.T, n int) *engine.Table {
	t.Helper()
	var b strings.Builder
	b.WriteString("date,Unemployment_Rate,Total_Nonfarm_Employees,Avg_Hourly_Earnings,Avg_Weekly_Hours\n")
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		rate := decimal.NewFromInt(30 + int64(i)).Shift(-1)
		fmt.Fprintf(&b, "%s,%s,%d,%s,34.%d\n", start.AddDate(0, i, 0).Format("2006-01-02"), rate, 155000+100*i, "33.50", i%10)
	}
	table, err := engine.ReadTable(strings.NewReader(b.String()))
	require.NoError(t, err)
	return table
}

func TestParseTimeRange(t *testing.T) {
	r, err := ParseTimeRange("")
	require.NoError(t, err)
	assert.Equal(t, FullRange, r)

	r, err = ParseTimeRange("Last 6 Months")
	require.NoError(t, err)
	assert.Equal(t, Last6Months, r)

	_, err = ParseTimeRange("Last 3 Months")
	assert.ErrorIs(t, err, ErrUnknownTimeRange)
}

func TestParseSeries(t *testing.T) {
	got, err := ParseSeries([]string{models.AvgWeeklyHours, models.UnemploymentRate, models.AvgWeeklyHours})
	require.NoError(t, err)
	assert.Equal(t, []string{models.AvgWeeklyHours, models.UnemploymentRate}, got)

	got, err = ParseSeries(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ParseSeries([]string{"date"})
	assert.ErrorIs(t, err, ErrUnknownSeries)
}

func TestParseSortOrder(t *testing.T) {
	o, err := ParseSortOrder("")
	require.NoError(t, err)
	assert.Equal(t, Descending, o)

	o, err = ParseSortOrder("asc")
	require.NoError(t, err)
	assert.Equal(t, Ascending, o)

	_, err = ParseSortOrder("sideways")
	assert.ErrorIs(t, err, ErrUnknownOrder)
}

func TestFilterRangeIsSuffix(t *testing.T) {
	for _, n := range []int{0, 1, 5, 6, 7, 12, 13, 30} {
		table := monthlyTable(t, n)

		full, err := FilterRange(table, FullRange)
		require.NoError(t, err)
		assert.Same(t, table, full)

		for _, r := range []TimeRange{Last6Months, Last12Months} {
			got, err := FilterRange(table, r)
			require.NoError(t, err)

			want := r.rows()
			if n < want {
				want = n
			}
			require.Equal(t, want, got.Len(), "n=%d range=%s", n, r)
			assert.Equal(t, table.Dates[n-want:], got.Dates)
			for _, c := range table.Columns {
				assert.Equal(t, table.Column(c)[n-want:], got.Column(c))
			}
		}
		assert.Equal(t, n, table.Len(), "source untouched")
	}
}

func TestFilterRangeUnknown(t *testing.T) {
	_, err := FilterRange(monthlyTable(t, 3), TimeRange("Last 2 Years"))
	assert.ErrorIs(t, err, ErrUnknownTimeRange)
}
