package bls

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"laborstats/internal/models"
)

// Response is the timeseries API payload
type Response struct {
	Status  string   `json:"status"`
	Message Messages `json:"message"`
	Results struct {
		Series []Series `json:"series"`
	} `json:"Results"`
}

// Series holds one identifier's data points, newest first
type Series struct {
	SeriesID string      `json:"seriesID"`
	Data     []DataPoint `json:"data"`
}

// DataPoint is one (year, period) value. Period is "M01".."M12" for months,
// "M13" for the annual average, "Q0n" or "A01" for other frequencies.
type DataPoint struct {
	Year       string `json:"year"`
	Period     string `json:"period"`
	PeriodName string `json:"periodName"`
	Value      string `json:"value"`
}

// Messages accepts either a string or a list of strings
type Messages []string

func (m *Messages) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*m = list
		return nil
	}
	var single string
	if err := json.Unmarshal(b, &single); err != nil {
		return err
	}
	if single != "" {
		*m = Messages{single}
	}
	return nil
}

// Observations extracts the monthly data points in long format. Series
// without an entry in names keep their raw identifier as the column name.
// Values that do not parse as numbers are kept with Valid=false.
func (r *Response) Observations(names map[string]string) ([]models.Observation, error) {
	var out []models.Observation

	for _, s := range r.Results.Series {
		name, ok := names[s.SeriesID]
		if !ok {
			name = s.SeriesID
		}
		log.Printf("Processing %s...", name)

		for _, p := range s.Data {
			m, ok := monthOf(p.Period)
			if !ok {
				continue
			}
			year, err := strconv.Atoi(strings.TrimSpace(p.Year))
			if err != nil {
				return nil, fmt.Errorf("bls: series %s: bad year %q", s.SeriesID, p.Year)
			}
			v, err := decimal.NewFromString(strings.TrimSpace(p.Value))
			out = append(out, models.Observation{
				Date:   time.Date(year, m, 1, 0, 0, 0, 0, time.UTC),
				Series: name,
				Value:  v,
				Valid:  err == nil,
			})
		}
	}

	return out, nil
}

// monthOf maps "M01".."M12" to a month
func monthOf(period string) (time.Month, bool) {
	if len(period) != 3 || period[0] != 'M' {
		return 0, false
	}
	n, err := strconv.Atoi(period[1:])
	if err != nil || n < 1 || n > 12 {
		return 0, false
	}
	return time.Month(n), true
}
