package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"laborstats/internal/config"
	"laborstats/internal/engine"
	"laborstats/internal/models"
)

type reply struct {
	status int
	body   string
}

// blsSeries builds one series entry with the given month values, newest first
func blsSeries(id string, values ...string) string {
	var points []string
	for i := len(values) - 1; i >= 0; i-- {
		points = append(points, fmt.Sprintf(`{"year":"2024","period":"M%02d","periodName":"","value":%q}`, i+1, values[i]))
	}
	return fmt.Sprintf(`{"seriesID":%q,"data":[%s]}`, id, strings.Join(points, ","))
}

func succeeded(series ...string) string {
	return fmt.Sprintf(`{"status":"REQUEST_SUCCEEDED","message":[],"Results":{"series":[%s]}}`, strings.Join(series, ","))
}

var quarter = succeeded(
	blsSeries("LNS14000000", "3.7", "3.9", "3.8"),
	blsSeries("CES0000000001", "157049", "157271", "157581"),
	blsSeries("CES0500000003", "34.55", "34.58", "34.69"),
	blsSeries("CES0500000007", "34.3", "34.4", "34.4"),
)

// sequenceServer answers each POST with the next reply, repeating the last one
func sequenceServer(t *testing.T, replies ...reply) *httptest.Server {
	t.Helper()
	var mu sync.Mutex
	n := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		rep := replies[n]
		if n < len(replies)-1 {
			n++
		}
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rep.status)
		io.WriteString(w, rep.body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, url string) *config.Config {
	t.Helper()
	return &config.Config{
		BLS:      config.BLSConfig{URL: url},
		DataPath: filepath.Join(t.TempDir(), "labor_data.csv"),
	}
}

func TestRunWritesTable(t *testing.T) {
	srv := sequenceServer(t, reply{http.StatusOK, quarter})
	cfg := testConfig(t, srv.URL)

	var logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	require.NoError(t, run(context.Background(), cfg))
	assert.Contains(t, logs.String(), "Processed 3 rows of data")
	assert.Contains(t, logs.String(), "Data saved to "+cfg.DataPath)
	assert.Contains(t, logs.String(), "Date range: 2024-01-01 to 2024-03-01")

	table, err := engine.LoadTable(cfg.DataPath)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []string{models.UnemploymentRate, models.TotalNonfarmEmployees, models.AvgHourlyEarnings, models.AvgWeeklyHours}, table.Columns)
	assert.Equal(t, "3.9", table.Column(models.UnemploymentRate)[1].String())
}

func TestRunFailureKeepsPreviousFile(t *testing.T) {
	cases := []struct {
		name  string
		reply reply
	}{
		{"http error", reply{http.StatusInternalServerError, "upstream down"}},
		{"request not processed", reply{http.StatusOK, `{"status":"REQUEST_NOT_PROCESSED","message":["daily threshold reached"],"Results":{}}`}},
		{"malformed body", reply{http.StatusOK, `{"status":`}},
		{"no complete rows", reply{http.StatusOK, succeeded(blsSeries("LNS14000000", "3.7"), blsSeries("CES0000000001", "-"))}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := sequenceServer(t, reply{http.StatusOK, quarter}, tc.reply)
			cfg := testConfig(t, srv.URL)

			require.NoError(t, run(context.Background(), cfg))
			before, err := os.ReadFile(cfg.DataPath)
			require.NoError(t, err)

			assert.Error(t, run(context.Background(), cfg))

			after, err := os.ReadFile(cfg.DataPath)
			require.NoError(t, err)
			assert.Equal(t, before, after)

			entries, err := os.ReadDir(filepath.Dir(cfg.DataPath))
			require.NoError(t, err)
			assert.Len(t, entries, 1, "no temp files left behind")
		})
	}
}

func TestRunCancelled(t *testing.T) {
	srv := sequenceServer(t, reply{http.StatusOK, quarter})
	cfg := testConfig(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, run(ctx, cfg))
	_, err := os.Stat(cfg.DataPath)
	assert.True(t, os.IsNotExist(err))
}

func TestRunFailureWithoutPreviousFile(t *testing.T) {
	srv := sequenceServer(t, reply{http.StatusBadGateway, ""})
	cfg := testConfig(t, srv.URL)

	assert.Error(t, run(context.Background(), cfg))
	_, err := os.Stat(cfg.DataPath)
	assert.True(t, os.IsNotExist(err))
}
