package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"laborstats/internal/bls"
	"laborstats/internal/config"
	"laborstats/internal/engine"
	"laborstats/internal/models"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("Fetcher failed: %v", err)
	}
}

// run fetches, reshapes and saves the table. The data file is only replaced
// once a complete table is in hand.
func run(ctx context.Context, cfg *config.Config) error {
	t0 := time.Now()

	// 1. Fetch
	client := bls.NewClient(cfg.BLS)
	resp, err := client.FetchSeries(ctx, models.SeriesIDs(), config.StartYear, config.EndYear)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	// 2. Transform
	obs, err := resp.Observations(models.SeriesNames())
	if err != nil {
		return fmt.Errorf("processing: %w", err)
	}
	table, err := engine.Pivot(obs)
	if err != nil {
		return fmt.Errorf("processing: %w", err)
	}
	log.Printf("Processed %d rows of data", table.Len())

	// 3. Save
	if err := engine.WriteTable(cfg.DataPath, table); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	first, last, _ := table.DateRange()
	log.Printf("Data saved to %s", cfg.DataPath)
	log.Printf("Shape: %d rows x %d columns", table.Len(), len(table.Columns)+1)
	log.Printf("Date range: %s to %s", first.Format("2006-01-02"), last.Format("2006-01-02"))
	log.Printf("Done in %v", time.Since(t0))
	return nil
}
