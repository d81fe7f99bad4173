package engine

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"laborstats/internal/models"
)

var (
	// ErrDataNotFound means the persisted table does not exist yet
	ErrDataNotFound = errors.New("engine: data file not found")
	// ErrMissingColumn means the file header lacks a required column
	ErrMissingColumn = errors.New("engine: missing column")
)

const dateLayout = "2006-01-02"

// accepted date layouts, most specific last
var dateLayouts = []string{dateLayout, "2006-01-02 15:04:05", time.RFC3339}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// LoadTable reads the persisted CSV table. The header row names the columns;
// "date" may appear at any position.
func LoadTable(path string) (*Table, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDataNotFound, path)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	table, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	log.Printf("Load Complete. Rows: %d. Time: %v", table.Len(), time.Since(start))
	return table, nil
}

// ReadTable parses CSV table content from r
func ReadTable(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s (empty file)", ErrMissingColumn, models.DateColumn)
		}
		return nil, err
	}

	dateIdx := -1
	var columns []string
	var columnIdx []int
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == models.DateColumn {
			dateIdx = i
			continue
		}
		columns = append(columns, name)
		columnIdx = append(columnIdx, i)
	}
	if dateIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, models.DateColumn)
	}

	table := NewTable(columns)
	values := make([]decimal.Decimal, len(columns))
	line := 1

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		date, err := parseDate(record[dateIdx])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if n := table.Len(); n > 0 && !date.After(table.Dates[n-1]) {
			return nil, fmt.Errorf("line %d: date %s not after %s", line, date.Format(dateLayout), table.Dates[n-1].Format(dateLayout))
		}

		for j, idx := range columnIdx {
			v, err := decimal.NewFromString(strings.TrimSpace(record[idx]))
			if err != nil {
				return nil, fmt.Errorf("line %d column %s: %w", line, columns[j], err)
			}
			values[j] = v
		}
		table.AppendRow(date, values)
	}

	return table, nil
}

// WriteTable replaces the file at path with the table. Content goes to a
// temporary file in the same directory first, so a failed write leaves any
// previous file intact.
func WriteTable(path string, t *Table) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = EncodeTable(tmp, t); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync table: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close table: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// EncodeTable writes the table as CSV: date column first, no index column
func EncodeTable(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(append([]string{models.DateColumn}, t.Columns...)); err != nil {
		return err
	}
	record := make([]string, len(t.Columns)+1)
	for i, d := range t.Dates {
		record[0] = d.Format(dateLayout)
		for j, c := range t.Columns {
			record[j+1] = t.Values[c][i].String()
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
