package dashboard

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"laborstats/internal/engine"
	"laborstats/internal/models"
)

const exportSheet = "Labor Data"

// WriteCSV exports the table in the persisted file format
func WriteCSV(w io.Writer, t *engine.Table) error {
	return engine.EncodeTable(w, t)
}

// WriteXLSX exports the table as a single-sheet workbook, date column first
func WriteXLSX(w io.Writer, t *engine.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, 0, len(t.Columns)+1)
	header = append(header, models.DateColumn)
	for _, c := range t.Columns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, d := range t.Dates {
		row := make([]interface{}, 0, len(t.Columns)+1)
		row = append(row, d.Format(rawDateLayout))
		for _, c := range t.Columns {
			row = append(row, t.Values[c][i].InexactFloat64())
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return f.Write(w)
}
