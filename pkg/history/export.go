package history

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pigeonworks-llc/vegledger/pkg/ledger"
)

// TimeLayout is how entry timestamps are rendered in exports.
const TimeLayout = "2006-01-02 15:04:05"

// Columns is the fixed export header.
var Columns = []string{
	"Date", "Time", "User",
	"Veg Buying", "Fruit Buying", "Total Buying",
	"UP Drawer", "UP For Buying", "UP Expenses",
	"DOWN Drawer", "DOWN For Buying", "DOWN Expenses",
	"THELA Drawer", "THELA For Buying", "THELA Expenses",
	"Online Total",
	"Total Sales", "Total Cash Given", "Total Expenses", "Net Profit",
}

// exportRecord returns the cells of one export row: strings for text
// columns, float64 for money.
func exportRecord(e Entry) []any {
	d := e.Data
	loc := func(name, field string) any {
		return d.Locations[name].Get(field)
	}

	return []any{
		e.Date,
		e.Timestamp.Local().Format(TimeLayout),
		e.UpdatedBy,
		d.Buying.Amount(ledger.CategoryVeg),
		d.Buying.Amount(ledger.CategoryFruit),
		d.Buying.Total,
		loc(ledger.LocationUp, ledger.FieldInDrawer),
		loc(ledger.LocationUp, ledger.FieldForBuying),
		loc(ledger.LocationUp, ledger.FieldExpenses),
		loc(ledger.LocationDown, ledger.FieldInDrawer),
		loc(ledger.LocationDown, ledger.FieldForBuying),
		loc(ledger.LocationDown, ledger.FieldExpenses),
		loc(ledger.LocationThela, ledger.FieldInDrawer),
		loc(ledger.LocationThela, ledger.FieldForBuying),
		loc(ledger.LocationThela, ledger.FieldExpenses),
		loc(ledger.LocationOnline, ledger.FieldTotal),
		d.Totals.TotalSales,
		d.Totals.TotalCashGiven,
		d.Totals.TotalExpenses,
		d.Totals.NetProfit,
	}
}

func formatCell(v any) string {
	switch v := v.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	}
	return fmt.Sprint(v)
}

// ExportCSV writes the log as comma-separated text, newest first. Fields are
// written as-is without quoting.
func (s *Store) ExportCSV(w io.Writer) error {
	if len(s.entries) == 0 {
		return ErrEmptyHistory
	}

	lines := make([]string, 0, len(s.entries)+1)
	lines = append(lines, strings.Join(Columns, ","))
	for _, e := range s.entries {
		record := exportRecord(e)
		cells := make([]string, len(record))
		for i, v := range record {
			cells[i] = formatCell(v)
		}
		lines = append(lines, strings.Join(cells, ","))
	}

	if _, err := io.WriteString(w, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// SheetName is the worksheet used by ExportXLSX.
const SheetName = "History"

// ExportXLSX writes the log as a spreadsheet with the same columns as
// ExportCSV.
func (s *Store) ExportXLSX(w io.Writer) error {
	if len(s.entries) == 0 {
		return ErrEmptyHistory
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, e := range s.entries {
		record := exportRecord(e)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(SheetName, cell, &record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(Columns))
	if err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", lastCol, 14); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}
