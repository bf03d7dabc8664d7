package reporting

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ErrSheetsDisabled is returned when no spreadsheet is configured.
var ErrSheetsDisabled = errors.New("google sheets export is not configured")

// Table lays the report out as header, rows, totals and summary lines.
// Cells keep their native types; each writer decides how to print them.
func Table(r Report) [][]any {
	out := make([][]any, 0, len(r.Rows)+len(r.Summary)+2)

	header := make([]any, len(r.Columns))
	for i, c := range r.Columns {
		header[i] = c.Title
	}
	out = append(out, header)

	for _, row := range r.Rows {
		line := make([]any, len(r.Columns))
		for i, c := range r.Columns {
			line[i] = row[c.Key]
		}
		out = append(out, line)
	}

	if len(r.Totals) > 0 && len(r.Columns) > 0 {
		line := make([]any, len(r.Columns))
		line[0] = "Total"
		for i, c := range r.Columns {
			if v, ok := r.Totals[c.Key]; ok {
				line[i] = v
			}
		}
		out = append(out, line)
	}

	for _, s := range r.Summary {
		out = append(out, []any{s.Label, s.Value})
	}
	return out
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case decimal.Decimal:
		return val.StringFixed(2)
	default:
		return fmt.Sprint(val)
	}
}

// WriteCSV writes the report as comma-separated values.
func WriteCSV(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	for _, line := range Table(r) {
		record := make([]string, len(line))
		for i, cell := range line {
			record[i] = formatCell(cell)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the report as a single-sheet workbook named after the report type.
func WriteXLSX(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(sheet, string(r.Type)); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	sheet = string(r.Type)

	for rowIdx, line := range Table(r) {
		for colIdx, cell := range line {
			name, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if d, ok := cell.(decimal.Decimal); ok {
				cell = d.InexactFloat64()
			}
			if err := f.SetCellValue(sheet, name, cell); err != nil {
				return fmt.Errorf("failed to set cell value: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// SheetRange is the tab a report type is published to. The spreadsheet keeps one tab per type.
func SheetRange(t Type) string {
	return fmt.Sprintf("'%s'!A:Z", t)
}

// ExportToSheet replaces the report's tab contents with the current table.
func (s *Service) ExportToSheet(ctx context.Context, r Report) (string, error) {
	if s.sheets == nil {
		return "", ErrSheetsDisabled
	}

	table := Table(r)
	rows := make([][]interface{}, len(table))
	for i, line := range table {
		row := make([]interface{}, len(line))
		for j, cell := range line {
			row[j] = formatCell(cell)
		}
		rows[i] = row
	}

	sheetRange := SheetRange(r.Type)
	if err := s.sheets.ClearRange(ctx, sheetRange); err != nil {
		return "", fmt.Errorf("clear report sheet: %w", err)
	}
	if err := s.sheets.AppendRows(ctx, sheetRange, rows); err != nil {
		return "", fmt.Errorf("append report rows: %w", err)
	}

	s.logger.Info("report exported to sheets",
		zap.String("type", string(r.Type)),
		zap.String("range", sheetRange),
		zap.Int("rows", len(rows)),
	)
	return sheetRange, nil
}
