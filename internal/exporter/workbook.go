package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"bpscli/internal/dataprocessing"
	apperrors "bpscli/internal/errors"
	"bpscli/pkg/contracts/domain"
)

// WorkbookWriter writes the assembled sheets to an output workbook.
type WorkbookWriter struct {
	logger *slog.Logger
}

// NewWorkbookWriter creates a new workbook writer.
func NewWorkbookWriter(logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{logger: logger}
}

// Write saves the three sheets as an .xlsx workbook at path, creating the
// parent directory if needed. Sheets are written in acuan/riil/template
// order with the header row first.
func (w *WorkbookWriter) Write(path string, sheets dataprocessing.Sheets) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.IOError("write workbook", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	ordered := []struct {
		name  string
		table *domain.Table
	}{
		{dataprocessing.SheetAcuan, sheets.Acuan},
		{dataprocessing.SheetRiil, sheets.Riil},
		{dataprocessing.SheetTemplate, sheets.Template},
	}

	// Rename the default sheet to the first output sheet, then add the rest.
	if err := f.SetSheetName(f.GetSheetName(0), ordered[0].name); err != nil {
		return apperrors.IOError("write workbook", err)
	}
	for _, s := range ordered[1:] {
		if _, err := f.NewSheet(s.name); err != nil {
			return apperrors.IOError("write workbook", err)
		}
	}

	for _, s := range ordered {
		if err := writeSheet(f, s.name, s.table); err != nil {
			return apperrors.IOError("write workbook", err)
		}
		w.logger.Debug("Wrote sheet",
			slog.String("sheet", s.name),
			slog.Int("rows", s.table.RowCount()))
	}

	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return apperrors.IOError("write workbook", err)
	}

	w.logger.Info("Saved output workbook",
		slog.String("path", path),
		slog.Int("acuan_rows", sheets.Acuan.RowCount()),
		slog.Int("riil_rows", sheets.Riil.RowCount()),
		slog.Int("template_rows", sheets.Template.RowCount()))

	return nil
}

// writeSheet writes the header row and data rows of a table to a sheet.
func writeSheet(f *excelize.File, sheet string, table *domain.Table) error {
	if table == nil {
		return nil
	}

	header := make([]interface{}, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for r, row := range table.Rows {
		values := make([]interface{}, len(row))
		for c, v := range row {
			values[c] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	return nil
}

// OutputFileName derives the output workbook name from the input file
// name and the district display name:
//
//	OutputFileName("Tabel6.xlsx", "KOTA BANDUNG") == "PROCESSED_Tabel6_KOTA BANDUNG.xlsx"
func OutputFileName(inputName, districtName string) string {
	stem := strings.TrimSuffix(filepath.Base(inputName), filepath.Ext(inputName))
	return fmt.Sprintf("PROCESSED_%s_%s.xlsx", stem, districtName)
}
