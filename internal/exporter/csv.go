package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"bpscli/internal/dataprocessing"
	apperrors "bpscli/internal/errors"
	"bpscli/pkg/contracts/domain"
)

// CSVWriter exports output sheets as CSV files for downstream tooling
// that cannot read workbooks.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options.
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	w.logger.Debug("Writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(options.Records)))

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.IOError("write csv", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return apperrors.IOError("write csv", err)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return apperrors.IOError("write csv", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return apperrors.IOError("write csv", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return apperrors.IOError("write csv", fmt.Errorf("record %d: %w", i, err))
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.IOError("write csv", err)
	}
	return nil
}

// WriteTable writes one table as a CSV file with a UTF-8 BOM.
func (w *CSVWriter) WriteTable(filePath string, table *domain.Table) error {
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   table.Columns,
		Records:   paddedRows(table),
		BOMPrefix: true,
	})
}

// WriteSheets writes one CSV per output sheet next to the workbook:
// "<stem>_acuan.csv", "<stem>_riil.csv", "<stem>_template.csv".
func (w *CSVWriter) WriteSheets(workbookPath string, sheets dataprocessing.Sheets) error {
	stem := strings.TrimSuffix(workbookPath, filepath.Ext(workbookPath))

	ordered := []struct {
		name  string
		table *domain.Table
	}{
		{dataprocessing.SheetAcuan, sheets.Acuan},
		{dataprocessing.SheetRiil, sheets.Riil},
		{dataprocessing.SheetTemplate, sheets.Template},
	}

	for _, s := range ordered {
		path := fmt.Sprintf("%s_%s.csv", stem, s.name)
		if err := w.WriteTable(path, s.table); err != nil {
			return err
		}
		w.logger.Info("Saved sheet CSV",
			slog.String("sheet", s.name),
			slog.String("path", path))
	}

	return nil
}

// paddedRows pads short rows to the column count so every CSV record has
// the same width as the header.
func paddedRows(table *domain.Table) [][]string {
	rows := make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		if len(row) >= len(table.Columns) {
			rows[i] = row[:len(table.Columns)]
			continue
		}
		padded := make([]string, len(table.Columns))
		copy(padded, row)
		rows[i] = padded
	}
	return rows
}
