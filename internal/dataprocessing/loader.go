package dataprocessing

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"bpscli/internal/config"
	apperrors "bpscli/internal/errors"
	"bpscli/pkg/contracts/domain"
)

// Logical field names resolved against sheet headers. The resolution map
// is built once per load; the rest of the pipeline works with column
// indexes only.
const (
	FieldDistrict     = "district"
	FieldTable        = "table"
	FieldSubdistrict  = "subdistrict"
	FieldDistrictName = "district_name"
)

// ColumnMap maps logical field names to header column indexes.
type ColumnMap map[string]int

// Index returns the column index for a logical field and whether the
// field was resolved.
func (m ColumnMap) Index(field string) (int, bool) {
	idx, ok := m[field]
	return idx, ok
}

// Loader opens input workbooks and exposes named sheets as tables.
type Loader struct {
	cfg    config.ProcessingConfig
	logger *slog.Logger
}

// NewLoader creates a workbook loader with the given column conventions.
func NewLoader(cfg config.ProcessingConfig, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{cfg: cfg, logger: logger}
}

// LoadTable reads the sheet holding the rows of the given table code.
// Sheet lookup order: "<code><suffix>" naming convention, the bare code,
// then a scan of all sheets for one whose header row carries both the
// district and table-code columns. A workbook without any such sheet is
// an input structure error.
func (l *Loader) LoadTable(path, tableCode string) (*domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.IOError("open workbook", err)
	}
	defer f.Close()

	var rows [][]string
	var sheetName string

	candidates := []string{tableCode + l.cfg.SheetSuffix, tableCode}
	for _, name := range candidates {
		if testRows, testErr := f.GetRows(name); testErr == nil {
			rows = testRows
			sheetName = name
			break
		}
	}

	// Fall back to scanning for a sheet that carries both identifier
	// columns, the way mixed-table exports name their single data sheet.
	// The table-code column is mandatory here: without it the filter
	// cannot tell this table's rows from another's, and a per-table sheet
	// for a different code would silently stand in for the missing one.
	if sheetName == "" {
		for _, name := range f.GetSheetList() {
			testRows, testErr := f.GetRows(name)
			if testErr != nil || len(testRows) == 0 {
				continue
			}
			if headerIndex(testRows[0], l.cfg.DistrictColumn) >= 0 &&
				headerIndex(testRows[0], l.cfg.TableColumn) >= 0 {
				rows = testRows
				sheetName = name
				break
			}
		}
	}

	if sheetName == "" {
		return nil, apperrors.InputStructureError("load table",
			fmt.Sprintf("no sheet for table code %q found in %s", tableCode, path))
	}

	l.logger.Info("Loaded sheet",
		slog.String("workbook", path),
		slog.String("sheet", sheetName),
		slog.String("table_code", tableCode),
		slog.Int("total_rows", len(rows)))

	if len(rows) == 0 {
		return nil, apperrors.InputStructureError("load table",
			fmt.Sprintf("sheet %q in %s has no header row", sheetName, path))
	}

	table := domain.NewTable(trimHeaders(rows[0]))
	if len(rows) > 1 {
		table.Rows = rows[1:]
	}
	return table, nil
}

// ResolveColumns builds the logical-field resolution map for a table.
// The district column is required; the table-code, subdistrict and
// district-name columns are optional because per-table sheets omit them.
func (l *Loader) ResolveColumns(table *domain.Table) (ColumnMap, error) {
	cols := ColumnMap{}

	fields := map[string]string{
		FieldDistrict:     l.cfg.DistrictColumn,
		FieldTable:        l.cfg.TableColumn,
		FieldSubdistrict:  l.cfg.SubdistrictColumn,
		FieldDistrictName: l.cfg.DistrictNameColumn,
	}

	for field, header := range fields {
		if idx := headerIndex(table.Columns, header); idx >= 0 {
			cols[field] = idx
		}
	}

	if _, ok := cols[FieldDistrict]; !ok {
		return nil, apperrors.MissingColumnError("resolve columns", l.cfg.DistrictColumn)
	}

	l.logger.Debug("Resolved columns", slog.Any("column_map", cols))
	return cols, nil
}

// headerIndex locates a header by exact case-insensitive match, falling
// back to a prefix match. Prefix rather than substring keeps "kab" from
// resolving to "id_kab".
func headerIndex(headers []string, name string) int {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, h := range headers {
		if strings.ToLower(strings.TrimSpace(h)) == name {
			return i
		}
	}
	for i, h := range headers {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(h)), name) {
			return i
		}
	}
	return -1
}

// trimHeaders returns headers with surrounding whitespace removed.
func trimHeaders(headers []string) []string {
	trimmed := make([]string, len(headers))
	for i, h := range headers {
		trimmed[i] = strings.TrimSpace(h)
	}
	return trimmed
}
