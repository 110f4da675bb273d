package dataprocessing

import (
	"strconv"
	"strings"

	"bpscli/pkg/contracts/domain"
)

// Filter selects the rows matching the selector: the district column must
// equal the selector's district code, and, when the sheet carries a
// table-code column, that column must equal or start with the selector's
// table code. The filter is stable (source row order preserved) and an
// empty result is valid, not an error.
func Filter(table *domain.Table, sel domain.Selector, cols ColumnMap) *domain.Table {
	out := domain.NewTable(append([]string(nil), table.Columns...))

	districtIdx, ok := cols.Index(FieldDistrict)
	if !ok {
		return out
	}
	tableIdx, hasTable := cols.Index(FieldTable)

	for _, row := range table.Rows {
		if !codeEquals(cellAt(row, districtIdx), sel.District) {
			continue
		}
		if hasTable {
			code := strings.TrimSpace(cellAt(row, tableIdx))
			if code != sel.TableCode && !strings.HasPrefix(code, sel.TableCode) {
				continue
			}
		}
		out.Rows = append(out.Rows, row)
	}

	return out
}

// codeEquals compares a cell against a numeric code. Spreadsheet cells
// round-trip through formatting, so "7205.0" and "7205" are the same code.
func codeEquals(cell, code string) bool {
	cell = strings.TrimSpace(cell)
	if cell == code {
		return true
	}
	cv, err1 := strconv.ParseFloat(cell, 64)
	kv, err2 := strconv.ParseFloat(code, 64)
	return err1 == nil && err2 == nil && cv == kv
}

// cellAt returns row[idx] or "" when the row is shorter than idx.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
