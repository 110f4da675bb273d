package domain

import "strings"

// Table represents one sheet of a workbook as ordered tabular data.
// Columns holds the header row; Rows holds data rows in source order.
// Cells are the string values excelize returns; trailing cells missing
// from short rows are treated as empty.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// NewTable creates an empty table with the given header columns.
func NewTable(columns []string) *Table {
	return &Table{Columns: columns}
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// Cell returns the value at the given row and column index, or ""
// when the row is shorter than the column index.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

// ColumnIndex returns the index of the column whose header equals name
// (case-insensitive), or -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if strings.EqualFold(strings.TrimSpace(c), name) {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the table. Rule application and
// normalization operate on clones so filtered source data stays intact.
func (t *Table) Clone() *Table {
	clone := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		clone.Rows[i] = append([]string(nil), row...)
	}
	return clone
}

// Selector identifies the rows of interest within a sheet: a fixed-width
// numeric district (kabupaten) code plus a table code such as "6_06".
type Selector struct {
	District  string `json:"district" validate:"required,numeric"`
	TableCode string `json:"table_code" validate:"required"`
}

// KeywordSet is a set of case-insensitive substrings used to locate
// value columns by matching against column headers at runtime.
type KeywordSet []string

// NewKeywordSet lowercases and trims the given keywords, dropping blanks.
func NewKeywordSet(keywords ...string) KeywordSet {
	set := make(KeywordSet, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			set = append(set, k)
		}
	}
	return set
}

// Match returns the first keyword contained in the header, or "" when
// none matches.
func (s KeywordSet) Match(header string) string {
	h := strings.ToLower(header)
	for _, k := range s {
		if strings.Contains(h, k) {
			return k
		}
	}
	return ""
}

// Matches reports whether any keyword is a substring of the header.
func (s KeywordSet) Matches(header string) bool {
	return s.Match(header) != ""
}

// Job is the explicit per-run configuration that replaces interactive
// prompt collection. It is constructed by the CLI layer and validated
// before the pipeline runs.
type Job struct {
	WorkbookPath string     `json:"workbook_path" validate:"required"`
	District     string     `json:"district" validate:"required,numeric"`
	RefTable     string     `json:"ref_table" validate:"required"`
	DerivedTable string     `json:"derived_table" validate:"required"`
	Keywords     KeywordSet `json:"keywords" validate:"required,min=1"`
}

// RefSelector returns the selector for the reference table rows.
func (j Job) RefSelector() Selector {
	return Selector{District: j.District, TableCode: j.RefTable}
}

// DerivedSelector returns the selector for the derived table rows.
func (j Job) DerivedSelector() Selector {
	return Selector{District: j.District, TableCode: j.DerivedTable}
}
