package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bpscli/pkg/contracts/domain"
)

func sampleTable() *domain.Table {
	return &domain.Table{
		Columns: []string{"kab", "tabel", "kec", "rerata_sapi"},
		Rows: [][]string{
			{"7205", "6_06", "1", "12.5"},
			{"7205", "6_06_a", "2", "8.0"},
			{"7205", "6_30", "1", "3.0"},
			{"9901", "6_06", "1", "4.4"},
			{"7205", "6_06", "3", "1.1"},
		},
	}
}

func sampleColumns() ColumnMap {
	return ColumnMap{
		FieldDistrict:    0,
		FieldTable:       1,
		FieldSubdistrict: 2,
	}
}

func TestFilter(t *testing.T) {
	table := sampleTable()
	sel := domain.Selector{District: "7205", TableCode: "6_06"}

	filtered := Filter(table, sel, sampleColumns())

	// Matches are the exact code, the prefixed code and the later exact
	// code, in source order.
	require.Equal(t, 3, filtered.RowCount())
	assert.Equal(t, "1", filtered.Cell(0, 2))
	assert.Equal(t, "2", filtered.Cell(1, 2))
	assert.Equal(t, "3", filtered.Cell(2, 2))

	// Every output row carries the selector's district and table code.
	for i := range filtered.Rows {
		assert.Equal(t, sel.District, filtered.Cell(i, 0))
		assert.Contains(t, filtered.Cell(i, 1), sel.TableCode)
	}

	assert.LessOrEqual(t, filtered.RowCount(), table.RowCount())
	assert.Equal(t, table.Columns, filtered.Columns)
}

func TestFilter_NoMatchIsEmptyNotError(t *testing.T) {
	filtered := Filter(sampleTable(), domain.Selector{District: "0001", TableCode: "6_06"}, sampleColumns())

	assert.NotNil(t, filtered)
	assert.Equal(t, 0, filtered.RowCount())
}

func TestFilter_WithoutTableColumn(t *testing.T) {
	table := &domain.Table{
		Columns: []string{"kab", "kec"},
		Rows: [][]string{
			{"7205", "1"},
			{"9901", "2"},
		},
	}
	cols := ColumnMap{FieldDistrict: 0, FieldSubdistrict: 1}

	filtered := Filter(table, domain.Selector{District: "7205", TableCode: "6_06"}, cols)

	// Per-table sheets carry no table-code column; district match suffices.
	require.Equal(t, 1, filtered.RowCount())
	assert.Equal(t, "1", filtered.Cell(0, 1))
}

func TestFilter_NumericCellFormatting(t *testing.T) {
	table := &domain.Table{
		Columns: []string{"kab", "tabel"},
		Rows: [][]string{
			{"7205.0", "6_06"},
			{" 7205 ", "6_06"},
			{"72050", "6_06"},
		},
	}
	cols := ColumnMap{FieldDistrict: 0, FieldTable: 1}

	filtered := Filter(table, domain.Selector{District: "7205", TableCode: "6_06"}, cols)

	assert.Equal(t, 2, filtered.RowCount(), "spreadsheet numeric formatting must not break code equality")
}
