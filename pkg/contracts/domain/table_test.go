package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Cell(t *testing.T) {
	table := &Table{
		Columns: []string{"kab", "kec", "rerata_sapi"},
		Rows: [][]string{
			{"7205", "1", "12.5"},
			{"7205"}, // short row
		},
	}

	assert.Equal(t, "12.5", table.Cell(0, 2))
	assert.Equal(t, "", table.Cell(1, 2), "short rows read as empty cells")
	assert.Equal(t, "", table.Cell(5, 0), "out of range row")
	assert.Equal(t, "", table.Cell(0, -1), "negative column")
}

func TestTable_ColumnIndex(t *testing.T) {
	table := NewTable([]string{"kab", " Kec ", "id_kab"})

	assert.Equal(t, 0, table.ColumnIndex("kab"))
	assert.Equal(t, 1, table.ColumnIndex("KEC"), "case-insensitive, trimmed")
	assert.Equal(t, -1, table.ColumnIndex("missing"))
}

func TestTable_Clone(t *testing.T) {
	original := &Table{
		Columns: []string{"kab", "rerata_sapi"},
		Rows:    [][]string{{"7205", "12.5"}},
	}

	clone := original.Clone()
	require.Equal(t, original, clone)

	clone.Rows[0][1] = "NA"
	clone.Columns[0] = "changed"

	assert.Equal(t, "12.5", original.Rows[0][1], "clone mutation must not touch the source")
	assert.Equal(t, "kab", original.Columns[0])
}

func TestKeywordSet(t *testing.T) {
	set := NewKeywordSet(" Rerata ", "", "POPULASI")

	assert.Equal(t, KeywordSet{"rerata", "populasi"}, set)
	assert.True(t, set.Matches("rerata_sapi"))
	assert.True(t, set.Matches("Populasi_Kambing"))
	assert.False(t, set.Matches("n_rtup_ternak_usaha_sapi"))
	assert.Equal(t, "rerata", set.Match("RERATA_AYAM"))
	assert.Equal(t, "", set.Match("kab"))
}

func TestJob_Selectors(t *testing.T) {
	job := Job{
		District:     "7205",
		RefTable:     "6_06",
		DerivedTable: "6_30",
	}

	assert.Equal(t, Selector{District: "7205", TableCode: "6_06"}, job.RefSelector())
	assert.Equal(t, Selector{District: "7205", TableCode: "6_30"}, job.DerivedSelector())
}
