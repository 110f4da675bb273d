package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bpscli/pkg/contracts/domain"
)

func TestAssemble(t *testing.T) {
	reference := &domain.Table{
		Columns: []string{"kab", "n_rtup_ternak_usaha_sapi"},
		Rows:    [][]string{{"7205", "2"}},
	}
	processed := &domain.Table{
		Columns: []string{"kab", "count", "value"},
		Rows: [][]string{
			{"7205", "0", "NA"},
			{"7205", "5", "kambing_etawa"},
		},
	}

	sheets := Assemble(reference, processed, AssembleOptions{
		NameKeywords: domain.NewKeywordSet("value"),
		Sentinel:     "NA",
	})

	// acuan is the reference selection verbatim.
	assert.Equal(t, reference, sheets.Acuan)
	// riil is the rule-applied derived selection verbatim.
	assert.Equal(t, processed, sheets.Riil)

	// template normalizes name-like cells but never the sentinel.
	require.Equal(t, processed.RowCount(), sheets.Template.RowCount())
	assert.Equal(t, "NA", sheets.Template.Cell(0, 2))
	assert.Equal(t, "Kambing Etawa", sheets.Template.Cell(1, 2))

	// riil must not be mutated by the template pass.
	assert.Equal(t, "kambing_etawa", sheets.Riil.Cell(1, 2))
}

func TestAssemble_RowCountPreserved(t *testing.T) {
	reference := &domain.Table{Columns: []string{"kab"}}
	processed := &domain.Table{
		Columns: []string{"kab", "value"},
		Rows: [][]string{
			{"7205", "a"},
			{"7205", "b"},
			{"7205", "c"},
		},
	}

	sheets := Assemble(reference, processed, AssembleOptions{
		NameKeywords: domain.NewKeywordSet("value"),
		Sentinel:     "NA",
	})

	assert.Equal(t, 3, sheets.Riil.RowCount())
	assert.Equal(t, 3, sheets.Template.RowCount())
}

func TestAssemble_EmptyTables(t *testing.T) {
	empty := domain.NewTable([]string{"kab", "value"})

	sheets := Assemble(empty, empty.Clone(), AssembleOptions{
		NameKeywords: domain.NewKeywordSet("value"),
		Sentinel:     "NA",
	})

	assert.Equal(t, 0, sheets.Acuan.RowCount())
	assert.Equal(t, 0, sheets.Riil.RowCount())
	assert.Equal(t, 0, sheets.Template.RowCount())
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"puyuh_pedaging", "Puyuh Pedaging"},
		{"Kambing", "Kambing"},
		{"sapi", "Sapi"},
		{"ayam  ras_pedaging", "Ayam Ras Pedaging"},
		{"12.5", "12.5"},
		{"", ""},
		{"KOTA BANDUNG", "Kota Bandung"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeName(tt.in))
		})
	}
}
