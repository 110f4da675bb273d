package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bpscli/pkg/contracts/domain"
)

func TestWriteCSV(t *testing.T) {
	w := NewCSVWriter(nil)
	path := filepath.Join(t.TempDir(), "plain.csv")

	err := w.WriteCSV(path, WriteOptions{
		Headers: []string{"kab", "rerata_sapi"},
		Records: [][]string{{"7205", "12.5"}, {"7205", "NA"}},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "no BOM unless requested")

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"kab", "rerata_sapi"}, records[0])
	assert.Equal(t, []string{"7205", "NA"}, records[2])
}

func TestWriteTable_AddsBOMAndPadsRows(t *testing.T) {
	w := NewCSVWriter(nil)
	path := filepath.Join(t.TempDir(), "table.csv")

	table := &domain.Table{
		Columns: []string{"kab", "tabel", "rerata_sapi"},
		Rows: [][]string{
			{"7205", "6_06", "12.5"},
			{"7205", "6_06"}, // short row gets padded
		},
	}
	require.NoError(t, w.WriteTable(path, table))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))

	records, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"7205", "6_06", ""}, records[2])
}

func TestWriteSheets(t *testing.T) {
	w := NewCSVWriter(nil)
	dir := t.TempDir()
	workbookPath := filepath.Join(dir, "PROCESSED_Tabel6_KOTA BANDUNG.xlsx")

	require.NoError(t, w.WriteSheets(workbookPath, sampleSheets()))

	for _, sheet := range []string{"acuan", "riil", "template"} {
		path := filepath.Join(dir, "PROCESSED_Tabel6_KOTA BANDUNG_"+sheet+".csv")
		info, err := os.Stat(path)
		require.NoError(t, err, "expected CSV for sheet %s", sheet)
		assert.Greater(t, info.Size(), int64(3), "sheet %s should hold more than the BOM", sheet)
	}

	data, err := os.ReadFile(filepath.Join(dir, "PROCESSED_Tabel6_KOTA BANDUNG_riil.csv"))
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "NA", records[1][2])
}
