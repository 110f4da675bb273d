package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathsFor_RelativeEntries(t *testing.T) {
	base := t.TempDir()

	paths := PathsFor(base, PathsConfig{
		DataDir:   "data",
		OutputDir: "output",
		LogsDir:   "logs",
	})

	assert.Equal(t, base, paths.ExecutableDir)
	assert.Equal(t, filepath.Join(base, "data"), paths.DataDir)
	assert.Equal(t, filepath.Join(base, "output"), paths.OutputDir)
	assert.Equal(t, filepath.Join(base, "logs"), paths.LogsDir)
}

func TestPathsFor_AbsoluteEntriesKept(t *testing.T) {
	base := t.TempDir()
	abs := t.TempDir()

	paths := PathsFor(base, PathsConfig{DataDir: abs})

	assert.Equal(t, abs, paths.DataDir)
}

func TestPathsFor_EmptyEntriesUseFallbacks(t *testing.T) {
	base := t.TempDir()

	paths := PathsFor(base, PathsConfig{})

	assert.Equal(t, filepath.Join(base, "data"), paths.DataDir)
	assert.Equal(t, filepath.Join(base, "output"), paths.OutputDir)
	assert.Equal(t, filepath.Join(base, "logs"), paths.LogsDir)
}

func TestPaths_EnsureDirectories(t *testing.T) {
	base := t.TempDir()
	paths := PathsFor(base, PathsConfig{})

	require.NoError(t, paths.EnsureDirectories())

	for _, dir := range []string{paths.DataDir, paths.OutputDir, paths.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestPaths_PathHelpers(t *testing.T) {
	paths := PathsFor("/base", PathsConfig{})

	assert.Equal(t, filepath.Join("/base", "data", "Tabel6.xlsx"), paths.GetDataPath("Tabel6.xlsx"))
	assert.Equal(t, filepath.Join("/base", "output", "out.xlsx"), paths.GetOutputPath("out.xlsx"))
	assert.Equal(t, filepath.Join("/base", "logs", "processor.log"), paths.GetLogPath("processor.log"))
}

func TestPaths_ResolveLogFile(t *testing.T) {
	paths := PathsFor("/base", PathsConfig{})

	tests := []struct {
		name       string
		configured string
		want       string
	}{
		{"absolute path kept", "/var/log/bps/run.log", "/var/log/bps/run.log"},
		{"relative path keeps its file name", "logs/run.log", filepath.Join("/base", "logs", "run.log")},
		{"bare file name", "run.log", filepath.Join("/base", "logs", "run.log")},
		{"empty uses the default name", "", filepath.Join("/base", "logs", "processor.log")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paths.ResolveLogFile(tt.configured, "processor.log"))
		})
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "present.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(filepath.Join(dir, "absent.txt")))
}
