package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for ALL file paths in the application.
type Paths struct {
	ExecutableDir string
	DataDir       string
	OutputDir     string
	LogsDir       string
}

// GetPaths returns the application paths relative to the executable location.
// All paths are ALWAYS relative to the executable directory, never the
// current working directory, so the tool behaves the same regardless of
// where it is invoked from.
//
// Directory structure:
//
//	processor
//	├── data/      (input workbooks)
//	├── output/    (processed workbooks)
//	└── logs/      (application logs)
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	exeDir := filepath.Dir(exe)

	return PathsFor(exeDir, PathsConfig{
		DataDir:   "data",
		OutputDir: "output",
		LogsDir:   "logs",
	}), nil
}

// PathsFor builds a Paths from a base directory and a PathsConfig,
// resolving relative entries against the base.
func PathsFor(baseDir string, cfg PathsConfig) *Paths {
	resolve := func(dir, fallback string) string {
		if dir == "" {
			dir = fallback
		}
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(baseDir, dir)
	}

	return &Paths{
		ExecutableDir: baseDir,
		DataDir:       resolve(cfg.DataDir, "data"),
		OutputDir:     resolve(cfg.OutputDir, "output"),
		LogsDir:       resolve(cfg.LogsDir, "logs"),
	}
}

// EnsureDirectories creates all required directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.OutputDir,
		p.LogsDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}

		if logger != nil {
			logger.Debug("Ensured directory exists",
				slog.String("directory", dir))
		}
	}

	return nil
}

// GetDataPath returns a path inside the data directory.
func (p *Paths) GetDataPath(filename string) string {
	return filepath.Join(p.DataDir, filename)
}

// GetOutputPath returns a path inside the output directory.
func (p *Paths) GetOutputPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// GetLogPath returns a path inside the logs directory.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// ResolveLogFile anchors a configured log file path in the logs directory.
// Absolute paths pass through; a relative path keeps its file name but
// lands in the logs directory; empty falls back to the given default name.
func (p *Paths) ResolveLogFile(configured, defaultName string) string {
	if filepath.IsAbs(configured) {
		return configured
	}
	if configured == "" {
		return p.GetLogPath(defaultName)
	}
	return p.GetLogPath(filepath.Base(configured))
}

// LogPathResolution logs the resolved paths for debugging.
func (p *Paths) LogPathResolution() {
	logger := slog.Default()
	if logger == nil {
		return
	}
	logger.Info("Path resolution",
		slog.Group("paths",
			slog.String("executable_dir", p.ExecutableDir),
			slog.String("data_dir", p.DataDir),
			slog.String("output_dir", p.OutputDir),
			slog.String("logs_dir", p.LogsDir),
		))
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
