package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
	Processing ProcessingConfig `yaml:"processing" envconfig:"PROCESSING"`
}

// LoggingConfig contains logging configuration. Defaults come from
// Default() so that unset environment variables and absent file keys do
// not shadow values from the lower-precedence sources.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration. Relative paths are
// resolved against the executable directory by the Paths type.
type PathsConfig struct {
	DataDir   string `yaml:"data_dir" envconfig:"DATA_DIR"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// ProcessingConfig contains the column-resolution and rule conventions.
// The companion pairing between a value column and its count column is a
// property of the source data, not of the tool, so it lives in
// configuration rather than code.
type ProcessingConfig struct {
	// DistrictColumn is the logical header of the kabupaten code column.
	DistrictColumn string `yaml:"district_column" envconfig:"DISTRICT_COLUMN" validate:"required"`
	// TableColumn is the logical header of the table code column.
	TableColumn string `yaml:"table_column" envconfig:"TABLE_COLUMN" validate:"required"`
	// SubdistrictColumn is the logical header of the kecamatan column.
	SubdistrictColumn string `yaml:"subdistrict_column" envconfig:"SUBDISTRICT_COLUMN" validate:"required"`
	// DistrictNameColumn holds the display name used in the output file name.
	DistrictNameColumn string `yaml:"district_name_column" envconfig:"DISTRICT_NAME_COLUMN" validate:"required"`
	// SheetSuffix is appended to a table code when looking up its sheet.
	SheetSuffix string `yaml:"sheet_suffix" envconfig:"SHEET_SUFFIX"`
	// DefaultKeywords locate value columns when the CLI passes none.
	DefaultKeywords []string `yaml:"default_keywords" envconfig:"DEFAULT_KEYWORDS"`
	// CompanionKeywords locate the count/zero-flag column paired with a
	// value column.
	CompanionKeywords []string `yaml:"companion_keywords" envconfig:"COMPANION_KEYWORDS" validate:"min=1"`
	// Sentinel is written into value cells whose companion indicates zero.
	Sentinel string `yaml:"sentinel" envconfig:"SENTINEL" validate:"required"`
}

// Load loads configuration by layering defaults, then the config file,
// then environment variables. A source only overrides the fields it
// actually sets, so an unset BPS_* variable never shadows a file value
// and an absent file key never shadows a default.
func Load() (*Config, error) {
	cfg := Default()

	if configFile := getConfigFilePath(); configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	var env Config
	if err := envconfig.Process("BPS", &env); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	overlay(cfg, env)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML file values onto cfg. Keys absent from the
// file leave the existing values untouched.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// overlay applies the environment layer: only fields the environment set
// (non-empty after envconfig) override the lower-precedence sources.
func overlay(cfg *Config, env Config) {
	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	setString(&cfg.Logging.Level, env.Logging.Level)
	setString(&cfg.Logging.Format, env.Logging.Format)
	setString(&cfg.Logging.Output, env.Logging.Output)
	setString(&cfg.Logging.FilePath, env.Logging.FilePath)

	setString(&cfg.Paths.DataDir, env.Paths.DataDir)
	setString(&cfg.Paths.OutputDir, env.Paths.OutputDir)
	setString(&cfg.Paths.LogsDir, env.Paths.LogsDir)

	setString(&cfg.Processing.DistrictColumn, env.Processing.DistrictColumn)
	setString(&cfg.Processing.TableColumn, env.Processing.TableColumn)
	setString(&cfg.Processing.SubdistrictColumn, env.Processing.SubdistrictColumn)
	setString(&cfg.Processing.DistrictNameColumn, env.Processing.DistrictNameColumn)
	setString(&cfg.Processing.SheetSuffix, env.Processing.SheetSuffix)
	setString(&cfg.Processing.Sentinel, env.Processing.Sentinel)
	if len(env.Processing.DefaultKeywords) > 0 {
		cfg.Processing.DefaultKeywords = env.Processing.DefaultKeywords
	}
	if len(env.Processing.CompanionKeywords) > 0 {
		cfg.Processing.CompanionKeywords = env.Processing.CompanionKeywords
	}
}

// validate validates the configuration, normalizing the logging fields the
// way the rest of the system expects them before running struct validation.
func (c *Config) validate() error {
	if c.Logging.Format != "json" {
		// JSON is the only handler the logger wires up.
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "both"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/processor.log"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.Processing.Sentinel == "" {
		return fmt.Errorf("processing sentinel must not be empty")
	}
	if len(c.Processing.CompanionKeywords) == 0 {
		return fmt.Errorf("at least one companion keyword must be configured")
	}

	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	return nil
}

// getConfigFilePath returns the path to the config file, or "" when none
// of the common locations exist (env vars only). BPS_CONFIG_FILE pins an
// explicit location.
func getConfigFilePath() string {
	if path := os.Getenv("BPS_CONFIG_FILE"); path != "" {
		return path
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: "logs/processor.log",
		},
		Paths: PathsConfig{
			DataDir:   "data",
			OutputDir: "output",
			LogsDir:   "logs",
		},
		Processing: DefaultProcessing(),
	}
}

// DefaultProcessing returns the column and rule conventions of the BPS
// kabupaten/kecamatan livestock tables.
func DefaultProcessing() ProcessingConfig {
	return ProcessingConfig{
		DistrictColumn:     "kab",
		TableColumn:        "tabel",
		SubdistrictColumn:  "kec",
		DistrictNameColumn: "id_kab",
		SheetSuffix:        "_kec",
		DefaultKeywords:    []string{"rerata"},
		CompanionKeywords:  []string{"n_rtup", "count", "flag"},
		Sentinel:           "NA",
	}
}
