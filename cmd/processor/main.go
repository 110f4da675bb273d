package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"bpscli/internal/config"
	"bpscli/internal/dataprocessing"
	apperrors "bpscli/internal/errors"
	"bpscli/internal/exporter"
	"bpscli/internal/files"
	"bpscli/internal/infrastructure"
	"bpscli/internal/validation"
	"bpscli/pkg/contracts"
	"bpscli/pkg/contracts/domain"
)

func main() {
	workbook := flag.String("file", "", "input workbook (defaults to the first workbook in the data directory matching the reference table code)")
	inDir := flag.String("in", "", "input directory for .xlsx files (defaults to data relative to executable)")
	outDir := flag.String("out", "", "output directory for the processed workbook (defaults to output relative to executable)")
	district := flag.String("kab", "7205", "kabupaten code to filter on")
	refTable := flag.String("ref", "6_06", "reference table code (acuan)")
	derivedTable := flag.String("derived", "6_30", "derived table code (riil)")
	keywordsArg := flag.String("keywords", "", "comma-separated column keywords for the derived table (defaults from config, e.g. rerata or populasi)")
	writeCSV := flag.Bool("csv", false, "additionally export each output sheet as CSV")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	// Environment overrides may live in a .env next to the executable.
	_ = godotenv.Load()

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	paths = config.PathsFor(paths.ExecutableDir, cfg.Paths)

	cfg.Logging.FilePath = paths.ResolveLogFile(cfg.Logging.FilePath, "processor.log")

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	// One run ID per invocation so all log lines for this batch correlate.
	ctx := infrastructure.WithRunID(context.Background(), uuid.NewString())

	if *inDir == "" {
		*inDir = paths.DataDir
	}
	if *outDir == "" {
		*outDir = paths.OutputDir
	}

	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("Failed to create required directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Starting BPS table processing",
		slog.String("input_dir", *inDir),
		slog.String("output_dir", *outDir),
		slog.String("district", *district),
		slog.String("ref_table", *refTable),
		slog.String("derived_table", *derivedTable))

	keywords := domain.NewKeywordSet(cfg.Processing.DefaultKeywords...)
	if *keywordsArg != "" {
		keywords = domain.NewKeywordSet(strings.Split(*keywordsArg, ",")...)
	}

	fileValidator := validation.NewFileValidator(logger)
	if err := fileValidator.ValidateOutputDirectory(*outDir); err != nil {
		fatal(ctx, logger, err)
	}

	workbookPath := *workbook
	if workbookPath == "" {
		workbookPath = discoverWorkbook(ctx, logger, fileValidator, *inDir, *refTable, *derivedTable)
	}
	if err := fileValidator.ValidateWorkbook(workbookPath); err != nil {
		fatal(ctx, logger, err)
	}

	fmt.Printf("Processing workbook: %s\n", filepath.Base(workbookPath))

	job := domain.Job{
		WorkbookPath: workbookPath,
		District:     *district,
		RefTable:     *refTable,
		DerivedTable: *derivedTable,
		Keywords:     keywords,
	}

	processor := dataprocessing.NewProcessor(cfg.Processing, logger)
	result, err := processor.Process(ctx, job)
	if err != nil {
		fatal(ctx, logger, err)
	}

	for _, warn := range result.Warnings {
		fmt.Printf("Warning: %s\n", warn)
	}

	outName := exporter.OutputFileName(filepath.Base(workbookPath), result.DistrictName)
	outPath := filepath.Join(*outDir, outName)

	writer := exporter.NewWorkbookWriter(logger)
	if err := writer.Write(outPath, result.Sheets); err != nil {
		fatal(ctx, logger, err)
	}

	if *writeCSV {
		csvWriter := exporter.NewCSVWriter(logger)
		if err := csvWriter.WriteSheets(outPath, result.Sheets); err != nil {
			fatal(ctx, logger, err)
		}
	}

	logger.InfoContext(ctx, "Run complete",
		slog.String("output", outPath),
		slog.Int("warnings", len(result.Warnings)))
	fmt.Printf("Processed data saved to %s\n", outPath)
}

// discoverWorkbook locates the input workbook by table code, preferring
// the reference code, the way the surveyor drops files into the data
// directory. When several files match a code, the most recently modified
// one wins. Exits when nothing matches.
func discoverWorkbook(ctx context.Context, logger *slog.Logger, v *validation.FileValidator, dir, refTable, derivedTable string) string {
	if err := v.ValidateInputDirectory(dir, "*.xlsx"); err != nil {
		fatal(ctx, logger, err)
	}

	discovery := files.NewDiscovery(dir)
	for _, code := range []string{refTable, derivedTable} {
		matches, err := discovery.FindByTableCode(".", code)
		if err != nil {
			fatal(ctx, logger, apperrors.IOError("discover workbook", err))
		}
		if latest, ok := files.GetLatestFile(matches); ok {
			logger.InfoContext(ctx, "Discovered input workbook",
				slog.String("workbook", latest.Path),
				slog.String("table_code", code),
				slog.Int("candidates", len(matches)))
			return latest.Path
		}
	}

	workbooks, _ := discovery.FindWorkbooks(".")
	fatal(ctx, logger, apperrors.IOError("discover workbook",
		fmt.Errorf("no workbook matching table code %s or %s among %d workbooks in %s",
			refTable, derivedTable, len(workbooks), dir)))
	return ""
}

// fatal logs the error with its taxonomy code and exits without output.
func fatal(ctx context.Context, logger *slog.Logger, err error) {
	logger.ErrorContext(ctx, "Run aborted",
		slog.String("code", string(apperrors.CodeOf(err))),
		slog.String("error", err.Error()))
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	infrastructure.CloseLogFile()
	os.Exit(1)
}
