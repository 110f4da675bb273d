package dataprocessing

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"bpscli/internal/config"
	apperrors "bpscli/internal/errors"
	"bpscli/internal/infrastructure"
	"bpscli/pkg/contracts/domain"
)

var validate = validator.New()

// bracketTag matches the "[7205] " code prefix carried by district
// display names in the source tables.
var bracketTag = regexp.MustCompile(`\[.*?\]\s*`)

// Processor runs the full pipeline for one job: load, resolve, filter
// twice, apply rules, assemble.
type Processor struct {
	cfg    config.ProcessingConfig
	loader *Loader
	logger *slog.Logger
}

// NewProcessor creates a processor with the given conventions.
func NewProcessor(cfg config.ProcessingConfig, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		cfg:    cfg,
		loader: NewLoader(cfg, logger),
		logger: logger,
	}
}

// Result is the outcome of one processing run.
type Result struct {
	Job          domain.Job
	DistrictName string
	Sheets       Sheets
	// Warnings lists tolerated conditions (no-match filters). The run
	// still produces output when warnings are present.
	Warnings []string
}

// Process executes the pipeline. Structure and I/O failures abort with a
// fatal taxonomy error before any output exists; empty filter results are
// recorded as warnings and yield empty sheets.
func (p *Processor) Process(ctx context.Context, job domain.Job) (*Result, error) {
	logger := infrastructure.LoggerFromContext(ctx)

	if err := validate.Struct(job); err != nil {
		return nil, apperrors.ValidationError("process", err)
	}

	logger.Info("Starting table processing",
		slog.String("workbook", job.WorkbookPath),
		slog.String("district", job.District),
		slog.String("ref_table", job.RefTable),
		slog.String("derived_table", job.DerivedTable),
		slog.Any("keywords", job.Keywords))

	result := &Result{Job: job}

	refTable, refCols, err := p.loadAndResolve(job.WorkbookPath, job.RefTable)
	if err != nil {
		return nil, err
	}

	result.DistrictName = p.districtName(refTable, refCols, job.District)

	refFiltered := Filter(refTable, job.RefSelector(), refCols)
	p.noteNoMatch(ctx, result, "filter reference", job.RefSelector(), refFiltered)

	derivedTable, derivedCols, err := p.loadAndResolve(job.WorkbookPath, job.DerivedTable)
	if err != nil {
		return nil, err
	}

	derivedFiltered := Filter(derivedTable, job.DerivedSelector(), derivedCols)
	p.noteNoMatch(ctx, result, "filter derived", job.DerivedSelector(), derivedFiltered)

	rules := NewRuleSet(p.cfg, job.Keywords, logger)
	processed := rules.Apply(derivedFiltered)

	result.Sheets = Assemble(refFiltered, processed, AssembleOptions{
		NameKeywords: job.Keywords,
		Sentinel:     p.cfg.Sentinel,
	})

	logger.Info("Processing complete",
		slog.String("district_name", result.DistrictName),
		slog.Int("acuan_rows", result.Sheets.Acuan.RowCount()),
		slog.Int("riil_rows", result.Sheets.Riil.RowCount()),
		slog.Int("template_rows", result.Sheets.Template.RowCount()),
		slog.Int("warnings", len(result.Warnings)))

	return result, nil
}

// loadAndResolve loads the sheet for a table code and builds its column
// resolution map.
func (p *Processor) loadAndResolve(path, tableCode string) (*domain.Table, ColumnMap, error) {
	table, err := p.loader.LoadTable(path, tableCode)
	if err != nil {
		return nil, nil, err
	}
	cols, err := p.loader.ResolveColumns(table)
	if err != nil {
		return nil, nil, err
	}
	return table, cols, nil
}

// districtName extracts the district display name from the first row
// matching the district code: the "[code]" tag is stripped and the rest
// upper-cased. Falls back to the numeric code when the name column is
// absent or empty.
func (p *Processor) districtName(table *domain.Table, cols ColumnMap, district string) string {
	nameIdx, ok := cols.Index(FieldDistrictName)
	if !ok {
		return district
	}
	districtIdx, _ := cols.Index(FieldDistrict)

	for i, row := range table.Rows {
		if !codeEquals(cellAt(row, districtIdx), district) {
			continue
		}
		name := bracketTag.ReplaceAllString(table.Cell(i, nameIdx), "")
		name = strings.ToUpper(strings.TrimSpace(name))
		if name != "" {
			return name
		}
		break
	}
	return district
}

// noteNoMatch records an empty filter result as a warning. The output is
// still written with empty sheets.
func (p *Processor) noteNoMatch(ctx context.Context, result *Result, op string, sel domain.Selector, filtered *domain.Table) {
	if filtered.RowCount() > 0 {
		return
	}
	warn := apperrors.NoMatchError(op, sel.District, sel.TableCode)
	result.Warnings = append(result.Warnings, warn.Error())
	infrastructure.LoggerFromContext(ctx).Warn("Filter matched no rows",
		slog.String("op", op),
		slog.String("district", sel.District),
		slog.String("table_code", sel.TableCode))
}
