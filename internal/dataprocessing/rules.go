package dataprocessing

import (
	"log/slog"
	"strconv"
	"strings"

	"bpscli/internal/config"
	"bpscli/pkg/contracts/domain"
)

// RuleSet holds the conditional rewrite rules applied to the derived
// table. Value columns are located by keyword; each value column is
// paired with a companion count/zero-flag column by naming convention:
// the companion header must contain a companion keyword and the entity
// key left over when the value keyword is stripped from the value header
// ("rerata_sapi" pairs with "n_rtup_ternak_usaha_sapi"). The pairing
// convention is data-specific, so both keyword sets come from
// configuration.
type RuleSet struct {
	Keywords          domain.KeywordSet
	CompanionKeywords domain.KeywordSet
	Sentinel          string

	logger *slog.Logger
}

// NewRuleSet builds a rule set from the processing configuration and the
// per-run value keywords.
func NewRuleSet(cfg config.ProcessingConfig, keywords domain.KeywordSet, logger *slog.Logger) RuleSet {
	if logger == nil {
		logger = slog.Default()
	}
	return RuleSet{
		Keywords:          keywords,
		CompanionKeywords: domain.NewKeywordSet(cfg.CompanionKeywords...),
		Sentinel:          cfg.Sentinel,
		logger:            logger,
	}
}

// columnRule is one resolved value-column/companion-column pair.
type columnRule struct {
	valueIdx     int
	companionIdx int
}

// Apply rewrites value cells whose companion indicates zero/absent with
// the sentinel. It returns a new table: row count and column set are
// always identical to the input, and only keyword-matched columns are
// touched. A table with no keyword match passes through unmodified.
// Applying the rules twice yields the same table, since companions are
// never rewritten.
func (r RuleSet) Apply(table *domain.Table) *domain.Table {
	out := table.Clone()

	rules := r.resolveRules(out.Columns)
	if len(rules) == 0 {
		return out
	}

	for _, rule := range rules {
		for i := range out.Rows {
			if isZero(out.Cell(i, rule.companionIdx)) {
				setCell(out, i, rule.valueIdx, r.Sentinel)
			}
		}
	}

	return out
}

// resolveRules pairs every keyword-matched value column with its
// companion column. Value columns without a companion are left alone.
func (r RuleSet) resolveRules(columns []string) []columnRule {
	var rules []columnRule

	for j, header := range columns {
		kw := r.Keywords.Match(header)
		if kw == "" || r.CompanionKeywords.Matches(header) {
			continue
		}

		entity := entityKey(header, kw)
		companion := r.findCompanion(columns, j, entity)
		if companion < 0 {
			r.logger.Debug("No companion column for value column",
				slog.String("column", header),
				slog.String("entity", entity))
			continue
		}

		r.logger.Debug("Paired value column with companion",
			slog.String("value_column", header),
			slog.String("companion_column", columns[companion]))
		rules = append(rules, columnRule{valueIdx: j, companionIdx: companion})
	}

	return rules
}

// findCompanion locates the companion column for an entity key: a header
// containing a companion keyword and, when the entity is non-empty, the
// entity itself.
func (r RuleSet) findCompanion(columns []string, valueIdx int, entity string) int {
	for c, header := range columns {
		if c == valueIdx || !r.CompanionKeywords.Matches(header) {
			continue
		}
		if entity == "" || strings.Contains(strings.ToLower(header), entity) {
			return c
		}
	}
	return -1
}

// entityKey strips the matched keyword and separators from a value
// header, leaving the entity the column describes ("rerata_sapi" with
// keyword "rerata" leaves "sapi").
func entityKey(header, keyword string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	h = strings.Replace(h, keyword, "", 1)
	return strings.Trim(h, "_- ")
}

// isZero reports whether a companion cell indicates zero/absent: empty
// after trimming, or parsing to the numeric value zero.
func isZero(cell string) bool {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return true
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
	return err == nil && v == 0
}

// setCell writes a cell, growing short rows so the write always lands.
func setCell(t *domain.Table, row, col int, value string) {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return
	}
	for len(t.Rows[row]) <= col {
		t.Rows[row] = append(t.Rows[row], "")
	}
	t.Rows[row][col] = value
}
