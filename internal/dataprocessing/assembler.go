package dataprocessing

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bpscli/pkg/contracts/domain"
)

// Output sheet names.
const (
	SheetAcuan    = "acuan"
	SheetRiil     = "riil"
	SheetTemplate = "template"
)

// Sheets holds the three output tables in write order.
type Sheets struct {
	Acuan    *domain.Table
	Riil     *domain.Table
	Template *domain.Table
}

// AssembleOptions configures the template normalization pass.
type AssembleOptions struct {
	// NameKeywords locate the name-like columns normalized in template.
	NameKeywords domain.KeywordSet
	// Sentinel cells are exempt from normalization.
	Sentinel string
}

// Assemble produces the three output sheets: acuan is the filtered
// reference rows verbatim, riil the rule-applied derived rows verbatim,
// and template is riil with name normalization applied. Row order and
// row count are preserved across all three.
func Assemble(reference, processed *domain.Table, opts AssembleOptions) Sheets {
	template := processed.Clone()

	for j, header := range template.Columns {
		if !opts.NameKeywords.Matches(header) {
			continue
		}
		for i := range template.Rows {
			cell := template.Cell(i, j)
			if cell == "" || cell == opts.Sentinel {
				continue
			}
			setCell(template, i, j, NormalizeName(cell))
		}
	}

	return Sheets{
		Acuan:    reference,
		Riil:     processed,
		Template: template,
	}
}

// NormalizeName formats a name-like value for readability: underscores
// become spaces and each word is title-cased, so "puyuh_pedaging" comes
// out as "Puyuh Pedaging". Numeric values pass through unchanged.
func NormalizeName(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "_", " "))
	if name == "" {
		return name
	}
	caser := cases.Title(language.Indonesian)
	return caser.String(strings.Join(strings.Fields(name), " "))
}
