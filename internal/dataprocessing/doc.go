// Package dataprocessing implements the processing pipeline for BPS
// kabupaten survey tables: loading a workbook sheet into tabular form,
// resolving logical columns against the header row, filtering rows by
// district and table code, applying the not-applicable rewrite rules,
// and assembling the acuan/riil/template output sheets.
//
// The pipeline is a linear transform: Loader -> Filter (reference and
// derived selectors) -> RuleSet -> Assemble. Every step operates on
// in-memory copies; filtered source tables are never mutated.
package dataprocessing
