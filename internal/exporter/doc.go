// Package exporter writes processing results to disk: the three-sheet
// output workbook (acuan, riil, template) and, optionally, one CSV per
// sheet for downstream tooling.
package exporter
