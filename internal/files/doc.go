// Package files provides workbook discovery for the BPS table processor.
//
// Discovery locates candidate input workbooks: all .xlsx files in a
// directory, or the ones whose name carries a given table code, the way
// the surveyor drops them into the data directory
// (e.g. "Tabel6_06_kec.xlsx" for table code "6_06").
//
// Example usage:
//
//	discovery := files.NewDiscovery("/path/to/base")
//	workbooks, err := discovery.FindByTableCode("data", "6_06")
package files
