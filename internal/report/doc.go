// Package report renders contribution batches as chronological reports.
//
// Reports share the exporter's anonymization so hashed identifiers match
// across an anonymized report and the commits of an anonymized export.
package report
