package contribution

import (
	"sort"
	"time"
)

// Contribution kinds recognized by anonymization and reporting.
const (
	KindCommit      = "commit"
	KindPullRequest = "pr"
	KindReview      = "review"
)

// Record is one unit of developer activity supplied by an upstream source.
//
// Records are immutable inputs: the exporter and the report formatters read
// them exactly once per invocation and never mutate them. Two records may be
// structurally identical; no deduplication is performed.
type Record struct {
	Type       string
	Timestamp  time.Time
	Repository string
	ProjectID  string
	Target     string
	Text       string
	URL        string
}

// FormatOptions is the formatting-options value shared by the exporter and
// the report formatters.
type FormatOptions struct {
	Anonymize bool
	WithLinks bool
}

// SortChronologically returns a copy of records ordered by ascending
// timestamp. The sort is stable: records with equal timestamps keep their
// original relative order.
func SortChronologically(records []Record) []Record {
	sortedRecords := make([]Record, len(records))
	copy(sortedRecords, records)
	sort.SliceStable(sortedRecords, func(firstIndex, secondIndex int) bool {
		return sortedRecords[firstIndex].Timestamp.Before(sortedRecords[secondIndex].Timestamp)
	})
	return sortedRecords
}
