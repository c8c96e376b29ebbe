// Package export orchestrates commit synthesis from contribution batches.
//
// The service probes tool availability, prepares the target repository, and
// replays contributions as historically dated empty commits in ascending
// timestamp order. Commit failures for individual contributions are absorbed
// as warnings so one bad record never poisons the batch.
package export
