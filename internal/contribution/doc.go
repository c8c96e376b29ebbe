// Package contribution defines the activity record model consumed by the
// exporter and report formatters, along with loaders for caller-supplied
// batches.
package contribution
