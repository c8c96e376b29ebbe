// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec with lifecycle logging via ShellExecutor, exposes
// OSCommandRunner for default process execution, and scopes environment
// variables to individual invocations so callers never mutate the host
// process environment.
package execshell
