// Package gitrepo contains helpers for creating and populating the synthetic
// contribution repository.
//
// It exposes RepositoryManager for idempotent initialization, historically
// dated empty commits, and history counts, built on the execshell executor.
package gitrepo
