// Package cli assembles the contriblog command hierarchy.
//
// The application wires configuration loading, structured logging, and the
// export and report subcommands behind a single Cobra root command.
package cli
