// Package ui renders command lifecycle events as concise console messages.
//
// The console logger is attached as a command event observer when
// human-readable logging is requested, so git invocations surface as short
// operation descriptions instead of structured telemetry.
package ui
