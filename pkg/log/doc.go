// Package log records parameter changes as a structured journal.
//
// The journal is separate from operational logging (slog): every accepted
// change of a watched parameter becomes one Event, which can be written to
// the console, to a binary file, or both.
//
// # Basic Usage
//
//	// Console output during development
//	journal := log.NewSlogAdapter(slog.Default())
//
//	// Binary file for later analysis
//	journal, _ := log.NewFileLogger("session.plog")
//
//	// Both
//	journal := log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
//	rec := log.NewRecorder(journal)
//	rec.Attach(b) // b is a *bank.Bank
//
// # Event Types
//
// A Recorder writes one CategorySession event when it attaches to or
// detaches from a bank, and one CategoryChange event per notification.
// All events of a recorder share a session ID.
//
// # File Format
//
// Journal files are a stream of CBOR-encoded events with integer keys,
// conventionally named with the .plog extension. The paramlog command
// views and summarises them.
package log
