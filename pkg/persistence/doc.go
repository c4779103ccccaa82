// Package persistence saves and restores bank presets.
//
// A preset records the normalised value of every parameter in a bank as
// JSON. Real values are stored alongside for readability but are not used
// when restoring, so a preset survives changes to a parameter's range.
package persistence
