// Package msg defines the tea.Msg types dispatched within the table viewer.
// It imports only source so that ui packages can depend on it freely.
package msg

import "github.com/miosa/window-table/source"

// -- Data loading --

// DataLoaded carries a dataset read from Source.
type DataLoaded struct {
	Source  string
	Dataset source.Dataset
	// Reload is set when the load was triggered by the user rather than at startup.
	Reload bool
}

// LoadFailed when the source could not be opened or read.
type LoadFailed struct {
	Source string
	Err    error
}
