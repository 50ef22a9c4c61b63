// Package prefs persists per-user application preferences (theme,
// language, sidebar state) through the storage layer, so a client
// restart restores the same UI state.
package prefs
