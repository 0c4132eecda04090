// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for ad creation:
//  1. [FormView] : Fill in the campaign, creative text, and music fields
//  2. [ConfirmView] : Review the draft before submission
//  3. [SubmitView] : Monitor the in-flight submission
//  4. [ResultView] : Display the platform receipt or the classified failure
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Music verdicts flow through a channel from the MusicCoordinator, so remote
// validation stays debounced and non-blocking while the user types.
//
// Keyboard navigation uses tab/arrow bindings (tab, ←/→, enter, esc, y/n, r) with contextual help displayed via charmbracelet/bubbles/help.
package ui
