// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view playback workflow:
//  1. [SearchView] : Type a query and search the catalog
//  2. [ResultsView] : Browse results, play a track or queue it
//  3. [PlayerView] : Now-playing screen with progress, queue, and synced lyrics
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Playback state is polled on a fixed tick: every interval the model reads a
// transport snapshot and re-renders, so position, lyric highlighting, and
// auto-advance all reflect the state machine without a push channel.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
