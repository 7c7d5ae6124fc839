package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	back    key.Binding
	queue   key.Binding
	toggle  key.Binding
	next    key.Binding
	prev    key.Binding
	shuffle key.Binding
	repeat  key.Binding
	seekF   key.Binding
	seekB   key.Binding
	search  key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		queue:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "queue")),
		toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		next:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		prev:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous")),
		shuffle: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "shuffle")),
		repeat:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "repeat")),
		seekF:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "seek +5s")),
		seekB:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "seek -5s")),
		search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.queue},
		{k.toggle, k.next, k.prev},
		{k.shuffle, k.repeat, k.seekB, k.seekF},
		{k.search, k.back, k.quit},
	}
}
