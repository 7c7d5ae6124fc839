package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/amp/internal/catalog"
	"github.com/desertthunder/amp/internal/lyrics"
	"github.com/desertthunder/amp/internal/models"
	"github.com/desertthunder/amp/internal/player"
	"github.com/desertthunder/amp/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SearchView ViewState = iota
	ResultsView
	PlayerView
)

// tickInterval paces snapshot polling. It matches the transport's sample
// interval so the lyric highlight never lags the playhead by more than one
// sample.
const tickInterval = 100 * time.Millisecond

const seekStep = 5.0

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	view      ViewState
	transport *player.Transport
	catalog   catalog.Catalog
	width     int
	height    int

	searchInput textinput.Model
	resultList  list.Model
	results     []models.Track
	searching   bool

	snap player.Snapshot

	err  error
	help help.Model
	keys keyMap
}

type searchResultsMsg struct {
	tracks []models.Track
	err    error
}

type tickMsg time.Time

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, transport *player.Transport, cat catalog.Catalog) *Model {
	input := textinput.New()
	input.Placeholder = "Search for a song or artist..."
	input.Focus()
	input.CharLimit = 120

	return &Model{
		ctx:         ctx,
		view:        SearchView,
		transport:   transport,
		catalog:     cat,
		searchInput: input,
		help:        help.New(),
		keys:        newKeyMap(),
	}
}

// Init starts the snapshot tick.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.tick())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.resultList.Width() == 0 {
			m.resultList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tickMsg:
		m.snap = m.transport.Snapshot()
		return m, m.tick()

	case tea.KeyMsg:
		switch m.view {
		case SearchView:
			return m.handleSearchKeys(msg)
		case ResultsView:
			return m.handleResultsKeys(msg)
		case PlayerView:
			return m.handlePlayerKeys(msg)
		}

	case searchResultsMsg:
		m.searching = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.results = msg.tracks
		m.resultList = list.New(trackItems(msg.tracks), list.NewDefaultDelegate(), 0, 0)
		m.resultList.Title = "Results"
		m.resultList.SetSize(m.width-4, m.height-8)
		m.view = ResultsView
		return m, nil
	}

	return m.updateChildren(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case SearchView:
		return m.renderSearch()
	case ResultsView:
		return m.renderResults()
	case PlayerView:
		return m.renderPlayer()
	default:
		return ""
	}
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.snap.Index >= 0 {
			m.view = PlayerView
		}
		return m, nil
	case "enter":
		query := strings.TrimSpace(m.searchInput.Value())
		if query == "" {
			return m, nil
		}
		m.searching = true
		return m, m.doSearch(query)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "/":
		m.view = SearchView
		m.searchInput.Focus()
		return m, textinput.Blink
	case "enter":
		if item, ok := m.resultList.SelectedItem().(trackItem); ok {
			m.transport.SetTracklist(m.results)
			m.transport.PlayTrack(item.track)
			m.view = PlayerView
		}
		return m, nil
	case "a":
		if item, ok := m.resultList.SelectedItem().(trackItem); ok {
			m.transport.Enqueue(item.track)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.resultList, cmd = m.resultList.Update(msg)
	return m, cmd
}

func (m *Model) handlePlayerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if len(m.results) > 0 {
			m.view = ResultsView
		} else {
			m.view = SearchView
			m.searchInput.Focus()
		}
		return m, nil
	case "/":
		m.view = SearchView
		m.searchInput.Focus()
		return m, textinput.Blink
	case " ":
		m.transport.TogglePlay()
	case "n":
		m.transport.Next()
	case "p":
		m.transport.Previous()
	case "s":
		m.transport.ToggleShuffle()
	case "r":
		m.transport.CycleRepeat()
	case "right":
		m.transport.SkipBy(seekStep)
	case "left":
		m.transport.SkipBy(-seekStep)
	case "+", "=":
		m.transport.SetVolume(m.snap.Volume + 5)
	case "-":
		m.transport.SetVolume(m.snap.Volume - 5)
	}

	m.snap = m.transport.Snapshot()
	return m, nil
}

func (m *Model) updateChildren(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case SearchView:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case ResultsView:
		m.resultList, cmd = m.resultList.Update(msg)
	}
	return m, cmd
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) doSearch(query string) tea.Cmd {
	return func() tea.Msg {
		tracks, err := m.catalog.Search(m.ctx, query)
		return searchResultsMsg{tracks: tracks, err: err}
	}
}

func (m *Model) renderSearch() string {
	title := styles.title.Render("amp")

	status := ""
	if m.searching {
		status = styles.dim.Render("Searching...")
	} else if m.err != nil {
		status = styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, m.searchInput.View(), status, helpView)
}

func (m *Model) renderResults() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.queue, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s\n\n%s", m.resultList.View(), m.renderNowPlayingLine(), helpView)
}

func (m *Model) renderPlayer() string {
	snap := m.snap

	if snap.Index < 0 {
		return fmt.Sprintf("%s\n\n%s", styles.dim.Render("Nothing playing"), m.help.ShortHelpView([]key.Binding{m.keys.search, m.keys.quit}))
	}

	title := styles.title.Render(snap.Track.Title)
	artist := styles.dim.Render(snap.Track.Artist())

	state := "⏸"
	if snap.IsPlaying {
		state = "▶"
	}

	progress := fmt.Sprintf("%s %s %s / %s",
		state,
		renderBar(snap.Progress, 40),
		shared.FormatDuration(int(snap.Position)),
		shared.FormatDuration(int(snap.Duration)),
	)

	modes := fmt.Sprintf("shuffle: %s  repeat: %s  vol: %d%%  queue: %d",
		onOff(snap.Shuffle), snap.Repeat, snap.Volume, snap.QueueLength)

	helpView := m.help.ShortHelpView([]key.Binding{
		m.keys.toggle, m.keys.next, m.keys.prev, m.keys.shuffle, m.keys.repeat, m.keys.search, m.keys.quit,
	})

	return fmt.Sprintf("%s\n%s\n\n%s\n%s\n\n%s\n\n%s",
		title, artist, progress, styles.dim.Render(modes), m.renderLyrics(), helpView)
}

// renderLyrics shows the active line with one line of context on each side.
func (m *Model) renderLyrics() string {
	track := m.snap.Lyrics
	if track == nil || track.Len() == 0 {
		return styles.dim.Render("♪")
	}

	active := m.snap.LyricIndex

	var lines []string
	appendLine := func(i int, style lipgloss.Style) {
		if i < 0 || i >= track.Len() {
			lines = append(lines, "")
			return
		}
		lines = append(lines, style.Render(track.Line(i)))
	}

	if active == lyrics.NoLine {
		lines = append(lines, "")
		appendLine(0, styles.dim)
		appendLine(1, styles.dim)
	} else {
		appendLine(active-1, styles.dim)
		appendLine(active, styles.lyric)
		appendLine(active+1, styles.dim)
	}

	return strings.Join(lines, "\n")
}

func (m *Model) renderNowPlayingLine() string {
	if m.snap.Index < 0 {
		return ""
	}
	state := "⏸"
	if m.snap.IsPlaying {
		state = "▶"
	}
	return styles.dim.Render(fmt.Sprintf("%s %s - %s", state, m.snap.Track.Artist(), m.snap.Track.Title))
}

func renderBar(progress float64, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(width))
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
