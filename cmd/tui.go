package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/amp/internal/catalog"
	"github.com/desertthunder/amp/internal/models"
	"github.com/desertthunder/amp/internal/player"
	"github.com/desertthunder/amp/internal/shared"
	"github.com/desertthunder/amp/internal/ui"
	"github.com/urfave/cli/v3"
)

// durationBook wraps a catalog and remembers the duration hint of every track
// it returns, so the simulated player knows when a track ends.
type durationBook struct {
	mu    sync.Mutex
	byID  map[string]float64
	inner catalog.Catalog
}

func newDurationBook(inner catalog.Catalog) *durationBook {
	return &durationBook{byID: map[string]float64{}, inner: inner}
}

func (d *durationBook) Search(ctx context.Context, query string) ([]models.Track, error) {
	tracks, err := d.inner.Search(ctx, query)
	d.record(tracks)
	return tracks, err
}

func (d *durationBook) Related(ctx context.Context, trackID string) ([]models.Track, error) {
	tracks, err := d.inner.Related(ctx, trackID)
	d.record(tracks)
	return tracks, err
}

func (d *durationBook) Name() string { return d.inner.Name() }

func (d *durationBook) record(tracks []models.Track) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, track := range tracks {
		if seconds := shared.ParseDurationHint(track.DurationHint); seconds > 0 {
			d.byID[track.ID] = seconds
		}
	}
}

func (d *durationBook) Lookup(trackID string) float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.byID[trackID]
}

// TUI launches the interactive terminal player.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}
	if r.lyrics == nil {
		return fmt.Errorf("%w: lyrics provider not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/amp-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	book := newDurationBook(r.catalog)
	clock := player.NewClockPlayer(book.Lookup)

	transport := player.NewTransport(player.TransportOpts{
		Player:         clock,
		Related:        book,
		Lyrics:         r.lyrics,
		Logger:         fileLogger,
		SampleInterval: time.Duration(r.config.Player.SampleIntervalMS) * time.Millisecond,
		Volume:         r.config.Player.Volume,
	})

	model := ui.NewModel(ctx, transport, book)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
