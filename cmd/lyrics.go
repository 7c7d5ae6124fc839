package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/amp/internal/formatter"
	"github.com/desertthunder/amp/internal/shared"
	"github.com/urfave/cli/v3"
)

// Lyrics fetches synced lyrics for a track and prints them.
func (r *Runner) Lyrics(ctx context.Context, cmd *cli.Command) error {
	if r.lyrics == nil {
		return fmt.Errorf("%w: lyrics provider not initialized", shared.ErrServiceUnavailable)
	}

	title := cmd.String("title")
	artist := cmd.String("artist")

	r.logger.Info("fetching lyrics", "title", title, "artist", artist)

	track, err := r.lyrics.Fetch(ctx, title, artist)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(track, true)
	}

	r.writePlainHeader(fmt.Sprintf("%s - %s", artist, title))
	r.writePlain("%s", formatter.LyricsText(track))
	return nil
}
