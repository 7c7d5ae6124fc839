package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/amp/internal/formatter"
	"github.com/desertthunder/amp/internal/repositories"
	"github.com/desertthunder/amp/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search queries the catalog and prints the results.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}

	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	r.logger.Info("searching catalog", "query", query)

	tracks, err := r.catalog.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if cmd.Bool("cache") {
		db, err := r.openDatabase()
		if err != nil {
			return err
		}
		defer db.Close()

		cache := repositories.NewTrackCacheAdapter(repositories.NewTrackRepository(db))
		if err := cache.CacheTracks(r.catalog.Name(), tracks); err != nil {
			r.logger.Warn("failed to cache results", "error", err)
		}
	}

	if useJSON {
		return r.writeJSON(tracks, pretty)
	}

	if len(tracks) == 0 {
		r.writePlain("No tracks found for %q\n", query)
		return nil
	}

	r.writePlain("%s", formatter.TrackList(tracks))
	return nil
}

// Related lists tracks related to a catalog track ID.
func (r *Runner) Related(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}

	trackID := cmd.StringArg("id")
	if trackID == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	r.logger.Info("fetching related tracks", "id", trackID)

	tracks, err := r.catalog.Related(ctx, trackID)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(tracks, pretty)
	}

	r.writePlain("%s", formatter.TrackList(tracks))
	return nil
}
