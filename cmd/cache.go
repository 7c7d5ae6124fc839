package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/amp/internal/repositories"
	"github.com/desertthunder/amp/internal/shared"
	"github.com/urfave/cli/v3"
)

// CacheTrack searches the catalog and caches the best match locally.
func (r *Runner) CacheTrack(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}

	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: query", shared.ErrMissingArgument)
	}

	r.logger.Infof("caching track: %s", query)

	results, err := r.catalog.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if len(results) == 0 {
		return fmt.Errorf("%w: no results for %q", shared.ErrTrackNotFound, query)
	}

	best := results[0]

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	cache := repositories.NewTrackCacheAdapter(repositories.NewTrackRepository(db))
	if err := cache.CacheTrack(r.catalog.Name(), best); err != nil {
		return err
	}

	r.writePlainln("✓ Cached: %s - %s", best.Artist(), best.Title)
	r.writePlainln("  ID: %s", best.ID)
	return nil
}

// CacheList prints every cached track.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewTrackRepository(db)
	tracks, err := repo.List(nil)
	if err != nil {
		return fmt.Errorf("failed to list cached tracks: %w", err)
	}

	if len(tracks) == 0 {
		r.writePlain("Cache is empty\n")
		return nil
	}

	for i, track := range tracks {
		liked := ""
		if track.Liked {
			liked = " ♥"
		}
		r.writePlain("%d. %s - %s%s\n", i+1, track.Artists, track.Title, liked)
	}

	return nil
}
