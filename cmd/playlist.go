package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/amp/internal/formatter"
	"github.com/desertthunder/amp/internal/models"
	"github.com/desertthunder/amp/internal/repositories"
	"github.com/desertthunder/amp/internal/shared"
	"github.com/urfave/cli/v3"
)

// PlaylistCreate creates a new local playlist.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: name", shared.ErrMissingArgument)
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewPlaylistRepository(db)
	playlist := models.NewPersistedPlaylist(name, cmd.String("description"))

	if err := repo.Create(playlist); err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	r.logger.Info("playlist created", "id", playlist.ID(), "name", name)
	r.writePlain("✓ Playlist created: %s\n", name)
	return nil
}

// PlaylistList lists all local playlists.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewPlaylistRepository(db)
	playlists, err := repo.List(nil)
	if err != nil {
		return fmt.Errorf("failed to list playlists: %w", err)
	}

	if len(playlists) == 0 {
		r.writePlain("No playlists yet. Create one with 'amp playlist create <name>'\n")
		return nil
	}

	for i, playlist := range playlists {
		r.writePlain("%d. %s (%d tracks)\n", i+1, playlist.Name, playlist.TrackCount)
		if playlist.Description != "" {
			r.writePlain("   %s\n", playlist.Description)
		}
	}

	return nil
}

// PlaylistShow prints the tracks of a playlist in position order.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: name", shared.ErrMissingArgument)
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewPlaylistRepository(db)
	playlist, err := repo.GetByName(name)
	if err != nil {
		return err
	}

	tracks, err := repo.Tracks(playlist.ID())
	if err != nil {
		return fmt.Errorf("failed to load playlist tracks: %w", err)
	}

	r.writePlainHeader(playlist.Name)
	if playlist.Description != "" {
		r.writePlain("%s\n\n", playlist.Description)
	}

	for i, track := range tracks {
		r.writePlain("%d. %s - %s", i+1, track.Artists, track.Title)
		if track.Duration != "" {
			r.writePlain(" [%s]", track.Duration)
		}
		r.writePlain("\n")
	}

	return nil
}

// PlaylistAdd searches the catalog for a track and appends the best match to a playlist.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}

	name := cmd.String("playlist")
	trackQuery := cmd.String("track")

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	playlistRepo := repositories.NewPlaylistRepository(db)
	playlist, err := playlistRepo.GetByName(name)
	if err != nil {
		return err
	}

	r.logger.Info("searching track for playlist", "playlist", name, "query", trackQuery)

	results, err := r.catalog.Search(ctx, trackQuery)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if len(results) == 0 {
		return fmt.Errorf("%w: no results for %q", shared.ErrTrackNotFound, trackQuery)
	}

	best := results[0]

	trackRepo := repositories.NewTrackRepository(db)
	cache := repositories.NewTrackCacheAdapter(trackRepo)
	if err := cache.CacheTrack(r.catalog.Name(), best); err != nil {
		return err
	}

	cached, err := trackRepo.GetByServiceID(r.catalog.Name(), best.ID)
	if err != nil {
		return err
	}

	if err := playlistRepo.AddTrack(playlist.ID(), cached.ID()); err != nil {
		return err
	}

	r.logger.Info("track added", "playlist", name, "track", best.Title)
	r.writePlain("✓ Added to '%s': %s - %s\n", name, best.Artist(), best.Title)
	return nil
}

// PlaylistRemove removes a track from a playlist by catalog ID.
func (r *Runner) PlaylistRemove(ctx context.Context, cmd *cli.Command) error {
	name := cmd.String("playlist")
	trackID := cmd.String("track-id")

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	playlistRepo := repositories.NewPlaylistRepository(db)
	playlist, err := playlistRepo.GetByName(name)
	if err != nil {
		return err
	}

	trackRepo := repositories.NewTrackRepository(db)
	cached, err := trackRepo.GetByServiceID(r.catalogName(), trackID)
	if err != nil {
		return err
	}

	if err := playlistRepo.RemoveTrack(playlist.ID(), cached.ID()); err != nil {
		return err
	}

	r.writePlain("✓ Removed %s from '%s'\n", cached.Title, name)
	return nil
}

// PlaylistExport writes a playlist to a file in the requested format.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: name", shared.ErrMissingArgument)
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewPlaylistRepository(db)
	playlist, err := repo.GetByName(name)
	if err != nil {
		return err
	}

	tracks, err := repo.Tracks(playlist.ID())
	if err != nil {
		return fmt.Errorf("failed to load playlist tracks: %w", err)
	}

	export := &formatter.PlaylistExport{Playlist: playlist, Tracks: tracks}
	path, err := formatter.WriteExport(export, cmd.String("format"), cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("playlist exported", "playlist", name, "path", path)
	r.writePlain("✓ Exported '%s' to %s\n", name, path)
	return nil
}

// catalogName reports the active catalog's name, defaulting when no catalog is wired.
func (r *Runner) catalogName() string {
	if r.catalog != nil {
		return r.catalog.Name()
	}
	return "YouTube Music"
}
