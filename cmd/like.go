package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/amp/internal/repositories"
	"github.com/desertthunder/amp/internal/shared"
	"github.com/urfave/cli/v3"
)

// LikeAdd marks a cached track as liked.
func (r *Runner) LikeAdd(ctx context.Context, cmd *cli.Command) error {
	return r.setLiked(cmd, true)
}

// LikeRemove clears the liked flag on a cached track.
func (r *Runner) LikeRemove(ctx context.Context, cmd *cli.Command) error {
	return r.setLiked(cmd, false)
}

func (r *Runner) setLiked(cmd *cli.Command, liked bool) error {
	trackID := cmd.StringArg("id")
	if trackID == "" {
		return fmt.Errorf("%w: id", shared.ErrMissingArgument)
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewTrackRepository(db)
	if err := repo.SetLiked(r.catalogName(), trackID, liked); err != nil {
		return err
	}

	if liked {
		r.writePlain("✓ Liked %s\n", trackID)
	} else {
		r.writePlain("✓ Unliked %s\n", trackID)
	}
	return nil
}

// LikeList prints every liked track.
func (r *Runner) LikeList(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewTrackRepository(db)
	tracks, err := repo.ListLiked()
	if err != nil {
		return fmt.Errorf("failed to list liked tracks: %w", err)
	}

	if len(tracks) == 0 {
		r.writePlain("No liked tracks yet\n")
		return nil
	}

	for i, track := range tracks {
		r.writePlain("%d. %s - %s\n", i+1, track.Artists, track.Title)
	}

	return nil
}
