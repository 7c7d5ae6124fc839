package repositories

import (
	"fmt"
	"strings"

	"github.com/desertthunder/amp/internal/models"
)

// TrackCacheAdapter provides write-through caching on top of [TrackRepository].
//
// Duplicate tracks are silently ignored (UNIQUE constraint on
// service+service_id), so callers can cache every track they see without
// checking first.
type TrackCacheAdapter struct {
	repo *TrackRepository
}

// NewTrackCacheAdapter creates a new TrackCacheAdapter with the given repository
func NewTrackCacheAdapter(repo *TrackRepository) *TrackCacheAdapter {
	return &TrackCacheAdapter{repo: repo}
}

// CacheTrack caches a catalog track.
// Returns nil if the track already exists (deduplication).
// Only returns errors for actual failures (not constraint violations).
func (a *TrackCacheAdapter) CacheTrack(service string, track models.Track) error {
	existing, err := a.repo.GetByServiceID(service, track.ID)
	if err == nil && existing != nil {
		return nil
	}

	persisted := models.NewPersistedTrack(service, track)

	err = a.repo.Create(persisted)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache track: %w", err)
	}

	return nil
}

// CacheTracks caches a batch of catalog tracks, stopping on the first failure.
func (a *TrackCacheAdapter) CacheTracks(service string, tracks []models.Track) error {
	for _, track := range tracks {
		if err := a.CacheTrack(service, track); err != nil {
			return err
		}
	}
	return nil
}
