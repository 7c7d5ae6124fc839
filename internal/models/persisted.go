package models

import (
	"fmt"
	"strings"
	"time"
)

// PersistedTrack is a cached catalog track with soft delete and liked-state support.
type PersistedTrack struct {
	id        string
	Sequence  int
	Service   string // catalog name, e.g. "ytmusic"
	ServiceID string // catalog key (Track.ID)
	Title     string
	Artists   string // joined artist names
	Duration  string // display hint, e.g. "3:45"
	Liked     bool
	created   time.Time
	updated   time.Time
	deleted   *time.Time
}

// NewPersistedTrack wraps a catalog [Track] for persistence.
func NewPersistedTrack(service string, track Track) *PersistedTrack {
	now := time.Now()
	return &PersistedTrack{
		Service:   service,
		ServiceID: track.ID,
		Title:     track.Title,
		Artists:   track.Artist(),
		Duration:  track.DurationHint,
		created:   now,
		updated:   now,
	}
}

// RestorePersistedTrack rebuilds a PersistedTrack from database columns.
func RestorePersistedTrack(id string, sequence int, service, serviceID, title, artists, duration string, liked bool, created, updated time.Time, deleted *time.Time) *PersistedTrack {
	return &PersistedTrack{
		id:        id,
		Sequence:  sequence,
		Service:   service,
		ServiceID: serviceID,
		Title:     title,
		Artists:   artists,
		Duration:  duration,
		Liked:     liked,
		created:   created,
		updated:   updated,
		deleted:   deleted,
	}
}

func (t *PersistedTrack) ID() string           { return t.id }
func (t *PersistedTrack) SetID(id string)      { t.id = id }
func (t *PersistedTrack) CreatedAt() time.Time { return t.created }
func (t *PersistedTrack) UpdatedAt() time.Time { return t.updated }
func (t *PersistedTrack) DeletedAt() *time.Time {
	return t.deleted
}

// Touch updates the modification timestamp.
func (t *PersistedTrack) Touch() { t.updated = time.Now() }

// Validate checks required fields before persistence.
func (t *PersistedTrack) Validate() error {
	if t.id == "" {
		return fmt.Errorf("track id is required")
	}
	if t.Service == "" {
		return fmt.Errorf("track service is required")
	}
	if t.ServiceID == "" {
		return fmt.Errorf("track service id is required")
	}
	if t.Title == "" {
		return fmt.Errorf("track title is required")
	}
	return nil
}

// Track converts back to the catalog DTO.
func (t *PersistedTrack) Track() Track {
	var artists []string
	if t.Artists != "" {
		artists = strings.Split(t.Artists, ", ")
	}
	return Track{
		ID:           t.ServiceID,
		Title:        t.Title,
		Artists:      artists,
		DurationHint: t.Duration,
	}
}

// PersistedPlaylist is a named, user-curated playlist of cached tracks.
type PersistedPlaylist struct {
	id          string
	Sequence    int
	Name        string
	Description string
	TrackCount  int
	created     time.Time
	updated     time.Time
	deleted     *time.Time
}

// NewPersistedPlaylist creates a playlist with the given name and description.
func NewPersistedPlaylist(name, description string) *PersistedPlaylist {
	now := time.Now()
	return &PersistedPlaylist{
		Name:        name,
		Description: description,
		created:     now,
		updated:     now,
	}
}

// RestorePersistedPlaylist rebuilds a PersistedPlaylist from database columns.
func RestorePersistedPlaylist(id string, sequence int, name, description string, trackCount int, created, updated time.Time, deleted *time.Time) *PersistedPlaylist {
	return &PersistedPlaylist{
		id:          id,
		Sequence:    sequence,
		Name:        name,
		Description: description,
		TrackCount:  trackCount,
		created:     created,
		updated:     updated,
		deleted:     deleted,
	}
}

func (p *PersistedPlaylist) ID() string            { return p.id }
func (p *PersistedPlaylist) SetID(id string)       { p.id = id }
func (p *PersistedPlaylist) CreatedAt() time.Time  { return p.created }
func (p *PersistedPlaylist) UpdatedAt() time.Time  { return p.updated }
func (p *PersistedPlaylist) DeletedAt() *time.Time { return p.deleted }

// Touch updates the modification timestamp.
func (p *PersistedPlaylist) Touch() { p.updated = time.Now() }

// Validate checks required fields before persistence.
func (p *PersistedPlaylist) Validate() error {
	if p.id == "" {
		return fmt.Errorf("playlist id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("playlist name is required")
	}
	return nil
}
