package player

import (
	"context"

	"github.com/desertthunder/amp/internal/models"
)

// Player is the external playback capability (an embedded media widget).
//
// Implementations are expected to tolerate being driven optimistically: the
// transport treats errors and missing data as "no data this tick" and keeps
// going rather than surfacing them.
type Player interface {
	// Load prepares the track with the given catalog ID for playback.
	Load(trackID string) error

	// Play resumes or starts playback of the loaded track.
	Play() error

	// Pause suspends playback, keeping the current position.
	Pause() error

	// SeekTo moves the playhead to an absolute position in seconds.
	SeekTo(seconds float64) error

	// CurrentTime reports the playhead position in seconds.
	CurrentTime() (float64, error)

	// Duration reports the loaded track's length in seconds.
	Duration() (float64, error)

	// SetVolume sets the playback volume, 0..100.
	SetVolume(percent int) error

	// OnEnded registers the callback invoked when the loaded track finishes.
	// Registering replaces any previous callback. Implementations must invoke
	// the callback from outside their own call stack (a goroutine or event
	// loop), never synchronously from Load or Play.
	OnEnded(fn func())
}

// RelatedFetcher looks up tracks related to a catalog ID. The transport uses
// it to keep playing past the end of the track list.
type RelatedFetcher interface {
	Related(ctx context.Context, trackID string) ([]models.Track, error)
}

// LyricsFetcher resolves synced lyrics for a track. Implementations return a
// fallback LyricsTrack rather than failing when no real lyrics exist.
type LyricsFetcher interface {
	Fetch(ctx context.Context, title, artist string) (*models.LyricsTrack, error)
}
