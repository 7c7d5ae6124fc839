// package models defines the data model for the amp playback engine
package models

import (
	"fmt"
	"strings"
	"time"
)

// Model defines the base interface for all persistent models in the playback engine.
// Implementations include PersistedTrack and PersistedPlaylist.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Track represents a playable item from the catalog.
//
// The ID is an opaque catalog key (a videoId for the YouTube Music proxy).
// Tracks are immutable once fetched and owned by whichever container holds
// them; there is no shared mutation across the track list, queue, or cache.
type Track struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Artists      []string `json:"artists"`
	DurationHint string   `json:"duration,omitempty"` // display string, e.g. "3:45"
}

// Artist returns the joined artist names for display ("a, b").
func (t Track) Artist() string {
	return strings.Join(t.Artists, ", ")
}

// IsZero reports whether the track carries no catalog identity.
func (t Track) IsZero() bool {
	return t.ID == ""
}

// SourceKind distinguishes real lyric content from a synthetic placeholder.
type SourceKind int

const (
	SourceReal     SourceKind = iota // fetched from a lyrics provider
	SourceFallback                   // generated placeholder, no semantic meaning
)

func (k SourceKind) String() string {
	if k == SourceFallback {
		return "fallback"
	}
	return "real"
}

// LyricLine is a single timed lyric line. Empty text is valid and represents
// a musical interlude.
type LyricLine struct {
	Time float64 `json:"time"` // seconds from track start
	Text string  `json:"text"`
}

// LyricsTrack holds the timed lines for one track, sorted ascending by time.
type LyricsTrack struct {
	Lines  []LyricLine `json:"lines"`
	Source SourceKind  `json:"source"`
}

// NewLyricsTrack builds a LyricsTrack after verifying the sort invariant.
// Unsorted input is a programmer error at the call site, not a runtime state.
func NewLyricsTrack(lines []LyricLine, source SourceKind) (*LyricsTrack, error) {
	for i := 1; i < len(lines); i++ {
		if lines[i].Time < lines[i-1].Time {
			return nil, fmt.Errorf("lyric lines out of order at index %d (%.2f < %.2f)", i, lines[i].Time, lines[i-1].Time)
		}
	}
	return &LyricsTrack{Lines: lines, Source: source}, nil
}

// Len returns the number of lines.
func (lt *LyricsTrack) Len() int {
	if lt == nil {
		return 0
	}
	return len(lt.Lines)
}

// Line returns the text at index, or an empty string when out of range.
func (lt *LyricsTrack) Line(index int) string {
	if lt == nil || index < 0 || index >= len(lt.Lines) {
		return ""
	}
	return lt.Lines[index].Text
}
