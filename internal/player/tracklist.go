package player

import "github.com/desertthunder/amp/internal/models"

// TrackList is the ordered set of tracks available for sequential and
// shuffle advance, typically the current search results. It is owned by the
// transport and mutated only under the transport's lock.
type TrackList struct {
	tracks []models.Track
}

// NewTrackList creates an empty track list.
func NewTrackList() *TrackList {
	return &TrackList{tracks: make([]models.Track, 0)}
}

// Replace swaps in a new set of tracks, discarding the old ones.
func (l *TrackList) Replace(tracks []models.Track) {
	l.tracks = make([]models.Track, len(tracks))
	copy(l.tracks, tracks)
}

// Append adds a track at the tail and returns its index.
func (l *TrackList) Append(track models.Track) int {
	l.tracks = append(l.tracks, track)
	return len(l.tracks) - 1
}

// IndexOf returns the index of the first track with the given catalog ID,
// or -1 when absent.
func (l *TrackList) IndexOf(id string) int {
	for i, t := range l.tracks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// At returns the track at index. The boolean is false when out of range.
func (l *TrackList) At(index int) (models.Track, bool) {
	if index < 0 || index >= len(l.tracks) {
		return models.Track{}, false
	}
	return l.tracks[index], true
}

// Len returns the number of tracks.
func (l *TrackList) Len() int {
	return len(l.tracks)
}

// Tracks returns a copy of the tracks in order.
func (l *TrackList) Tracks() []models.Track {
	out := make([]models.Track, len(l.tracks))
	copy(out, l.tracks)
	return out
}
