package lyrics

import (
	"sort"
	"sync"

	"github.com/desertthunder/amp/internal/models"
)

// NoLine is the sentinel index meaning no lyric line is active: the playhead
// precedes the first timestamp, or no lyrics are loaded.
const NoLine = -1

// ResolveActiveLine returns the greatest index i with lines[i].Time <=
// position, or [NoLine]. Lines must be sorted ascending by time; duplicate
// timestamps resolve to the last line of the tie. Empty-text lines are
// ordinary lines (musical interludes) and become active normally.
func ResolveActiveLine(lines []models.LyricLine, position float64) int {
	if len(lines) == 0 || position < lines[0].Time {
		return NoLine
	}

	// First index strictly past the position; the line before it is active.
	// With tied timestamps the search lands after the whole tie.
	idx := sort.Search(len(lines), func(i int) bool {
		return lines[i].Time > position
	})

	return idx - 1
}

// Synchronizer tracks the active lyric line across sampler ticks. The
// resolved index is derived state: it is recomputed from (lines, position)
// on every tick and cached only to detect changes.
type Synchronizer struct {
	mu     sync.Mutex
	track  *models.LyricsTrack
	active int
}

// NewSynchronizer creates a synchronizer with no lyrics loaded.
func NewSynchronizer() *Synchronizer {
	return &Synchronizer{active: NoLine}
}

// SetTrack swaps in a new lyrics track (nil clears) and resets the cursor.
func (s *Synchronizer) SetTrack(track *models.LyricsTrack) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.track = track
	s.active = NoLine
}

// Track returns the loaded lyrics track, or nil.
func (s *Synchronizer) Track() *models.LyricsTrack {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.track
}

// Active returns the cached active line index.
func (s *Synchronizer) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Advance recomputes the active line for the given position. The changed
// flag is true only when the resolved index differs from the previous call,
// so no-op ticks emit no change downstream.
func (s *Synchronizer) Advance(position float64) (index int, changed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.track == nil {
		index = NoLine
	} else {
		index = ResolveActiveLine(s.track.Lines, position)
	}

	changed = index != s.active
	s.active = index
	return index, changed
}
