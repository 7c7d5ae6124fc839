package player

import (
	"sync"

	"github.com/desertthunder/amp/internal/models"
)

// Queue is the explicit "play next" list, strictly separate from the track
// list used for sequential and shuffle advance. It is FIFO and keeps
// duplicates: adding the same track twice queues it twice.
type Queue struct {
	mu     sync.Mutex
	tracks []models.Track
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{tracks: make([]models.Track, 0)}
}

// Enqueue appends a track at the tail.
func (q *Queue) Enqueue(track models.Track) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tracks = append(q.tracks, track)
}

// DequeueNext removes and returns the head of the queue. The boolean is
// false when the queue is empty.
func (q *Queue) DequeueNext() (models.Track, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.tracks) == 0 {
		return models.Track{}, false
	}

	head := q.tracks[0]
	q.tracks = q.tracks[1:]
	return head, true
}

// RemoveAt removes the entry at position. Out-of-range positions are a
// no-op; the UI may race a concurrent removal and that is not an error.
func (q *Queue) RemoveAt(position int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if position < 0 || position >= len(q.tracks) {
		return
	}

	q.tracks = append(q.tracks[:position], q.tracks[position+1:]...)
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tracks = q.tracks[:0]
}

// Len returns the number of queued tracks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tracks)
}

// Tracks returns a copy of the queued tracks in order.
func (q *Queue) Tracks() []models.Track {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]models.Track, len(q.tracks))
	copy(out, q.tracks)
	return out
}
