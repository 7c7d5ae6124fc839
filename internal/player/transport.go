package player

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/amp/internal/lyrics"
	"github.com/desertthunder/amp/internal/models"
	"github.com/desertthunder/amp/internal/shared"
)

// DefaultFetchTimeout bounds lyrics and related-track lookups so a slow
// provider can never leave transport state pending indefinitely.
const DefaultFetchTimeout = 8 * time.Second

// Snapshot is the derived playback state published to rendering layers.
type Snapshot struct {
	Track       models.Track
	Index       int // -1 when idle
	IsPlaying   bool
	Position    float64
	Duration    float64
	Progress    float64 // 0..1, 0 when duration unknown
	Volume      int
	Shuffle     bool
	Repeat      RepeatMode
	QueueLength int
	Lyrics      *models.LyricsTrack
	LyricIndex  int // lyrics.NoLine when no line is active
}

// TransportOpts contains dependencies and tunables for a Transport.
type TransportOpts struct {
	Player         Player
	Related        RelatedFetcher
	Lyrics         LyricsFetcher
	Logger         *log.Logger
	SampleInterval time.Duration
	FetchTimeout   time.Duration
	Volume         int
	Seed           int64 // rng seed for shuffle; 0 seeds from the clock
}

// Transport is the now-playing state machine. All mutation happens under one
// lock; the sampler, the player's ended callback, and user actions converge
// here.
type Transport struct {
	mu      sync.Mutex
	player  Player
	related RelatedFetcher
	lyrics  LyricsFetcher
	logger  *log.Logger

	list  *TrackList
	queue *Queue
	sync  *lyrics.Synchronizer

	active   int // index into list, -1 when idle
	playing  bool
	position float64
	duration float64
	volume   int
	shuffle  bool
	repeat   RepeatMode

	epoch        atomic.Uint64
	rng          *rand.Rand
	sampler      *Sampler
	fetchTimeout time.Duration
	listeners    []chan Snapshot
}

// NewTransport wires a transport around the given player. The sampler is
// created stopped; it starts when playback does.
func NewTransport(opts TransportOpts) *Transport {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.Volume <= 0 || opts.Volume > 100 {
		opts.Volume = 100
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	t := &Transport{
		player:       opts.Player,
		related:      opts.Related,
		lyrics:       opts.Lyrics,
		logger:       opts.Logger,
		list:         NewTrackList(),
		queue:        NewQueue(),
		sync:         lyrics.NewSynchronizer(),
		active:       -1,
		volume:       opts.Volume,
		rng:          rand.New(rand.NewSource(seed)),
		fetchTimeout: opts.FetchTimeout,
	}

	t.sampler = NewSampler(opts.Player, opts.SampleInterval, t.epoch.Load, t.applySample)

	if err := t.player.SetVolume(t.volume); err != nil {
		t.logger.Warn("player rejected initial volume", "volume", t.volume, "error", err)
	}

	return t
}

// SetTracklist replaces the track list (a new search clears the old
// results). The active index is re-validated against the new list: it
// follows the current track when that track survives, and clears otherwise.
func (t *Transport) SetTracklist(tracks []models.Track) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var currentID string
	if current, ok := t.list.At(t.active); ok {
		currentID = current.ID
	}

	t.list.Replace(tracks)

	if currentID != "" {
		if idx := t.list.IndexOf(currentID); idx >= 0 {
			t.active = idx
			t.notifyLocked()
			return
		}
	}

	t.clearActiveLocked()
	t.notifyLocked()
}

// Tracklist returns a copy of the current track list.
func (t *Transport) Tracklist() []models.Track {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.list.Tracks()
}

// PlayTrack plays the given track immediately, appending it to the track
// list when it is not already present.
func (t *Transport) PlayTrack(track models.Track) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.list.IndexOf(track.ID)
	if idx < 0 {
		idx = t.list.Append(track)
	}
	t.selectLocked(idx)
}

// PlayAt plays the track-list entry at index. Out-of-range indices are a
// no-op.
func (t *Transport) PlayAt(index int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.list.At(index); !ok {
		return
	}
	t.selectLocked(index)
}

// Enqueue appends a track to the play-next queue.
func (t *Transport) Enqueue(track models.Track) {
	t.queue.Enqueue(track)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notifyLocked()
}

// RemoveQueued removes the queue entry at position; out of range is a no-op.
func (t *Transport) RemoveQueued(position int) {
	t.queue.RemoveAt(position)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notifyLocked()
}

// ClearQueue empties the play-next queue.
func (t *Transport) ClearQueue() {
	t.queue.Clear()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notifyLocked()
}

// QueuedTracks returns a copy of the pending queue.
func (t *Transport) QueuedTracks() []models.Track {
	return t.queue.Tracks()
}

// Next advances playback per the resolution order documented on the
// package.
func (t *Transport) Next() {
	t.advance(true, nil)
}

// Previous mirrors Next in reverse. Under shuffle it reselects a new random
// index rather than undoing history; no back-stack is maintained.
func (t *Transport) Previous() {
	t.advance(false, nil)
}

// Pause suspends playback. The sampler stops with it.
func (t *Transport) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.playing {
		return
	}
	t.setPlayingLocked(false)
	t.notifyLocked()
}

// Resume restarts playback of the active track. No-op when idle.
func (t *Transport) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.playing || t.active < 0 {
		return
	}
	t.setPlayingLocked(true)
	t.notifyLocked()
}

// TogglePlay flips between playing and paused.
func (t *Transport) TogglePlay() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active < 0 {
		return
	}
	t.setPlayingLocked(!t.playing)
	t.notifyLocked()
}

// Seek moves the playhead to target seconds, clamped to [0, duration]. The
// position updates optimistically; the next sample confirms it.
func (t *Transport) Seek(target float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seekLocked(target)
	t.notifyLocked()
}

// SkipBy seeks relative to the current position.
func (t *Transport) SkipBy(delta float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seekLocked(t.position + delta)
	t.notifyLocked()
}

// SetVolume clamps to 0..100 and forwards to the player.
func (t *Transport) SetVolume(volume int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if volume < 0 {
		volume = 0
	} else if volume > 100 {
		volume = 100
	}

	t.volume = volume
	if err := t.player.SetVolume(volume); err != nil {
		t.logger.Warn("player rejected volume", "volume", volume, "error", err)
	}
	t.notifyLocked()
}

// ToggleShuffle flips shuffle mode. Shuffle and repeat are independent
// flags; queue priority holds either way.
func (t *Transport) ToggleShuffle() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.shuffle = !t.shuffle
	t.notifyLocked()
}

// CycleRepeat steps the repeat mode through off, all, one.
func (t *Transport) CycleRepeat() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.repeat = t.repeat.Cycle()
	t.notifyLocked()
}

// Snapshot returns the current derived playback state.
func (t *Transport) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// Epoch returns the current playback generation. It increments on every
// track change; asynchronous results tagged with an older epoch are
// discarded.
func (t *Transport) Epoch() uint64 {
	return t.epoch.Load()
}

// Subscribe registers a listener for state snapshots. The channel is
// buffered; slow consumers miss intermediate snapshots rather than blocking
// playback.
func (t *Transport) Subscribe() <-chan Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	ch := make(chan Snapshot, 16)
	t.listeners = append(t.listeners, ch)
	return ch
}

// Unsubscribe removes and closes a listener channel.
func (t *Transport) Unsubscribe(ch <-chan Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, listener := range t.listeners {
		if listener == ch {
			close(listener)
			t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
			return
		}
	}
}

// advance resolves "what plays next". When expect is non-nil the advance
// only proceeds if the epoch still matches: the player's ended event races
// a user's manual skip, and the loser must not advance a second time.
func (t *Transport) advance(forward bool, expect *uint64) {
	t.mu.Lock()

	if expect != nil && *expect != t.epoch.Load() {
		t.mu.Unlock()
		return
	}

	// Repeat-one restarts in place and never advances.
	if t.repeat == RepeatOne && t.active >= 0 {
		t.restartLocked()
		t.mu.Unlock()
		return
	}

	// The queue outranks shuffle and sequential advance, every time.
	if forward {
		if track, ok := t.queue.DequeueNext(); ok {
			idx := t.list.IndexOf(track.ID)
			if idx < 0 {
				idx = t.list.Append(track)
			}
			t.selectLocked(idx)
			t.mu.Unlock()
			return
		}
	}

	length := t.list.Len()
	if length == 0 {
		t.clearActiveLocked()
		t.notifyLocked()
		t.mu.Unlock()
		return
	}

	if t.shuffle {
		t.selectLocked(NextShuffle(t.rng, t.active, length))
		t.mu.Unlock()
		return
	}

	next, wrapped := NextSequential(t.active, length, forward)
	if !forward || !wrapped || t.repeat == RepeatAll {
		t.selectLocked(next)
		t.mu.Unlock()
		return
	}

	// List exhausted with repeat off: try one related-track lookup before
	// wrapping, so playback keeps rolling instead of going silent.
	current, _ := t.list.At(t.active)
	e := t.epoch.Load()
	t.mu.Unlock()

	t.advanceViaRelated(current.ID, e)
}

// advanceViaRelated performs the end-of-list catalog lookup. A failed or
// empty lookup degrades to wraparound; it never stops playback.
func (t *Transport) advanceViaRelated(trackID string, e uint64) {
	var found []models.Track

	if t.related != nil && trackID != "" {
		ctx, cancel := context.WithTimeout(context.Background(), t.fetchTimeout)
		defer cancel()

		tracks, err := t.related.Related(ctx, trackID)
		if err != nil {
			t.logger.Warn("related lookup failed", "track", trackID, "error", err)
		} else {
			found = tracks
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if e != t.epoch.Load() {
		// Another action played something while we were fetching.
		return
	}

	if len(found) > 0 {
		track := found[0]
		idx := t.list.IndexOf(track.ID)
		if idx < 0 {
			idx = t.list.Append(track)
		}
		t.selectLocked(idx)
		return
	}

	t.selectLocked(0)
}

// selectLocked makes index the active track: position resets, the epoch
// advances, the lyric cursor clears, and a lyrics fetch is kicked off
// without blocking playback.
func (t *Transport) selectLocked(index int) {
	track, ok := t.list.At(index)
	if !ok {
		return
	}

	t.active = index
	t.position = 0
	t.duration = shared.ParseDurationHint(track.DurationHint)
	e := t.epoch.Add(1)

	t.sync.SetTrack(nil)
	t.player.OnEnded(func() { t.advance(true, &e) })

	if err := t.player.Load(track.ID); err != nil {
		t.logger.Warn("player load failed", "track", track.ID, "error", err)
	}
	t.setPlayingLocked(true)

	t.fetchLyrics(track, e)
	t.notifyLocked()
}

// restartLocked replays the active track from zero. The epoch still
// advances so in-flight samples for the old playthrough are discarded.
func (t *Transport) restartLocked() {
	t.position = 0
	e := t.epoch.Add(1)

	t.player.OnEnded(func() { t.advance(true, &e) })
	if err := t.player.SeekTo(0); err != nil {
		t.logger.Warn("player seek failed", "error", err)
	}
	t.setPlayingLocked(true)
	t.notifyLocked()
}

// setPlayingLocked drives the player and the sampler together, so the
// sampler's lifecycle follows the playing flag rather than callers
// remembering to start it.
func (t *Transport) setPlayingLocked(playing bool) {
	t.playing = playing

	if playing {
		if err := t.player.Play(); err != nil {
			t.logger.Warn("player play failed", "error", err)
		}
		t.sampler.Start()
		return
	}

	if err := t.player.Pause(); err != nil {
		t.logger.Warn("player pause failed", "error", err)
	}
	t.sampler.Stop()
}

func (t *Transport) seekLocked(target float64) {
	if target < 0 {
		target = 0
	} else if t.duration > 0 && target > t.duration {
		target = t.duration
	}

	t.position = target
	if err := t.player.SeekTo(target); err != nil {
		t.logger.Warn("player seek failed", "target", target, "error", err)
	}
}

func (t *Transport) clearActiveLocked() {
	t.active = -1
	t.position = 0
	t.duration = 0
	t.epoch.Add(1)
	t.sync.SetTrack(nil)

	if t.playing {
		t.setPlayingLocked(false)
	}
}

// fetchLyrics requests synced lyrics for the new track. Playback never
// waits on it; a late response for a superseded track is dropped.
func (t *Transport) fetchLyrics(track models.Track, e uint64) {
	if t.lyrics == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), t.fetchTimeout)
		defer cancel()

		lt, err := t.lyrics.Fetch(ctx, track.Title, track.Artist())
		if err != nil || lt == nil {
			if err != nil {
				t.logger.Warn("lyrics fetch failed", "track", track.ID, "error", err)
			}
			return
		}

		t.mu.Lock()
		defer t.mu.Unlock()

		if e != t.epoch.Load() {
			return
		}

		t.sync.SetTrack(lt)
		t.notifyLocked()
	}()
}

// applySample ingests one sampler reading. Readings from a superseded epoch
// are discarded so a stale tick cannot overwrite a fresh track's reset
// position.
func (t *Transport) applySample(s Sample) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if s.Epoch != t.epoch.Load() {
		return
	}

	t.position = s.Position
	if s.Duration > 0 {
		t.duration = s.Duration
	}

	t.sync.Advance(t.position)
	t.notifyLocked()
}

func (t *Transport) snapshotLocked() Snapshot {
	snap := Snapshot{
		Index:       t.active,
		IsPlaying:   t.playing,
		Position:    t.position,
		Duration:    t.duration,
		Volume:      t.volume,
		Shuffle:     t.shuffle,
		Repeat:      t.repeat,
		QueueLength: t.queue.Len(),
		Lyrics:      t.sync.Track(),
		LyricIndex:  t.sync.Active(),
	}

	if track, ok := t.list.At(t.active); ok {
		snap.Track = track
	}
	if t.duration > 0 {
		snap.Progress = t.position / t.duration
	}

	return snap
}

func (t *Transport) notifyLocked() {
	snap := t.snapshotLocked()
	for i := 0; i < len(t.listeners); i++ {
		select {
		case t.listeners[i] <- snap:
		default:
			// Listener is saturated; it catches up on the next snapshot.
		}
	}
}
