package player

import (
	"sync"
	"time"
)

// defaultClockDuration stands in when a track's length is unknown.
const defaultClockDuration = 180.0

// ClockPlayer is a wall-clock backed [Player] used by the terminal UI and in
// development. It does not produce audio; it advances a simulated position
// while playing and fires the ended callback when the position reaches the
// loaded duration.
type ClockPlayer struct {
	mu sync.Mutex

	trackID  string
	duration float64
	volume   int
	resolve  func(trackID string) float64

	playing   bool
	base      float64
	startedAt time.Time

	onEnded  func()
	endTimer *time.Timer
}

// NewClockPlayer creates a stopped player with nothing loaded. A real player
// learns durations from its media element; the clock player asks resolve,
// which may be nil.
func NewClockPlayer(resolve func(trackID string) float64) *ClockPlayer {
	return &ClockPlayer{volume: 100, resolve: resolve}
}

// SetTrackDuration overrides the duration of the loaded track.
func (c *ClockPlayer) SetTrackDuration(seconds float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.duration = seconds
	c.rescheduleLocked()
}

// Load points the player at a track and rewinds to zero. Playback state is
// preserved, matching an embedded player that keeps playing across loads.
func (c *ClockPlayer) Load(trackID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trackID = trackID
	c.base = 0
	c.startedAt = time.Now()

	c.duration = 0
	if c.resolve != nil {
		c.duration = c.resolve(trackID)
	}
	if c.duration <= 0 {
		c.duration = defaultClockDuration
	}

	c.rescheduleLocked()
	return nil
}

func (c *ClockPlayer) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playing {
		return nil
	}
	c.playing = true
	c.startedAt = time.Now()
	c.rescheduleLocked()
	return nil
}

func (c *ClockPlayer) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing {
		return nil
	}
	c.base = c.positionLocked()
	c.playing = false
	c.rescheduleLocked()
	return nil
}

func (c *ClockPlayer) SeekTo(seconds float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seconds < 0 {
		seconds = 0
	}
	if c.duration > 0 && seconds > c.duration {
		seconds = c.duration
	}
	c.base = seconds
	c.startedAt = time.Now()
	c.rescheduleLocked()
	return nil
}

func (c *ClockPlayer) CurrentTime() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.positionLocked(), nil
}

func (c *ClockPlayer) Duration() (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duration, nil
}

func (c *ClockPlayer) SetVolume(percent int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.volume = percent
	return nil
}

// OnEnded registers the callback fired when the simulated position reaches
// the track duration. The callback runs on a timer goroutine, never on the
// caller's stack.
func (c *ClockPlayer) OnEnded(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onEnded = fn
	c.rescheduleLocked()
}

// TrackID reports the currently loaded track.
func (c *ClockPlayer) TrackID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trackID
}

func (c *ClockPlayer) positionLocked() float64 {
	pos := c.base
	if c.playing {
		pos += time.Since(c.startedAt).Seconds()
	}
	if c.duration > 0 && pos > c.duration {
		pos = c.duration
	}
	return pos
}

// rescheduleLocked arms the end-of-track timer for the remaining playtime,
// cancelling any previous timer.
func (c *ClockPlayer) rescheduleLocked() {
	if c.endTimer != nil {
		c.endTimer.Stop()
		c.endTimer = nil
	}
	if !c.playing || c.duration <= 0 || c.onEnded == nil {
		return
	}

	remaining := c.duration - c.positionLocked()
	if remaining < 0 {
		remaining = 0
	}

	fn := c.onEnded
	c.endTimer = time.AfterFunc(time.Duration(remaining*float64(time.Second)), func() {
		c.mu.Lock()
		c.playing = false
		c.base = c.duration
		c.mu.Unlock()
		fn()
	})
}
