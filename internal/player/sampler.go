package player

import (
	"sync"
	"time"
)

// DefaultSampleInterval is the position poll period. 100ms keeps lyric-line
// transitions visually smooth; a one-second period is too coarse for
// sub-second lyric timing and must not be regressed to.
const DefaultSampleInterval = 100 * time.Millisecond

// Sample is one position/duration reading tagged with the playback epoch it
// was taken under.
type Sample struct {
	Position float64
	Duration float64
	Epoch    uint64
}

// Sampler polls the external Player on a fixed period while playback is
// active and republishes readings. Player errors are treated as "no data
// this tick": the reading degrades to zero and sampling continues.
type Sampler struct {
	player   Player
	interval time.Duration
	epoch    func() uint64
	publish  func(Sample)

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

// NewSampler creates a sampler. The epoch function is read before each poll
// so consumers can discard readings taken under a superseded track.
func NewSampler(p Player, interval time.Duration, epoch func() uint64, publish func(Sample)) *Sampler {
	if interval <= 0 {
		interval = DefaultSampleInterval
	}
	return &Sampler{
		player:   p,
		interval: interval,
		epoch:    epoch,
		publish:  publish,
	}
}

// Start begins sampling. Calling Start while running is a no-op, so a second
// timer can never stack on the first.
func (s *Sampler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	s.running = true
	s.done = make(chan struct{})
	go s.loop(s.done)
}

// Stop cancels the outstanding timer. Safe to call when not running.
func (s *Sampler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.running = false
	close(s.done)
}

// Running reports whether the sampler currently holds a live timer.
func (s *Sampler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Sampler) loop(done chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Sampler) tick() {
	// Read the epoch before touching the player so a concurrent track
	// change marks this reading stale.
	e := s.epoch()

	pos, err := s.player.CurrentTime()
	if err != nil || pos < 0 {
		pos = 0
	}

	dur, err := s.player.Duration()
	if err != nil || dur < 0 {
		dur = 0
	}

	s.publish(Sample{Position: pos, Duration: dur, Epoch: e})
}
