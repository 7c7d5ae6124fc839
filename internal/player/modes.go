package player

import "math/rand"

// RepeatMode controls how the transport behaves at track and list
// boundaries.
type RepeatMode uint8

const (
	RepeatOff RepeatMode = iota
	RepeatAll
	RepeatOne
	repeatLen
)

// Cycle returns the next mode to be activated when the repeat button is
// pressed: off, all, one, off again.
func (m RepeatMode) Cycle() RepeatMode {
	return (m + 1) % repeatLen
}

func (m RepeatMode) String() string {
	switch m {
	case RepeatAll:
		return "all"
	case RepeatOne:
		return "one"
	default:
		return "off"
	}
}

// NextSequential spins the index one step in the given direction. It returns
// the new index and whether the spin wrapped around a list boundary. Length
// must be positive.
func NextSequential(current, length int, forward bool) (next int, wrapped bool) {
	if forward {
		next = current + 1
		if next >= length {
			return 0, true
		}
		return next, false
	}

	next = current - 1
	if next < 0 {
		return length - 1, true
	}
	return next, false
}

// NextShuffle picks a uniformly random index in [0, length), distinct from
// current when more than one track exists. A single-entry list replays its
// only track.
func NextShuffle(rng *rand.Rand, current, length int) int {
	if length <= 1 {
		return 0
	}

	next := rng.Intn(length - 1)
	if next >= current {
		next++
	}
	return next
}
