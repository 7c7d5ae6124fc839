// Package player implements the playback core: the transport state machine,
// the pending-track queue, the track list, and the position sampler.
//
// # Transport
//
// [Transport] owns every play/pause/advance/seek decision. "What plays next"
// is resolved in strict priority order:
//
//  1. Repeat-one restarts the current track and never advances
//  2. The queue head, when the queue is non-empty (even while shuffling)
//  3. A random distinct track-list index, when shuffle is on
//  4. The next sequential index with wraparound
//  5. A related-track lookup from the catalog when the list is exhausted,
//     falling back to wraparound so playback never goes silent
//
// The transport consumes three injected capabilities: a [Player] (the
// embedded media widget), a [RelatedFetcher] (catalog lookup), and a
// [LyricsFetcher]. Catalog and lyrics fetches are fire-and-forget: the next
// track starts immediately and late responses are discarded when the
// playback epoch has moved on.
//
// # Sampler
//
// [Sampler] polls the Player for position and duration on a fixed 100ms
// period while playback is active. The short period keeps sub-second lyric
// transitions smooth; a coarser period visibly lags the active line. The
// sampler is state-driven: the transport starts it when playback begins and
// stops it when playback pauses, so duplicate timers cannot accumulate.
//
// # Epochs
//
// Every track change increments an epoch counter. Samples and asynchronous
// fetch results are tagged with the epoch they were issued under and are
// dropped on mismatch, so a stale tick can never clobber a fresh track's
// reset position and a slow lyrics response can never attach to the wrong
// track.
package player
