// Package lyrics resolves and synchronizes timed lyric lines.
//
// # Synchronization
//
// [ResolveActiveLine] is the pure core: given sorted lines and a playhead
// position it returns the greatest index whose timestamp is at or before the
// position, or [NoLine] when the position precedes the first line or no
// lines exist. Ties resolve to the last line sharing the timestamp. The
// [Synchronizer] wraps it with change detection so a tick that resolves the
// same line as the previous tick produces no downstream redraw.
//
// # Providers
//
// [Provider] is the fetch capability. [LRCLIBProvider] queries an
// LRCLIB-compatible API and parses its synced "[mm:ss.xx] text" payload.
// Providers never fail: when no real lyrics surface within the bounded wait
// the result degrades to a deterministic [Fallback] track whose source kind
// marks it as synthetic placeholder content.
package lyrics
