// Package catalog implements the music lookup capability against the
// ytmusicapi FastAPI proxy.
//
// # Catalog Interface
//
// [Catalog] exposes the two operations the playback core consumes: Search
// for building a track list and Related for continuing playback past the
// end of one. Errors degrade at the caller: the transport treats a failed
// Related lookup as "no related track found", never as a reason to stop.
//
// # Shape Normalization
//
// The proxy's search and related payloads are heterogeneous: identifiers
// arrive as videoId, id, or nested watch endpoints; artists arrive as
// object lists or a flat string. [NormalizeTrack] is the single translation
// boundary from those raw shapes to [models.Track], so the rest of the
// engine never deals with shape ambiguity.
//
// # Rate Limiting
//
// [YouTubeCatalog] applies a token-bucket limiter to every proxy request so
// interactive searching and background related lookups share one request
// budget.
package catalog
