// Package models defines domain entities and persistence interfaces for the amp playback engine.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs representing external catalog data
//   - [Track] : Song metadata keyed by an opaque catalog identifier
//   - [LyricsTrack] : Time-stamped lyric lines, real or synthetic fallback
//   - [LyricLine] : A single (timestamp, text) pair
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [PersistedTrack] : Cached catalog tracks with liked-state
//   - [PersistedPlaylist] : Named playlists referencing cached tracks
//
// All persistent entities implement the [Model] interface providing ID generation, timestamps, validation, and soft delete support.
// The [Repository] interface defines standard CRUD operations for database access.
package models
