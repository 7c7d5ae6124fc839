// package repositories provides persistence layer implementations for all model types.
//
// Each repository implements [models.Repository] for a specific entity type,
// handling CRUD operations, soft deletes, and sequence generation. The
// [TrackCacheAdapter] sits on top of [TrackRepository] to give the playback
// surfaces write-through caching of every track they touch.
package repositories
