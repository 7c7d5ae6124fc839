package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/amp/internal/models"
	"github.com/desertthunder/amp/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func testTrack(id, title string) models.Track {
	return models.Track{
		ID:           id,
		Title:        title,
		Artists:      []string{"Test Artist"},
		DurationHint: "3:45",
	}
}

func TestTrackRepository(t *testing.T) {
	t.Run("Create & Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackRepository(db)
		track := models.NewPersistedTrack("ytmusic", testTrack("yt123", "Test Song"))

		if err := repo.Create(track); err != nil {
			t.Fatalf("failed to create track: %v", err)
		}

		if track.ID() == "" {
			t.Error("track ID should be set after creation")
		}

		retrieved, err := repo.Get(track.ID())
		if err != nil {
			t.Fatalf("failed to get track: %v", err)
		}

		if retrieved.Title != "Test Song" {
			t.Errorf("expected title 'Test Song', got %s", retrieved.Title)
		}

		if retrieved.Artists != "Test Artist" {
			t.Errorf("expected artists 'Test Artist', got %s", retrieved.Artists)
		}
	})

	t.Run("GetByServiceID", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackRepository(db)
		track := models.NewPersistedTrack("ytmusic", testTrack("yt123", "Test Song"))

		if err := repo.Create(track); err != nil {
			t.Fatalf("failed to create track: %v", err)
		}

		retrieved, err := repo.GetByServiceID("ytmusic", "yt123")
		if err != nil {
			t.Fatalf("failed to get track by service ID: %v", err)
		}

		if retrieved.ID() != track.ID() {
			t.Errorf("expected ID %s, got %s", track.ID(), retrieved.ID())
		}

		if _, err := repo.GetByServiceID("ytmusic", "missing"); !errors.Is(err, shared.ErrTrackNotFound) {
			t.Errorf("expected ErrTrackNotFound, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackRepository(db)
		track := models.NewPersistedTrack("ytmusic", testTrack("yt123", "Test Song"))

		if err := repo.Create(track); err != nil {
			t.Fatalf("failed to create track: %v", err)
		}

		track.Title = "Renamed Song"
		if err := repo.Update(track); err != nil {
			t.Fatalf("failed to update track: %v", err)
		}

		retrieved, err := repo.Get(track.ID())
		if err != nil {
			t.Fatalf("failed to get track: %v", err)
		}

		if retrieved.Title != "Renamed Song" {
			t.Errorf("expected title 'Renamed Song', got %s", retrieved.Title)
		}
	})

	t.Run("SetLiked", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackRepository(db)
		track := models.NewPersistedTrack("ytmusic", testTrack("yt123", "Test Song"))

		if err := repo.Create(track); err != nil {
			t.Fatalf("failed to create track: %v", err)
		}

		if err := repo.SetLiked("ytmusic", "yt123", true); err != nil {
			t.Fatalf("failed to set liked: %v", err)
		}

		retrieved, err := repo.Get(track.ID())
		if err != nil {
			t.Fatalf("failed to get track: %v", err)
		}

		if !retrieved.Liked {
			t.Error("expected track to be liked")
		}

		if err := repo.SetLiked("ytmusic", "missing", true); !errors.Is(err, shared.ErrTrackNotFound) {
			t.Errorf("expected ErrTrackNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackRepository(db)
		track := models.NewPersistedTrack("ytmusic", testTrack("yt123", "Test Song"))

		if err := repo.Create(track); err != nil {
			t.Fatalf("failed to create track: %v", err)
		}

		if err := repo.Delete(track.ID()); err != nil {
			t.Fatalf("failed to delete track: %v", err)
		}

		if _, err := repo.Get(track.ID()); !errors.Is(err, shared.ErrTrackNotFound) {
			t.Errorf("expected ErrTrackNotFound after delete, got %v", err)
		}

		if err := repo.Delete(track.ID()); !errors.Is(err, shared.ErrTrackNotFound) {
			t.Errorf("expected ErrTrackNotFound on double delete, got %v", err)
		}
	})

	t.Run("List & ListLiked", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewTrackRepository(db)

		tracks := []*models.PersistedTrack{
			models.NewPersistedTrack("ytmusic", testTrack("yt1", "One")),
			models.NewPersistedTrack("ytmusic", testTrack("yt2", "Two")),
			models.NewPersistedTrack("other", testTrack("ot1", "Three")),
		}

		for _, track := range tracks {
			if err := repo.Create(track); err != nil {
				t.Fatalf("failed to create track: %v", err)
			}
		}

		all, err := repo.List(map[string]any{})
		if err != nil {
			t.Fatalf("failed to list tracks: %v", err)
		}

		if len(all) != 3 {
			t.Errorf("expected 3 tracks, got %d", len(all))
		}

		filtered, err := repo.List(map[string]any{"service": "ytmusic"})
		if err != nil {
			t.Fatalf("failed to list filtered tracks: %v", err)
		}

		if len(filtered) != 2 {
			t.Errorf("expected 2 ytmusic tracks, got %d", len(filtered))
		}

		if err := repo.SetLiked("ytmusic", "yt2", true); err != nil {
			t.Fatalf("failed to set liked: %v", err)
		}

		liked, err := repo.ListLiked()
		if err != nil {
			t.Fatalf("failed to list liked tracks: %v", err)
		}

		if len(liked) != 1 || liked[0].ServiceID != "yt2" {
			t.Errorf("expected one liked track yt2, got %v", liked)
		}
	})
}

func TestTrackCacheAdapter_CacheTrack(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewTrackRepository(db)
	adapter := NewTrackCacheAdapter(repo)

	track := testTrack("yt123", "Test Song")

	if err := adapter.CacheTrack("ytmusic", track); err != nil {
		t.Fatalf("failed to cache track: %v", err)
	}

	if err := adapter.CacheTrack("ytmusic", track); err != nil {
		t.Fatalf("caching duplicate track should not error: %v", err)
	}

	all, err := repo.List(map[string]any{})
	if err != nil {
		t.Fatalf("failed to list tracks: %v", err)
	}

	if len(all) != 1 {
		t.Errorf("expected 1 cached track, got %d", len(all))
	}
}

func TestTrackCacheAdapter_CacheTracks(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewTrackRepository(db)
	adapter := NewTrackCacheAdapter(repo)

	tracks := []models.Track{
		testTrack("yt1", "One"),
		testTrack("yt2", "Two"),
		testTrack("yt1", "One"),
	}

	if err := adapter.CacheTracks("ytmusic", tracks); err != nil {
		t.Fatalf("failed to cache tracks: %v", err)
	}

	all, err := repo.List(map[string]any{})
	if err != nil {
		t.Fatalf("failed to list tracks: %v", err)
	}

	if len(all) != 2 {
		t.Errorf("expected 2 cached tracks, got %d", len(all))
	}
}

func TestPlaylistRepository(t *testing.T) {
	t.Run("Create & Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewPlaylistRepository(db)
		playlist := models.NewPersistedPlaylist("Road Trip", "Driving songs")

		if err := repo.Create(playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		retrieved, err := repo.Get(playlist.ID())
		if err != nil {
			t.Fatalf("failed to get playlist: %v", err)
		}

		if retrieved.Name != "Road Trip" {
			t.Errorf("expected name 'Road Trip', got %s", retrieved.Name)
		}

		if retrieved.Description != "Driving songs" {
			t.Errorf("expected description 'Driving songs', got %s", retrieved.Description)
		}
	})

	t.Run("GetByName", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewPlaylistRepository(db)
		playlist := models.NewPersistedPlaylist("Road Trip", "")

		if err := repo.Create(playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		retrieved, err := repo.GetByName("Road Trip")
		if err != nil {
			t.Fatalf("failed to get playlist by name: %v", err)
		}

		if retrieved.ID() != playlist.ID() {
			t.Errorf("expected ID %s, got %s", playlist.ID(), retrieved.ID())
		}

		if _, err := repo.GetByName("Missing"); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})

	t.Run("Update & Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewPlaylistRepository(db)
		playlist := models.NewPersistedPlaylist("Road Trip", "")

		if err := repo.Create(playlist); err != nil {
			t.Fatalf("failed to create playlist: %v", err)
		}

		playlist.Description = "Updated"
		if err := repo.Update(playlist); err != nil {
			t.Fatalf("failed to update playlist: %v", err)
		}

		if err := repo.Delete(playlist.ID()); err != nil {
			t.Fatalf("failed to delete playlist: %v", err)
		}

		if _, err := repo.Get(playlist.ID()); !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound after delete, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewPlaylistRepository(db)

		for _, name := range []string{"First", "Second", "Third"} {
			if err := repo.Create(models.NewPersistedPlaylist(name, "")); err != nil {
				t.Fatalf("failed to create playlist: %v", err)
			}
		}

		playlists, err := repo.List(map[string]any{})
		if err != nil {
			t.Fatalf("failed to list playlists: %v", err)
		}

		if len(playlists) != 3 {
			t.Fatalf("expected 3 playlists, got %d", len(playlists))
		}

		if playlists[0].Name != "First" || playlists[2].Name != "Third" {
			t.Errorf("playlists out of order: %s, %s, %s", playlists[0].Name, playlists[1].Name, playlists[2].Name)
		}
	})
}

func TestPlaylistRepository_Tracks(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	trackRepo := NewTrackRepository(db)
	playlistRepo := NewPlaylistRepository(db)

	playlist := models.NewPersistedPlaylist("Mix", "")
	if err := playlistRepo.Create(playlist); err != nil {
		t.Fatalf("failed to create playlist: %v", err)
	}

	var ids []string
	for _, title := range []string{"One", "Two", "Three"} {
		track := models.NewPersistedTrack("ytmusic", testTrack("yt-"+title, title))
		if err := trackRepo.Create(track); err != nil {
			t.Fatalf("failed to create track: %v", err)
		}
		ids = append(ids, track.ID())
	}

	for _, id := range ids {
		if err := playlistRepo.AddTrack(playlist.ID(), id); err != nil {
			t.Fatalf("failed to add track: %v", err)
		}
	}

	// Re-adding an existing track is a no-op.
	if err := playlistRepo.AddTrack(playlist.ID(), ids[0]); err != nil {
		t.Fatalf("re-adding track should not error: %v", err)
	}

	tracks, err := playlistRepo.Tracks(playlist.ID())
	if err != nil {
		t.Fatalf("failed to get playlist tracks: %v", err)
	}

	if len(tracks) != 3 {
		t.Fatalf("expected 3 tracks, got %d", len(tracks))
	}

	if tracks[0].Title != "One" || tracks[1].Title != "Two" || tracks[2].Title != "Three" {
		t.Errorf("tracks out of order: %s, %s, %s", tracks[0].Title, tracks[1].Title, tracks[2].Title)
	}

	count, err := playlistRepo.TrackCount(playlist.ID())
	if err != nil {
		t.Fatalf("failed to count tracks: %v", err)
	}

	if count != 3 {
		t.Errorf("expected count 3, got %d", count)
	}

	if err := playlistRepo.RemoveTrack(playlist.ID(), ids[1]); err != nil {
		t.Fatalf("failed to remove track: %v", err)
	}

	tracks, err = playlistRepo.Tracks(playlist.ID())
	if err != nil {
		t.Fatalf("failed to get playlist tracks: %v", err)
	}

	if len(tracks) != 2 || tracks[0].Title != "One" || tracks[1].Title != "Three" {
		t.Errorf("unexpected tracks after removal: %v", tracks)
	}

	if err := playlistRepo.RemoveTrack(playlist.ID(), ids[1]); !errors.Is(err, shared.ErrTrackNotFound) {
		t.Errorf("expected ErrTrackNotFound on double removal, got %v", err)
	}

	retrieved, err := playlistRepo.Get(playlist.ID())
	if err != nil {
		t.Fatalf("failed to get playlist: %v", err)
	}

	if retrieved.TrackCount != 2 {
		t.Errorf("expected TrackCount 2, got %d", retrieved.TrackCount)
	}
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	seq1, err := NextSequence(db, "tracks")
	if err != nil {
		t.Fatalf("failed to get first sequence: %v", err)
	}

	if seq1 != 1 {
		t.Errorf("expected first sequence to be 1, got %d", seq1)
	}

	seq2, err := NextSequence(db, "tracks")
	if err != nil {
		t.Fatalf("failed to get second sequence: %v", err)
	}

	if seq2 != 2 {
		t.Errorf("expected second sequence to be 2, got %d", seq2)
	}

	playlistSeq, err := NextSequence(db, "playlists")
	if err != nil {
		t.Fatalf("failed to get playlist sequence: %v", err)
	}

	if playlistSeq != 1 {
		t.Errorf("expected first playlist sequence to be 1, got %d", playlistSeq)
	}
}
