package models

import (
	"testing"
	"time"
)

func TestTrack(t *testing.T) {
	t.Run("Artist joins names", func(t *testing.T) {
		track := Track{ID: "a", Title: "Song", Artists: []string{"First", "Second"}}
		if got := track.Artist(); got != "First, Second" {
			t.Errorf("Artist() = %q, want %q", got, "First, Second")
		}
	})

	t.Run("Artist with no names", func(t *testing.T) {
		track := Track{ID: "a", Title: "Song"}
		if got := track.Artist(); got != "" {
			t.Errorf("Artist() = %q, want empty", got)
		}
	})

	t.Run("IsZero", func(t *testing.T) {
		if !(Track{}).IsZero() {
			t.Error("empty track should be zero")
		}
		if (Track{ID: "a"}).IsZero() {
			t.Error("track with ID should not be zero")
		}
	})
}

func TestNewLyricsTrack(t *testing.T) {
	t.Run("accepts sorted lines", func(t *testing.T) {
		lines := []LyricLine{
			{Time: 0, Text: "first"},
			{Time: 5, Text: "second"},
			{Time: 5, Text: "same timestamp"},
			{Time: 10, Text: ""},
		}

		lt, err := NewLyricsTrack(lines, SourceReal)
		if err != nil {
			t.Fatalf("NewLyricsTrack() error = %v", err)
		}

		if lt.Len() != 4 {
			t.Errorf("Len() = %d, want 4", lt.Len())
		}
	})

	t.Run("rejects unsorted lines", func(t *testing.T) {
		lines := []LyricLine{
			{Time: 5, Text: "second"},
			{Time: 0, Text: "first"},
		}

		if _, err := NewLyricsTrack(lines, SourceReal); err == nil {
			t.Error("expected error for unsorted lines")
		}
	})

	t.Run("accepts empty lines", func(t *testing.T) {
		lt, err := NewLyricsTrack(nil, SourceFallback)
		if err != nil {
			t.Fatalf("NewLyricsTrack() error = %v", err)
		}
		if lt.Len() != 0 {
			t.Errorf("Len() = %d, want 0", lt.Len())
		}
	})
}

func TestLyricsTrackLine(t *testing.T) {
	lt, err := NewLyricsTrack([]LyricLine{
		{Time: 0, Text: "hello"},
		{Time: 3, Text: "world"},
	}, SourceReal)
	if err != nil {
		t.Fatalf("NewLyricsTrack() error = %v", err)
	}

	if got := lt.Line(1); got != "world" {
		t.Errorf("Line(1) = %q, want %q", got, "world")
	}

	if got := lt.Line(-1); got != "" {
		t.Errorf("Line(-1) = %q, want empty", got)
	}

	if got := lt.Line(2); got != "" {
		t.Errorf("Line(2) = %q, want empty", got)
	}

	var nilTrack *LyricsTrack
	if nilTrack.Len() != 0 {
		t.Error("nil track Len() should be 0")
	}
	if nilTrack.Line(0) != "" {
		t.Error("nil track Line() should be empty")
	}
}

func TestSourceKindString(t *testing.T) {
	if SourceReal.String() != "real" {
		t.Errorf("SourceReal.String() = %q", SourceReal.String())
	}
	if SourceFallback.String() != "fallback" {
		t.Errorf("SourceFallback.String() = %q", SourceFallback.String())
	}
}

func TestPersistedTrack(t *testing.T) {
	t.Run("NewPersistedTrack wraps catalog track", func(t *testing.T) {
		track := Track{
			ID:           "yt1",
			Title:        "Song",
			Artists:      []string{"A", "B"},
			DurationHint: "3:45",
		}

		persisted := NewPersistedTrack("ytmusic", track)

		if persisted.Service != "ytmusic" || persisted.ServiceID != "yt1" {
			t.Errorf("service = %s/%s", persisted.Service, persisted.ServiceID)
		}
		if persisted.Artists != "A, B" {
			t.Errorf("Artists = %q, want %q", persisted.Artists, "A, B")
		}
		if persisted.CreatedAt().IsZero() {
			t.Error("CreatedAt should be set")
		}
	})

	t.Run("Validate requires identity fields", func(t *testing.T) {
		track := NewPersistedTrack("ytmusic", Track{ID: "yt1", Title: "Song"})

		if err := track.Validate(); err == nil {
			t.Error("expected error before SetID")
		}

		track.SetID("abc")
		if err := track.Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}

		track.Title = ""
		if err := track.Validate(); err == nil {
			t.Error("expected error for missing title")
		}
	})

	t.Run("Track round trip", func(t *testing.T) {
		original := Track{
			ID:           "yt1",
			Title:        "Song",
			Artists:      []string{"A", "B"},
			DurationHint: "3:45",
		}

		got := NewPersistedTrack("ytmusic", original).Track()

		if got.ID != original.ID || got.Title != original.Title || got.DurationHint != original.DurationHint {
			t.Errorf("round trip = %+v, want %+v", got, original)
		}
		if got.Artist() != original.Artist() {
			t.Errorf("Artist() = %q, want %q", got.Artist(), original.Artist())
		}
	})

	t.Run("Touch advances updated timestamp", func(t *testing.T) {
		track := NewPersistedTrack("ytmusic", Track{ID: "yt1", Title: "Song"})
		before := track.UpdatedAt()

		time.Sleep(time.Millisecond)
		track.Touch()

		if !track.UpdatedAt().After(before) {
			t.Error("Touch should advance UpdatedAt")
		}
	})
}

func TestPersistedPlaylist(t *testing.T) {
	playlist := NewPersistedPlaylist("Mix", "description")

	if err := playlist.Validate(); err == nil {
		t.Error("expected error before SetID")
	}

	playlist.SetID("abc")
	if err := playlist.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	playlist.Name = ""
	if err := playlist.Validate(); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestRestorePersistedTrack(t *testing.T) {
	created := time.Now().Add(-time.Hour)
	updated := time.Now()
	deleted := time.Now()

	track := RestorePersistedTrack("id1", 3, "ytmusic", "yt1", "Song", "A, B", "3:45", true, created, updated, &deleted)

	if track.ID() != "id1" || track.Sequence != 3 {
		t.Errorf("identity = %s/%d", track.ID(), track.Sequence)
	}
	if !track.Liked {
		t.Error("Liked should be true")
	}
	if track.DeletedAt() == nil {
		t.Error("DeletedAt should be set")
	}
}
