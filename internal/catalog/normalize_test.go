package catalog

import (
	"reflect"
	"testing"
)

func TestNormalizeTrack(t *testing.T) {
	tc := []struct {
		name       string
		raw        map[string]any
		wantID     string
		wantTitle  string
		wantArtist []string
		wantOK     bool
	}{
		{
			name: "search result shape",
			raw: map[string]any{
				"videoId":  "abc123",
				"title":    "Song",
				"artists":  []any{map[string]any{"name": "Artist", "id": "a1"}},
				"duration": "3:45",
			},
			wantID:     "abc123",
			wantTitle:  "Song",
			wantArtist: []string{"Artist"},
			wantOK:     true,
		},
		{
			name: "snake case id",
			raw: map[string]any{
				"video_id": "xyz",
				"name":     "Other",
			},
			wantID:    "xyz",
			wantTitle: "Other",
			wantOK:    true,
		},
		{
			name: "watch endpoint id",
			raw: map[string]any{
				"title":         "Buried",
				"watchEndpoint": map[string]any{"videoId": "deep1"},
			},
			wantID:    "deep1",
			wantTitle: "Buried",
			wantOK:    true,
		},
		{
			name: "joined artist string splits",
			raw: map[string]any{
				"id":     "j1",
				"title":  "Duet",
				"artist": "First, Second",
			},
			wantID:     "j1",
			wantTitle:  "Duet",
			wantArtist: []string{"First", "Second"},
			wantOK:     true,
		},
		{
			name: "artist string list",
			raw: map[string]any{
				"id":      "s1",
				"title":   "Band Song",
				"artists": []any{"One", "Two"},
			},
			wantID:     "s1",
			wantTitle:  "Band Song",
			wantArtist: []string{"One", "Two"},
			wantOK:     true,
		},
		{
			name: "missing title falls back to id",
			raw: map[string]any{
				"videoId": "vid9",
			},
			wantID:    "vid9",
			wantTitle: "vid9",
			wantOK:    true,
		},
		{
			name:   "no id at all",
			raw:    map[string]any{"title": "orphan"},
			wantOK: false,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			track, ok := NormalizeTrack(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if track.ID != tt.wantID || track.Title != tt.wantTitle {
				t.Errorf("track = %q/%q, want %q/%q", track.ID, track.Title, tt.wantID, tt.wantTitle)
			}
			if tt.wantArtist != nil && !reflect.DeepEqual(track.Artists, tt.wantArtist) {
				t.Errorf("Artists = %v, want %v", track.Artists, tt.wantArtist)
			}
		})
	}
}

func TestNormalizeTracks(t *testing.T) {
	raw := []any{
		map[string]any{"videoId": "a", "title": "A"},
		"not a map",
		map[string]any{"title": "no id"},
		map[string]any{"videoId": "b", "title": "B"},
	}

	tracks := NormalizeTracks(raw)
	if len(tracks) != 2 {
		t.Fatalf("normalized %d tracks, want 2", len(tracks))
	}
	if tracks[0].ID != "a" || tracks[1].ID != "b" {
		t.Errorf("tracks = %v", tracks)
	}
}
