package catalog

import (
	"strings"

	"github.com/desertthunder/amp/internal/models"
)

// NormalizeTrack converts one raw proxy result into a [models.Track]. The
// proxy surfaces several shapes for the same concepts depending on the
// endpoint; this is the only place those variants are known. The boolean is
// false when no usable catalog ID can be recovered.
func NormalizeTrack(raw map[string]any) (models.Track, bool) {
	track := models.Track{
		ID:           firstString(raw, "videoId", "video_id", "id"),
		Title:        firstString(raw, "title", "name"),
		Artists:      normalizeArtists(raw),
		DurationHint: firstString(raw, "duration", "length"),
	}

	if track.ID == "" {
		// Some endpoints bury the ID in a watch endpoint object.
		if watch, ok := raw["watchEndpoint"].(map[string]any); ok {
			track.ID = firstString(watch, "videoId")
		}
	}

	if track.ID == "" {
		return models.Track{}, false
	}

	if track.Title == "" {
		track.Title = track.ID
	}

	return track, true
}

// NormalizeTracks converts a raw result list, dropping entries without a
// usable ID.
func NormalizeTracks(raw []any) []models.Track {
	tracks := make([]models.Track, 0, len(raw))

	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if track, ok := NormalizeTrack(m); ok {
			tracks = append(tracks, track)
		}
	}

	return tracks
}

// normalizeArtists handles the artist field variants: a list of
// {name, id} objects, a list of strings, or a single joined string.
func normalizeArtists(raw map[string]any) []string {
	for _, key := range []string{"artists", "artist", "author"} {
		switch v := raw[key].(type) {
		case []any:
			var names []string
			for _, entry := range v {
				switch a := entry.(type) {
				case map[string]any:
					if name := firstString(a, "name", "title"); name != "" {
						names = append(names, name)
					}
				case string:
					if a != "" {
						names = append(names, a)
					}
				}
			}
			if len(names) > 0 {
				return names
			}
		case string:
			if v != "" {
				return splitJoinedArtists(v)
			}
		}
	}

	return nil
}

func splitJoinedArtists(joined string) []string {
	parts := strings.Split(joined, ", ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := raw[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
