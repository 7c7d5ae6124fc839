// package formatter renders tracks, queues, playlists, and lyrics for CLI
// output and file export (CSV, Markdown, plain text, LRC).
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/desertthunder/amp/internal/models"
	"github.com/desertthunder/amp/internal/shared"
)

// TrackList renders catalog tracks as a numbered plain-text listing.
func TrackList(tracks []models.Track) []byte {
	var buf bytes.Buffer

	for i, track := range tracks {
		line := fmt.Sprintf("%d. %s - %s", i+1, track.Artist(), track.Title)
		if track.DurationHint != "" {
			line += fmt.Sprintf(" [%s]", track.DurationHint)
		}
		buf.WriteString(line + "\n")
	}

	return buf.Bytes()
}

// QueueList renders the play-next queue, marking the head with an arrow so
// the next track to play is obvious.
func QueueList(tracks []models.Track) []byte {
	var buf bytes.Buffer

	if len(tracks) == 0 {
		buf.WriteString("Queue is empty\n")
		return buf.Bytes()
	}

	for i, track := range tracks {
		marker := "  "
		if i == 0 {
			marker = "> "
		}
		buf.WriteString(fmt.Sprintf("%s%d. %s - %s\n", marker, i+1, track.Artist(), track.Title))
	}

	return buf.Bytes()
}

// LyricsText renders a synced lyrics track with one timestamped line per row.
func LyricsText(track *models.LyricsTrack) []byte {
	var buf bytes.Buffer

	for _, line := range track.Lines {
		minutes := int(line.Time) / 60
		seconds := line.Time - float64(minutes*60)
		buf.WriteString(fmt.Sprintf("[%02d:%05.2f] %s\n", minutes, seconds, line.Text))
	}

	return buf.Bytes()
}

// PlaylistExport bundles a playlist with its resolved tracks for rendering.
type PlaylistExport struct {
	Playlist *models.PersistedPlaylist
	Tracks   []*models.PersistedTrack
}

// ExportToCSV converts a PlaylistExport to CSV format with columns: ID, Title, Artists, Duration
func ExportToCSV(export *PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artists", "Duration"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range export.Tracks {
		record := []string{
			track.ServiceID,
			track.Title,
			track.Artists,
			track.Duration,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a PlaylistExport to Markdown format
func ExportToMarkdown(export *PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", export.Playlist.Name))

	if export.Playlist.Description != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", export.Playlist.Description))
	}

	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", len(export.Tracks)))

	buf.WriteString("## Tracks\n\n")
	for i, track := range export.Tracks {
		durationPart := ""
		if track.Duration != "" {
			durationPart = fmt.Sprintf(" [%s]", track.Duration)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s\n", i+1, track.Artists, track.Title, durationPart))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a PlaylistExport to plain text format
func ExportToText(export *PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", export.Playlist.Name))
	if export.Playlist.Description != "" {
		buf.WriteString(fmt.Sprintf("Description: %s\n", export.Playlist.Description))
	}
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(export.Tracks)))

	for i, track := range export.Tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, track.Artists, track.Title))
	}

	return buf.Bytes(), nil
}

// WriteExport renders a playlist in the given format ("csv", "markdown", or
// "text") and writes it to filepath. An empty filepath derives one from the
// playlist name.
func WriteExport(export *PlaylistExport, format, filepath string) (string, error) {
	var (
		data []byte
		err  error
		ext  string
	)

	switch format {
	case "csv":
		data, err = ExportToCSV(export)
		ext = ".csv"
	case "markdown", "md":
		data, err = ExportToMarkdown(export)
		ext = ".md"
	case "text", "txt", "":
		data, err = ExportToText(export)
		ext = ".txt"
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return "", err
	}

	if filepath == "" {
		filepath = export.Playlist.Name + ext
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return filepath, nil
}
