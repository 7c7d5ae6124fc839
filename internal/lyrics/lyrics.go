package lyrics

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/desertthunder/amp/internal/models"
)

// Provider is the external lyrics capability. Implementations return a
// fallback track rather than an error when no real lyrics are found; the
// transport treats a missing result as "no lyrics", never as a failure that
// should interrupt playback.
type Provider interface {
	Fetch(ctx context.Context, title, artist string) (*models.LyricsTrack, error)
}

// lrcLine matches one "[mm:ss.xx]" (or "[mm:ss]") timestamp tag.
var lrcLine = regexp.MustCompile(`\[(\d+):(\d+)(?:\.(\d+))?\]`)

// ParseLRC parses synced lyrics in LRC format into sorted lines. Lines
// without a timestamp tag and metadata tags like "[ar:...]" are skipped. A
// line carrying several timestamps yields one entry per timestamp.
func ParseLRC(raw string) []models.LyricLine {
	var lines []models.LyricLine

	for _, row := range strings.Split(raw, "\n") {
		tags := lrcLine.FindAllStringSubmatch(row, -1)
		if len(tags) == 0 {
			continue
		}

		text := strings.TrimSpace(lrcLine.ReplaceAllString(row, ""))

		for _, tag := range tags {
			min, _ := strconv.Atoi(tag[1])
			sec, _ := strconv.Atoi(tag[2])

			ts := float64(min*60 + sec)
			if tag[3] != "" {
				frac, err := strconv.ParseFloat("0."+tag[3], 64)
				if err == nil {
					ts += frac
				}
			}

			lines = append(lines, models.LyricLine{Time: ts, Text: text})
		}
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Time < lines[j].Time
	})

	return lines
}

// Fallback builds a deterministic synthetic lyrics track for when no real
// lyrics exist. The lines carry no semantic meaning; they only give the
// synchronizer something to pace through so the lyric pane stays alive.
func Fallback(title, artist string, durationSeconds float64) *models.LyricsTrack {
	if durationSeconds <= 0 {
		durationSeconds = 180
	}

	lines := []models.LyricLine{
		{Time: 0, Text: title},
		{Time: 2, Text: artist},
		{Time: 4, Text: ""},
	}

	// Pace placeholder markers through the remainder of the track.
	step := (durationSeconds - 8) / 4
	if step < 4 {
		step = 4
	}
	for i := 1; i <= 4; i++ {
		lines = append(lines, models.LyricLine{
			Time: 4 + float64(i)*step,
			Text: fmt.Sprintf("♪ %s ♪", title),
		})
	}

	track, err := models.NewLyricsTrack(lines, models.SourceFallback)
	if err != nil {
		// The generated lines above are sorted by construction.
		panic(fmt.Sprintf("fallback lyrics unsorted: %v", err))
	}
	return track
}
