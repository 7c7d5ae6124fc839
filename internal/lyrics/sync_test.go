package lyrics

import (
	"testing"

	"github.com/desertthunder/amp/internal/models"
	tu "github.com/desertthunder/amp/internal/testing"
)

func TestResolveActiveLine(t *testing.T) {
	lines := []models.LyricLine{
		{Time: 0, Text: "zero"},
		{Time: 5, Text: "five"},
		{Time: 5, Text: "five again"},
		{Time: 10, Text: "ten"},
	}

	tc := []struct {
		name     string
		position float64
		want     int
	}{
		{name: "before first line", position: -1, want: NoLine},
		{name: "exactly at first", position: 0, want: 0},
		{name: "between lines", position: 3, want: 0},
		{name: "tie resolves to last of the tie", position: 5, want: 2},
		{name: "past a tie", position: 7, want: 2},
		{name: "at the last line", position: 10, want: 3},
		{name: "past the end", position: 500, want: 3},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveActiveLine(lines, tt.position); got != tt.want {
				t.Errorf("ResolveActiveLine(%.1f) = %d, want %d", tt.position, got, tt.want)
			}
		})
	}

	t.Run("no lines", func(t *testing.T) {
		if got := ResolveActiveLine(nil, 10); got != NoLine {
			t.Errorf("ResolveActiveLine(nil) = %d, want NoLine", got)
		}
	})

	t.Run("position before first timestamp", func(t *testing.T) {
		delayed := []models.LyricLine{{Time: 12, Text: "late start"}}
		if got := ResolveActiveLine(delayed, 4); got != NoLine {
			t.Errorf("ResolveActiveLine = %d, want NoLine during the intro", got)
		}
	})

	t.Run("empty text lines activate normally", func(t *testing.T) {
		interlude := []models.LyricLine{
			{Time: 0, Text: "verse"},
			{Time: 4, Text: ""},
			{Time: 8, Text: "chorus"},
		}
		if got := ResolveActiveLine(interlude, 5); got != 1 {
			t.Errorf("ResolveActiveLine = %d, want 1 (the interlude)", got)
		}
	})
}

func TestSynchronizer(t *testing.T) {
	newTrack := func(t *testing.T) *models.LyricsTrack {
		return tu.MustLyricsTrack(t, []models.LyricLine{
			{Time: 0, Text: "a"},
			{Time: 5, Text: "b"},
			{Time: 10, Text: "c"},
		})
	}

	t.Run("advance reports changes only once", func(t *testing.T) {
		s := NewSynchronizer()
		s.SetTrack(newTrack(t))

		idx, changed := s.Advance(6)
		if idx != 1 || !changed {
			t.Fatalf("Advance(6) = (%d, %v), want (1, true)", idx, changed)
		}

		idx, changed = s.Advance(7)
		if idx != 1 || changed {
			t.Errorf("Advance(7) = (%d, %v), want (1, false)", idx, changed)
		}

		idx, changed = s.Advance(9.9)
		if idx != 1 || changed {
			t.Errorf("Advance(9.9) = (%d, %v), want (1, false)", idx, changed)
		}
	})

	t.Run("seek backwards moves the cursor back", func(t *testing.T) {
		s := NewSynchronizer()
		s.SetTrack(newTrack(t))

		s.Advance(11)
		idx, changed := s.Advance(1)
		if idx != 0 || !changed {
			t.Errorf("Advance(1) after 11 = (%d, %v), want (0, true)", idx, changed)
		}
	})

	t.Run("set track resets the cursor", func(t *testing.T) {
		s := NewSynchronizer()
		s.SetTrack(newTrack(t))
		s.Advance(6)

		s.SetTrack(newTrack(t))
		if s.Active() != NoLine {
			t.Errorf("Active = %d after SetTrack, want NoLine", s.Active())
		}
	})

	t.Run("nil track resolves to no line", func(t *testing.T) {
		s := NewSynchronizer()

		idx, changed := s.Advance(50)
		if idx != NoLine || changed {
			t.Errorf("Advance with no track = (%d, %v), want (NoLine, false)", idx, changed)
		}
	})

	t.Run("clearing a track mid-playback", func(t *testing.T) {
		s := NewSynchronizer()
		s.SetTrack(newTrack(t))
		s.Advance(6)

		s.SetTrack(nil)
		if s.Track() != nil || s.Active() != NoLine {
			t.Error("SetTrack(nil) did not clear state")
		}
	})
}
