package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/amp/internal/models"
	"github.com/desertthunder/amp/internal/shared"
	tu "github.com/desertthunder/amp/internal/testing"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			cat := &tu.MockCatalog{}
			lyr := &tu.MockLyricsProvider{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Catalog:    cat,
				Lyrics:     lyr,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.catalog != cat {
				t.Error("expected catalog to be set")
			}
			if runner.lyrics != lyr {
				t.Error("expected lyrics provider to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{HTTPClient: nil})

			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})
}

func TestSearchAction(t *testing.T) {
	t.Run("prints track listing", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Output: output,
			Catalog: &tu.MockCatalog{
				SearchResults: []models.Track{
					{ID: "a", Title: "Found Song", Artists: []string{"Someone"}},
				},
			},
		})

		cmd := searchCommand(runner)
		if err := cmd.Run(context.Background(), []string{"search", "found"}); err != nil {
			t.Fatalf("search failed: %v", err)
		}

		if !strings.Contains(output.String(), "1. Someone - Found Song") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("json output", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Output: output,
			Catalog: &tu.MockCatalog{
				SearchResults: []models.Track{{ID: "a", Title: "Found Song"}},
			},
		})

		cmd := searchCommand(runner)
		if err := cmd.Run(context.Background(), []string{"search", "--json", "found"}); err != nil {
			t.Fatalf("search failed: %v", err)
		}

		if !strings.Contains(output.String(), `"id": "a"`) {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("no results", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Output:  output,
			Catalog: &tu.MockCatalog{},
		})

		cmd := searchCommand(runner)
		if err := cmd.Run(context.Background(), []string{"search", "nothing"}); err != nil {
			t.Fatalf("search failed: %v", err)
		}

		if !strings.Contains(output.String(), "No tracks found") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("missing query", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{
			Output:  &bytes.Buffer{},
			Catalog: &tu.MockCatalog{},
		})

		cmd := searchCommand(runner)
		err := cmd.Run(context.Background(), []string{"search"})
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("catalog failure", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{
			Output:  &bytes.Buffer{},
			Catalog: &tu.MockCatalog{SearchErr: errors.New("proxy down")},
		})

		cmd := searchCommand(runner)
		err := cmd.Run(context.Background(), []string{"search", "anything"})
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("nil catalog", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

		cmd := searchCommand(runner)
		err := cmd.Run(context.Background(), []string{"search", "anything"})
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("caches results when asked", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Database.Path = filepath.Join(t.TempDir(), "amp.db")

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Config: config,
			Output: output,
			Catalog: &tu.MockCatalog{
				SearchResults: []models.Track{
					{ID: "a", Title: "Found Song", Artists: []string{"Someone"}},
				},
			},
		})

		cmd := searchCommand(runner)
		if err := cmd.Run(context.Background(), []string{"search", "--cache", "found"}); err != nil {
			t.Fatalf("search failed: %v", err)
		}

		tu.AssertFileExists(t, config.Database.Path)
	})
}

func TestRelatedAction(t *testing.T) {
	t.Run("prints related tracks", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Output: output,
			Catalog: &tu.MockCatalog{
				RelatedResults: []models.Track{
					{ID: "r1", Title: "Related Song", Artists: []string{"Someone"}},
				},
			},
		})

		cmd := relatedCommand(runner)
		if err := cmd.Run(context.Background(), []string{"related", "seed1"}); err != nil {
			t.Fatalf("related failed: %v", err)
		}

		if !strings.Contains(output.String(), "Related Song") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("missing id", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{
			Output:  &bytes.Buffer{},
			Catalog: &tu.MockCatalog{},
		})

		cmd := relatedCommand(runner)
		err := cmd.Run(context.Background(), []string{"related"})
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestLyricsAction(t *testing.T) {
	t.Run("prints timestamped lyrics", func(t *testing.T) {
		track, err := models.NewLyricsTrack([]models.LyricLine{
			{Time: 0, Text: "first line"},
			{Time: 5, Text: "second line"},
		}, models.SourceReal)
		if err != nil {
			t.Fatalf("failed to build lyrics track: %v", err)
		}

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Output: output,
			Lyrics: &tu.MockLyricsProvider{Result: track},
		})

		cmd := lyricsCommand(runner)
		if err := cmd.Run(context.Background(), []string{"lyrics", "--title", "Song", "--artist", "Artist"}); err != nil {
			t.Fatalf("lyrics failed: %v", err)
		}

		out := output.String()
		if !strings.Contains(out, "Artist - Song") {
			t.Errorf("missing header: %s", out)
		}
		if !strings.Contains(out, "[00:00.00] first line") {
			t.Errorf("missing lyric line: %s", out)
		}
	})

	t.Run("provider failure", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{
			Output: &bytes.Buffer{},
			Lyrics: &tu.MockLyricsProvider{Err: errors.New("lrclib down")},
		})

		cmd := lyricsCommand(runner)
		err := cmd.Run(context.Background(), []string{"lyrics", "--title", "Song"})
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("nil provider", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

		cmd := lyricsCommand(runner)
		err := cmd.Run(context.Background(), []string{"lyrics", "--title", "Song"})
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}
