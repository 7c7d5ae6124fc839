// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/amp/internal/models"
)

// MockPlayer is a controllable test double for the playback surface.
//
// Position and duration are set directly by the test; FireEnded invokes the
// registered ended callback the way a real player would at end of track.
type MockPlayer struct {
	mu sync.Mutex

	LoadedID string
	Playing  bool
	Volume   int
	Position float64
	Dur      float64
	LoadErr  error
	Loads    []string
	Seeks    []float64

	onEnded func()
}

func (m *MockPlayer) Load(trackID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return m.LoadErr
	}
	m.LoadedID = trackID
	m.Loads = append(m.Loads, trackID)
	m.Position = 0
	return nil
}

func (m *MockPlayer) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Playing = true
	return nil
}

func (m *MockPlayer) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Playing = false
	return nil
}

func (m *MockPlayer) SeekTo(seconds float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Position = seconds
	m.Seeks = append(m.Seeks, seconds)
	return nil
}

func (m *MockPlayer) CurrentTime() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Position, nil
}

func (m *MockPlayer) Duration() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Dur, nil
}

func (m *MockPlayer) SetVolume(percent int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Volume = percent
	return nil
}

func (m *MockPlayer) OnEnded(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onEnded = fn
}

// FireEnded invokes the currently registered ended callback, if any.
func (m *MockPlayer) FireEnded() {
	m.mu.Lock()
	fn := m.onEnded
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// SetPosition updates the simulated playhead.
func (m *MockPlayer) SetPosition(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Position = seconds
}

// MockCatalog is a test double for catalog.Catalog with canned results.
type MockCatalog struct {
	SearchResults  []models.Track
	RelatedResults []models.Track
	SearchErr      error
	RelatedErr     error
	RelatedCalls   []string
}

func (m *MockCatalog) Search(ctx context.Context, query string) ([]models.Track, error) {
	return m.SearchResults, m.SearchErr
}

func (m *MockCatalog) Related(ctx context.Context, trackID string) ([]models.Track, error) {
	m.RelatedCalls = append(m.RelatedCalls, trackID)
	return m.RelatedResults, m.RelatedErr
}

func (m *MockCatalog) Name() string { return "mock" }

// MockLyricsProvider is a test double for lyrics.Provider.
type MockLyricsProvider struct {
	mu     sync.Mutex
	Result *models.LyricsTrack
	Err    error
	calls  int
}

func (m *MockLyricsProvider) Fetch(ctx context.Context, title, artist string) (*models.LyricsTrack, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.Result, m.Err
}

// Calls reports how many fetches were issued.
func (m *MockLyricsProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// MustLyricsTrack builds a synced lyrics track or fails the test.
func MustLyricsTrack(t *testing.T, lines []models.LyricLine) *models.LyricsTrack {
	t.Helper()
	track, err := models.NewLyricsTrack(lines, models.SourceReal)
	if err != nil {
		t.Fatalf("Failed to build lyrics track: %v", err)
	}
	return track
}
