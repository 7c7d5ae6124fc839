package lyrics

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/amp/internal/models"
	"github.com/desertthunder/amp/internal/shared"
)

const defaultLRCLIBBaseURL = "https://lrclib.net"

// DefaultTimeout bounds the lyrics lookup; past it the provider falls back
// to a synthetic track rather than leaving the caller pending.
const DefaultTimeout = 8 * time.Second

// lrclibResponse is the relevant subset of the LRCLIB get payload.
type lrclibResponse struct {
	TrackName    string  `json:"trackName"`
	ArtistName   string  `json:"artistName"`
	Duration     float64 `json:"duration"`
	Instrumental bool    `json:"instrumental"`
	SyncedLyrics string  `json:"syncedLyrics"`
}

// LRCLIBProvider fetches synced lyrics from an LRCLIB-compatible API.
//
// Fetch never returns an error for missing or malformed lyrics; every
// degraded path yields a [Fallback] track so the caller always has lines to
// synchronize against.
type LRCLIBProvider struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// NewLRCLIBProvider creates a provider. An empty baseURL selects the public
// LRCLIB instance; a nil client gets the default timeout applied.
func NewLRCLIBProvider(baseURL string, client *http.Client, logger *log.Logger) *LRCLIBProvider {
	if baseURL == "" {
		baseURL = defaultLRCLIBBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &LRCLIBProvider{
		baseURL:    baseURL,
		httpClient: client,
		logger:     logger,
	}
}

// Fetch looks up synced lyrics by title and artist.
func (p *LRCLIBProvider) Fetch(ctx context.Context, title, artist string) (*models.LyricsTrack, error) {
	resp, err := p.get(ctx, title, artist)
	if err != nil {
		p.logger.Debug("lyrics lookup degraded to fallback", "title", title, "artist", artist, "error", err)
		return Fallback(title, artist, 0), nil
	}

	if resp.Instrumental || resp.SyncedLyrics == "" {
		return Fallback(title, artist, resp.Duration), nil
	}

	lines := ParseLRC(resp.SyncedLyrics)
	if len(lines) == 0 {
		return Fallback(title, artist, resp.Duration), nil
	}

	track, err := models.NewLyricsTrack(lines, models.SourceReal)
	if err != nil {
		// ParseLRC sorts its output; reaching this is a parser bug.
		return Fallback(title, artist, resp.Duration), nil
	}

	return track, nil
}

func (p *LRCLIBProvider) get(ctx context.Context, title, artist string) (*lrclibResponse, error) {
	q := url.Values{}
	q.Set("track_name", title)
	q.Set("artist_name", artist)

	apiURL := fmt.Sprintf("%s/api/get?%s", p.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: lyrics API returned %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var parsed lrclibResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &parsed, nil
}
