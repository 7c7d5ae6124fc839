// YouTube Music [Catalog] implementation
//
// Communicates with the FastAPI proxy server running on port 8080.
// The proxy wraps the ytmusicapi Python library for YouTube Music operations.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/desertthunder/amp/internal/models"
	"github.com/desertthunder/amp/internal/shared"
	"golang.org/x/time/rate"
)

const defaultYTBaseURL string = "http://localhost:8080"

// defaultRateRPS is the request budget per second against the proxy when the
// config does not set one.
const defaultRateRPS = 4.0

// YouTubeCatalog implements [Catalog] against the ytmusicapi proxy.
type YouTubeCatalog struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewYouTubeCatalog creates a catalog client. An empty baseURL selects the
// local proxy; a non-positive rps selects the default budget.
func NewYouTubeCatalog(baseURL string, client *http.Client, rps float64) *YouTubeCatalog {
	if baseURL == "" {
		baseURL = defaultYTBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	if rps <= 0 {
		rps = defaultRateRPS
	}

	return &YouTubeCatalog{
		baseURL:    baseURL,
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Name returns the catalog's display name.
func (y *YouTubeCatalog) Name() string {
	return "YouTube Music"
}

// Search queries the proxy's search endpoint and normalizes the results.
func (y *YouTubeCatalog) Search(ctx context.Context, query string) ([]models.Track, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", shared.ErrInvalidInput)
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("filter", "songs")

	var raw []any
	if err := y.doRequest(ctx, "/api/search?"+q.Encode(), &raw); err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	return NormalizeTracks(raw), nil
}

// Related queries the proxy for tracks related to a catalog ID.
func (y *YouTubeCatalog) Related(ctx context.Context, trackID string) ([]models.Track, error) {
	if trackID == "" {
		return nil, fmt.Errorf("%w: empty track id", shared.ErrInvalidInput)
	}

	var raw []any
	if err := y.doRequest(ctx, "/api/related/"+url.PathEscape(trackID), &raw); err != nil {
		return nil, fmt.Errorf("related lookup failed: %w", err)
	}

	tracks := NormalizeTracks(raw)
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrNoRelatedTracks, trackID)
	}

	return tracks, nil
}

func (y *YouTubeCatalog) doRequest(ctx context.Context, endpoint string, result any) error {
	if err := y.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	apiURL := y.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		body, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Detail != "" {
			return fmt.Errorf("%w: %s (%d)", shared.ErrAPIRequest, errResp.Detail, resp.StatusCode)
		}
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
