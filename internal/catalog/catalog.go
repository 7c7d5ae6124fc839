// package catalog defines the Catalog interface for music lookup services
package catalog

import (
	"context"

	"github.com/desertthunder/amp/internal/models"
)

// Catalog defines the external search/lookup capability consumed by the
// playback core.
type Catalog interface {
	// Search returns tracks matching the query in relevance order.
	Search(ctx context.Context, query string) ([]models.Track, error)

	// Related returns tracks related to the given catalog ID, best first.
	Related(ctx context.Context, trackID string) ([]models.Track, error)

	// Name returns the catalog's display name.
	Name() string
}
