package websearch

import (
	"context"

	"github.com/secmon-lab/ariadne/pkg/domain/model"
)

// Service is the contract toward the web search provider. An empty result
// slice with a nil error means the query genuinely had no hits, which is
// distinct from a failed search.
type Service interface {
	Search(ctx context.Context, query string, maxResults int) ([]*model.SearchResult, error)
}
