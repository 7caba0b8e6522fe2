package websearch

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ariadne/pkg/domain/model"
	"github.com/secmon-lab/ariadne/pkg/utils/logging"
	customsearch "google.golang.org/api/customsearch/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	// DefaultMaxResults is requested when the caller passes a non-positive
	// limit
	DefaultMaxResults = 5
	// maxResultsCap is the upper bound enforced by the Custom Search API
	maxResultsCap = 10

	defaultTimeout = 10 * time.Second
)

// Client queries the Google Custom Search API
type Client struct {
	svc      *customsearch.Service
	engineID string
	timeout  time.Duration
}

var _ Service = &Client{}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithTimeout sets the per-request deadline for search calls
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates a web search client. Both the API key and the search engine
// ID are required; New fails without touching the network when either is
// missing.
func New(ctx context.Context, apiKey, engineID string, opts ...Option) (*Client, error) {
	if apiKey == "" || engineID == "" {
		return nil, goerr.Wrap(ErrNotConfigured, "API key and search engine ID are required")
	}

	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create custom search service")
	}

	c := &Client{
		svc:      svc,
		engineID: engineID,
		timeout:  defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Search performs one request against the provider and projects the
// upstream items into search results. It never retries; retry policy, if
// any, belongs to the caller.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]*model.SearchResult, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults > maxResultsCap {
		maxResults = maxResultsCap
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	logging.From(ctx).Debug("performing web search", "query", query, "max_results", maxResults)

	resp, err := c.svc.Cse.List().
		Cx(c.engineID).
		Q(query).
		Num(int64(maxResults)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classifySearchError(err, query)
	}

	results := make([]*model.SearchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		results = append(results, &model.SearchResult{
			Title:   item.Title,
			Snippet: item.Snippet,
			Link:    item.Link,
		})
	}

	logging.From(ctx).Debug("web search completed", "query", query, "results", len(results))
	return results, nil
}

// classifySearchError maps an upstream failure to one of the package
// sentinel errors, preserving the upstream status for operators.
func classifySearchError(err error, query string) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusForbidden, http.StatusTooManyRequests:
			return goerr.Wrap(ErrQuotaExceeded, "provider rejected search",
				goerr.V("status", gerr.Code),
				goerr.V("message", gerr.Message),
				goerr.V("query", query))
		case http.StatusUnauthorized:
			return goerr.Wrap(ErrUnauthorized, "provider rejected credentials",
				goerr.V("status", gerr.Code),
				goerr.V("message", gerr.Message))
		default:
			return goerr.Wrap(ErrSearchUnavailable, "provider returned an error",
				goerr.V("status", gerr.Code),
				goerr.V("message", gerr.Message),
				goerr.V("query", query))
		}
	}

	// Transport failure or request timeout
	return goerr.Wrap(ErrSearchUnavailable, "search request failed",
		goerr.V("cause", err.Error()),
		goerr.V("query", query))
}
