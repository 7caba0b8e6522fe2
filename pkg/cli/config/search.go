package config

import (
	"context"
	"log/slog"

	"github.com/secmon-lab/ariadne/pkg/service/websearch"
	"github.com/urfave/cli/v3"
)

// Search holds configuration for the web search provider
type Search struct {
	apiKey   string
	engineID string
}

// Flags returns CLI flags for web search configuration
func (s *Search) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "search-api-key",
			Usage:       "Google Custom Search API key",
			Sources:     cli.EnvVars("ARIADNE_SEARCH_API_KEY"),
			Destination: &s.apiKey,
		},
		&cli.StringFlag{
			Name:        "search-engine-id",
			Usage:       "Google Custom Search engine ID (cx)",
			Sources:     cli.EnvVars("ARIADNE_SEARCH_ENGINE_ID"),
			Destination: &s.engineID,
		},
	}
}

// IsConfigured returns true when both credentials are present
func (s *Search) IsConfigured() bool {
	return s.apiKey != "" && s.engineID != ""
}

// LogAttrs returns log attributes for the search configuration. The API key
// is reported only by presence.
func (s *Search) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Bool("api_key_set", s.apiKey != ""),
		slog.String("engine_id", s.engineID),
	}
}

// Configure creates a web search client from the configured flags. Returns
// nil if the credentials are not set; the chat pipeline then answers without
// grounding.
func (s *Search) Configure(ctx context.Context) (websearch.Service, error) {
	if !s.IsConfigured() {
		return nil, nil
	}

	client, err := websearch.New(ctx, s.apiKey, s.engineID)
	if err != nil {
		return nil, err
	}

	return client, nil
}
