package websearch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ariadne/pkg/service/websearch"
	"google.golang.org/api/googleapi"
)

func TestNew_RequiresCredentials(t *testing.T) {
	ctx := context.Background()

	t.Run("missing API key", func(t *testing.T) {
		_, err := websearch.New(ctx, "", "engine-id")
		gt.Error(t, err)
		gt.B(t, errors.Is(err, websearch.ErrNotConfigured)).True()
	})

	t.Run("missing engine ID", func(t *testing.T) {
		_, err := websearch.New(ctx, "api-key", "")
		gt.Error(t, err)
		gt.B(t, errors.Is(err, websearch.ErrNotConfigured)).True()
	})
}

func TestClassifySearchError(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		expected error
	}{
		{
			name:     "forbidden maps to quota exceeded",
			err:      &googleapi.Error{Code: 403, Message: "daily limit exceeded"},
			expected: websearch.ErrQuotaExceeded,
		},
		{
			name:     "too many requests maps to quota exceeded",
			err:      &googleapi.Error{Code: 429, Message: "rate limit"},
			expected: websearch.ErrQuotaExceeded,
		},
		{
			name:     "unauthorized maps to unauthorized",
			err:      &googleapi.Error{Code: 401, Message: "invalid key"},
			expected: websearch.ErrUnauthorized,
		},
		{
			name:     "server error maps to unavailable",
			err:      &googleapi.Error{Code: 500, Message: "backend error"},
			expected: websearch.ErrSearchUnavailable,
		},
		{
			name:     "transport failure maps to unavailable",
			err:      errors.New("connection refused"),
			expected: websearch.ErrSearchUnavailable,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := websearch.ClassifySearchError(tc.err, "test query")
			gt.Error(t, err)
			gt.B(t, errors.Is(err, tc.expected)).True()
		})
	}
}
