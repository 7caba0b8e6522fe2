package websearch

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the web search provider. Callers distinguish these
// with errors.Is; all of them are recoverable by falling back to the
// ungrounded prompt path.
var (
	// ErrNotConfigured means API credentials are missing; no network call
	// was attempted
	ErrNotConfigured = goerr.New("web search credentials not configured")

	// ErrUnauthorized means the provider rejected the credentials
	ErrUnauthorized = goerr.New("web search credentials rejected")

	// ErrQuotaExceeded means the provider returned a quota failure
	ErrQuotaExceeded = goerr.New("web search quota exceeded")

	// ErrSearchUnavailable covers transport failures and unexpected
	// provider responses
	ErrSearchUnavailable = goerr.New("web search unavailable")
)
