package model

// SearchResult is one ranked hit from the web search provider. It is an
// ephemeral value consumed within a single request to build an augmented
// prompt; it is never persisted.
type SearchResult struct {
	Title   string
	Snippet string
	Link    string
}
