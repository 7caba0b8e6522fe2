package websearch

// ClassifySearchError exposes classifySearchError for testing
var ClassifySearchError = classifySearchError
