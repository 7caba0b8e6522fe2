package classifier

import (
	"regexp"
	"strings"

	"github.com/secmon-lab/ariadne/pkg/domain/model"
	"github.com/secmon-lab/ariadne/pkg/domain/types"
)

// urlPattern matches an optional scheme, optional www. prefix, a domain
// label and a TLD of two or more letters, anywhere in the text.
var urlPattern = regexp.MustCompile(`\b(?:https?://)?(?:www\.)?(?:[a-zA-Z0-9-]+)(?:\.[a-zA-Z]{2,})+\b`)

// Config holds the trigger vocabulary. Phrase lists are matched as
// lowercase substrings, so new languages can be added through
// configuration without code changes.
type Config struct {
	// Indicators are fact-lookup and question-word phrases
	Indicators []string
	// Recency are temporal-currency phrases
	Recency []string
}

// Classifier decides whether a user message needs live web grounding.
// It is pure and safe for concurrent use.
type Classifier struct {
	indicators []string
	recency    []string
}

// New creates a classifier from the given vocabulary. Empty lists fall
// back to the defaults.
func New(cfg Config) *Classifier {
	indicators := cfg.Indicators
	if len(indicators) == 0 {
		indicators = defaultIndicators
	}
	recency := cfg.Recency
	if len(recency) == 0 {
		recency = defaultRecency
	}

	return &Classifier{
		indicators: lowercase(indicators),
		recency:    lowercase(recency),
	}
}

// NeedsSearch reports whether the message calls for web retrieval. Any
// single signal is sufficient; the returned decision records the first
// matching trigger for telemetry.
func (c *Classifier) NeedsSearch(text string) model.Decision {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return model.Decision{NeedsSearch: false, Trigger: types.SearchTriggerNone}
	}

	for _, phrase := range c.indicators {
		if strings.Contains(lowered, phrase) {
			return model.Decision{NeedsSearch: true, Trigger: types.SearchTriggerLexical}
		}
	}

	if urlPattern.MatchString(lowered) {
		return model.Decision{NeedsSearch: true, Trigger: types.SearchTriggerURL}
	}

	for _, phrase := range c.recency {
		if strings.Contains(lowered, phrase) {
			return model.Decision{NeedsSearch: true, Trigger: types.SearchTriggerRecency}
		}
	}

	return model.Decision{NeedsSearch: false, Trigger: types.SearchTriggerNone}
}

func lowercase(phrases []string) []string {
	result := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
