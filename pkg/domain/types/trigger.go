package types

// SearchTrigger identifies which classifier signal requested web grounding
type SearchTrigger string

const (
	// SearchTriggerNone means no signal matched
	SearchTriggerNone SearchTrigger = "none"
	// SearchTriggerLexical means a configured indicator phrase matched
	SearchTriggerLexical SearchTrigger = "lexical"
	// SearchTriggerURL means a URL or domain name was found in the text
	SearchTriggerURL SearchTrigger = "url"
	// SearchTriggerRecency means a temporal-currency phrase matched
	SearchTriggerRecency SearchTrigger = "recency"
)

// String returns the string representation of the search trigger
func (t SearchTrigger) String() string {
	return string(t)
}
