package model

import "github.com/secmon-lab/ariadne/pkg/domain/types"

// Decision is the outcome of the search-need classification for one user
// message. Retained only for logging; never persisted with the conversation.
type Decision struct {
	NeedsSearch bool
	Trigger     types.SearchTrigger
}
