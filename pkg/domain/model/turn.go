package model

import (
	"time"

	"github.com/secmon-lab/ariadne/pkg/domain/types"
)

// TurnMetadata holds diagnostic details about how an assistant turn was
// produced. It is persisted alongside the turn but never shown to the user.
type TurnMetadata struct {
	// Path is the generation path that produced the text (assistant turns only)
	Path types.ResponsePath
	// Grounded is true when the prompt was augmented with web search results
	Grounded bool
	// LatencyMillis is the wall time spent producing the turn
	LatencyMillis int64
}

// Turn is a single message within a conversation. Turns are immutable
// once created.
type Turn struct {
	ID             types.TurnID
	ConversationID types.ConversationID
	Role           types.TurnRole
	Text           string
	Metadata       TurnMetadata
	CreatedAt      time.Time
}

// NewUserTurn creates a user-authored turn
func NewUserTurn(conversationID types.ConversationID, text string) *Turn {
	return &Turn{
		ID:             types.NewTurnID(),
		ConversationID: conversationID,
		Role:           types.TurnRoleUser,
		Text:           text,
		CreatedAt:      time.Now().UTC(),
	}
}

// NewAssistantTurn creates an assistant-authored turn with generation metadata
func NewAssistantTurn(conversationID types.ConversationID, text string, meta TurnMetadata) *Turn {
	return &Turn{
		ID:             types.NewTurnID(),
		ConversationID: conversationID,
		Role:           types.TurnRoleAssistant,
		Text:           text,
		Metadata:       meta,
		CreatedAt:      time.Now().UTC(),
	}
}

// Clone returns a copy of the turn to guard stored data against external
// mutation
func (t *Turn) Clone() *Turn {
	copied := *t
	return &copied
}
