package model

import (
	"time"

	"github.com/secmon-lab/ariadne/pkg/domain/types"
)

// DefaultConversationTitle is used when the caller does not name a conversation
const DefaultConversationTitle = "New Conversation"

// Conversation is an append-only log of turns owned by a single user.
// The turn list is totally ordered by arrival time and individual turns
// are never edited or removed; only the whole conversation can be deleted
// by its owner.
type Conversation struct {
	ID        types.ConversationID
	UserID    types.UserID
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewConversation creates a conversation for the given owner
func NewConversation(userID types.UserID, title string) *Conversation {
	if title == "" {
		title = DefaultConversationTitle
	}
	now := time.Now().UTC()
	return &Conversation{
		ID:        types.NewConversationID(),
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
