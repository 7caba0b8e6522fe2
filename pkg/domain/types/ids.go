package types

import "github.com/google/uuid"

// ConversationID is a UUID-based identifier for a Conversation
type ConversationID string

// NewConversationID generates a new time-ordered ConversationID
func NewConversationID() ConversationID {
	return ConversationID(uuid.Must(uuid.NewV7()).String())
}

// String returns the string representation of the conversation ID
func (id ConversationID) String() string {
	return string(id)
}

// TurnID is a UUID-based identifier for a Turn
type TurnID string

// NewTurnID generates a new time-ordered TurnID
func NewTurnID() TurnID {
	return TurnID(uuid.Must(uuid.NewV7()).String())
}

// String returns the string representation of the turn ID
func (id TurnID) String() string {
	return string(id)
}

// UserID identifies an authenticated caller. Issued by the identity
// collaborator; this service never validates credentials itself.
type UserID string

// String returns the string representation of the user ID
func (id UserID) String() string {
	return string(id)
}
