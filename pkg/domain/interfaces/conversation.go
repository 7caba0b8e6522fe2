package interfaces

import (
	"context"

	"github.com/secmon-lab/ariadne/pkg/domain/model"
	"github.com/secmon-lab/ariadne/pkg/domain/types"
)

// ConversationRepository defines the interface for conversation persistence.
// The turn list is an append-only log: turns are stored in arrival order and
// are never updated or removed individually.
type ConversationRepository interface {
	// Create saves a new conversation
	Create(ctx context.Context, conv *model.Conversation) error

	// Get retrieves a conversation by ID. Returns nil (no error) when the
	// conversation does not exist.
	Get(ctx context.Context, id types.ConversationID) (*model.Conversation, error)

	// ListByUser retrieves all conversations owned by a user, most recently
	// updated first.
	ListByUser(ctx context.Context, userID types.UserID) ([]*model.Conversation, error)

	// Delete removes a conversation and all of its turns
	Delete(ctx context.Context, id types.ConversationID) error

	// AppendTurn appends a turn to the conversation log and bumps the
	// conversation's UpdatedAt. Fails when the conversation does not exist.
	AppendTurn(ctx context.Context, id types.ConversationID, turn *model.Turn) error

	// ListTurns retrieves all turns of a conversation in arrival order
	// (oldest first).
	ListTurns(ctx context.Context, id types.ConversationID) ([]*model.Turn, error)
}
