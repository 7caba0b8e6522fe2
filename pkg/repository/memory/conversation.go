package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ariadne/pkg/domain/interfaces"
	"github.com/secmon-lab/ariadne/pkg/domain/model"
	"github.com/secmon-lab/ariadne/pkg/domain/types"
)

type conversationRepository struct {
	mu            sync.RWMutex
	conversations map[types.ConversationID]*model.Conversation
	turns         map[types.ConversationID][]*model.Turn
}

var _ interfaces.ConversationRepository = &conversationRepository{}

func newConversationRepository() *conversationRepository {
	return &conversationRepository{
		conversations: make(map[types.ConversationID]*model.Conversation),
		turns:         make(map[types.ConversationID][]*model.Turn),
	}
}

func (r *conversationRepository) Create(_ context.Context, conv *model.Conversation) error {
	if conv == nil {
		return goerr.New("conversation is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conversations[conv.ID]; ok {
		return goerr.New("conversation already exists", goerr.V("id", conv.ID))
	}

	copied := *conv
	r.conversations[conv.ID] = &copied
	return nil
}

func (r *conversationRepository) Get(_ context.Context, id types.ConversationID) (*model.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conv, ok := r.conversations[id]
	if !ok {
		return nil, nil
	}

	copied := *conv
	return &copied, nil
}

func (r *conversationRepository) ListByUser(_ context.Context, userID types.UserID) ([]*model.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Conversation
	for _, conv := range r.conversations {
		if conv.UserID == userID {
			copied := *conv
			result = append(result, &copied)
		}
	}

	// Most recently updated first
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})

	return result, nil
}

func (r *conversationRepository) Delete(_ context.Context, id types.ConversationID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conversations[id]; !ok {
		return ErrNotFound
	}

	delete(r.conversations, id)
	delete(r.turns, id)
	return nil
}

func (r *conversationRepository) AppendTurn(_ context.Context, id types.ConversationID, turn *model.Turn) error {
	if turn == nil {
		return goerr.New("turn is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	conv, ok := r.conversations[id]
	if !ok {
		return ErrNotFound
	}

	r.turns[id] = append(r.turns[id], turn.Clone())
	conv.UpdatedAt = turn.CreatedAt
	return nil
}

func (r *conversationRepository) ListTurns(_ context.Context, id types.ConversationID) ([]*model.Turn, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	turns := r.turns[id]
	result := make([]*model.Turn, 0, len(turns))
	for _, t := range turns {
		result = append(result, t.Clone())
	}

	return result, nil
}
