package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ariadne/pkg/domain/interfaces"
	"github.com/secmon-lab/ariadne/pkg/domain/model"
	"github.com/secmon-lab/ariadne/pkg/domain/types"
	"github.com/secmon-lab/ariadne/pkg/service/classifier"
	"github.com/secmon-lab/ariadne/pkg/service/responder"
	"github.com/secmon-lab/ariadne/pkg/service/websearch"
	"github.com/secmon-lab/ariadne/pkg/utils/logging"
)

// ChatUseCase orchestrates the message pipeline: classification, optional
// web search grounding, generation, and persistence of both sides of the
// exchange.
type ChatUseCase struct {
	repo       interfaces.Repository
	classifier *classifier.Classifier
	search     websearch.Service
	responder  responder.Service
}

func NewChatUseCase(repo interfaces.Repository, c *classifier.Classifier, search websearch.Service, rsp responder.Service) *ChatUseCase {
	return &ChatUseCase{
		repo:       repo,
		classifier: c,
		search:     search,
		responder:  rsp,
	}
}

// ChatExchange is the result of one SendMessage call
type ChatExchange struct {
	UserTurn      *model.Turn
	AssistantTurn *model.Turn
}

// CreateConversation starts a new conversation for the user
func (uc *ChatUseCase) CreateConversation(ctx context.Context, userID types.UserID, title string) (*model.Conversation, error) {
	conv := model.NewConversation(userID, title)
	if err := uc.repo.Conversation().Create(ctx, conv); err != nil {
		return nil, goerr.Wrap(err, "failed to create conversation", goerr.V(UserIDKey, userID))
	}
	return conv, nil
}

// GetConversation retrieves a conversation and its full turn history
func (uc *ChatUseCase) GetConversation(ctx context.Context, userID types.UserID, id types.ConversationID) (*model.Conversation, []*model.Turn, error) {
	conv, err := uc.loadOwned(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}

	turns, err := uc.repo.Conversation().ListTurns(ctx, id)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to list turns", goerr.V(ConversationIDKey, id))
	}

	return conv, turns, nil
}

// ListConversations returns the user's conversations, most recently updated
// first
func (uc *ChatUseCase) ListConversations(ctx context.Context, userID types.UserID) ([]*model.Conversation, error) {
	convs, err := uc.repo.Conversation().ListByUser(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list conversations", goerr.V(UserIDKey, userID))
	}
	return convs, nil
}

// DeleteConversation removes a conversation and its turns
func (uc *ChatUseCase) DeleteConversation(ctx context.Context, userID types.UserID, id types.ConversationID) error {
	if _, err := uc.loadOwned(ctx, userID, id); err != nil {
		return err
	}

	if err := uc.repo.Conversation().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete conversation", goerr.V(ConversationIDKey, id))
	}
	return nil
}

// SendMessage runs the full pipeline for one user message. The user turn is
// persisted before generation starts so a generation failure never loses the
// user's input. Search problems degrade to an ungrounded answer; only store
// failures abort the exchange.
func (uc *ChatUseCase) SendMessage(ctx context.Context, userID types.UserID, convID types.ConversationID, message string) (*ChatExchange, error) {
	if strings.TrimSpace(message) == "" {
		return nil, goerr.Wrap(ErrEmptyMessage, "message validation failed", goerr.V(ConversationIDKey, convID))
	}

	if _, err := uc.loadOwned(ctx, userID, convID); err != nil {
		return nil, err
	}

	// History is captured before the new message is appended so the model
	// sees the incoming message exactly once, as the prompt.
	history, err := uc.repo.Conversation().ListTurns(ctx, convID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load conversation history", goerr.V(ConversationIDKey, convID))
	}

	userTurn := model.NewUserTurn(convID, message)
	if err := uc.repo.Conversation().AppendTurn(ctx, convID, userTurn); err != nil {
		return nil, goerr.Wrap(err, "failed to append user turn", goerr.V(ConversationIDKey, convID))
	}

	prompt, grounded := uc.buildPrompt(ctx, message)

	started := time.Now()
	reply := uc.responder.Respond(ctx, prompt, history)
	latency := time.Since(started)

	assistantTurn := model.NewAssistantTurn(convID, reply.Text, model.TurnMetadata{
		Path:          reply.Path,
		Grounded:      grounded,
		LatencyMillis: latency.Milliseconds(),
	})
	if err := uc.repo.Conversation().AppendTurn(ctx, convID, assistantTurn); err != nil {
		return nil, goerr.Wrap(err, "failed to append assistant turn", goerr.V(ConversationIDKey, convID))
	}

	return &ChatExchange{
		UserTurn:      userTurn,
		AssistantTurn: assistantTurn,
	}, nil
}

// buildPrompt decides whether the message goes to the model as-is or
// augmented with search results. Any search problem, including an empty
// result set, falls back to the raw message.
func (uc *ChatUseCase) buildPrompt(ctx context.Context, message string) (string, bool) {
	logger := logging.From(ctx)

	decision := uc.classifier.NeedsSearch(message)
	if !decision.NeedsSearch || uc.search == nil {
		return message, false
	}

	results, err := uc.search.Search(ctx, message, websearch.DefaultMaxResults)
	if err != nil {
		logger.Warn("web search failed, answering without grounding",
			"error", err.Error(),
			"trigger", decision.Trigger.String(),
		)
		return message, false
	}
	if len(results) == 0 {
		logger.Info("web search returned no results",
			"trigger", decision.Trigger.String(),
		)
		return message, false
	}

	prompt, err := BuildGroundedPrompt(message, results)
	if err != nil {
		logger.Warn("failed to build grounded prompt, answering without grounding",
			"error", err.Error(),
		)
		return message, false
	}

	logger.Info("grounding message with web search results",
		"trigger", decision.Trigger.String(),
		"results", len(results),
	)
	return prompt, true
}

// loadOwned fetches a conversation and enforces ownership
func (uc *ChatUseCase) loadOwned(ctx context.Context, userID types.UserID, id types.ConversationID) (*model.Conversation, error) {
	conv, err := uc.repo.Conversation().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get conversation", goerr.V(ConversationIDKey, id))
	}
	if conv == nil {
		return nil, goerr.Wrap(ErrConversationNotFound, "conversation not found", goerr.V(ConversationIDKey, id))
	}
	if conv.UserID != userID {
		return nil, goerr.Wrap(ErrAccessDenied, "conversation owned by another user",
			goerr.V(ConversationIDKey, id),
			goerr.V(UserIDKey, userID),
		)
	}
	return conv, nil
}
