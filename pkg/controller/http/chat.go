package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ariadne/pkg/domain/model"
	"github.com/secmon-lab/ariadne/pkg/domain/model/auth"
	"github.com/secmon-lab/ariadne/pkg/domain/types"
	"github.com/secmon-lab/ariadne/pkg/usecase"
	"github.com/secmon-lab/ariadne/pkg/utils/errutil"
)

type conversationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type turnResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Grounded  bool      `json:"grounded,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type conversationDetailResponse struct {
	Conversation conversationResponse `json:"conversation"`
	Turns        []turnResponse       `json:"turns"`
}

type conversationListResponse struct {
	Conversations []conversationResponse `json:"conversations"`
}

type createConversationRequest struct {
	Title string `json:"title"`
}

type sendMessageRequest struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message"`
}

type sendMessageResponse struct {
	UserTurn      turnResponse `json:"userTurn"`
	AssistantTurn turnResponse `json:"assistantTurn"`
}

func toConversationResponse(conv *model.Conversation) conversationResponse {
	return conversationResponse{
		ID:        conv.ID.String(),
		Title:     conv.Title,
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
	}
}

func toTurnResponse(turn *model.Turn) turnResponse {
	return turnResponse{
		ID:        turn.ID.String(),
		Role:      turn.Role.String(),
		Text:      turn.Text,
		Grounded:  turn.Metadata.Grounded,
		CreatedAt: turn.CreatedAt,
	}
}

// handleChatError maps use case sentinel errors to HTTP status codes
func handleChatError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrEmptyMessage):
		writeJSON(r.Context(), w, http.StatusBadRequest, errorResponse{Error: "message is empty"})
	case errors.Is(err, usecase.ErrConversationNotFound):
		writeJSON(r.Context(), w, http.StatusNotFound, errorResponse{Error: "conversation not found"})
	case errors.Is(err, usecase.ErrAccessDenied):
		writeJSON(r.Context(), w, http.StatusForbidden, errorResponse{Error: "access denied"})
	default:
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
	}
}

func currentUserID(r *http.Request) (types.UserID, bool) {
	token := auth.TokenFromContext(r.Context())
	if token == nil {
		return "", false
	}
	return token.UserID(), true
}

func listConversationsHandler(chatUC *usecase.ChatUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(r)
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		convs, err := chatUC.ListConversations(r.Context(), userID)
		if err != nil {
			handleChatError(w, r, err)
			return
		}

		resp := conversationListResponse{
			Conversations: make([]conversationResponse, len(convs)),
		}
		for i, conv := range convs {
			resp.Conversations[i] = toConversationResponse(conv)
		}

		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func createConversationHandler(chatUC *usecase.ChatUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(r)
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		var req createConversationRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to decode create conversation request"), http.StatusBadRequest)
				return
			}
		}

		conv, err := chatUC.CreateConversation(r.Context(), userID, req.Title)
		if err != nil {
			handleChatError(w, r, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusCreated, toConversationResponse(conv))
	}
}

func getConversationHandler(chatUC *usecase.ChatUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(r)
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		convID := types.ConversationID(chi.URLParam(r, "id"))
		conv, turns, err := chatUC.GetConversation(r.Context(), userID, convID)
		if err != nil {
			handleChatError(w, r, err)
			return
		}

		resp := conversationDetailResponse{
			Conversation: toConversationResponse(conv),
			Turns:        make([]turnResponse, len(turns)),
		}
		for i, turn := range turns {
			resp.Turns[i] = toTurnResponse(turn)
		}

		writeJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func deleteConversationHandler(chatUC *usecase.ChatUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(r)
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		convID := types.ConversationID(chi.URLParam(r, "id"))
		if err := chatUC.DeleteConversation(r.Context(), userID, convID); err != nil {
			handleChatError(w, r, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}

func sendMessageHandler(chatUC *usecase.ChatUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := currentUserID(r)
		if !ok {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		var req sendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to decode send message request"), http.StatusBadRequest)
			return
		}

		exchange, err := chatUC.SendMessage(r.Context(), userID, types.ConversationID(req.ConversationID), req.Message)
		if err != nil {
			handleChatError(w, r, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, sendMessageResponse{
			UserTurn:      toTurnResponse(exchange.UserTurn),
			AssistantTurn: toTurnResponse(exchange.AssistantTurn),
		})
	}
}
