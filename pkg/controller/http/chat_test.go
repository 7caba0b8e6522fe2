package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ariadne/pkg/domain/model"
	"github.com/secmon-lab/ariadne/pkg/domain/types"
	"github.com/secmon-lab/ariadne/pkg/repository/memory"
	"github.com/secmon-lab/ariadne/pkg/service/responder"
	"github.com/secmon-lab/ariadne/pkg/usecase"

	httpctrl "github.com/secmon-lab/ariadne/pkg/controller/http"
)

// staticResponder returns a fixed reply for every prompt
type staticResponder struct {
	text string
}

func (r *staticResponder) Respond(ctx context.Context, prompt string, history []*model.Turn) *responder.Reply {
	return &responder.Reply{Text: r.text, Path: types.ResponsePathStateful}
}

func newTestServer(t *testing.T) *httpctrl.Server {
	t.Helper()

	repo := memory.New()
	authUC := usecase.NewNoAuthnUseCase()
	uc := usecase.New(repo, &staticResponder{text: "canned answer"},
		usecase.WithAuth(authUC),
	)

	srv, err := httpctrl.New(uc, httpctrl.WithAuth(authUC))
	gt.NoError(t, err).Required()
	return srv
}

func doJSON(t *testing.T, srv *httpctrl.Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		gt.NoError(t, err).Required()
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func createConversation(t *testing.T, srv *httpctrl.Server) string {
	t.Helper()

	rec := doJSON(t, srv, "POST", "/api/chat/conversations", map[string]string{"title": "test chat"})
	gt.Number(t, rec.Code).Equal(http.StatusCreated)

	var resp struct {
		ID string `json:"id"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
	gt.String(t, resp.ID).NotEqual("")
	return resp.ID
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, "GET", "/health", nil)
	gt.Number(t, rec.Code).Equal(http.StatusOK)
}

func TestServer_Conversations(t *testing.T) {
	t.Run("create and get", func(t *testing.T) {
		srv := newTestServer(t)
		id := createConversation(t, srv)

		rec := doJSON(t, srv, "GET", "/api/chat/conversations/"+id, nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			Conversation struct {
				ID    string `json:"id"`
				Title string `json:"title"`
			} `json:"conversation"`
			Turns []any `json:"turns"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Value(t, resp.Conversation.ID).Equal(id)
		gt.Value(t, resp.Conversation.Title).Equal("test chat")
		gt.Array(t, resp.Turns).Length(0)
	})

	t.Run("create without body uses default title", func(t *testing.T) {
		srv := newTestServer(t)

		rec := doJSON(t, srv, "POST", "/api/chat/conversations", nil)
		gt.Number(t, rec.Code).Equal(http.StatusCreated)

		var resp struct {
			Title string `json:"title"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Value(t, resp.Title).Equal(model.DefaultConversationTitle)
	})

	t.Run("list", func(t *testing.T) {
		srv := newTestServer(t)
		createConversation(t, srv)
		createConversation(t, srv)

		rec := doJSON(t, srv, "GET", "/api/chat/conversations", nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			Conversations []any `json:"conversations"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Array(t, resp.Conversations).Length(2)
	})

	t.Run("get of unknown conversation returns 404", func(t *testing.T) {
		srv := newTestServer(t)

		rec := doJSON(t, srv, "GET", "/api/chat/conversations/"+types.NewConversationID().String(), nil)
		gt.Number(t, rec.Code).Equal(http.StatusNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		srv := newTestServer(t)
		id := createConversation(t, srv)

		rec := doJSON(t, srv, "DELETE", "/api/chat/conversations/"+id, nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		rec = doJSON(t, srv, "GET", "/api/chat/conversations/"+id, nil)
		gt.Number(t, rec.Code).Equal(http.StatusNotFound)
	})
}

func TestServer_SendMessage(t *testing.T) {
	t.Run("returns both sides of the exchange", func(t *testing.T) {
		srv := newTestServer(t)
		id := createConversation(t, srv)

		rec := doJSON(t, srv, "POST", "/api/chat/messages", map[string]string{
			"conversationId": id,
			"message":        "hello assistant",
		})
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			UserTurn struct {
				Role string `json:"role"`
				Text string `json:"text"`
			} `json:"userTurn"`
			AssistantTurn struct {
				Role string `json:"role"`
				Text string `json:"text"`
			} `json:"assistantTurn"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Value(t, resp.UserTurn.Role).Equal("user")
		gt.Value(t, resp.UserTurn.Text).Equal("hello assistant")
		gt.Value(t, resp.AssistantTurn.Role).Equal("assistant")
		gt.Value(t, resp.AssistantTurn.Text).Equal("canned answer")
	})

	t.Run("empty message returns 400", func(t *testing.T) {
		srv := newTestServer(t)
		id := createConversation(t, srv)

		rec := doJSON(t, srv, "POST", "/api/chat/messages", map[string]string{
			"conversationId": id,
			"message":        "   ",
		})
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("unknown conversation returns 404", func(t *testing.T) {
		srv := newTestServer(t)

		rec := doJSON(t, srv, "POST", "/api/chat/messages", map[string]string{
			"conversationId": types.NewConversationID().String(),
			"message":        "hello",
		})
		gt.Number(t, rec.Code).Equal(http.StatusNotFound)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		srv := newTestServer(t)

		req := httptest.NewRequest("POST", "/api/chat/messages", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		gt.Number(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestServer_AuthEndpoints(t *testing.T) {
	t.Run("me returns anonymous user in no-auth mode", func(t *testing.T) {
		srv := newTestServer(t)

		rec := doJSON(t, srv, "GET", "/api/auth/me", nil)
		gt.Number(t, rec.Code).Equal(http.StatusOK)

		var resp struct {
			Sub string `json:"sub"`
		}
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
		gt.Value(t, resp.Sub).Equal("anonymous")
	})
}
