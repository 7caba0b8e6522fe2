package responder_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ariadne/pkg/domain/model"
	"github.com/secmon-lab/ariadne/pkg/domain/types"
	"github.com/secmon-lab/ariadne/pkg/service/responder"
)

// mockLLMSession is a mock gollem Session for testing
type mockLLMSession struct {
	generateContentFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	if s.generateContentFn != nil {
		return s.generateContentFn(ctx, input...)
	}
	return &gollem.Response{
		Texts: []string{"mock response"},
	}, nil
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) Generate(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
	return s.GenerateContent(ctx, input...)
}

func (s *mockLLMSession) Stream(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return s.GenerateStream(ctx, input...)
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockLLMSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

// mockLLMClient is a mock gollem LLMClient for testing
type mockLLMClient struct {
	newSessionFn func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error)
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	if c.newSessionFn != nil {
		return c.newSessionFn(ctx, options...)
	}
	return &mockLLMSession{}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

func testHistory() []*model.Turn {
	convID := types.NewConversationID()
	return []*model.Turn{
		model.NewUserTurn(convID, "hi"),
		model.NewAssistantTurn(convID, "hello, how can I help?", model.TurnMetadata{Path: types.ResponsePathStateful}),
	}
}

func TestResponder_Respond(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stateful reply when generation succeeds", func(t *testing.T) {
		llmClient := &mockLLMClient{}
		r, err := responder.New(llmClient)
		gt.NoError(t, err).Required()

		reply := r.Respond(ctx, "hello", testHistory())
		gt.Value(t, reply.Text).Equal("mock response")
		gt.Value(t, reply.Path).Equal(types.ResponsePathStateful)
	})

	t.Run("falls back to stateless when first generation fails", func(t *testing.T) {
		calls := 0
		llmClient := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				calls++
				if calls == 1 {
					return &mockLLMSession{
						generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
							return nil, goerr.New("model overloaded")
						},
					}, nil
				}
				return &mockLLMSession{
					generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						return &gollem.Response{Texts: []string{"stateless answer"}}, nil
					},
				}, nil
			},
		}
		r, err := responder.New(llmClient)
		gt.NoError(t, err).Required()

		reply := r.Respond(ctx, "hello", testHistory())
		gt.Value(t, reply.Text).Equal("stateless answer")
		gt.Value(t, reply.Path).Equal(types.ResponsePathStateless)
		gt.Number(t, calls).Equal(2)
	})

	t.Run("returns apology when both generations fail", func(t *testing.T) {
		llmClient := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return &mockLLMSession{
					generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						return nil, goerr.New("model unavailable")
					},
				}, nil
			},
		}
		r, err := responder.New(llmClient)
		gt.NoError(t, err).Required()

		reply := r.Respond(ctx, "hello", nil)
		gt.Value(t, reply.Text).Equal(responder.DefaultApology)
		gt.Value(t, reply.Path).Equal(types.ResponsePathApology)
	})

	t.Run("empty generation output counts as failure", func(t *testing.T) {
		llmClient := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return &mockLLMSession{
					generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						return &gollem.Response{Texts: []string{"  "}}, nil
					},
				}, nil
			},
		}
		r, err := responder.New(llmClient)
		gt.NoError(t, err).Required()

		reply := r.Respond(ctx, "hello", nil)
		gt.Value(t, reply.Path).Equal(types.ResponsePathApology)
	})

	t.Run("session creation failure falls through the ladder", func(t *testing.T) {
		llmClient := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return nil, goerr.New("no quota")
			},
		}
		r, err := responder.New(llmClient)
		gt.NoError(t, err).Required()

		reply := r.Respond(ctx, "hello", nil)
		gt.Value(t, reply.Path).Equal(types.ResponsePathApology)
		gt.Value(t, reply.Text).Equal(responder.DefaultApology)
	})

	t.Run("custom apology overrides default", func(t *testing.T) {
		llmClient := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return nil, goerr.New("broken")
			},
		}
		r, err := responder.New(llmClient, responder.WithApology("sorry, try later"))
		gt.NoError(t, err).Required()

		reply := r.Respond(ctx, "hello", nil)
		gt.Value(t, reply.Text).Equal("sorry, try later")
	})

	t.Run("multiple text fragments are joined", func(t *testing.T) {
		llmClient := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return &mockLLMSession{
					generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						return &gollem.Response{Texts: []string{"part one", "part two"}}, nil
					},
				}, nil
			},
		}
		r, err := responder.New(llmClient)
		gt.NoError(t, err).Required()

		reply := r.Respond(ctx, "hello", nil)
		gt.Value(t, reply.Text).Equal("part one\npart two")
	})

	t.Run("nil LLM client is rejected", func(t *testing.T) {
		_, err := responder.New(nil)
		gt.Error(t, err)
	})
}
