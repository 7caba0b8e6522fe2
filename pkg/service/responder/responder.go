package responder

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"text/template"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/ariadne/pkg/domain/model"
	"github.com/secmon-lab/ariadne/pkg/domain/types"
	"github.com/secmon-lab/ariadne/pkg/utils/logging"
)

//go:embed prompt/chat_system.md
var chatSystemPromptTmpl string

var chatSystemPrompt = template.Must(template.New("chat_system").Parse(chatSystemPromptTmpl))

// DefaultApology is returned when every generation attempt fails. Greek by
// default, matching the service's primary audience; override with
// WithApology.
const DefaultApology = "Συγγνώμη, συνέβη ένα σφάλμα κατά την επεξεργασία του αιτήματός σου. Παρακαλώ δοκίμασε ξανά αργότερα."

const defaultMaxHistoryTurns = 50

// Responder wraps the LLM client with a graduated fallback ladder:
// stateful generation with history context, then a one-shot stateless
// retry, then the canned apology.
type Responder struct {
	llmClient       gollem.LLMClient
	apology         string
	maxHistoryTurns int
}

var _ Service = &Responder{}

// Option is a functional option for Responder configuration
type Option func(*Responder)

// WithApology overrides the terminal fallback text
func WithApology(text string) Option {
	return func(r *Responder) {
		if text != "" {
			r.apology = text
		}
	}
}

// WithMaxHistoryTurns caps how many trailing turns are carried into the
// stateful attempt
func WithMaxHistoryTurns(n int) Option {
	return func(r *Responder) {
		if n > 0 {
			r.maxHistoryTurns = n
		}
	}
}

// New creates a Responder with the provided LLM client
func New(llmClient gollem.LLMClient, opts ...Option) (*Responder, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	r := &Responder{
		llmClient:       llmClient,
		apology:         DefaultApology,
		maxHistoryTurns: defaultMaxHistoryTurns,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Respond runs the fallback ladder. The returned reply always carries
// non-empty text; the path records which rung produced it.
func (r *Responder) Respond(ctx context.Context, prompt string, history []*model.Turn) *Reply {
	logger := logging.From(ctx)

	text, err := r.generateStateful(ctx, prompt, history)
	if err == nil {
		return &Reply{Text: text, Path: types.ResponsePathStateful}
	}
	logger.Error("stateful generation failed, retrying without history",
		"error", err.Error(),
		"history_turns", len(history),
	)

	text, err = r.generateStateless(ctx, prompt)
	if err == nil {
		return &Reply{Text: text, Path: types.ResponsePathStateless}
	}
	logger.Error("stateless generation failed, returning apology",
		"error", err.Error(),
	)

	return &Reply{Text: r.apology, Path: types.ResponsePathApology}
}

// generateStateful sends the prompt with prior turns rendered into the
// session's system prompt
func (r *Responder) generateStateful(ctx context.Context, prompt string, history []*model.Turn) (string, error) {
	systemPrompt, err := r.buildSystemPrompt(history)
	if err != nil {
		return "", err
	}

	session, err := r.llmClient.NewSession(ctx,
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create stateful session")
	}

	return generate(ctx, session, prompt)
}

// generateStateless sends only the prompt, with no conversation context
func (r *Responder) generateStateless(ctx context.Context, prompt string) (string, error) {
	session, err := r.llmClient.NewSession(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create stateless session")
	}

	return generate(ctx, session, prompt)
}

func generate(ctx context.Context, session gollem.Session, prompt string) (string, error) {
	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate content")
	}
	if resp == nil || len(resp.Texts) == 0 {
		return "", goerr.New("generation returned no text")
	}

	text := strings.TrimSpace(strings.Join(resp.Texts, "\n"))
	if text == "" {
		return "", goerr.New("generation returned empty text")
	}
	return text, nil
}

// promptTurn represents a prior turn for template rendering
type promptTurn struct {
	Role string
	Text string
}

func (r *Responder) buildSystemPrompt(history []*model.Turn) (string, error) {
	if len(history) > r.maxHistoryTurns {
		history = history[len(history)-r.maxHistoryTurns:]
	}

	data := struct {
		Turns []promptTurn
	}{}
	for _, turn := range history {
		data.Turns = append(data.Turns, promptTurn{
			Role: turn.Role.String(),
			Text: turn.Text,
		})
	}

	var buf bytes.Buffer
	if err := chatSystemPrompt.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to render chat system prompt")
	}
	return buf.String(), nil
}
