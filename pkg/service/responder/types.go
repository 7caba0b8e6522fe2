package responder

import (
	"context"

	"github.com/secmon-lab/ariadne/pkg/domain/model"
	"github.com/secmon-lab/ariadne/pkg/domain/types"
)

// Reply is the guaranteed outcome of a generation request
type Reply struct {
	Text string
	Path types.ResponsePath
}

// Service generates the assistant's reply. Respond never fails: every
// provider error is absorbed internally and the terminal state is a fixed
// apology text.
type Service interface {
	Respond(ctx context.Context, prompt string, history []*model.Turn) *Reply
}
