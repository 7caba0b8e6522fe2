package firestore_test

import (
	"context"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ariadne/pkg/domain/model"
	"github.com/secmon-lab/ariadne/pkg/domain/model/auth"
	"github.com/secmon-lab/ariadne/pkg/domain/types"
	"github.com/secmon-lab/ariadne/pkg/repository/firestore"
)

func setupRepo(t *testing.T) *firestore.Firestore {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID is not set")
	}
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	repo, err := firestore.New(context.Background(), projectID, databaseID)
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})

	return repo
}

func TestFirestoreConversation(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	conv := model.NewConversation("fs-test-user", "firestore test")
	gt.NoError(t, repo.Conversation().Create(ctx, conv)).Required()
	t.Cleanup(func() {
		_ = repo.Conversation().Delete(context.Background(), conv.ID)
	})

	t.Run("get roundtrip", func(t *testing.T) {
		got, err := repo.Conversation().Get(ctx, conv.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Title).Equal("firestore test")
		gt.Value(t, got.UserID).Equal(types.UserID("fs-test-user"))
	})

	t.Run("missing conversation returns nil", func(t *testing.T) {
		got, err := repo.Conversation().Get(ctx, types.NewConversationID())
		gt.NoError(t, err)
		gt.Value(t, got).Nil()
	})

	t.Run("turns roundtrip in order", func(t *testing.T) {
		userTurn := model.NewUserTurn(conv.ID, "question")
		assistantTurn := model.NewAssistantTurn(conv.ID, "answer", model.TurnMetadata{
			Path:     types.ResponsePathStateful,
			Grounded: true,
		})
		gt.NoError(t, repo.Conversation().AppendTurn(ctx, conv.ID, userTurn)).Required()
		gt.NoError(t, repo.Conversation().AppendTurn(ctx, conv.ID, assistantTurn)).Required()

		turns, err := repo.Conversation().ListTurns(ctx, conv.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, turns).Length(2)
		gt.Value(t, turns[0].Text).Equal("question")
		gt.Value(t, turns[1].Metadata.Path).Equal(types.ResponsePathStateful)
		gt.B(t, turns[1].Metadata.Grounded).True()
	})

	t.Run("append to missing conversation fails", func(t *testing.T) {
		missing := types.NewConversationID()
		err := repo.Conversation().AppendTurn(ctx, missing, model.NewUserTurn(missing, "hello"))
		gt.Error(t, err)
	})

	t.Run("list by user includes the conversation", func(t *testing.T) {
		convs, err := repo.Conversation().ListByUser(ctx, "fs-test-user")
		gt.NoError(t, err).Required()

		found := false
		for _, c := range convs {
			if c.ID == conv.ID {
				found = true
			}
		}
		gt.B(t, found).True()
	})
}

func TestFirestoreToken(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	token := auth.NewToken("fs-test-user", "Tester")
	gt.NoError(t, repo.PutToken(ctx, token)).Required()
	t.Cleanup(func() {
		_ = repo.DeleteToken(context.Background(), token.ID)
	})

	got, err := repo.GetToken(ctx, token.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, got.Sub).Equal("fs-test-user")
	gt.Value(t, got.Secret).Equal(token.Secret)

	gt.NoError(t, repo.DeleteToken(ctx, token.ID))
	_, err = repo.GetToken(ctx, token.ID)
	gt.Error(t, err)
}
