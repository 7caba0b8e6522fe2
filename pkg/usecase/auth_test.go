package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ariadne/pkg/domain/model/auth"
	"github.com/secmon-lab/ariadne/pkg/repository/memory"
	"github.com/secmon-lab/ariadne/pkg/usecase"
)

func TestAuthUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("issued token validates", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewAuthUseCase(repo)

		token, err := uc.IssueToken(ctx, "user-123", "Alice")
		gt.NoError(t, err).Required()
		gt.Value(t, token.Sub).Equal("user-123")
		gt.Value(t, token.Name).Equal("Alice")

		validated, err := uc.ValidateToken(ctx, token.ID, token.Secret)
		gt.NoError(t, err).Required()
		gt.Value(t, validated.Sub).Equal("user-123")
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewAuthUseCase(repo)

		token, err := uc.IssueToken(ctx, "user-123", "Alice")
		gt.NoError(t, err).Required()

		_, err = uc.ValidateToken(ctx, token.ID, "not-the-secret")
		gt.Error(t, err)
	})

	t.Run("unknown token is rejected", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewAuthUseCase(repo)

		_, err := uc.ValidateToken(ctx, "no-such-token", "secret")
		gt.Error(t, err)
	})

	t.Run("expired token is rejected and removed", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewAuthUseCase(repo)

		token := auth.NewToken("user-123", "Alice")
		token.ExpiresAt = time.Now().Add(-time.Hour)
		gt.NoError(t, repo.PutToken(ctx, token)).Required()

		_, err := uc.ValidateToken(ctx, token.ID, token.Secret)
		gt.Error(t, err)

		// The expired token is gone from the repository
		_, err = repo.GetToken(ctx, token.ID)
		gt.Error(t, err)
	})

	t.Run("empty subject cannot get a token", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewAuthUseCase(repo)

		_, err := uc.IssueToken(ctx, "", "Nameless")
		gt.Error(t, err)
	})

	t.Run("logout invalidates the token", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewAuthUseCase(repo)

		token, err := uc.IssueToken(ctx, "user-123", "Alice")
		gt.NoError(t, err).Required()

		gt.NoError(t, uc.Logout(ctx, token.ID))

		_, err = uc.ValidateToken(ctx, token.ID, token.Secret)
		gt.Error(t, err)
	})

	t.Run("reports authentication enabled", func(t *testing.T) {
		uc := usecase.NewAuthUseCase(memory.New())
		gt.B(t, uc.IsNoAuthn()).False()
	})
}

func TestNoAuthnUseCase(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewNoAuthnUseCase()

	t.Run("always validates as the anonymous user", func(t *testing.T) {
		token, err := uc.ValidateToken(ctx, "anything", "anything")
		gt.NoError(t, err).Required()
		gt.Value(t, token.Sub).Equal(auth.AnonymousUserID)
	})

	t.Run("logout is a no-op", func(t *testing.T) {
		gt.NoError(t, uc.Logout(ctx, "anything"))
	})

	t.Run("reports no-auth mode", func(t *testing.T) {
		gt.B(t, uc.IsNoAuthn()).True()
	})
}
