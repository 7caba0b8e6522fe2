package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ariadne/pkg/domain/interfaces"
	"github.com/secmon-lab/ariadne/pkg/domain/model/auth"
)

// AuthUseCaseInterface abstracts session token handling so the HTTP layer
// works the same with real authentication and the no-auth development mode.
type AuthUseCaseInterface interface {
	IssueToken(ctx context.Context, sub, name string) (*auth.Token, error)
	ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error)
	Logout(ctx context.Context, tokenID auth.TokenID) error
	IsNoAuthn() bool
}

type AuthUseCase struct {
	repo  interfaces.Repository
	cache *authCache
}

var _ AuthUseCaseInterface = &AuthUseCase{}

func NewAuthUseCase(repo interfaces.Repository) *AuthUseCase {
	return &AuthUseCase{
		repo:  repo,
		cache: newAuthCache(),
	}
}

// IsNoAuthn returns false for regular AuthUseCase
func (uc *AuthUseCase) IsNoAuthn() bool {
	return false
}

// IssueToken creates and stores a session token for the identified user
func (uc *AuthUseCase) IssueToken(ctx context.Context, sub, name string) (*auth.Token, error) {
	if sub == "" {
		return nil, goerr.New("subject is required to issue a token")
	}

	token := auth.NewToken(sub, name)
	if err := uc.repo.PutToken(ctx, token); err != nil {
		return nil, goerr.Wrap(err, "failed to store token", goerr.V("sub", sub))
	}

	return token, nil
}

// ValidateToken validates the token pair and returns the stored token
func (uc *AuthUseCase) ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error) {
	return uc.validateTokenWithCache(ctx, tokenID, tokenSecret)
}

// Logout deletes the token
func (uc *AuthUseCase) Logout(ctx context.Context, tokenID auth.TokenID) error {
	// Remove from cache first
	uc.cache.remove(tokenID)

	// Then remove from repository
	return uc.repo.DeleteToken(ctx, tokenID)
}
