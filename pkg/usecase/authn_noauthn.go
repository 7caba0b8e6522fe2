package usecase

import (
	"context"

	"github.com/secmon-lab/ariadne/pkg/domain/model/auth"
)

// NoAuthnUseCase provides authentication as a fixed anonymous user (for
// development/testing)
type NoAuthnUseCase struct{}

var _ AuthUseCaseInterface = &NoAuthnUseCase{}

// NewNoAuthnUseCase creates a new NoAuthnUseCase instance
func NewNoAuthnUseCase() *NoAuthnUseCase {
	return &NoAuthnUseCase{}
}

// IssueToken returns a token for the anonymous user without storing it
func (uc *NoAuthnUseCase) IssueToken(ctx context.Context, sub, name string) (*auth.Token, error) {
	return auth.NewAnonymousUser(), nil
}

// ValidateToken always returns a token for the anonymous user
func (uc *NoAuthnUseCase) ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error) {
	return auth.NewAnonymousUser(), nil
}

// Logout does nothing in no-auth mode
func (uc *NoAuthnUseCase) Logout(ctx context.Context, tokenID auth.TokenID) error {
	return nil
}

// IsNoAuthn returns true for NoAuthnUseCase
func (uc *NoAuthnUseCase) IsNoAuthn() bool {
	return true
}
