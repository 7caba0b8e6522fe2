package auth_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ariadne/pkg/domain/model/auth"
)

func TestToken(t *testing.T) {
	t.Run("new token is valid and unexpired", func(t *testing.T) {
		token := auth.NewToken("U123", "Alice")
		gt.NoError(t, token.Validate())
		gt.B(t, token.IsExpired()).False()
		gt.Value(t, token.UserID().String()).Equal("U123")
	})

	t.Run("secrets are unique per token", func(t *testing.T) {
		a := auth.NewToken("U123", "Alice")
		b := auth.NewToken("U123", "Alice")
		gt.String(t, string(a.Secret)).NotEqual(string(b.Secret))
		gt.String(t, string(a.ID)).NotEqual(string(b.ID))
	})

	t.Run("verify secret", func(t *testing.T) {
		token := auth.NewToken("U123", "Alice")
		gt.NoError(t, token.VerifySecret(token.Secret))
		gt.Error(t, token.VerifySecret("wrong"))
	})

	t.Run("expiry", func(t *testing.T) {
		token := auth.NewToken("U123", "Alice")
		token.ExpiresAt = time.Now().Add(-time.Minute)
		gt.B(t, token.IsExpired()).True()
	})

	t.Run("validation failures", func(t *testing.T) {
		token := auth.NewToken("", "Nameless")
		gt.Error(t, token.Validate())

		token = auth.NewToken("U123", "Alice")
		token.ID = ""
		gt.Error(t, token.Validate())
	})

	t.Run("anonymous user", func(t *testing.T) {
		token := auth.NewAnonymousUser()
		gt.Value(t, token.Sub).Equal(auth.AnonymousUserID)
		gt.NoError(t, token.Validate())
	})
}
