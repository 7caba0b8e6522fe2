package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/ariadne/pkg/domain/types"
)

// TokenID identifies a session token
type TokenID string

// TokenSecret is the secret half of a session token pair. Tagged so the
// logging filter redacts it.
type TokenSecret string

// Token represents an authenticated session. The identity collaborator
// issues the (sub, name) pair; this service only stores and validates the
// opaque token.
type Token struct {
	ID        TokenID
	Secret    TokenSecret `masq:"secret"`
	Sub       string
	Name      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// TokenDuration is the validity period of a session token
const TokenDuration = 7 * 24 * time.Hour

// AnonymousUserID is used when authentication is disabled
const AnonymousUserID = "anonymous"

// NewToken creates a token for the given subject
func NewToken(sub, name string) *Token {
	now := time.Now().UTC()
	return &Token{
		ID:        TokenID(uuid.Must(uuid.NewV7()).String()),
		Secret:    TokenSecret(newSecret()),
		Sub:       sub,
		Name:      name,
		CreatedAt: now,
		ExpiresAt: now.Add(TokenDuration),
	}
}

// NewAnonymousUser returns a token for no-auth mode
func NewAnonymousUser() *Token {
	return NewToken(AnonymousUserID, "Anonymous")
}

// Validate checks the token ID format
func (id TokenID) Validate() error {
	if id == "" {
		return goerr.New("token ID is empty")
	}
	return nil
}

// String returns the string representation of the token ID
func (id TokenID) String() string {
	return string(id)
}

// String returns the raw secret. Keep this out of logs; the logging filter
// only redacts the struct field.
func (s TokenSecret) String() string {
	return string(s)
}

// Validate checks structural validity of the token
func (t *Token) Validate() error {
	if err := t.ID.Validate(); err != nil {
		return err
	}
	if t.Secret == "" {
		return goerr.New("token secret is empty")
	}
	if t.Sub == "" {
		return goerr.New("token subject is empty")
	}
	return nil
}

// UserID returns the subject as a domain user ID
func (t *Token) UserID() types.UserID {
	return types.UserID(t.Sub)
}

// IsExpired reports whether the token is past its expiry
func (t *Token) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// VerifySecret compares the given secret in constant time
func (t *Token) VerifySecret(secret TokenSecret) error {
	if subtle.ConstantTimeCompare([]byte(t.Secret), []byte(secret)) != 1 {
		return goerr.New("token secret mismatch")
	}
	return nil
}

func newSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failure is unrecoverable
		panic(err)
	}
	return hex.EncodeToString(buf)
}
