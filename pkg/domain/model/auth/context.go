package auth

import "context"

type ctxTokenKey struct{}

// ContextWithToken embeds the authenticated token into the context
func ContextWithToken(ctx context.Context, token *Token) context.Context {
	return context.WithValue(ctx, ctxTokenKey{}, token)
}

// TokenFromContext extracts the authenticated token from the context.
// Returns nil if the request was not authenticated.
func TokenFromContext(ctx context.Context) *Token {
	token, ok := ctx.Value(ctxTokenKey{}).(*Token)
	if !ok {
		return nil
	}
	return token
}
