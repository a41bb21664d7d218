// Package authtoken carries the caller's bearer token through a context so
// outbound upstream calls can attach it without the network layer knowing
// about HTTP handlers.
package authtoken

import "context"

type contextKey struct{}

// WithToken returns a context carrying the raw bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, contextKey{}, token)
}

// FromContext extracts the bearer token, if any.
func FromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(contextKey{}).(string)
	return token, ok && token != ""
}
