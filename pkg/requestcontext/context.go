// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Middleware sets them; services read them without
// pulling in net/http.
//
//	requestID := requestcontext.RequestID(ctx)
//	officer := requestcontext.Subject(ctx)
package requestcontext

import "context"

type (
	requestIDKey struct{}
	subjectKey   struct{}
	tokenIDKey   struct{}
)

// WithRequestID stores the request correlation id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the request correlation id, or "".
func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey{}).(string)
	return v
}

// WithSubject stores the authenticated officer's username.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey{}, subject)
}

// Subject returns the authenticated officer's username, or "".
func Subject(ctx context.Context) string {
	v, _ := ctx.Value(subjectKey{}).(string)
	return v
}

// WithTokenID stores the jti of the bearer token that authenticated the request.
func WithTokenID(ctx context.Context, jti string) context.Context {
	return context.WithValue(ctx, tokenIDKey{}, jti)
}

// TokenID returns the jti of the authenticating token, or "".
func TokenID(ctx context.Context) string {
	v, _ := ctx.Value(tokenIDKey{}).(string)
	return v
}
