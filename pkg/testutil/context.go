package testutil

import (
	"net/http"

	"noticebase/pkg/requestcontext"
)

// WithOfficer marks the request as authenticated the way RequireAuth does.
func WithOfficer(req *http.Request, officer, jti string) *http.Request {
	ctx := requestcontext.WithSubject(req.Context(), officer)
	ctx = requestcontext.WithTokenID(ctx, jti)
	return req.WithContext(ctx)
}

// WithRequestID attaches a correlation id to the request context.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
