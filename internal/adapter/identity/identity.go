// Package identity resolves the calling user from a trusted request header.
// Token issuance and verification happen upstream; this service only reads the
// user ID the gateway forwards.
package identity

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/eslsoft/studyhub/internal/adapter/mapping"
)

// DefaultHeader carries the caller's user ID when no header is configured.
const DefaultHeader = "X-User-Id"

type userKey struct{}

// WithUser returns a copy of ctx carrying userID.
func WithUser(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// FromContext returns the user attached by Middleware, if any.
func FromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userKey{}).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// Require returns the caller or mapping.ErrUnauthenticated.
func Require(ctx context.Context) (uuid.UUID, error) {
	id, ok := FromContext(ctx)
	if !ok {
		return uuid.Nil, mapping.ErrUnauthenticated
	}
	return id, nil
}

// Middleware parses header on every request and attaches a valid user ID to the
// request context. Requests without one pass through unchanged; handlers that
// need a caller reject them through Require.
func Middleware(header string) func(http.Handler) http.Handler {
	if strings.TrimSpace(header) == "" {
		header = DefaultHeader
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(header))
			if raw != "" {
				if id, err := uuid.Parse(raw); err == nil && id != uuid.Nil {
					r = r.WithContext(WithUser(r.Context(), id))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
