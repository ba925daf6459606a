package authctx

import (
	"context"
	"errors"
)

// Identity is the already-resolved caller identity attached to every request.
// Authentication itself happens upstream; this package only carries the result.
type Identity struct {
	TenantID   string
	WorkerID   string
	WorkerName string
	ClientIP   string
}

type contextKey struct{}

var ErrNoIdentity = errors.New("no caller identity in context")

// WithIdentity returns a context carrying the caller identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext extracts the caller identity set by the auth middleware.
func FromContext(ctx context.Context) (Identity, error) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	if !ok || id.TenantID == "" {
		return Identity{}, ErrNoIdentity
	}
	return id, nil
}
