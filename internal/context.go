package internal

import (
	"context"
	"time"

	coreUser "github.com/frahmantamala/inventory-tracker/internal/core/user"
)

type ctxKey string

const ContextUserKey ctxKey = "user"

// UserFromContext returns the authenticated requester placed by the auth middleware.
func UserFromContext(ctx context.Context) (*coreUser.User, bool) {
	if ctx == nil {
		return nil, false
	}
	u, ok := ctx.Value(ContextUserKey).(*coreUser.User)
	return u, ok && u != nil
}

func ContextWithUser(ctx context.Context, u *coreUser.User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

func UserIDFromContext(ctx context.Context) string {
	if u, ok := UserFromContext(ctx); ok {
		return u.ID
	}
	return ""
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
