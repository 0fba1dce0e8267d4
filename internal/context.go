package internal

import (
	"context"
	"time"
)

// SessionUser is the authenticated viewer carried through request context.
// It is a snapshot of the account at token-resolution time, never ambient
// global state.
type SessionUser struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	Role           string `json:"role"`
	Status         string `json:"status"`
	ClearanceLevel int    `json:"clearance_level"`
}

type ctxKey string

const ContextUserKey ctxKey = "sessionUser"

func UserFromContext(ctx context.Context) (*SessionUser, bool) {
	if ctx == nil {
		return nil, false
	}
	u, ok := ctx.Value(ContextUserKey).(*SessionUser)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *SessionUser) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
