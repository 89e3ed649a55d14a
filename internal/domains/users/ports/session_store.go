package ports

import (
	"context"
	"errors"
)

// ErrSessionNotFound covers unknown and expired tokens alike.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore abstracts bearer-token session persistence.
type SessionStore interface {
	Save(ctx context.Context, token string, userID int64) error
	// Lookup resolves a token to its user, returning ErrSessionNotFound
	// for unknown or expired tokens.
	Lookup(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
	// PurgeExpired removes expired sessions and reports how many went.
	PurgeExpired(ctx context.Context) (int64, error)
}
