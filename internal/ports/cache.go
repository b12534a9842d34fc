package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenRevocationStore keeps logged-out token ids until the token would have expired anyway.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, tokenID uuid.UUID, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID uuid.UUID) (bool, error)
}
