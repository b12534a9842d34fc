package ports

import (
	"time"

	"github.com/google/uuid"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenClaims is the verified content of a session token.
type TokenClaims struct {
	AccountID uuid.UUID `json:"account_id"`
	TokenID   uuid.UUID `json:"token_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenSigner signs and verifies session tokens. Parse must reject malformed tokens,
// bad signatures and tokens whose expiry is not after now.
type TokenSigner interface {
	Sign(claims TokenClaims) (string, error)
	Parse(token string, now time.Time) (TokenClaims, error)
}
