package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered user. Username is compared exactly, email is stored lower-cased.
type Account struct {
	AccountID    uuid.UUID
	Username     string
	DisplayName  string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
