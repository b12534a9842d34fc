package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/viralforge/sigpac-weather/internal/domain"
)

// AccountRepository keeps accounts in process memory. Uniqueness of username and email
// is checked and applied under one lock.
type AccountRepository struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]domain.Account
	byUsername map[string]uuid.UUID
	byEmail    map[string]uuid.UUID
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		byID:       make(map[uuid.UUID]domain.Account),
		byUsername: make(map[string]uuid.UUID),
		byEmail:    make(map[string]uuid.UUID),
	}
}

func (r *AccountRepository) Insert(_ context.Context, account domain.Account) error {
	email := strings.ToLower(account.Email)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUsername[account.Username]; ok {
		return fmt.Errorf("%w: username already registered", domain.ErrConflict)
	}
	if _, ok := r.byEmail[email]; ok {
		return fmt.Errorf("%w: email already registered", domain.ErrConflict)
	}
	r.byID[account.AccountID] = account
	r.byUsername[account.Username] = account.AccountID
	r.byEmail[email] = account.AccountID
	return nil
}

func (r *AccountRepository) GetByID(_ context.Context, accountID uuid.UUID) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.byID[accountID]
	if !ok {
		return domain.Account{}, domain.ErrNotFound
	}
	return account, nil
}

func (r *AccountRepository) GetByUsername(_ context.Context, username string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byUsername[username]
	if !ok {
		return domain.Account{}, domain.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *AccountRepository) GetByEmail(_ context.Context, email string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return domain.Account{}, domain.ErrNotFound
	}
	return r.byID[id], nil
}
