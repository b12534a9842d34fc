package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/viralforge/sigpac-weather/internal/domain"
	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

func (r *accountRepository) Insert(ctx context.Context, account domain.Account) error {
	rec := accountToModel(account)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username or email already registered", domain.ErrConflict)
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, accountID uuid.UUID) (domain.Account, error) {
	return r.getWhere(ctx, "account_id = ?", accountID.String())
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	return r.getWhere(ctx, "username = ?", username)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	return r.getWhere(ctx, "lower(email) = ?", strings.ToLower(email))
}

func (r *accountRepository) getWhere(ctx context.Context, query string, arg any) (domain.Account, error) {
	var rec accountModel
	if err := r.db.WithContext(ctx).Where(query, arg).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Account{}, domain.ErrNotFound
		}
		return domain.Account{}, fmt.Errorf("select account: %w", err)
	}
	return rec.toDomain()
}
