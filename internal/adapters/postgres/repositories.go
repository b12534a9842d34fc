package postgres

import (
	"context"
	"errors"

	"github.com/viralforge/sigpac-weather/internal/ports"
	"gorm.io/gorm"
)

// Repositories bundles the gorm-backed repositories sharing one pool.
type Repositories struct {
	Accounts ports.AccountRepository
	Parcels  ports.ParcelRepository
	db       *gorm.DB
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Accounts: &accountRepository{db: db},
		Parcels:  &parcelRepository{db: db},
		db:       db,
	}
}

// Ping checks the underlying pool.
func (r *Repositories) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the pool.
func (r *Repositories) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
