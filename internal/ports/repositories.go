package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/sigpac-weather/internal/domain"
)

// AccountRepository persists accounts. Implementations enforce username and email
// uniqueness and return domain.ErrConflict on violation, domain.ErrNotFound on a miss.
type AccountRepository interface {
	Insert(ctx context.Context, account domain.Account) error
	GetByID(ctx context.Context, accountID uuid.UUID) (domain.Account, error)
	// GetByUsername matches the username exactly.
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
	// GetByEmail expects an already lower-cased email.
	GetByEmail(ctx context.Context, email string) (domain.Account, error)
}

// ParcelRepository persists parcels. Every lookup is scoped by owner, so a parcel owned
// by someone else is reported as domain.ErrNotFound exactly like a missing one.
type ParcelRepository interface {
	// ListByOwner returns the owner's parcels in insertion order.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Parcel, error)
	Insert(ctx context.Context, parcel domain.Parcel) error
	GetForOwner(ctx context.Context, ownerID, parcelID uuid.UUID) (domain.Parcel, error)
	UpdateForOwner(ctx context.Context, ownerID, parcelID uuid.UUID, patch domain.ParcelPatch, updatedAt time.Time) (domain.Parcel, error)
	DeleteForOwner(ctx context.Context, ownerID, parcelID uuid.UUID) error
}

// HealthChecker reports whether a storage backend is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
