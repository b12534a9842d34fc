package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/sigpac-weather/internal/domain"
)

// ParcelRepository keeps parcels in insertion order.
type ParcelRepository struct {
	mu      sync.RWMutex
	parcels []domain.Parcel
}

func NewParcelRepository() *ParcelRepository {
	return &ParcelRepository{}
}

func (r *ParcelRepository) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]domain.Parcel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Parcel, 0)
	for _, p := range r.parcels {
		if p.OwnerID == ownerID {
			out = append(out, cloneParcel(p))
		}
	}
	return out, nil
}

func (r *ParcelRepository) Insert(_ context.Context, parcel domain.Parcel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parcels = append(r.parcels, cloneParcel(parcel))
	return nil
}

func (r *ParcelRepository) GetForOwner(_ context.Context, ownerID, parcelID uuid.UUID) (domain.Parcel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx := r.indexOf(ownerID, parcelID)
	if idx < 0 {
		return domain.Parcel{}, domain.ErrNotFound
	}
	return cloneParcel(r.parcels[idx]), nil
}

func (r *ParcelRepository) UpdateForOwner(_ context.Context, ownerID, parcelID uuid.UUID, patch domain.ParcelPatch, updatedAt time.Time) (domain.Parcel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(ownerID, parcelID)
	if idx < 0 {
		return domain.Parcel{}, domain.ErrNotFound
	}
	patch.Apply(&r.parcels[idx])
	r.parcels[idx].UpdatedAt = updatedAt
	return cloneParcel(r.parcels[idx]), nil
}

func (r *ParcelRepository) DeleteForOwner(_ context.Context, ownerID, parcelID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := r.indexOf(ownerID, parcelID)
	if idx < 0 {
		return domain.ErrNotFound
	}
	r.parcels = slices.Delete(r.parcels, idx, idx+1)
	return nil
}

// Ping always succeeds; it lets the memory backend stand in for a storage health check.
func (r *ParcelRepository) Ping(context.Context) error { return nil }

// indexOf must be called with the lock held.
func (r *ParcelRepository) indexOf(ownerID, parcelID uuid.UUID) int {
	return slices.IndexFunc(r.parcels, func(p domain.Parcel) bool {
		return p.ParcelID == parcelID && p.OwnerID == ownerID
	})
}

func cloneParcel(p domain.Parcel) domain.Parcel {
	p.Geometry = append([]byte(nil), p.Geometry...)
	if p.Centroid != nil {
		c := *p.Centroid
		p.Centroid = &c
	}
	return p
}
