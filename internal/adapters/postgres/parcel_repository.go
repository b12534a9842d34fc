package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/sigpac-weather/internal/domain"
	"gorm.io/gorm"
)

const ownedParcelClause = "parcel_id = ? AND owner_id = ?"

type parcelRepository struct {
	db *gorm.DB
}

func (r *parcelRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Parcel, error) {
	var rows []parcelModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID.String()).
		Order("seq ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list parcels: %w", err)
	}
	out := make([]domain.Parcel, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("map parcel: %w", err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *parcelRepository) Insert(ctx context.Context, parcel domain.Parcel) error {
	rec := parcelToModel(parcel)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("insert parcel: %w", err)
	}
	return nil
}

func (r *parcelRepository) GetForOwner(ctx context.Context, ownerID, parcelID uuid.UUID) (domain.Parcel, error) {
	var rec parcelModel
	if err := r.db.WithContext(ctx).
		Where(ownedParcelClause, parcelID.String(), ownerID.String()).
		Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Parcel{}, domain.ErrNotFound
		}
		return domain.Parcel{}, fmt.Errorf("select parcel: %w", err)
	}
	return rec.toDomain()
}

func (r *parcelRepository) UpdateForOwner(ctx context.Context, ownerID, parcelID uuid.UUID, patch domain.ParcelPatch, updatedAt time.Time) (domain.Parcel, error) {
	res := r.db.WithContext(ctx).
		Model(&parcelModel{}).
		Where(ownedParcelClause, parcelID.String(), ownerID.String()).
		Updates(patchColumns(patch, updatedAt))
	if res.Error != nil {
		return domain.Parcel{}, fmt.Errorf("update parcel: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.Parcel{}, domain.ErrNotFound
	}
	return r.GetForOwner(ctx, ownerID, parcelID)
}

func (r *parcelRepository) DeleteForOwner(ctx context.Context, ownerID, parcelID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where(ownedParcelClause, parcelID.String(), ownerID.String()).
		Delete(&parcelModel{})
	if res.Error != nil {
		return fmt.Errorf("delete parcel: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func patchColumns(patch domain.ParcelPatch, updatedAt time.Time) map[string]any {
	cols := map[string]any{"updated_at": updatedAt}
	if patch.Name != nil {
		cols["name"] = *patch.Name
	}
	if patch.Province != nil {
		cols["province"] = *patch.Province
	}
	if patch.Municipality != nil {
		cols["municipality"] = *patch.Municipality
	}
	if patch.Crop != nil {
		cols["crop"] = *patch.Crop
	}
	if patch.Area != nil {
		cols["area"] = *patch.Area
	}
	return cols
}
