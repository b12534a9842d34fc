package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/sigpac-weather/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ParcelRepository struct {
	coll *mongo.Collection
}

func newParcelRepository(coll *mongo.Collection) *ParcelRepository {
	return &ParcelRepository{coll: coll}
}

var listOrder = bson.D{{Key: "created_at", Value: 1}, {Key: "seq", Value: 1}}

func ownedFilter(ownerID, parcelID uuid.UUID) bson.D {
	return bson.D{
		{Key: "_id", Value: parcelID.String()},
		{Key: "owner_id", Value: ownerID.String()},
	}
}

func (r *ParcelRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Parcel, error) {
	cur, err := r.coll.Find(ctx,
		bson.D{{Key: "owner_id", Value: ownerID.String()}},
		options.Find().SetSort(listOrder),
	)
	if err != nil {
		return nil, fmt.Errorf("find parcels: %w", err)
	}
	var docs []parcelDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode parcels: %w", err)
	}
	out := make([]domain.Parcel, 0, len(docs))
	for _, d := range docs {
		p, err := d.toDomain()
		if err != nil {
			return nil, fmt.Errorf("map parcel: %w", err)
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *ParcelRepository) Insert(ctx context.Context, parcel domain.Parcel) error {
	if _, err := r.coll.InsertOne(ctx, parcelToDocument(parcel)); err != nil {
		return fmt.Errorf("insert parcel: %w", err)
	}
	return nil
}

func (r *ParcelRepository) GetForOwner(ctx context.Context, ownerID, parcelID uuid.UUID) (domain.Parcel, error) {
	var doc parcelDocument
	if err := r.coll.FindOne(ctx, ownedFilter(ownerID, parcelID)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Parcel{}, domain.ErrNotFound
		}
		return domain.Parcel{}, fmt.Errorf("find parcel: %w", err)
	}
	return doc.toDomain()
}

func (r *ParcelRepository) UpdateForOwner(ctx context.Context, ownerID, parcelID uuid.UUID, patch domain.ParcelPatch, updatedAt time.Time) (domain.Parcel, error) {
	var doc parcelDocument
	err := r.coll.FindOneAndUpdate(ctx,
		ownedFilter(ownerID, parcelID),
		bson.D{{Key: "$set", Value: patchSet(patch, updatedAt)}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Parcel{}, domain.ErrNotFound
		}
		return domain.Parcel{}, fmt.Errorf("update parcel: %w", err)
	}
	return doc.toDomain()
}

func (r *ParcelRepository) DeleteForOwner(ctx context.Context, ownerID, parcelID uuid.UUID) error {
	res, err := r.coll.DeleteOne(ctx, ownedFilter(ownerID, parcelID))
	if err != nil {
		return fmt.Errorf("delete parcel: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func patchSet(patch domain.ParcelPatch, updatedAt time.Time) bson.D {
	set := bson.D{{Key: "updated_at", Value: primitive.NewDateTimeFromTime(updatedAt)}}
	if patch.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *patch.Name})
	}
	if patch.Province != nil {
		set = append(set, bson.E{Key: "province", Value: *patch.Province})
	}
	if patch.Municipality != nil {
		set = append(set, bson.E{Key: "municipality", Value: *patch.Municipality})
	}
	if patch.Crop != nil {
		set = append(set, bson.E{Key: "crop", Value: *patch.Crop})
	}
	if patch.Area != nil {
		set = append(set, bson.E{Key: "area", Value: *patch.Area})
	}
	return set
}
