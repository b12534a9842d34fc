package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/viralforge/sigpac-weather/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AccountRepository struct {
	coll *mongo.Collection
}

func newAccountRepository(coll *mongo.Collection) *AccountRepository {
	return &AccountRepository{coll: coll}
}

func (r *AccountRepository) Insert(ctx context.Context, account domain.Account) error {
	if _, err := r.coll.InsertOne(ctx, accountToDocument(account)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: username or email already registered", domain.ErrConflict)
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, accountID uuid.UUID) (domain.Account, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: accountID.String()}})
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (domain.Account, error) {
	return r.findOne(ctx, bson.D{{Key: "username", Value: username}})
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: strings.ToLower(email)}})
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.D) (domain.Account, error) {
	var doc accountDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Account{}, domain.ErrNotFound
		}
		return domain.Account{}, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain()
}
