package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	accountsCollection = "accounts"
	parcelsCollection  = "parcels"
)

// Store is the document-store backend: one client, one database.
type Store struct {
	client   *mongo.Client
	Accounts *AccountRepository
	Parcels  *ParcelRepository
}

// Connect dials the deployment, pings it and makes sure the indexes exist.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	logger := slog.Default().With("module", "mongo", "layer", "adapter", "operation", "connect")
	logger.InfoContext(ctx, "mongo connect started", "outcome", "start")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	store := &Store{
		client:   client,
		Accounts: newAccountRepository(db.Collection(accountsCollection)),
		Parcels:  newParcelRepository(db.Collection(parcelsCollection)),
	}
	if err := store.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	logger.InfoContext(ctx, "mongo connect completed", "outcome", "success")
	return store, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.Accounts.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName("accounts_username_key")},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("accounts_email_key")},
	})
	if err != nil {
		return fmt.Errorf("create account indexes: %w", err)
	}
	_, err = s.Parcels.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: 1}, {Key: "seq", Value: 1}},
		Options: options.Index().SetName("parcels_owner_created_seq_idx"),
	})
	if err != nil {
		return fmt.Errorf("create parcel indexes: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
