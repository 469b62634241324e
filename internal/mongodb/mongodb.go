package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storefront/backend/internal/config"
)

type DB struct {
	Client   *mongo.Client
	Users    *mongo.Collection
	Products *mongo.Collection
	Orders   *mongo.Collection
}

func Connect(cfg *config.Config) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MONGO_URI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(cfg.MONGO_DB)
	d := &DB{
		Client:   client,
		Users:    db.Collection("users"),
		Products: db.Collection("products"),
		Orders:   db.Collection("orders"),
	}

	if err := d.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// ensureIndexes enforces email uniqueness at the store level so concurrent
// registrations cannot slip past the read-then-insert check.
func (d *DB) ensureIndexes(ctx context.Context) error {
	_, err := d.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (d *DB) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}
