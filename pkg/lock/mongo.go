package lock

import (
	"context"
	"fmt"
	"time"

	"campsite/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const lockCollectionName = "reservation_locks"

// MongoStore implements Store on a Mongo collection. The unique _id index
// makes the insert a try-acquire: a duplicate key means another holder has
// the lock.
type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		collection: db.Collection(lockCollectionName),
	}
}

// EnsureIndexes creates the TTL index reclaiming expired locks. Call once at
// startup.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("failed to create lock TTL index: %w", err)
	}
	return nil
}

func (s *MongoStore) Acquire(ctx context.Context, l *model.ReservationLock) error {
	l.CreatedAt = time.Now()

	_, err := s.collection.InsertOne(ctx, l)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrNotAcquired
		}
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	return nil
}

func (s *MongoStore) Release(ctx context.Context, id, owner string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"_id": id, "owner": owner})
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}
