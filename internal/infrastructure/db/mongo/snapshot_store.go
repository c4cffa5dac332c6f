package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/marketplace-system/internal/core/ports"
)

const snapshotCollection = "snapshots"

// snapshotDoc is one store's state. The state is kept as the JSON text the
// stores produce so both backends round-trip the same encoding.
type snapshotDoc struct {
	ID        string    `bson:"_id"`
	State     string    `bson:"state"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// SnapshotStore implements ports.SnapshotStore using one MongoDB document per store.
type SnapshotStore struct {
	db    *mongo.Database
	store string
}

var _ ports.SnapshotStore = (*SnapshotStore)(nil)

// NewSnapshotStore creates a SnapshotStore for store in db.
func NewSnapshotStore(db *mongo.Database, store string) *SnapshotStore {
	return &SnapshotStore{db: db, store: store}
}

func (s *SnapshotStore) collection() *mongo.Collection {
	return s.db.Collection(snapshotCollection)
}

// Load decodes the stored snapshot into v. A missing document reports found=false.
func (s *SnapshotStore) Load(ctx context.Context, v any) (bool, error) {
	var doc snapshotDoc
	err := s.collection().FindOne(ctx, bson.M{"_id": s.store}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("mongo find snapshot %s: %w", s.store, err)
	}
	if err := json.Unmarshal([]byte(doc.State), v); err != nil {
		return false, fmt.Errorf("decode snapshot %s: %w", s.store, err)
	}
	return true, nil
}

// Save upserts the store's document.
func (s *SnapshotStore) Save(ctx context.Context, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	filter := bson.M{"_id": s.store}
	update := bson.M{
		"$set": bson.M{
			"state":      string(raw),
			"updated_at": time.Now().UTC(),
		},
	}
	_, err = s.collection().UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo upsert snapshot %s: %w", s.store, err)
	}
	return nil
}

// Ping checks server reachability with the ping command.
func (s *SnapshotStore) Ping(ctx context.Context) error {
	return s.db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}
