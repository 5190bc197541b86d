package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/princinho/sahoadmin/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MongoStore keeps sessions in a collection so they survive restarts and
// can be shared by several dashboard instances.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(col *mongo.Collection) *MongoStore {
	return &MongoStore{col: col}
}

// EnsureIndexes adds a TTL index so Mongo drops expired sessions on its
// own.
func (m *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := m.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}

func (m *MongoStore) Save(ctx context.Context, s *models.Session) error {
	_, err := m.col.ReplaceOne(ctx, bson.M{"_id": s.ID}, s, options.Replace().SetUpsert(true))
	return err
}

func (m *MongoStore) Get(ctx context.Context, id string) (*models.Session, error) {
	var s models.Session
	if err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (m *MongoStore) Delete(ctx context.Context, id string) error {
	_, err := m.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (m *MongoStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := m.col.DeleteMany(ctx, bson.M{"expiresAt": bson.M{"$lte": now.UTC()}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
