package store

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cloudspace-consulting/survey-api/config"
	"github.com/cloudspace-consulting/survey-api/log"
)

// ErrItemNotFound reports a primary key lookup miss.
var ErrItemNotFound = errors.New("item not found")

// MongoStore is the document store collaborator. Items live in named
// collections, keyed by their "id" attribute.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func Open(ctx context.Context, cfg config.Config) (*MongoStore, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURL).
		// nested documents must decode as maps, not bson.D
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "connect")
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, errors.Wrap(err, "ping")
	}

	s := &MongoStore{client: client, db: client.Database(cfg.Database)}
	if err := s.ensureIndexes(ctx, cfg); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}

	log.Info("Connected to store at " + cfg.MongoURL)
	return s, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Unique primary key index on id for both collections, plus the secondary
// index on survey_id that backs equality queries on responses.
func (s *MongoStore) ensureIndexes(ctx context.Context, cfg config.Config) error {
	_, err := s.db.Collection(cfg.SurveysCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return errors.Wrap(err, "index surveys.id")
	}

	_, err = s.db.Collection(cfg.ResponsesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "survey_id", Value: 1}},
			Options: options.Index().SetName("survey_id-index"),
		},
	})
	return errors.Wrap(err, "index responses")
}

var (
	findOneNoObjectID = options.FindOne().SetProjection(bson.M{"_id": 0})
	findNoObjectID    = options.Find().SetProjection(bson.M{"_id": 0})
)

// Put inserts a single new item.
func (s *MongoStore) Put(ctx context.Context, collection string, item Item) error {
	_, err := s.db.Collection(collection).InsertOne(ctx, item)
	return errors.Wrap(err, "put item")
}

// Get looks an item up by exact primary key match.
func (s *MongoStore) Get(ctx context.Context, collection, id string) (Item, error) {
	var item Item
	err := s.db.Collection(collection).
		FindOne(ctx, bson.M{"id": id}, findOneNoObjectID).
		Decode(&item)
	if err == mongo.ErrNoDocuments {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get item")
	}
	return item, nil
}

// Scan reads every item in the collection, in no particular order.
func (s *MongoStore) Scan(ctx context.Context, collection string) ([]Item, error) {
	return s.find(ctx, collection, bson.M{})
}

// Query returns the items whose indexed field equals value.
func (s *MongoStore) Query(ctx context.Context, collection, field, value string) ([]Item, error) {
	return s.find(ctx, collection, bson.M{field: value})
}

func (s *MongoStore) find(ctx context.Context, collection string, filter bson.M) ([]Item, error) {
	cursor, err := s.db.Collection(collection).Find(ctx, filter, findNoObjectID)
	if err != nil {
		return nil, errors.Wrap(err, "find")
	}
	defer cursor.Close(ctx)

	items := []Item{}
	for cursor.Next(ctx) {
		var item Item
		if err := cursor.Decode(&item); err != nil {
			return nil, errors.Wrap(err, "find decode")
		}
		items = append(items, item)
	}
	return items, errors.Wrap(cursor.Err(), "find cursor")
}

// IncrementField adds 1 to a numeric attribute in a single atomic update.
// A missing attribute counts as 0, so the first increment yields 1.
func (s *MongoStore) IncrementField(ctx context.Context, collection, id, field string) error {
	res, err := s.db.Collection(collection).UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$inc": bson.M{field: 1}},
	)
	if err != nil {
		return errors.Wrap(err, "increment "+field)
	}
	if res.MatchedCount == 0 {
		return ErrItemNotFound
	}
	return nil
}
