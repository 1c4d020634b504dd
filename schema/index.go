package schema

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBIndexer struct {
	ctx      context.Context
	dbName   string
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDBIndexer(connectionString, dbName string) *MongoDBIndexer {
	ctx := context.Background()
	opts := options.Client().ApplyURI(connectionString)
	client, err := mongo.NewClient(opts)
	if err != nil {
		panic(err)
	}
	if err := client.Connect(ctx); err != nil {
		panic(err)
	}

	return &MongoDBIndexer{
		ctx:      ctx,
		dbName:   dbName,
		Client:   client,
		Database: client.Database(dbName),
	}
}

func (m *MongoDBIndexer) createIndex(collection string, index mongo.IndexModel) error {
	c := m.Database.Collection(collection)
	_, err := c.Indexes().CreateOne(m.ctx, index)
	return err
}

func panicIfError(err error) {
	if err != nil {
		panic(err)
	}
}

func (m *MongoDBIndexer) IndexAll() {
	panicIfError(m.IndexUserCollection())
	panicIfError(m.IndexHelpRequestCollection())
	panicIfError(m.IndexSessionCollection())
	panicIfError(m.IndexMessageCollection())
}

func (m *MongoDBIndexer) IndexUserCollection() error {
	if err := m.createIndex(UserCollection, mongo.IndexModel{
		Keys: bson.M{
			"id": 1,
		},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	return m.createIndex(UserCollection, mongo.IndexModel{
		Keys: bson.M{
			"location": "2dsphere",
		},
	})
}

// IndexHelpRequestCollection keeps at most one open request per requester
func (m *MongoDBIndexer) IndexHelpRequestCollection() error {
	if err := m.createIndex(HelpRequestCollection, mongo.IndexModel{
		Keys: bson.M{
			"id": 1,
		},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	if err := m.createIndex(HelpRequestCollection, mongo.IndexModel{
		Keys: bson.M{
			"requester_id": 1,
		},
		Options: options.Index().
			SetName("help_request_unique_if_open").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"open": true}),
	}); err != nil {
		return err
	}

	return m.createIndex(HelpRequestCollection, mongo.IndexModel{
		Keys: bson.D{
			{"status", 1},
			{"expires_at", 1},
		},
	})
}

// IndexSessionCollection keeps at most one active session per request and pair
func (m *MongoDBIndexer) IndexSessionCollection() error {
	if err := m.createIndex(SessionCollection, mongo.IndexModel{
		Keys: bson.M{
			"id": 1,
		},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	if err := m.createIndex(SessionCollection, mongo.IndexModel{
		Keys: bson.D{
			{"related_request_id", 1},
			{"pair_key", 1},
		},
		Options: options.Index().
			SetName("session_unique_if_active").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"status": SessionActive}),
	}); err != nil {
		return err
	}

	return m.createIndex(SessionCollection, mongo.IndexModel{
		Keys: bson.M{
			"participant_ids": 1,
		},
	})
}

func (m *MongoDBIndexer) IndexMessageCollection() error {
	return m.createIndex(MessageCollection, mongo.IndexModel{
		Keys: bson.D{
			{"session_id", 1},
			{"created_at", 1},
		},
	})
}
