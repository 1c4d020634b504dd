package store

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/mutual-aid-api/schema"
)

var ErrStreamClosed = fmt.Errorf("message stream closed")

// Messages - chat messages and their change feed
type Messages interface {
	InsertMessage(ctx context.Context, msg *schema.Message) error
	GetMessages(ctx context.Context, sessionID string, since time.Time, limit int64) ([]schema.Message, error)
	GetLatestMessages(ctx context.Context, sessionID string, limit int64) ([]schema.Message, error)
	HasMessageFrom(ctx context.Context, sessionID, senderID string) (bool, error)
	MarkMessagesRead(ctx context.Context, sessionID, readerID string) (int64, error)
	WatchMessages(ctx context.Context, sessionID string) (MessageStream, error)
}

// MessageStream is a live feed of messages inserted into a session
type MessageStream interface {
	Next(ctx context.Context) (*schema.Message, error)
	Close(ctx context.Context) error
}

func (m *mongoDB) InsertMessage(ctx context.Context, msg *schema.Message) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	_, err := m.collection(schema.MessageCollection).InsertOne(ctx, msg)
	return err
}

// GetMessages returns messages created at or after since in delivery order.
// A zero limit returns all of them.
func (m *mongoDB) GetMessages(ctx context.Context, sessionID string, since time.Time, limit int64) ([]schema.Message, error) {
	opts := options.Find().SetSort(bson.D{{"created_at", 1}, {"id", 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	return m.findMessages(ctx, bson.M{
		"session_id": sessionID,
		"created_at": bson.M{"$gte": since.UTC()},
	}, opts)
}

// GetLatestMessages returns the last messages of a session in delivery order
func (m *mongoDB) GetLatestMessages(ctx context.Context, sessionID string, limit int64) ([]schema.Message, error) {
	messages, err := m.findMessages(ctx,
		bson.M{"session_id": sessionID},
		options.Find().SetSort(bson.D{{"created_at", -1}, {"id", -1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (m *mongoDB) HasMessageFrom(ctx context.Context, sessionID, senderID string) (bool, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	count, err := m.collection(schema.MessageCollection).CountDocuments(ctx,
		bson.M{"session_id": sessionID, "sender_id": senderID},
		options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkMessagesRead flags the messages a reader received as read
func (m *mongoDB) MarkMessagesRead(ctx context.Context, sessionID, readerID string) (int64, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	result, err := m.collection(schema.MessageCollection).UpdateMany(ctx,
		bson.M{
			"session_id": sessionID,
			"sender_id":  bson.M{"$ne": readerID},
			"read":       false,
		},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// WatchMessages opens a change stream on messages inserted into a session.
// Change streams need a replica set; callers fall back to polling when it fails.
func (m *mongoDB) WatchMessages(ctx context.Context, sessionID string) (MessageStream, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{"$match", bson.D{
			{"operationType", "insert"},
			{"fullDocument.session_id", sessionID},
		}}},
	}

	cs, err := m.collection(schema.MessageCollection).Watch(ctx, pipeline)
	if err != nil {
		log.WithField("prefix", mongoLogPrefix).Warnf("watch messages of session %s with error: %s", sessionID, err)
		return nil, err
	}

	return &changeStream{cs: cs}, nil
}

func (m *mongoDB) findMessages(ctx context.Context, query bson.M, opts *options.FindOptions) ([]schema.Message, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	cur, err := m.collection(schema.MessageCollection).Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	messages := make([]schema.Message, 0)
	if err := cur.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

type changeStream struct {
	cs *mongo.ChangeStream
}

func (s *changeStream) Next(ctx context.Context) (*schema.Message, error) {
	if !s.cs.Next(ctx) {
		if err := s.cs.Err(); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, ErrStreamClosed
	}

	var event struct {
		FullDocument schema.Message `bson:"fullDocument"`
	}
	if err := s.cs.Decode(&event); err != nil {
		return nil, err
	}
	return &event.FullDocument, nil
}

func (s *changeStream) Close(ctx context.Context) error {
	return s.cs.Close(ctx)
}
