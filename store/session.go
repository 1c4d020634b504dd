package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/mutual-aid-api/schema"
)

var (
	ErrSessionNotFound = fmt.Errorf("session not found")
	ErrSessionExists   = fmt.Errorf("an active session exists for this pair")
)

const lastMessagePreviewLength = 50

// Sessions - conversation documents
type Sessions interface {
	CreateSession(ctx context.Context, session *schema.Session) error
	GetSession(ctx context.Context, sessionID string) (*schema.Session, error)
	FindActiveSession(ctx context.Context, requestID, pairKey string) (*schema.Session, error)
	GetRequestSessions(ctx context.Context, requestID string, status schema.SessionStatus) ([]schema.Session, error)
	GetUserSessions(ctx context.Context, userID string) ([]schema.Session, error)
	CloseSession(ctx context.Context, sessionID string, status schema.SessionStatus, at time.Time) (bool, error)
	DeleteSession(ctx context.Context, sessionID string) error
	SetSessionMeeting(ctx context.Context, sessionID, point string, meetingTime *time.Time) (bool, error)
	RecordSessionMessage(ctx context.Context, sessionID string, recipientIndex int, content string, at time.Time) (bool, error)
	ResetSessionUnread(ctx context.Context, sessionID string, participantIndex int) error
}

// CreateSession inserts a session. It fails with ErrSessionExists when an active
// session already exists for the same request and pair.
func (m *mongoDB) CreateSession(ctx context.Context, session *schema.Session) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	if session.UnreadCounts == nil {
		session.UnreadCounts = make([]int, len(session.ParticipantIDs))
	}

	if _, err := m.collection(schema.SessionCollection).InsertOne(ctx, session); err != nil {
		if isDuplicateKeyError(err) {
			return ErrSessionExists
		}
		return err
	}
	return nil
}

func (m *mongoDB) GetSession(ctx context.Context, sessionID string) (*schema.Session, error) {
	return m.findSession(ctx, bson.M{"id": sessionID})
}

func (m *mongoDB) FindActiveSession(ctx context.Context, requestID, pairKey string) (*schema.Session, error) {
	return m.findSession(ctx, bson.M{
		"related_request_id": requestID,
		"pair_key":           pairKey,
		"status":             schema.SessionActive,
	})
}

// GetRequestSessions returns the sessions of a request in a status. An empty
// status returns all of them.
func (m *mongoDB) GetRequestSessions(ctx context.Context, requestID string, status schema.SessionStatus) ([]schema.Session, error) {
	query := bson.M{"related_request_id": requestID}
	if status != "" {
		query["status"] = status
	}
	return m.findSessions(ctx, query, options.Find().SetSort(bson.M{"created_at": 1}))
}

// GetUserSessions returns the sessions of a user, most recent activity first
func (m *mongoDB) GetUserSessions(ctx context.Context, userID string) ([]schema.Session, error) {
	return m.findSessions(ctx,
		bson.M{"participant_ids": userID},
		options.Find().SetSort(bson.D{{"last_message_time", -1}, {"created_at", -1}}))
}

// CloseSession moves an active session to a terminal status
func (m *mongoDB) CloseSession(ctx context.Context, sessionID string, status schema.SessionStatus, at time.Time) (bool, error) {
	set := bson.M{"status": status}
	switch status {
	case schema.SessionCompleted:
		set["completed_at"] = at.UTC()
	case schema.SessionCancelled:
		set["cancelled_at"] = at.UTC()
	default:
		return false, fmt.Errorf("session could not be closed as %s", status)
	}

	return m.updateSession(ctx,
		bson.M{"id": sessionID, "status": schema.SessionActive},
		bson.M{"$set": set})
}

// DeleteSession removes a session along with its messages. Messages go first so
// that a retry after a partial failure still finds the session.
func (m *mongoDB) DeleteSession(ctx context.Context, sessionID string) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	if _, err := m.collection(schema.MessageCollection).DeleteMany(ctx, bson.M{"session_id": sessionID}); err != nil {
		return err
	}

	_, err := m.collection(schema.SessionCollection).DeleteOne(ctx, bson.M{"id": sessionID})
	return err
}

func (m *mongoDB) SetSessionMeeting(ctx context.Context, sessionID, point string, meetingTime *time.Time) (bool, error) {
	set := bson.M{"meeting_point": point}
	if meetingTime != nil {
		set["meeting_time"] = meetingTime.UTC()
	}

	return m.updateSession(ctx,
		bson.M{"id": sessionID, "status": schema.SessionActive},
		bson.M{"$set": set})
}

// RecordSessionMessage updates the denormalized list view fields and the unread
// counter of the recipient
func (m *mongoDB) RecordSessionMessage(ctx context.Context, sessionID string, recipientIndex int, content string, at time.Time) (bool, error) {
	preview := []rune(content)
	if len(preview) > lastMessagePreviewLength {
		preview = preview[:lastMessagePreviewLength]
	}

	return m.updateSession(ctx,
		bson.M{"id": sessionID, "status": schema.SessionActive},
		bson.M{
			"$set": bson.M{
				"last_message":      string(preview),
				"last_message_time": at.UTC(),
			},
			"$inc": bson.M{fmt.Sprintf("unread_counts.%d", recipientIndex): 1},
		})
}

func (m *mongoDB) ResetSessionUnread(ctx context.Context, sessionID string, participantIndex int) error {
	_, err := m.updateSession(ctx,
		bson.M{"id": sessionID},
		bson.M{"$set": bson.M{fmt.Sprintf("unread_counts.%d", participantIndex): 0}})
	return err
}

func (m *mongoDB) findSession(ctx context.Context, query bson.M) (*schema.Session, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	var session schema.Session
	if err := m.collection(schema.SessionCollection).FindOne(ctx, query).Decode(&session); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (m *mongoDB) findSessions(ctx context.Context, query bson.M, opts *options.FindOptions) ([]schema.Session, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	cur, err := m.collection(schema.SessionCollection).Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	sessions := make([]schema.Session, 0)
	if err := cur.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (m *mongoDB) updateSession(ctx context.Context, filter, update bson.M) (bool, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	result, err := m.collection(schema.SessionCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}
