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
	ErrHelpRequestNotFound = fmt.Errorf("help request not found")
	ErrOpenRequestExists   = fmt.Errorf("making multiple requests is not allowed")
)

// HelpRequests - help request documents. Every status transition is a conditional
// update which reports whether this caller's update was the one applied.
type HelpRequests interface {
	CreateHelpRequest(ctx context.Context, help *schema.HelpRequest) error
	GetHelpRequest(ctx context.Context, helpID string) (*schema.HelpRequest, error)
	GetOpenHelpRequests(ctx context.Context, requesterID string) ([]schema.HelpRequest, error)
	SetHelpCandidates(ctx context.Context, helpID string, candidateIDs []string, notified int) error
	AddHelpCandidate(ctx context.Context, helpID, userID string) error
	MatchHelpRequest(ctx context.Context, helpID, helperID string, at time.Time) (bool, error)
	ActivateHelpRequest(ctx context.Context, helpID string) (bool, error)
	CancelHelpRequest(ctx context.Context, helpID, reason string, at time.Time) (bool, error)
	ExpireHelpRequest(ctx context.Context, helpID string, now time.Time) (bool, error)
	ExpireHelpRequests(ctx context.Context, now time.Time) (int64, error)
	CompleteHelpRequest(ctx context.Context, helpID string, completion schema.HelpCompletion, at time.Time) (bool, error)
	MarkHelpAutoReplied(ctx context.Context, helpID string) (bool, error)
	MarkHelpSettled(ctx context.Context, helpID string) error
	GetUnsettledHelpRequests(ctx context.Context, limit int64) ([]schema.HelpRequest, error)
}

// CreateHelpRequest inserts a help request. It fails with ErrOpenRequestExists
// when the requester still has an open one.
func (m *mongoDB) CreateHelpRequest(ctx context.Context, help *schema.HelpRequest) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	if help.CandidateIDs == nil {
		help.CandidateIDs = []string{}
	}
	help.Open = !help.Status.Terminal()

	if _, err := m.collection(schema.HelpRequestCollection).InsertOne(ctx, help); err != nil {
		if isDuplicateKeyError(err) {
			return ErrOpenRequestExists
		}
		return err
	}
	return nil
}

func (m *mongoDB) GetHelpRequest(ctx context.Context, helpID string) (*schema.HelpRequest, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	var help schema.HelpRequest
	if err := m.collection(schema.HelpRequestCollection).FindOne(ctx, bson.M{"id": helpID}).Decode(&help); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrHelpRequestNotFound
		}
		return nil, err
	}

	return &help, nil
}

// GetOpenHelpRequests returns the non-terminal requests of a requester
func (m *mongoDB) GetOpenHelpRequests(ctx context.Context, requesterID string) ([]schema.HelpRequest, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	cur, err := m.collection(schema.HelpRequestCollection).Find(ctx, bson.M{
		"requester_id": requesterID,
		"status":       bson.M{"$in": schema.OpenHelpStatuses},
	})
	if err != nil {
		return nil, err
	}

	helps := make([]schema.HelpRequest, 0)
	if err := cur.All(ctx, &helps); err != nil {
		return nil, err
	}
	return helps, nil
}

// SetHelpCandidates appends notified candidates keeping the existing order
func (m *mongoDB) SetHelpCandidates(ctx context.Context, helpID string, candidateIDs []string, notified int) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	_, err := m.collection(schema.HelpRequestCollection).UpdateOne(ctx,
		bson.M{"id": helpID},
		bson.M{
			"$addToSet": bson.M{"candidate_ids": bson.M{"$each": candidateIDs}},
			"$inc":      bson.M{"notified_count": notified},
		})
	return err
}

func (m *mongoDB) AddHelpCandidate(ctx context.Context, helpID, userID string) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	_, err := m.collection(schema.HelpRequestCollection).UpdateOne(ctx,
		bson.M{"id": helpID},
		bson.M{"$addToSet": bson.M{"candidate_ids": userID}})
	return err
}

// MatchHelpRequest sets a request to `matched`. A request could be updated only when
// it is still pending, unexpired, has no helper yet and the helper is not the requester.
func (m *mongoDB) MatchHelpRequest(ctx context.Context, helpID, helperID string, at time.Time) (bool, error) {
	return m.transition(ctx,
		bson.M{
			"id":               helpID,
			"status":           schema.HelpPending,
			"active_helper_id": "",
			"requester_id":     bson.M{"$ne": helperID},
			"expires_at":       bson.M{"$gte": at.UTC()},
		},
		bson.M{
			"$set": bson.M{
				"status":           schema.HelpMatched,
				"active_helper_id": helperID,
				"matched_at":       at.UTC(),
			},
			"$addToSet": bson.M{"candidate_ids": helperID},
		})
}

// ActivateHelpRequest moves a matched request to `active`
func (m *mongoDB) ActivateHelpRequest(ctx context.Context, helpID string) (bool, error) {
	return m.transition(ctx,
		bson.M{"id": helpID, "status": schema.HelpMatched},
		bson.M{"$set": bson.M{"status": schema.HelpActive}})
}

// CancelHelpRequest cancels an open request
func (m *mongoDB) CancelHelpRequest(ctx context.Context, helpID, reason string, at time.Time) (bool, error) {
	return m.transition(ctx,
		bson.M{"id": helpID, "status": bson.M{"$in": schema.OpenHelpStatuses}},
		bson.M{"$set": bson.M{
			"status":        schema.HelpCancelled,
			"open":          false,
			"cancel_reason": reason,
			"cancelled_at":  at.UTC(),
		}})
}

// ExpireHelpRequest expires a pending request whose window elapsed before now
func (m *mongoDB) ExpireHelpRequest(ctx context.Context, helpID string, now time.Time) (bool, error) {
	return m.transition(ctx,
		bson.M{
			"id":         helpID,
			"status":     schema.HelpPending,
			"expires_at": bson.M{"$lt": now.UTC()},
		},
		bson.M{"$set": bson.M{"status": schema.HelpExpired, "open": false}})
}

// ExpireHelpRequests expires every pending request whose window elapsed before now
func (m *mongoDB) ExpireHelpRequests(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	result, err := m.collection(schema.HelpRequestCollection).UpdateMany(ctx,
		bson.M{
			"status":     schema.HelpPending,
			"expires_at": bson.M{"$lt": now.UTC()},
		},
		bson.M{"$set": bson.M{"status": schema.HelpExpired, "open": false}})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// CompleteHelpRequest completes a matched or active request. Its side effects are
// pending until MarkHelpSettled is called.
func (m *mongoDB) CompleteHelpRequest(ctx context.Context, helpID string, completion schema.HelpCompletion, at time.Time) (bool, error) {
	return m.transition(ctx,
		bson.M{
			"id":     helpID,
			"status": bson.M{"$in": []schema.HelpStatus{schema.HelpMatched, schema.HelpActive}},
		},
		bson.M{"$set": bson.M{
			"status":             schema.HelpCompleted,
			"open":               false,
			"settled":            false,
			"helped_by":          completion.HelperID,
			"winning_session_id": completion.SessionID,
			"meeting_location":   completion.MeetingLocation,
			"meeting_notes":      completion.MeetingNotes,
			"completed_at":       at.UTC(),
		}})
}

// MarkHelpAutoReplied sets the one-shot auto reply flag. Only the first caller wins.
func (m *mongoDB) MarkHelpAutoReplied(ctx context.Context, helpID string) (bool, error) {
	return m.transition(ctx,
		bson.M{"id": helpID, "auto_replied": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"auto_replied": true}})
}

func (m *mongoDB) MarkHelpSettled(ctx context.Context, helpID string) error {
	_, err := m.transition(ctx,
		bson.M{"id": helpID, "status": schema.HelpCompleted},
		bson.M{"$set": bson.M{"settled": true}})
	return err
}

// GetUnsettledHelpRequests returns completed requests whose side effects may be unfinished
func (m *mongoDB) GetUnsettledHelpRequests(ctx context.Context, limit int64) ([]schema.HelpRequest, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	cur, err := m.collection(schema.HelpRequestCollection).Find(ctx,
		bson.M{"status": schema.HelpCompleted, "settled": false},
		options.Find().SetSort(bson.M{"completed_at": 1}).SetLimit(limit))
	if err != nil {
		return nil, err
	}

	helps := make([]schema.HelpRequest, 0)
	if err := cur.All(ctx, &helps); err != nil {
		return nil, err
	}
	return helps, nil
}

func (m *mongoDB) transition(ctx context.Context, filter, update bson.M) (bool, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	result, err := m.collection(schema.HelpRequestCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}

	return result.MatchedCount > 0, nil
}
