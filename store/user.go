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
	ErrUserNotFound = fmt.Errorf("user not found")
)

const (
	StatsRoleHelped    = "helped"
	StatsRoleWasHelped = "was_helped"
)

// Users - profile documents and the geo prefilter used to find candidates
type Users interface {
	GetUser(ctx context.Context, userID string) (*schema.User, error)
	UpsertUser(ctx context.Context, userID, displayName string) (*schema.User, error)
	UpdateUserLocation(ctx context.Context, userID string, loc schema.Location, at time.Time) error
	UpdateUserResources(ctx context.Context, userID string, resources []string) error
	UpdateUserVisibility(ctx context.Context, userID string, visible bool) error
	UpdateUserPrivacyRadius(ctx context.Context, userID string, meters float64) error
	TouchUser(ctx context.Context, userID string, at time.Time) error
	NearbyUsers(ctx context.Context, origin schema.Location, radius float64, excludeID string) ([]schema.User, error)
	RecordHelpStats(ctx context.Context, userID, role, requestID string) (bool, error)
}

// GetUser returns the profile of a user
func (m *mongoDB) GetUser(ctx context.Context, userID string) (*schema.User, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	var u schema.User
	if err := m.collection(schema.UserCollection).FindOne(ctx, bson.M{"id": userID}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpsertUser sets the display name, creating the profile on first use
func (m *mongoDB) UpsertUser(ctx context.Context, userID, displayName string) (*schema.User, error) {
	if err := m.upsertUser(ctx, userID, bson.M{"display_name": displayName}); err != nil {
		return nil, err
	}
	return m.GetUser(ctx, userID)
}

// UpdateUserLocation stores the last reported location of a user along with the
// GeoJSON point used by the 2dsphere index
func (m *mongoDB) UpdateUserLocation(ctx context.Context, userID string, loc schema.Location, at time.Time) error {
	return m.upsertUser(ctx, userID, bson.M{
		"location": schema.NewGeoJSONPoint(loc),
		"home_location": schema.TrackedLocation{
			Location:  loc,
			UpdatedAt: at.UTC(),
		},
		"last_active_at": at.UTC(),
	})
}

// UpdateUserResources replaces the resources a user offers
func (m *mongoDB) UpdateUserResources(ctx context.Context, userID string, resources []string) error {
	if resources == nil {
		resources = []string{}
	}
	return m.upsertUser(ctx, userID, bson.M{"offered_resources": resources})
}

func (m *mongoDB) UpdateUserVisibility(ctx context.Context, userID string, visible bool) error {
	return m.upsertUser(ctx, userID, bson.M{"visible_on_map": visible})
}

func (m *mongoDB) UpdateUserPrivacyRadius(ctx context.Context, userID string, meters float64) error {
	return m.upsertUser(ctx, userID, bson.M{"privacy_radius": meters})
}

// TouchUser bumps the last active time of an existing user
func (m *mongoDB) TouchUser(ctx context.Context, userID string, at time.Time) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	_, err := m.collection(schema.UserCollection).UpdateOne(ctx,
		bson.M{"id": userID},
		bson.M{"$set": bson.M{"last_active_at": at.UTC()}})
	return err
}

// RecordHelpStats increments the counter of a role for a user once per request.
// It returns false when the request had been counted already.
func (m *mongoDB) RecordHelpStats(ctx context.Context, userID, role, requestID string) (bool, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	key := schema.StatsKey(role, requestID)
	result, err := m.collection(schema.UserCollection).UpdateOne(ctx,
		bson.M{
			"id":            userID,
			"stats.counted": bson.M{"$ne": key},
		},
		bson.M{
			"$inc":  bson.M{"stats." + role: 1},
			"$push": bson.M{"stats.counted": key},
		})
	if err != nil {
		return false, err
	}

	return result.ModifiedCount > 0, nil
}

// upsertUser applies fields to a profile. Defaults are only written on insert
// for the fields not being set.
func (m *mongoDB) upsertUser(ctx context.Context, userID string, fields bson.M) error {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	defaults := bson.M{
		"created_at":        now,
		"offered_resources": []string{},
		"visible_on_map":    true,
		"privacy_radius":    float64(schema.DefaultPrivacyRadius),
		"deactivated":       false,
		"stats": schema.UserStats{
			Counted: []string{},
		},
		"last_active_at": now,
	}
	onInsert := bson.M{}
	for k, v := range defaults {
		if _, ok := fields[k]; !ok {
			onInsert[k] = v
		}
	}

	_, err := m.collection(schema.UserCollection).UpdateOne(ctx,
		bson.M{"id": userID},
		bson.M{
			"$set":         fields,
			"$setOnInsert": onInsert,
		},
		options.Update().SetUpsert(true))
	return err
}
