package store

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/mutual-aid-api/schema"
)

// nearbyScanLimit bounds how many profiles a single geo prefilter may return
const nearbyScanLimit = 500

// NearbyUsers - find visible users offering resources within a distance in meters,
// nearest first. The requester is excluded.
func (m *mongoDB) NearbyUsers(ctx context.Context, origin schema.Location, radius float64, excludeID string) ([]schema.User, error) {
	ctx, cancel := m.withTimeout(ctx)
	defer cancel()

	c := m.collection(schema.UserCollection)
	cur, err := c.Find(ctx, nearbyQuery(origin, radius, excludeID), options.Find().SetLimit(nearbyScanLimit))
	if nil != err {
		log.WithField("prefix", mongoLogPrefix).Errorf("query nearby users with error: %s", err)
		return nil, fmt.Errorf("nearby users query with error: %s", err)
	}
	defer cur.Close(ctx)

	users := make([]schema.User, 0)
	for cur.Next(ctx) {
		var u schema.User
		if err := cur.Decode(&u); nil != err {
			log.WithField("prefix", mongoLogPrefix).Errorf("nearby users decode record with error: %s", err)
			return nil, fmt.Errorf("decode mongo record with error: %s", err)
		}
		users = append(users, u)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	log.WithField("prefix", mongoLogPrefix).Debugf("nearby users query within %.0fm gets %d users", radius, len(users))

	return users, nil
}

// $nearSphere provides documents from nearest to farthest
// reference: https://docs.mongodb.com/manual/reference/operator/query/nearSphere/#op._S_nearSphere
func nearbyQuery(cords schema.Location, distance float64, excludeID string) bson.D {
	return bson.D{
		{"location", bson.D{{
			"$nearSphere",
			bson.D{
				{"$geometry", bson.D{
					{"type", "Point"},
					{"coordinates", bson.A{cords.Longitude, cords.Latitude}},
				}},
				{"$maxDistance", distance},
			},
		}}},
		{"id", bson.D{{"$ne", excludeID}}},
		{"visible_on_map", true},
		{"deactivated", bson.D{{"$ne", true}}},
		{"offered_resources.0", bson.D{{"$exists", true}}},
	}
}
