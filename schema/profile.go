package schema

import (
	"fmt"
	"time"
)

const (
	UserCollection = "users"

	DefaultPrivacyRadius = 200
)

// UserStats counts the completed encounters of a user. Counted keeps the
// request ids already accounted so that a retried completion never counts twice.
type UserStats struct {
	Helped    int      `json:"helped" bson:"helped"`
	WasHelped int      `json:"was_helped" bson:"was_helped"`
	Counted   []string `json:"-" bson:"counted"`
}

// StatsKey returns the entry recorded in UserStats.Counted for a request and a role
func StatsKey(role, requestID string) string {
	return fmt.Sprintf("%s:%s", role, requestID)
}

// User - user profile data
type User struct {
	ID               string           `json:"id" bson:"id"`
	DisplayName      string           `json:"display_name" bson:"display_name"`
	Location         *GeoJSON         `json:"-" bson:"location,omitempty"`
	HomeLocation     *TrackedLocation `json:"home_location" bson:"home_location,omitempty"`
	OfferedResources []string         `json:"offered_resources" bson:"offered_resources"`
	VisibleOnMap     bool             `json:"visible_on_map" bson:"visible_on_map"`
	PrivacyRadius    float64          `json:"privacy_radius" bson:"privacy_radius"`
	Stats            UserStats        `json:"stats" bson:"stats"`
	Deactivated      bool             `json:"deactivated" bson:"deactivated"`
	LastActiveAt     time.Time        `json:"last_active_at" bson:"last_active_at"`
	CreatedAt        time.Time        `json:"created_at" bson:"created_at"`
}

// EffectivePrivacyRadius returns the privacy radius in meters, falling back
// to the default for users who never set one.
func (u *User) EffectivePrivacyRadius() float64 {
	if u.PrivacyRadius <= 0 {
		return DefaultPrivacyRadius
	}
	return u.PrivacyRadius
}
