package help

import (
	"context"
	"math"
	"time"

	"github.com/bitmark-inc/mutual-aid-api/consts"
	"github.com/bitmark-inc/mutual-aid-api/geo"
	"github.com/bitmark-inc/mutual-aid-api/schema"
)

// NearbyCandidate is a helper as shown to another user. Location is blurred
// within the privacy radius of the helper on every read.
type NearbyCandidate struct {
	UserID           string          `json:"user_id"`
	DisplayName      string          `json:"display_name"`
	OfferedResources []string        `json:"offered_resources"`
	Distance         float64         `json:"distance"`
	ResourceMatch    bool            `json:"resource_match"`
	Location         schema.Location `json:"location"`
	LastActiveAt     time.Time       `json:"last_active_at"`
}

// NearbyQuery is the input of GetNearbyCandidates. A nil Location searches
// around the last reported location of the caller.
type NearbyQuery struct {
	Location *schema.Location
	Radius   float64
	Limit    int
	Kind     schema.HelpKind
}

// GetNearbyCandidates lists the helpers around a point for interactive browsing
func (c *Coordinator) GetNearbyCandidates(ctx context.Context, callerID string, query NearbyQuery) ([]NearbyCandidate, error) {
	if query.Kind != "" && !query.Kind.Valid() {
		return nil, validationError("unknown help kind %s", query.Kind)
	}
	if math.IsNaN(query.Radius) || math.IsInf(query.Radius, 0) || query.Radius < 0 {
		return nil, validationError("radius should be a non-negative number")
	}
	if query.Radius > consts.RegistrationRadius {
		return nil, validationError("radius should not exceed %.0f meters", consts.RegistrationRadius)
	}
	if query.Radius == 0 {
		query.Radius = consts.NearbyRadius
	}

	origin := query.Location
	if origin == nil {
		u, err := c.GetProfile(ctx, callerID)
		if err != nil {
			return nil, err
		}
		if u.HomeLocation == nil {
			return nil, validationError("location is required")
		}
		origin = &u.HomeLocation.Location
	} else if err := c.check(*origin); err != nil {
		return nil, err
	}

	pool, err := c.store.NearbyUsers(ctx, *origin, query.Radius, callerID)
	if err != nil {
		return nil, dependencyError(err, "query nearby users")
	}

	candidates := geo.Select(geo.Origin{
		Location:    *origin,
		RequesterID: callerID,
		Kind:        query.Kind,
	}, pool, query.Radius, query.Limit)

	result := make([]NearbyCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		u := candidate.User
		result = append(result, NearbyCandidate{
			UserID:           u.ID,
			DisplayName:      u.DisplayName,
			OfferedResources: u.OfferedResources,
			Distance:         candidate.Distance,
			ResourceMatch:    candidate.ResourceMatch,
			Location:         geo.Blur(u.HomeLocation.Location, u.EffectivePrivacyRadius()),
			LastActiveAt:     u.LastActiveAt,
		})
	}
	return result, nil
}
