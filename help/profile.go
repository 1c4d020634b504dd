package help

import (
	"context"
	"sort"
	"strings"

	"github.com/bitmark-inc/mutual-aid-api/schema"
)

// GetProfile returns the profile of a user
func (c *Coordinator) GetProfile(ctx context.Context, userID string) (*schema.User, error) {
	u, err := c.store.GetUser(ctx, userID)
	if err != nil {
		return nil, dependencyError(err, "get user")
	}
	return u, nil
}

// SetDisplayName sets the display name, creating the profile on first use
func (c *Coordinator) SetDisplayName(ctx context.Context, userID, displayName string) (*schema.User, error) {
	displayName = strings.TrimSpace(displayName)
	if err := c.check(displayNameInput{DisplayName: displayName}); err != nil {
		return nil, err
	}

	u, err := c.store.UpsertUser(ctx, userID, displayName)
	if err != nil {
		return nil, dependencyError(err, "update display name")
	}
	return u, nil
}

// UpdateLocation records where the user is now
func (c *Coordinator) UpdateLocation(ctx context.Context, userID string, loc schema.Location) (*schema.User, error) {
	if err := c.check(loc); err != nil {
		return nil, err
	}

	if err := c.store.UpdateUserLocation(ctx, userID, loc, c.now()); err != nil {
		return nil, dependencyError(err, "update location")
	}
	return c.GetProfile(ctx, userID)
}

// UpdateResources replaces the resources the user offers. Blank and repeated
// entries are dropped.
func (c *Coordinator) UpdateResources(ctx context.Context, userID string, resources []string) (*schema.User, error) {
	seen := make(map[string]struct{}, len(resources))
	offered := make([]string, 0, len(resources))
	for _, r := range resources {
		r = strings.ToLower(strings.TrimSpace(r))
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		offered = append(offered, r)
	}
	sort.Strings(offered)

	if err := c.check(resourcesInput{Resources: offered}); err != nil {
		return nil, err
	}

	if err := c.store.UpdateUserResources(ctx, userID, offered); err != nil {
		return nil, dependencyError(err, "update resources")
	}
	return c.GetProfile(ctx, userID)
}

func (c *Coordinator) UpdateVisibility(ctx context.Context, userID string, visible bool) (*schema.User, error) {
	if err := c.store.UpdateUserVisibility(ctx, userID, visible); err != nil {
		return nil, dependencyError(err, "update visibility")
	}
	return c.GetProfile(ctx, userID)
}

// UpdatePrivacyRadius sets how far the displayed location of the user may be
// moved from the real one
func (c *Coordinator) UpdatePrivacyRadius(ctx context.Context, userID string, meters float64) (*schema.User, error) {
	if err := c.check(privacyInput{Meters: meters}); err != nil {
		return nil, err
	}

	if err := c.store.UpdateUserPrivacyRadius(ctx, userID, meters); err != nil {
		return nil, dependencyError(err, "update privacy radius")
	}
	return c.GetProfile(ctx, userID)
}
