package geo

import (
	"sort"

	"github.com/bitmark-inc/mutual-aid-api/consts"
	"github.com/bitmark-inc/mutual-aid-api/schema"
)

// Origin is where a search starts, who asks and what is asked for
type Origin struct {
	schema.Location
	RequesterID string
	Kind        schema.HelpKind
}

// Candidate is an eligible helper and its distance in meters to the origin
type Candidate struct {
	User          schema.User
	Distance      float64
	ResourceMatch bool
}

// Limit normalizes a requested result size
func Limit(limit int) int {
	if limit <= 0 {
		return consts.DefaultCandidateLimit
	}
	if limit > consts.MaxCandidateLimit {
		return consts.MaxCandidateLimit
	}
	return limit
}

// Select filters the pool down to eligible helpers within maxRadius meters of the
// origin and ranks them by ascending distance. Ties go to helpers offering what is
// asked for, then to the most recently active. Users without a known location,
// hidden from the map, offering nothing, deactivated or being the requester are
// never candidates.
func Select(origin Origin, pool []schema.User, maxRadius float64, limit int) []Candidate {
	candidates := make([]Candidate, 0, len(pool))
	seen := make(map[string]struct{}, len(pool))

	for _, u := range pool {
		if !eligible(u, origin.RequesterID) {
			continue
		}
		if _, ok := seen[u.ID]; ok {
			continue
		}
		seen[u.ID] = struct{}{}

		d := Distance(origin.Location, u.HomeLocation.Location)
		if d > maxRadius {
			continue
		}

		candidates = append(candidates, Candidate{
			User:          u,
			Distance:      d,
			ResourceMatch: Offers(u, origin.Kind),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if a.ResourceMatch != b.ResourceMatch {
			return a.ResourceMatch
		}
		return a.User.LastActiveAt.After(b.User.LastActiveAt)
	})

	if limit = Limit(limit); len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

func eligible(u schema.User, requesterID string) bool {
	return u.ID != "" &&
		u.ID != requesterID &&
		u.VisibleOnMap &&
		!u.Deactivated &&
		len(u.OfferedResources) > 0 &&
		u.HomeLocation != nil
}

// Offers reports whether the user offers what a kind of request asks for.
// A user offering the generic resource covers every resource sub-kind.
func Offers(u schema.User, kind schema.HelpKind) bool {
	if kind == "" {
		return false
	}
	for _, r := range u.OfferedResources {
		offered := schema.HelpKind(r)
		if offered == kind {
			return true
		}
		if offered == schema.HelpKindResource && kind.Category() == schema.HelpKindResource {
			return true
		}
	}
	return false
}
