package help

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/bitmark-inc/mutual-aid-api/geo"
	"github.com/bitmark-inc/mutual-aid-api/schema"
)

func (s *CoordinatorTestSuite) TestProfileUpdates() {
	ctx := context.Background()

	u, err := s.coordinator.SetDisplayName(ctx, "user", " Lin ")
	s.NoError(err)
	s.Equal("Lin", u.DisplayName)

	_, err = s.coordinator.SetDisplayName(ctx, "user", strings.Repeat("x", 51))
	s.Equal(KindValidation, KindOf(err))

	u, err = s.coordinator.UpdateResources(ctx, "user", []string{"Pad", "tissue", "pad", " "})
	s.NoError(err)
	s.Equal([]string{"pad", "tissue"}, u.OfferedResources)

	_, err = s.coordinator.UpdateResources(ctx, "user", []string{strings.Repeat("x", 33)})
	s.Equal(KindValidation, KindOf(err))

	u, err = s.coordinator.UpdateVisibility(ctx, "user", false)
	s.NoError(err)
	s.False(u.VisibleOnMap)

	for _, meters := range []float64{0, -1, 5001} {
		_, err = s.coordinator.UpdatePrivacyRadius(ctx, "user", meters)
		s.Equal(KindValidation, KindOf(err), "radius %f", meters)
	}
	u, err = s.coordinator.UpdatePrivacyRadius(ctx, "user", 500)
	s.NoError(err)
	s.Equal(500.0, u.PrivacyRadius)

	_, err = s.coordinator.UpdateLocation(ctx, "user", schema.Location{Latitude: 10, Longitude: 181})
	s.Equal(KindValidation, KindOf(err))

	s.clock = s.start.Add(time.Hour)
	u, err = s.coordinator.UpdateLocation(ctx, "user", beijing)
	s.NoError(err)
	s.Equal(beijing, u.HomeLocation.Location)
	s.Equal(s.clock, u.LastActiveAt)

	_, err = s.coordinator.GetProfile(ctx, "nobody")
	s.Equal(KindNotFound, KindOf(err))
}

func (s *CoordinatorTestSuite) TestNearbyCandidatesAreBlurred() {
	ctx := context.Background()
	s.addUser("caller", beijing)
	home := metersNorth(beijing, 1000)
	s.addUser("helper", home, "safety")

	for i := 0; i < 20; i++ {
		candidates, err := s.coordinator.GetNearbyCandidates(ctx, "caller", NearbyQuery{})
		s.NoError(err)
		s.Require().Len(candidates, 1)
		s.InDelta(1000, candidates[0].Distance, 1)
		s.LessOrEqual(geo.Distance(home, candidates[0].Location), 200.5)
	}
}

func (s *CoordinatorTestSuite) TestNearbyCandidatesRejections() {
	ctx := context.Background()

	_, err := s.coordinator.GetNearbyCandidates(ctx, "caller", NearbyQuery{Kind: "medicine"})
	s.Equal(KindValidation, KindOf(err))

	_, err = s.coordinator.GetNearbyCandidates(ctx, "caller", NearbyQuery{})
	s.Equal(KindNotFound, KindOf(err))

	s.store.PutUser(schema.User{ID: "caller"})
	_, err = s.coordinator.GetNearbyCandidates(ctx, "caller", NearbyQuery{})
	s.Equal(KindValidation, KindOf(err))

	outOfRange := schema.Location{Latitude: -91}
	_, err = s.coordinator.GetNearbyCandidates(ctx, "caller", NearbyQuery{Location: &outOfRange})
	s.Equal(KindValidation, KindOf(err))
}

func (s *CoordinatorTestSuite) TestNearbyRadiusIsBounded() {
	ctx := context.Background()
	s.addUser("caller", beijing)
	s.addUser("faraway", schema.Location{Latitude: 10, Longitude: 10})

	for _, radius := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -1, 10001} {
		candidates, err := s.coordinator.GetNearbyCandidates(ctx, "caller", NearbyQuery{Location: &beijing, Radius: radius})
		s.Nil(candidates)
		s.Equal(KindValidation, KindOf(err), "radius %f", radius)
	}

	candidates, err := s.coordinator.GetNearbyCandidates(ctx, "caller", NearbyQuery{Location: &beijing, Radius: 10000})
	s.NoError(err)
	s.Empty(candidates)
}

func (s *CoordinatorTestSuite) TestNonFiniteCoordinatesAreRejected() {
	ctx := context.Background()

	for _, loc := range []schema.Location{
		{Latitude: math.NaN(), Longitude: 116.40},
		{Latitude: 39.90, Longitude: math.Inf(1)},
	} {
		loc := loc
		_, err := s.coordinator.UpdateLocation(ctx, "user", loc)
		s.Equal(KindValidation, KindOf(err))

		_, err = s.coordinator.GetNearbyCandidates(ctx, "user", NearbyQuery{Location: &loc})
		s.Equal(KindValidation, KindOf(err))
	}
}
