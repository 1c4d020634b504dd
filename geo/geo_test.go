package geo

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/mutual-aid-api/schema"
)

var tiananmen = schema.Location{Latitude: 39.90, Longitude: 116.40}

// northOf returns a location the given meters north of loc
func northOf(loc schema.Location, meters float64) schema.Location {
	return schema.Location{
		Latitude:  loc.Latitude + meters/EarthRadius*180/math.Pi,
		Longitude: loc.Longitude,
	}
}

func helper(id string, loc schema.Location, lastActive time.Time, resources ...string) schema.User {
	return schema.User{
		ID:               id,
		HomeLocation:     &schema.TrackedLocation{Location: loc},
		OfferedResources: resources,
		VisibleOnMap:     true,
		LastActiveAt:     lastActive,
	}
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 0.0, Distance(tiananmen, tiananmen))
	assert.InDelta(t, 800, Distance(tiananmen, northOf(tiananmen, 800)), 0.5)

	// Beijing to Shanghai is about 1067km
	shanghai := schema.Location{Latitude: 31.2304, Longitude: 121.4737}
	assert.InDelta(t, 1067000, Distance(tiananmen, shanghai), 5000)
	assert.InDelta(t, Distance(tiananmen, shanghai), Distance(shanghai, tiananmen), 1e-6)
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(tiananmen))
	assert.True(t, ValidCoordinates(schema.Location{Latitude: -90, Longitude: 180}))
	assert.False(t, ValidCoordinates(schema.Location{Latitude: 90.1}))
	assert.False(t, ValidCoordinates(schema.Location{Longitude: -180.5}))
	assert.False(t, ValidCoordinates(schema.Location{Latitude: math.NaN()}))
}

func TestSelectEligibility(t *testing.T) {
	now := time.Now()

	hidden := helper("hidden", northOf(tiananmen, 100), now, "pad")
	hidden.VisibleOnMap = false
	deactivated := helper("deactivated", northOf(tiananmen, 100), now, "pad")
	deactivated.Deactivated = true
	unlocated := helper("unlocated", tiananmen, now, "pad")
	unlocated.HomeLocation = nil

	pool := []schema.User{
		helper("requester", tiananmen, now, "pad"),
		helper("nothing", northOf(tiananmen, 100), now),
		helper("far", northOf(tiananmen, 2500), now, "pad"),
		hidden,
		deactivated,
		unlocated,
		helper("near", northOf(tiananmen, 800), now, "pad"),
		helper("near", northOf(tiananmen, 800), now, "pad"),
	}

	candidates := Select(Origin{Location: tiananmen, RequesterID: "requester", Kind: schema.HelpKindPad}, pool, 2000, 0)
	if assert.Len(t, candidates, 1) {
		assert.Equal(t, "near", candidates[0].User.ID)
		assert.InDelta(t, 800, candidates[0].Distance, 0.5)
		assert.True(t, candidates[0].ResourceMatch)
	}
}

func TestSelectRanking(t *testing.T) {
	now := time.Now()
	pool := []schema.User{
		helper("far", northOf(tiananmen, 1500), now, "pad"),
		helper("idle", northOf(tiananmen, 500), now.Add(-time.Hour), "pad"),
		helper("mismatch", northOf(tiananmen, 500), now, "tissue"),
		helper("recent", northOf(tiananmen, 500), now, "pad"),
		helper("nearest", northOf(tiananmen, 100), now.Add(-24*time.Hour), "emotional"),
	}

	candidates := Select(Origin{Location: tiananmen, Kind: schema.HelpKindPad}, pool, 2000, 10)
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.User.ID)
	}
	assert.Equal(t, []string{"nearest", "recent", "idle", "mismatch", "far"}, ids)
}

func TestSelectLimit(t *testing.T) {
	pool := make([]schema.User, 0, 80)
	for i := 0; i < 80; i++ {
		pool = append(pool, helper(string(rune('A'+i)), northOf(tiananmen, float64(i)), time.Now(), "other"))
	}

	assert.Len(t, Select(Origin{Location: tiananmen}, pool, 10000, 0), 20)
	assert.Len(t, Select(Origin{Location: tiananmen}, pool, 10000, 5), 5)
	assert.Len(t, Select(Origin{Location: tiananmen}, pool, 10000, 500), 50)
}

func TestOffers(t *testing.T) {
	u := schema.User{OfferedResources: []string{"resource"}}
	assert.True(t, Offers(u, schema.HelpKindPad))
	assert.True(t, Offers(u, schema.HelpKindTissue))
	assert.False(t, Offers(u, schema.HelpKindEmotional))
	assert.False(t, Offers(u, ""))

	u = schema.User{OfferedResources: []string{"tissue"}}
	assert.True(t, Offers(u, schema.HelpKindTissue))
	assert.False(t, Offers(u, schema.HelpKindPad))
}

func TestBlurStaysWithinRadius(t *testing.T) {
	const radius = 200.0

	distinct := make(map[schema.Location]struct{})
	for i := 0; i < 200; i++ {
		blurred := Blur(tiananmen, radius)
		// one degree is slightly longer than the approximation used by the offset
		assert.LessOrEqual(t, Distance(tiananmen, blurred), radius*1.01)
		distinct[blurred] = struct{}{}
	}
	assert.Greater(t, len(distinct), 1, "repeated reads should not show the same point")
}

func TestOffsetBearing(t *testing.T) {
	north := offset(tiananmen, 1000, 0)
	assert.InDelta(t, tiananmen.Longitude, north.Longitude, 1e-9)
	assert.Greater(t, north.Latitude, tiananmen.Latitude)

	east := offset(tiananmen, 1000, math.Pi/2)
	assert.InDelta(t, tiananmen.Latitude, east.Latitude, 1e-9)
	assert.Greater(t, east.Longitude, tiananmen.Longitude)

	assert.Equal(t, tiananmen, offset(tiananmen, 0, 1))
}
