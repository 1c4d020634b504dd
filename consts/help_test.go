package consts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/mutual-aid-api/consts"
)

func TestSearchRadiusOrder(t *testing.T) {
	assert.Greater(t, consts.RegistrationRadius, consts.NearbyRadius, "registration search should reach further than browsing")
	assert.LessOrEqual(t, consts.DefaultCandidateLimit, consts.MaxCandidateLimit)
	assert.Greater(t, consts.HelpExpiry, consts.AutoReplyAfter)
}
