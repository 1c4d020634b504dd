package help

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/mutual-aid-api/background"
	"github.com/bitmark-inc/mutual-aid-api/geo"
	"github.com/bitmark-inc/mutual-aid-api/mocks"
	"github.com/bitmark-inc/mutual-aid-api/schema"
	"github.com/bitmark-inc/mutual-aid-api/store"
)

func newMockedCoordinator(t *testing.T) (*Coordinator, *mocks.MockMongoStore, *mocks.MockBroadcaster) {
	ctl := gomock.NewController(t)
	t.Cleanup(ctl.Finish)

	m := mocks.NewMockMongoStore(ctl)
	b := mocks.NewMockBroadcaster(ctl)

	c := New(m, b, tally.NoopScope, Config{})
	now := time.Date(2020, 5, 1, 8, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	c.newID = func() string { return "help-1" }
	c.async = func(f func()) { f() }
	return c, m, b
}

func TestCreateHandsCandidatesToBroadcaster(t *testing.T) {
	c, m, b := newMockedCoordinator(t)

	helper := schema.User{
		ID:               "helper",
		HomeLocation:     &schema.TrackedLocation{Location: metersNorth(beijing, 800)},
		OfferedResources: []string{"pad"},
		VisibleOnMap:     true,
	}

	m.EXPECT().GetOpenHelpRequests(gomock.Any(), "requester").Return([]schema.HelpRequest{}, nil)
	m.EXPECT().CreateHelpRequest(gomock.Any(), gomock.Any()).Return(nil)
	m.EXPECT().TouchUser(gomock.Any(), "requester", gomock.Any()).Return(nil)
	m.EXPECT().NearbyUsers(gomock.Any(), beijing, 10000.0, "requester").Return([]schema.User{helper}, nil)
	m.EXPECT().SetHelpCandidates(gomock.Any(), "help-1", []string{"helper"}, 1).Return(nil)

	var broadcasted []geo.Candidate
	b.EXPECT().
		Broadcast(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, help *schema.HelpRequest, candidates []geo.Candidate) background.Summary {
			assert.Equal(t, "help-1", help.ID)
			broadcasted = candidates
			return background.Summary{Sent: len(candidates)}
		})

	loc := beijing
	help, err := c.Create(context.Background(), CreateInput{
		RequesterID: "requester",
		Kind:        schema.HelpKindPad,
		Note:        "urgent",
		Location:    &loc,
	})
	assert.NoError(t, err)
	assert.Equal(t, "help-1", help.ID)
	assert.Equal(t, []string{"helper"}, help.CandidateIDs)
	assert.Len(t, broadcasted, 1)
	assert.InDelta(t, 800, broadcasted[0].Distance, 1)
}

func TestCreateRetriesWhenOpenRequestRaces(t *testing.T) {
	c, m, _ := newMockedCoordinator(t)

	m.EXPECT().GetOpenHelpRequests(gomock.Any(), "requester").Return([]schema.HelpRequest{}, nil).Times(createAttempts)
	m.EXPECT().CreateHelpRequest(gomock.Any(), gomock.Any()).Return(store.ErrOpenRequestExists).Times(createAttempts)

	loc := beijing
	_, err := c.Create(context.Background(), CreateInput{
		RequesterID: "requester",
		Kind:        schema.HelpKindOther,
		Location:    &loc,
	})
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestGetStatusReportsDependencyFailure(t *testing.T) {
	c, m, _ := newMockedCoordinator(t)

	m.EXPECT().GetHelpRequest(gomock.Any(), "help-1").Return(nil, errors.New("server selection timeout"))

	_, err := c.GetStatus(context.Background(), "help-1", "requester")
	assert.Equal(t, KindDependency, KindOf(err))
	assert.Contains(t, err.Error(), "server selection timeout")
}

func TestCancelSwallowsCascadeFailure(t *testing.T) {
	c, m, _ := newMockedCoordinator(t)

	m.EXPECT().GetHelpRequest(gomock.Any(), "help-1").Return(&schema.HelpRequest{
		ID:          "help-1",
		RequesterID: "requester",
		Status:      schema.HelpMatched,
		ExpiresAt:   c.now().Add(time.Minute),
	}, nil)
	m.EXPECT().CancelHelpRequest(gomock.Any(), "help-1", schema.CancelReasonRequester, gomock.Any()).Return(true, nil)
	m.EXPECT().GetRequestSessions(gomock.Any(), "help-1", schema.SessionActive).Return(nil, errors.New("connection reset"))

	help, err := c.Cancel(context.Background(), "help-1", "requester")
	assert.NoError(t, err)
	assert.Equal(t, schema.HelpCancelled, help.Status)
}

func TestCancelLosingToAnotherTransition(t *testing.T) {
	c, m, _ := newMockedCoordinator(t)

	pending := &schema.HelpRequest{
		ID:          "help-1",
		RequesterID: "requester",
		Status:      schema.HelpPending,
		ExpiresAt:   c.now().Add(time.Minute),
	}
	completed := *pending
	completed.Status = schema.HelpCompleted

	gomock.InOrder(
		m.EXPECT().GetHelpRequest(gomock.Any(), "help-1").Return(pending, nil),
		m.EXPECT().CancelHelpRequest(gomock.Any(), "help-1", gomock.Any(), gomock.Any()).Return(false, nil),
		m.EXPECT().GetHelpRequest(gomock.Any(), "help-1").Return(&completed, nil),
	)

	_, err := c.Cancel(context.Background(), "help-1", "requester")
	assert.Equal(t, KindInvalidState, KindOf(err))
}
