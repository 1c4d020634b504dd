package help

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/mutual-aid-api/schema"
	"github.com/bitmark-inc/mutual-aid-api/store"
	"github.com/bitmark-inc/mutual-aid-api/store/storetest"
)

var (
	beijing     = schema.Location{Latitude: 39.90, Longitude: 116.40, Accuracy: 10}
	metersNorth = func(loc schema.Location, meters float64) schema.Location {
		loc.Latitude += meters / 111194.93
		return loc
	}
)

type CoordinatorTestSuite struct {
	suite.Suite
	store       *storetest.Memory
	coordinator *Coordinator
	start       time.Time
	clock       time.Time
	ids         int
}

func (s *CoordinatorTestSuite) SetupTest() {
	s.store = storetest.New()
	s.start = time.Date(2020, 5, 1, 8, 0, 0, 0, time.UTC)
	s.clock = s.start
	s.ids = 0

	s.coordinator = New(s.store, nil, tally.NoopScope, Config{})
	s.coordinator.now = func() time.Time { return s.clock }
	s.coordinator.newID = func() string {
		s.ids++
		return fmt.Sprintf("id-%04d", s.ids)
	}
	s.coordinator.async = func(f func()) { f() }
}

func (s *CoordinatorTestSuite) addUser(id string, loc schema.Location, resources ...string) {
	s.store.PutUser(schema.User{
		ID:               id,
		DisplayName:      id,
		Location:         schema.NewGeoJSONPoint(loc),
		HomeLocation:     &schema.TrackedLocation{Location: loc, UpdatedAt: s.clock},
		OfferedResources: resources,
		VisibleOnMap:     true,
		PrivacyRadius:    200,
		LastActiveAt:     s.clock,
	})
}

func (s *CoordinatorTestSuite) create(requesterID string) *schema.HelpRequest {
	loc := beijing
	help, err := s.coordinator.Create(context.Background(), CreateInput{
		RequesterID: requesterID,
		Kind:        schema.HelpKindPad,
		Note:        "urgent",
		Location:    &loc,
	})
	s.Require().NoError(err)
	return help
}

func (s *CoordinatorTestSuite) contact(callerID, otherID, helpID string) *schema.Session {
	session, err := s.coordinator.Contact(context.Background(), callerID, otherID, helpID)
	s.Require().NoError(err)
	return session
}

func (s *CoordinatorTestSuite) help(id string) *schema.HelpRequest {
	help, err := s.store.GetHelpRequest(context.Background(), id)
	s.Require().NoError(err)
	return help
}

func (s *CoordinatorTestSuite) user(id string) *schema.User {
	u, err := s.store.GetUser(context.Background(), id)
	s.Require().NoError(err)
	return u
}

func (s *CoordinatorTestSuite) TestCreateRejectsInvalidInput() {
	ctx := context.Background()
	valid := beijing
	outOfRange := schema.Location{Latitude: 91, Longitude: 116.40}

	inputs := []CreateInput{
		{RequesterID: "requester", Kind: "medicine", Location: &valid},
		{RequesterID: "requester", Kind: schema.HelpKindPad},
		{RequesterID: "requester", Kind: schema.HelpKindPad, Location: &outOfRange},
		{RequesterID: "requester", Kind: schema.HelpKindPad, Location: &valid, Note: strings.Repeat("x", 501)},
		{Kind: schema.HelpKindPad, Location: &valid},
	}

	for _, input := range inputs {
		help, err := s.coordinator.Create(ctx, input)
		s.Nil(help)
		s.Equal(KindValidation, KindOf(err), "input %+v", input)
	}

	open, err := s.store.GetOpenHelpRequests(ctx, "requester")
	s.NoError(err)
	s.Empty(open)
}

func (s *CoordinatorTestSuite) TestCreateSupersedesOpenRequest() {
	ctx := context.Background()
	s.addUser("requester", beijing)
	s.addUser("helper", metersNorth(beijing, 500), "pad")

	first := s.create("requester")
	session := s.contact("helper", "requester", first.ID)

	s.clock = s.clock.Add(time.Minute)
	second := s.create("requester")
	s.NotEqual(first.ID, second.ID)

	previous := s.help(first.ID)
	s.Equal(schema.HelpCancelled, previous.Status)
	s.Equal(schema.CancelReasonSuperseded, previous.CancelReason)

	open, err := s.store.GetOpenHelpRequests(ctx, "requester")
	s.NoError(err)
	s.Len(open, 1)
	s.Equal(second.ID, open[0].ID)

	closed, err := s.store.GetSession(ctx, session.ID)
	s.NoError(err)
	s.Equal(schema.SessionCancelled, closed.Status)
}

func (s *CoordinatorTestSuite) TestCreateRecordsCandidates() {
	s.addUser("requester", beijing)
	s.addUser("near", metersNorth(beijing, 800), "pad")
	s.addUser("far", metersNorth(beijing, 20000), "pad")
	s.addUser("empty", metersNorth(beijing, 100))
	s.store.PutUser(schema.User{ID: "hidden", HomeLocation: &schema.TrackedLocation{Location: beijing}, OfferedResources: []string{"pad"}})

	help := s.create("requester")
	s.Equal(schema.HelpPending, help.Status)
	s.Equal(s.start.Add(30*time.Minute), help.ExpiresAt)
	s.Equal([]string{"near"}, s.help(help.ID).CandidateIDs)
	s.Equal(1, s.help(help.ID).NotifiedCount)
}

func (s *CoordinatorTestSuite) TestCreateSurvivesBroadcastFailure() {
	s.store.FailOn("NearbyUsers", errors.New("geo index missing"))

	help := s.create("requester")
	s.Equal(schema.HelpPending, s.help(help.ID).Status)
}

func (s *CoordinatorTestSuite) TestCreateFailsWhenStoreIsDown() {
	s.store.FailOn("CreateHelpRequest", errors.New("connection refused"))

	loc := beijing
	_, err := s.coordinator.Create(context.Background(), CreateInput{
		RequesterID: "requester",
		Kind:        schema.HelpKindSafety,
		Location:    &loc,
	})
	s.Equal(KindDependency, KindOf(err))
}

func (s *CoordinatorTestSuite) TestGetStatusVisibility() {
	ctx := context.Background()
	s.addUser("candidate", metersNorth(beijing, 300), "pad")
	help := s.create("requester")

	_, err := s.coordinator.GetStatus(ctx, help.ID, "stranger")
	s.Equal(KindNotFound, KindOf(err))

	_, err = s.coordinator.GetStatus(ctx, "missing", "requester")
	s.Equal(KindNotFound, KindOf(err))

	got, err := s.coordinator.GetStatus(ctx, help.ID, "candidate")
	s.NoError(err)
	s.Equal(help.ID, got.ID)
}

func (s *CoordinatorTestSuite) TestExpiryIsObservedLazily() {
	ctx := context.Background()
	help := s.create("requester")

	s.clock = s.start.Add(29 * time.Minute)
	got, err := s.coordinator.GetStatus(ctx, help.ID, "requester")
	s.NoError(err)
	s.Equal(schema.HelpPending, got.Status)

	s.clock = s.start.Add(31 * time.Minute)
	got, err = s.coordinator.GetStatus(ctx, help.ID, "requester")
	s.NoError(err)
	s.Equal(schema.HelpExpired, got.Status)
	s.Equal(schema.HelpExpired, s.help(help.ID).Status)

	_, err = s.coordinator.MarkMatched(ctx, help.ID, "helper")
	s.Equal(KindInvalidState, KindOf(err))

	_, err = s.coordinator.Cancel(ctx, help.ID, "requester")
	s.Equal(KindInvalidState, KindOf(err))
}

func (s *CoordinatorTestSuite) TestExpireSweep() {
	s.create("first")
	s.create("second")

	count, err := s.coordinator.ExpireHelpRequests(context.Background(), s.start.Add(time.Hour))
	s.NoError(err)
	s.Equal(int64(2), count)
}

func (s *CoordinatorTestSuite) TestCancel() {
	ctx := context.Background()
	s.addUser("candidate", metersNorth(beijing, 300), "pad")
	help := s.create("requester")

	_, err := s.coordinator.Cancel(ctx, help.ID, "candidate")
	s.Equal(KindAuthorization, KindOf(err))

	_, err = s.coordinator.Cancel(ctx, help.ID, "stranger")
	s.Equal(KindNotFound, KindOf(err))

	cancelled, err := s.coordinator.Cancel(ctx, help.ID, "requester")
	s.NoError(err)
	s.Equal(schema.HelpCancelled, cancelled.Status)
	s.Equal(schema.CancelReasonRequester, cancelled.CancelReason)

	_, err = s.coordinator.Cancel(ctx, help.ID, "requester")
	s.Equal(KindInvalidState, KindOf(err))
}

func (s *CoordinatorTestSuite) TestCancelKeepsSessionsForAudit() {
	ctx := context.Background()
	help := s.create("requester")
	session := s.contact("helper", "requester", help.ID)

	_, err := s.coordinator.Cancel(ctx, help.ID, "requester")
	s.NoError(err)

	got, err := s.store.GetSession(ctx, session.ID)
	s.NoError(err)
	s.Equal(schema.SessionCancelled, got.Status)
	s.Equal(1, s.store.CountMessages(session.ID))
}

func (s *CoordinatorTestSuite) TestMarkMatchedRace() {
	ctx := context.Background()
	help := s.create("requester")

	var (
		wg      sync.WaitGroup
		results = make([]error, 2)
		helpers = []string{"helper-a", "helper-b"}
	)
	for i := range helpers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = s.coordinator.MarkMatched(ctx, help.ID, helpers[i])
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
			continue
		}
		s.Equal(KindConflict, KindOf(err))
	}
	s.Equal(1, winners)

	got := s.help(help.ID)
	s.Equal(schema.HelpMatched, got.Status)
	s.Contains(helpers, got.ActiveHelperID)
	s.Contains(got.CandidateIDs, "helper-a")
	s.Contains(got.CandidateIDs, "helper-b")
}

func (s *CoordinatorTestSuite) TestMarkMatchedIsIdempotentForTheWinner() {
	ctx := context.Background()
	help := s.create("requester")

	_, err := s.coordinator.MarkMatched(ctx, help.ID, "helper")
	s.NoError(err)

	got, err := s.coordinator.MarkMatched(ctx, help.ID, "helper")
	s.NoError(err)
	s.Equal("helper", got.ActiveHelperID)

	got, err = s.coordinator.MarkMatched(ctx, help.ID, "late")
	s.Equal(KindConflict, KindOf(err))
	s.Equal("helper", got.ActiveHelperID)

	_, err = s.coordinator.MarkMatched(ctx, help.ID, "requester")
	s.Equal(KindValidation, KindOf(err))
}

func (s *CoordinatorTestSuite) TestContactIsIdempotent() {
	ctx := context.Background()
	help := s.create("requester")

	first := s.contact("requester", "helper", help.ID)
	second := s.contact("requester", "helper", help.ID)
	third := s.contact("helper", "requester", help.ID)

	s.Equal(first.ID, second.ID)
	s.Equal(first.ID, third.ID)
	s.Equal([]string{"requester", "helper"}, first.ParticipantIDs)
	s.Equal(schema.SessionActive, first.Status)

	sessions, err := s.store.GetRequestSessions(ctx, help.ID, "")
	s.NoError(err)
	s.Len(sessions, 1)
	s.Equal(1, s.store.CountMessages(first.ID))

	got := s.help(help.ID)
	s.Equal(schema.HelpMatched, got.Status)
	s.Equal("helper", got.ActiveHelperID)
}

func (s *CoordinatorTestSuite) TestContactAfterAnotherHelperMatched() {
	help := s.create("requester")
	s.contact("helper-a", "requester", help.ID)

	late := s.contact("helper-b", "requester", help.ID)
	s.Equal(schema.SessionActive, late.Status)

	got := s.help(help.ID)
	s.Equal("helper-a", got.ActiveHelperID)
	s.Contains(got.CandidateIDs, "helper-b")
}

func (s *CoordinatorTestSuite) TestContactRejections() {
	ctx := context.Background()
	help := s.create("requester")

	_, err := s.coordinator.Contact(ctx, "requester", "requester", help.ID)
	s.Equal(KindValidation, KindOf(err))

	_, err = s.coordinator.Contact(ctx, "stranger", "helper", help.ID)
	s.Equal(KindValidation, KindOf(err))

	_, err = s.coordinator.Contact(ctx, "helper", "requester", "missing")
	s.Equal(KindNotFound, KindOf(err))

	_, err = s.coordinator.Cancel(ctx, help.ID, "requester")
	s.NoError(err)

	_, err = s.coordinator.Contact(ctx, "helper", "requester", help.ID)
	s.Equal(KindInvalidState, KindOf(err))
}

func (s *CoordinatorTestSuite) TestSendMessage() {
	ctx := context.Background()
	help := s.create("requester")
	session := s.contact("helper", "requester", help.ID)

	_, err := s.coordinator.SendMessage(ctx, session.ID, "stranger", "hello", schema.MessageText)
	s.Equal(KindInvalidState, KindOf(err))

	_, err = s.coordinator.SendMessage(ctx, session.ID, "helper", "   ", schema.MessageText)
	s.Equal(KindValidation, KindOf(err))

	_, err = s.coordinator.SendMessage(ctx, session.ID, "helper", strings.Repeat("x", 1001), schema.MessageText)
	s.Equal(KindValidation, KindOf(err))

	_, err = s.coordinator.SendMessage(ctx, session.ID, "system", "hello", schema.MessageText)
	s.Equal(KindValidation, KindOf(err))

	msg, err := s.coordinator.SendMessage(ctx, session.ID, "helper", "on my way", "")
	s.NoError(err)
	s.Equal(schema.MessageText, msg.Kind)

	got, err := s.store.GetSession(ctx, session.ID)
	s.NoError(err)
	s.Equal(1, got.UnreadFor("requester"))
	s.Equal(0, got.UnreadFor("helper"))
	s.Equal("on my way", got.LastMessage)
	s.Equal(schema.HelpActive, s.help(help.ID).Status)

	_, err = s.coordinator.Cancel(ctx, help.ID, "requester")
	s.NoError(err)

	_, err = s.coordinator.SendMessage(ctx, session.ID, "helper", "still there?", schema.MessageText)
	s.Equal(KindInvalidState, KindOf(err))
}

func (s *CoordinatorTestSuite) TestReminderIsInjectedOnce() {
	ctx := context.Background()
	help := s.create("requester")

	s.clock = s.start.Add(time.Minute)
	session := s.contact("requester", "helper", help.ID)

	s.clock = s.start.Add(5 * time.Minute)
	_, err := s.coordinator.SendMessage(ctx, session.ID, "requester", "are you close?", schema.MessageText)
	s.NoError(err)

	s.clock = s.start.Add(11 * time.Minute)
	_, err = s.coordinator.SendMessage(ctx, session.ID, "requester", "hello?", schema.MessageText)
	s.NoError(err)

	s.clock = s.start.Add(12 * time.Minute)
	_, err = s.coordinator.SendMessage(ctx, session.ID, "requester", "anyone?", schema.MessageText)
	s.NoError(err)

	messages, err := s.coordinator.ListMessages(ctx, session.ID, "requester", time.Time{}, 0)
	s.NoError(err)

	contents := make([]string, 0, len(messages))
	system := 0
	for _, m := range messages {
		contents = append(contents, m.Content)
		if m.SenderID == schema.SystemSenderID {
			system++
		}
	}
	s.Equal(2, system)
	s.Len(messages, 5)
	s.Equal("hello?", contents[2])
	s.Equal(schema.MessageSystem, messages[3].Kind)
	s.Equal("anyone?", contents[4])
	s.True(s.help(help.ID).AutoReplied)
}

func (s *CoordinatorTestSuite) TestNoReminderAfterReply() {
	ctx := context.Background()
	help := s.create("requester")
	session := s.contact("requester", "helper", help.ID)

	_, err := s.coordinator.SendMessage(ctx, session.ID, "helper", "coming", schema.MessageText)
	s.NoError(err)

	s.clock = s.start.Add(15 * time.Minute)
	_, err = s.coordinator.SendMessage(ctx, session.ID, "requester", "thanks", schema.MessageText)
	s.NoError(err)

	s.False(s.help(help.ID).AutoReplied)
	s.Equal(3, s.store.CountMessages(session.ID))
}

func (s *CoordinatorTestSuite) TestSetMeetingInfo() {
	ctx := context.Background()
	help := s.create("requester")
	session := s.contact("helper", "requester", help.ID)
	meetingTime := s.start.Add(20 * time.Minute)

	_, err := s.coordinator.SetMeetingInfo(ctx, session.ID, "stranger", "gate 3", nil)
	s.Equal(KindAuthorization, KindOf(err))

	_, err = s.coordinator.SetMeetingInfo(ctx, session.ID, "helper", "  ", nil)
	s.Equal(KindValidation, KindOf(err))

	_, err = s.coordinator.SetMeetingInfo(ctx, session.ID, "helper", strings.Repeat("x", 101), nil)
	s.Equal(KindValidation, KindOf(err))

	got, err := s.coordinator.SetMeetingInfo(ctx, session.ID, "helper", " gate 3 ", &meetingTime)
	s.NoError(err)
	s.Equal("gate 3", got.MeetingPoint)
	s.Equal(meetingTime, *got.MeetingTime)
	s.Equal(schema.HelpActive, s.help(help.ID).Status)
	s.Equal(2, s.store.CountMessages(session.ID))
}

func (s *CoordinatorTestSuite) TestCompleteCascade() {
	ctx := context.Background()
	s.addUser("requester", beijing)
	s.addUser("helper-1", metersNorth(beijing, 100), "pad")
	s.addUser("helper-2", metersNorth(beijing, 200), "pad")
	s.addUser("helper-3", metersNorth(beijing, 300), "pad")

	help := s.create("requester")
	sessions := make([]*schema.Session, 0, 3)
	for _, helper := range []string{"helper-1", "helper-2", "helper-3"} {
		session := s.contact(helper, "requester", help.ID)
		_, err := s.coordinator.SendMessage(ctx, session.ID, helper, "I have one", schema.MessageText)
		s.Require().NoError(err)
		sessions = append(sessions, session)
	}

	completed, err := s.coordinator.Complete(ctx, help.ID, "requester", CompleteInput{
		MeetingNotes:     "thanks",
		WinningSessionID: sessions[0].ID,
	})
	s.NoError(err)
	s.Equal(schema.HelpCompleted, completed.Status)
	s.Equal("helper-1", completed.HelpedBy)
	s.True(completed.Settled)

	winner, err := s.store.GetSession(ctx, sessions[0].ID)
	s.NoError(err)
	s.Equal(schema.SessionCompleted, winner.Status)
	s.NotZero(s.store.CountMessages(winner.ID))

	for _, loser := range sessions[1:] {
		_, err := s.store.GetSession(ctx, loser.ID)
		s.Equal(store.ErrSessionNotFound, err)
		s.Zero(s.store.CountMessages(loser.ID))
	}

	s.Equal(1, s.user("requester").Stats.WasHelped)
	s.Equal(1, s.user("helper-1").Stats.Helped)
	s.Equal(0, s.user("helper-2").Stats.Helped)

	_, err = s.coordinator.Complete(ctx, help.ID, "requester", CompleteInput{})
	s.Equal(KindInvalidState, KindOf(err))
	s.Equal(1, s.user("requester").Stats.WasHelped)
}

func (s *CoordinatorTestSuite) TestCompleteRejections() {
	ctx := context.Background()
	help := s.create("requester")

	_, err := s.coordinator.Complete(ctx, help.ID, "requester", CompleteInput{})
	s.Equal(KindInvalidState, KindOf(err))

	session := s.contact("helper", "requester", help.ID)

	_, err = s.coordinator.Complete(ctx, help.ID, "helper", CompleteInput{})
	s.Equal(KindAuthorization, KindOf(err))

	_, err = s.coordinator.Complete(ctx, help.ID, "requester", CompleteInput{MeetingNotes: strings.Repeat("x", 501)})
	s.Equal(KindValidation, KindOf(err))

	other := s.contact("requester", "neighbour", "")
	_, err = s.coordinator.Complete(ctx, help.ID, "requester", CompleteInput{WinningSessionID: other.ID})
	s.Equal(KindValidation, KindOf(err))

	completed, err := s.coordinator.Complete(ctx, help.ID, "requester", CompleteInput{})
	s.NoError(err)
	s.Equal(session.ID, completed.WinningSession)
}

func (s *CoordinatorTestSuite) TestSettleCompletedRetriesSideEffects() {
	ctx := context.Background()
	s.addUser("requester", beijing)
	s.addUser("helper-1", metersNorth(beijing, 100), "pad")

	help := s.create("requester")
	winner := s.contact("helper-1", "requester", help.ID)
	loser := s.contact("helper-2", "requester", help.ID)

	s.store.FailOn("DeleteSession", errors.New("write timeout"))
	completed, err := s.coordinator.Complete(ctx, help.ID, "requester", CompleteInput{WinningSessionID: winner.ID})
	s.NoError(err)
	s.False(completed.Settled)
	s.False(s.help(help.ID).Settled)

	s.store.FailOn("DeleteSession", nil)
	count, err := s.coordinator.SettleCompleted(ctx, 10)
	s.NoError(err)
	s.Equal(1, count)
	s.True(s.help(help.ID).Settled)

	_, err = s.store.GetSession(ctx, loser.ID)
	s.Equal(store.ErrSessionNotFound, err)
	s.Equal(1, s.user("requester").Stats.WasHelped)
	s.Equal(1, s.user("helper-1").Stats.Helped)
}

func (s *CoordinatorTestSuite) TestListSessionsAndMarkRead() {
	ctx := context.Background()
	help := s.create("requester")
	session := s.contact("helper", "requester", help.ID)

	_, err := s.coordinator.SendMessage(ctx, session.ID, "helper", "hi", schema.MessageText)
	s.NoError(err)
	_, err = s.coordinator.SendMessage(ctx, session.ID, "helper", "I am here", schema.MessageText)
	s.NoError(err)

	views, err := s.coordinator.ListSessions(ctx, "requester")
	s.NoError(err)
	s.Len(views, 1)
	s.Equal("helper", views[0].CounterpartID)
	s.Equal(2, views[0].Unread)
	s.Equal("I am here", views[0].LastMessage)

	s.Equal(KindNotFound, KindOf(s.coordinator.MarkRead(ctx, session.ID, "stranger")))
	s.NoError(s.coordinator.MarkRead(ctx, session.ID, "requester"))

	views, err = s.coordinator.ListSessions(ctx, "requester")
	s.NoError(err)
	s.Equal(0, views[0].Unread)

	messages, err := s.coordinator.ListMessages(ctx, session.ID, "requester", s.start, 0)
	s.NoError(err)
	for _, m := range messages {
		if m.SenderID == "helper" {
			s.True(m.Read)
		}
	}

	_, err = s.coordinator.ListMessages(ctx, session.ID, "stranger", time.Time{}, 0)
	s.Equal(KindNotFound, KindOf(err))
}

func (s *CoordinatorTestSuite) TestRequestScenario() {
	ctx := context.Background()
	s.addUser("requester", beijing)
	s.addUser("helper", metersNorth(beijing, 800), "pad", "tissue")
	s.addUser("distant", metersNorth(beijing, 3000), "pad")

	help := s.create("requester")
	s.Equal(schema.HelpPending, help.Status)
	s.Equal("urgent", help.Note)

	origin := beijing
	candidates, err := s.coordinator.GetNearbyCandidates(ctx, "requester", NearbyQuery{
		Location: &origin,
		Radius:   2000,
		Kind:     schema.HelpKindPad,
	})
	s.NoError(err)
	s.Len(candidates, 1)
	s.Equal("helper", candidates[0].UserID)
	s.InDelta(800, candidates[0].Distance, 1)
	s.True(candidates[0].ResourceMatch)

	session := s.contact("requester", "helper", help.ID)
	s.Equal(schema.SessionActive, session.Status)

	completed, err := s.coordinator.Complete(ctx, help.ID, "requester", CompleteInput{})
	s.NoError(err)
	s.Equal(schema.HelpCompleted, completed.Status)

	got, err := s.store.GetSession(ctx, session.ID)
	s.NoError(err)
	s.Equal(schema.SessionCompleted, got.Status)
	s.Equal(1, s.user("requester").Stats.WasHelped)
	s.Equal(1, s.user("helper").Stats.Helped)
}

func (s *CoordinatorTestSuite) TestRequestResourceFromMap() {
	ctx := context.Background()
	s.addUser("requester", beijing)
	s.addUser("helper", metersNorth(beijing, 800), "pad")

	previous := s.create("requester")

	help, session, err := s.coordinator.RequestResource(ctx, "requester", "helper", " Pad ")
	s.Require().NoError(err)
	s.Equal(schema.HelpMatched, help.Status)
	s.Equal(schema.HelpKindResource, help.Kind)
	s.Equal("helper", help.ActiveHelperID)
	s.Equal("Requesting resource: pad", help.Note)
	s.Equal(beijing, help.Location)
	s.Equal(help.ID, session.RelatedRequestID)
	s.Equal([]string{"requester", "helper"}, session.ParticipantIDs)

	s.Equal(schema.HelpCancelled, s.help(previous.ID).Status)
	open, err := s.store.GetOpenHelpRequests(ctx, "requester")
	s.NoError(err)
	s.Len(open, 1)
	s.Equal(help.ID, open[0].ID)

	completed, err := s.coordinator.Complete(ctx, help.ID, "requester", CompleteInput{})
	s.Require().NoError(err)
	s.Equal("helper", completed.HelpedBy)
}

func (s *CoordinatorTestSuite) TestRequestResourceRejections() {
	ctx := context.Background()
	s.addUser("helper", beijing, "pad")

	_, _, err := s.coordinator.RequestResource(ctx, "helper", "helper", "pad")
	s.Equal(KindValidation, KindOf(err))

	_, _, err = s.coordinator.RequestResource(ctx, "requester", "helper", "")
	s.Equal(KindValidation, KindOf(err))

	_, _, err = s.coordinator.RequestResource(ctx, "requester", "nobody", "pad")
	s.Equal(KindNotFound, KindOf(err))

	s.store.PutUser(schema.User{ID: "requester"})
	_, _, err = s.coordinator.RequestResource(ctx, "requester", "helper", "pad")
	s.Equal(KindValidation, KindOf(err))

	open, err := s.store.GetOpenHelpRequests(ctx, "requester")
	s.NoError(err)
	s.Empty(open)
}

func TestCoordinatorTestSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorTestSuite))
}
