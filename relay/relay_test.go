package relay

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/mutual-aid-api/schema"
	"github.com/bitmark-inc/mutual-aid-api/store/storetest"
)

const sessionID = "session-1"

type RelayTestSuite struct {
	suite.Suite
	store *storetest.Memory
	scope tally.TestScope
	relay *Relay
	start time.Time
	seq   int
}

func (s *RelayTestSuite) SetupTest() {
	s.store = storetest.New()
	s.scope = tally.NewTestScope("", nil)
	s.relay = New(s.store, s.scope, Config{PollInterval: 10 * time.Millisecond})
	s.start = time.Date(2020, 5, 1, 8, 0, 0, 0, time.UTC)
	s.seq = 0
}

func (s *RelayTestSuite) insert(senderID string) schema.Message {
	s.seq++
	msg := schema.Message{
		ID:        fmt.Sprintf("msg-%03d", s.seq),
		SessionID: sessionID,
		SenderID:  senderID,
		Content:   fmt.Sprintf("message %d", s.seq),
		Kind:      schema.MessageText,
		CreatedAt: s.start.Add(time.Duration(s.seq) * time.Second),
	}
	s.Require().NoError(s.store.InsertMessage(context.Background(), &msg))
	return msg
}

// collect reads batches until n messages arrived
func (s *RelayTestSuite) collect(sub *Subscription, n int) ([]schema.Message, Batch) {
	var (
		messages []schema.Message
		last     Batch
		timeout  = time.After(5 * time.Second)
	)
	for len(messages) < n {
		select {
		case batch, ok := <-sub.C():
			s.Require().True(ok, "subscription ended early")
			messages = append(messages, batch.Messages...)
			last = batch
		case <-timeout:
			s.FailNow("timed out", "got %d of %d messages", len(messages), n)
		}
	}
	return messages, last
}

func ids(messages []schema.Message) []string {
	result := make([]string, 0, len(messages))
	for _, m := range messages {
		result = append(result, m.ID)
	}
	return result
}

func (s *RelayTestSuite) initial(sub *Subscription) Batch {
	select {
	case batch := <-sub.C():
		return batch
	case <-time.After(5 * time.Second):
		s.FailNow("no initial batch")
	}
	return Batch{}
}

func (s *RelayTestSuite) deliverFive(sub *Subscription) []schema.Message {
	expected := make([]schema.Message, 0, 5)
	for i := 0; i < 5; i++ {
		expected = append(expected, s.insert("helper"))
	}

	got, _ := s.collect(sub, len(expected))
	s.Equal(ids(expected), ids(got))
	return got
}

func (s *RelayTestSuite) TestWatchAndPollDeliverTheSameMessages() {
	watched := s.relay.Subscribe(context.Background(), Query{SessionID: sessionID, ViewerID: "requester"})
	defer watched.Close()
	s.Empty(s.initial(watched).Messages)
	s.Equal(ModeWatch, watched.Mode())
	viaWatch := s.deliverFive(watched)

	s.SetupTest()
	s.store.SetWatch(false)
	polled := s.relay.Subscribe(context.Background(), Query{SessionID: sessionID, ViewerID: "requester"})
	defer polled.Close()
	s.Empty(s.initial(polled).Messages)
	s.Equal(ModePoll, polled.Mode())
	viaPoll := s.deliverFive(polled)

	s.Equal(viaWatch, viaPoll)
}

// equalTimestamps stores two messages sharing a timestamp with ids that sort
// against their insertion order
func (s *RelayTestSuite) equalTimestamps(sub *Subscription) []string {
	at := s.start.Add(time.Minute)
	s.store.PutMessages(
		schema.Message{ID: "msg-b", SessionID: sessionID, SenderID: "helper", Kind: schema.MessageText, CreatedAt: at},
		schema.Message{ID: "msg-a", SessionID: sessionID, SenderID: "helper", Kind: schema.MessageText, CreatedAt: at},
	)

	got, batch := s.collect(sub, 2)
	s.Equal(2, batch.Unread)
	return ids(got)
}

func (s *RelayTestSuite) TestWatchAndPollAgreeOnOrderOfEqualTimestamps() {
	watched := s.relay.Subscribe(context.Background(), Query{SessionID: sessionID, ViewerID: "requester"})
	defer watched.Close()
	s.initial(watched)
	s.Equal(ModeWatch, watched.Mode())
	viaWatch := s.equalTimestamps(watched)

	s.SetupTest()
	s.store.SetWatch(false)
	polled := s.relay.Subscribe(context.Background(), Query{SessionID: sessionID, ViewerID: "requester"})
	defer polled.Close()
	s.initial(polled)
	viaPoll := s.equalTimestamps(polled)

	s.Equal([]string{"msg-a", "msg-b"}, viaWatch)
	s.Equal(viaPoll, viaWatch)
}

func (s *RelayTestSuite) TestSnapshotThenLiveMessages() {
	before := []schema.Message{s.insert("helper"), s.insert("requester")}

	sub := s.relay.Subscribe(context.Background(), Query{SessionID: sessionID, ViewerID: "requester", Unread: 1})
	defer sub.Close()

	first := s.initial(sub)
	s.Equal(ids(before), ids(first.Messages))
	s.Equal(1, first.Unread)

	after := s.insert("helper")
	got, batch := s.collect(sub, 1)
	s.Equal([]string{after.ID}, ids(got))
	s.Equal(2, batch.Unread)
}

func (s *RelayTestSuite) TestFallbackToPollingKeepsDeliveredState() {
	sub := s.relay.Subscribe(context.Background(), Query{SessionID: sessionID, ViewerID: "requester"})
	defer sub.Close()
	s.initial(sub)

	first := []schema.Message{s.insert("helper"), s.insert("helper")}
	got, _ := s.collect(sub, 2)
	s.Equal(ids(first), ids(got))

	s.store.SetWatch(false)
	rest := []schema.Message{s.insert("helper"), s.insert("requester"), s.insert("helper")}

	got, batch := s.collect(sub, 3)
	s.Equal(ids(rest), ids(got))
	s.Equal(ModePoll, sub.Mode())
	s.Equal(4, batch.Unread)

	fallbacks := int64(0)
	for _, c := range s.scope.Snapshot().Counters() {
		if c.Name() == "relay.fallback" {
			fallbacks += c.Value()
		}
	}
	s.Equal(int64(1), fallbacks)

	select {
	case extra := <-sub.C():
		s.Fail("unexpected batch", "%v", ids(extra.Messages))
	case <-time.After(50 * time.Millisecond):
	}
}

func (s *RelayTestSuite) TestUnreadReconciliation() {
	sub := s.relay.Subscribe(context.Background(), Query{SessionID: sessionID, ViewerID: "requester", Unread: 2})
	defer sub.Close()
	s.initial(sub)

	s.insert("helper")
	_, batch := s.collect(sub, 1)
	s.Equal(3, batch.Unread)

	sub.MarkRead()
	s.Equal(0, sub.Unread())

	s.insert("requester")
	_, batch = s.collect(sub, 1)
	s.Equal(0, batch.Unread)

	system := schema.Message{
		ID:        "msg-system",
		SessionID: sessionID,
		SenderID:  schema.SystemSenderID,
		Kind:      schema.MessageSystem,
		CreatedAt: s.start.Add(time.Hour),
	}
	s.Require().NoError(s.store.InsertMessage(context.Background(), &system))
	_, batch = s.collect(sub, 1)
	s.Equal(0, batch.Unread)
}

func (s *RelayTestSuite) TestPollErrorsAreRetried() {
	s.store.SetWatch(false)
	sub := s.relay.Subscribe(context.Background(), Query{SessionID: sessionID, ViewerID: "requester"})
	defer sub.Close()
	s.initial(sub)

	s.store.FailOn("GetMessages", fmt.Errorf("i/o timeout"))
	msg := s.insert("helper")
	time.Sleep(30 * time.Millisecond)
	s.store.FailOn("GetMessages", nil)

	got, _ := s.collect(sub, 1)
	s.Equal(msg.ID, got[0].ID)
}

func (s *RelayTestSuite) TestCloseEndsTheSubscription() {
	sub := s.relay.Subscribe(context.Background(), Query{SessionID: sessionID, ViewerID: "requester"})
	s.initial(sub)
	sub.Close()

	_, ok := <-sub.C()
	s.False(ok)
}

func TestRelayTestSuite(t *testing.T) {
	suite.Run(t, new(RelayTestSuite))
}
