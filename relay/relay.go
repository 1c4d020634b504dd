package relay

import (
	"context"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/mutual-aid-api/consts"
	"github.com/bitmark-inc/mutual-aid-api/schema"
	"github.com/bitmark-inc/mutual-aid-api/store"
)

const (
	relayLogPrefix = "relay"

	pollLookback = 5 * time.Second
	batchBuffer  = 16
)

// Source is the part of the store a subscription reads from
type Source interface {
	GetMessages(ctx context.Context, sessionID string, since time.Time, limit int64) ([]schema.Message, error)
	GetLatestMessages(ctx context.Context, sessionID string, limit int64) ([]schema.Message, error)
	WatchMessages(ctx context.Context, sessionID string) (store.MessageStream, error)
}

// Config tunes the relay. Zero values fall back to defaults.
type Config struct {
	PollInterval time.Duration
	PageSize     int64
	DisableWatch bool
}

// Relay opens subscriptions on the messages of sessions
type Relay struct {
	source Source
	scope  tally.Scope
	config Config
}

func New(source Source, scope tally.Scope, config Config) *Relay {
	if config.PollInterval <= 0 {
		config.PollInterval = consts.DefaultPollInterval
	}
	if config.PageSize <= 0 {
		config.PageSize = consts.DefaultMessagePageSize
	}
	if scope == nil {
		scope = tally.NoopScope
	}

	return &Relay{
		source: source,
		scope:  scope.SubScope("relay"),
		config: config,
	}
}

// Query selects what a subscription delivers. A zero Since starts from the
// latest page. Unread is the counter of the viewer when subscribing.
type Query struct {
	SessionID string
	ViewerID  string
	Since     time.Time
	Unread    int
}

// Batch is one delivery of new messages in order, with the unread counter of
// the viewer after them
type Batch struct {
	Messages []schema.Message `json:"messages"`
	Unread   int              `json:"unread"`
	Mode     Mode             `json:"mode"`
}

// Subscription delivers every message of a session once, in order. It reads
// the change feed when available and polls otherwise, switching to polling
// when the feed fails.
type Subscription struct {
	relay *Relay
	query Query

	batches chan Batch
	cancel  context.CancelFunc
	done    chan struct{}

	mu      sync.Mutex
	seen    map[string]struct{}
	cursor  time.Time
	unread  int
	current Mode
}

// Subscribe starts delivering the messages of a session until ctx is done or
// the subscription is closed
func (r *Relay) Subscribe(ctx context.Context, query Query) *Subscription {
	ctx, cancel := context.WithCancel(ctx)

	s := &Subscription{
		relay:   r,
		query:   query,
		batches: make(chan Batch, batchBuffer),
		cancel:  cancel,
		done:    make(chan struct{}),
		seen:    make(map[string]struct{}),
		cursor:  query.Since,
		unread:  query.Unread,
	}

	r.scope.Counter("subscribed").Inc(1)
	go s.run(ctx)
	return s
}

// C returns the channel of batches. It is closed when the subscription ends.
func (s *Subscription) C() <-chan Batch {
	return s.batches
}

func (s *Subscription) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Subscription) Unread() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unread
}

// MarkRead clears the local unread counter after the viewer read the session
func (s *Subscription) MarkRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unread = 0
}

// Close stops the subscription and waits for it to end
func (s *Subscription) Close() {
	s.cancel()
	<-s.done
}

func (s *Subscription) logger() *log.Entry {
	return log.WithField("prefix", relayLogPrefix).WithField("session_id", s.query.SessionID)
}

func (s *Subscription) run(ctx context.Context) {
	defer close(s.done)
	defer close(s.batches)

	b := s.open(ctx)
	defer func() { b.close() }()

	if err := s.catchUp(ctx, true); err != nil && ctx.Err() == nil {
		b = s.fallback(b, err)
	}

	for {
		messages, err := b.next(ctx)
		if ctx.Err() != nil {
			return
		}

		if err != nil {
			if b.mode() == ModeWatch {
				b = s.fallback(b, err)
				if err := s.catchUp(ctx, false); err != nil {
					s.logger().Warnf("catch up after fallback with error: %s", err)
				}
				continue
			}
			// polled again at the next tick
			s.logger().Warnf("poll messages with error: %s", err)
			continue
		}

		if !s.deliver(ctx, messages, false) {
			return
		}
	}
}

// open starts from the change feed unless it is disabled or fails to open
func (s *Subscription) open(ctx context.Context) backend {
	if !s.relay.config.DisableWatch {
		stream, err := s.relay.source.WatchMessages(ctx, s.query.SessionID)
		if err == nil {
			s.setMode(ModeWatch)
			return &watchBackend{
				stream:    stream,
				source:    s.relay.source,
				sessionID: s.query.SessionID,
				cursor:    s.getCursor,
			}
		}
		s.logger().Infof("change feed unavailable, polling: %s", err)
		s.relay.scope.Counter("fallback").Inc(1)
	}

	s.setMode(ModePoll)
	return newPollBackend(s.relay.source, s.query.SessionID, s.relay.config.PollInterval, s.getCursor)
}

func (s *Subscription) fallback(b backend, err error) backend {
	if b.mode() == ModePoll {
		return b
	}

	s.logger().Warnf("change feed failed, falling back to polling: %s", err)
	s.relay.scope.Counter("fallback").Inc(1)

	b.close()
	s.setMode(ModePoll)
	return newPollBackend(s.relay.source, s.query.SessionID, s.relay.config.PollInterval, s.getCursor)
}

// catchUp reads what the store holds after the cursor. The first one always
// delivers a batch so that the viewer learns the current state.
func (s *Subscription) catchUp(ctx context.Context, initial bool) error {
	var (
		messages []schema.Message
		err      error
	)

	cursor := s.getCursor()
	if cursor.IsZero() {
		messages, err = s.relay.source.GetLatestMessages(ctx, s.query.SessionID, s.relay.config.PageSize)
	} else {
		messages, err = s.relay.source.GetMessages(ctx, s.query.SessionID, since(cursor), 0)
	}
	if err != nil {
		if initial {
			s.deliver(ctx, nil, true)
		}
		return err
	}

	s.deliver(ctx, messages, initial)
	return nil
}

// deliver sends the messages not delivered yet. The initial batch is sent even
// when empty and does not move the unread counter, which already accounts for
// it. It returns false once the subscription is cancelled.
func (s *Subscription) deliver(ctx context.Context, messages []schema.Message, initial bool) bool {
	s.mu.Lock()
	fresh := make([]schema.Message, 0, len(messages))
	for _, m := range messages {
		if _, ok := s.seen[m.ID]; ok {
			continue
		}
		s.seen[m.ID] = struct{}{}
		fresh = append(fresh, m)
	}

	sort.SliceStable(fresh, func(i, j int) bool {
		if !fresh[i].CreatedAt.Equal(fresh[j].CreatedAt) {
			return fresh[i].CreatedAt.Before(fresh[j].CreatedAt)
		}
		return fresh[i].ID < fresh[j].ID
	})

	for _, m := range fresh {
		if m.CreatedAt.After(s.cursor) {
			s.cursor = m.CreatedAt
		}
		if !initial && m.SenderID != s.query.ViewerID && m.SenderID != schema.SystemSenderID && !m.Read {
			s.unread++
		}
	}

	batch := Batch{Messages: fresh, Unread: s.unread, Mode: s.current}
	s.mu.Unlock()

	if len(fresh) == 0 && !initial {
		return true
	}

	select {
	case s.batches <- batch:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *Subscription) getCursor() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

func (s *Subscription) setMode(mode Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = mode
}
