package relay

import (
	"context"
	"time"

	"github.com/bitmark-inc/mutual-aid-api/schema"
	"github.com/bitmark-inc/mutual-aid-api/store"
)

// Mode tells which backend feeds a subscription
type Mode string

const (
	ModeWatch Mode = "watch"
	ModePoll  Mode = "poll"
)

// backend yields the messages of one session as they arrive. A batch may repeat
// messages delivered before; the subscription drops them.
type backend interface {
	next(ctx context.Context) ([]schema.Message, error)
	close()
	mode() Mode
}

// watchBackend wakes up on change events and reads what the store holds
// after the cursor, so that a batch comes in the same order as a polled one
type watchBackend struct {
	stream    store.MessageStream
	source    Source
	sessionID string
	cursor    func() time.Time
}

func (w *watchBackend) next(ctx context.Context) ([]schema.Message, error) {
	if _, err := w.stream.Next(ctx); err != nil {
		return nil, err
	}
	return w.source.GetMessages(ctx, w.sessionID, since(w.cursor()), 0)
}

func (w *watchBackend) close() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = w.stream.Close(ctx)
}

func (w *watchBackend) mode() Mode {
	return ModeWatch
}

// pollBackend queries the messages created since the cursor every interval
type pollBackend struct {
	source    Source
	sessionID string
	cursor    func() time.Time
	ticker    *time.Ticker
}

func newPollBackend(source Source, sessionID string, interval time.Duration, cursor func() time.Time) *pollBackend {
	return &pollBackend{
		source:    source,
		sessionID: sessionID,
		cursor:    cursor,
		ticker:    time.NewTicker(interval),
	}
}

func (p *pollBackend) next(ctx context.Context) ([]schema.Message, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.ticker.C:
	}
	return p.source.GetMessages(ctx, p.sessionID, since(p.cursor()), 0)
}

func (p *pollBackend) close() {
	p.ticker.Stop()
}

func (p *pollBackend) mode() Mode {
	return ModePoll
}

// since steps back from the cursor so that a message stored late with an
// earlier timestamp is still picked up
func since(cursor time.Time) time.Time {
	if cursor.IsZero() {
		return cursor
	}
	return cursor.Add(-pollLookback)
}
