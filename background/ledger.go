package background

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultLedgerTTL = 2 * time.Hour

// Ledger remembers which recipients were notified about a request, so that a
// retried broadcast never notifies anyone twice
type Ledger interface {
	Claim(ctx context.Context, helpID, userID string) (bool, error)
	Release(ctx context.Context, helpID, userID string) error
}

// RedisLedger keeps notify claims as expiring redis keys
type RedisLedger struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisLedger creates a ledger from a redis url
func NewRedisLedger(redisURL string, ttl time.Duration) (*RedisLedger, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	return NewRedisLedgerWithClient(redis.NewClient(opts), ttl), nil
}

func NewRedisLedgerWithClient(client *redis.Client, ttl time.Duration) *RedisLedger {
	if ttl <= 0 {
		ttl = defaultLedgerTTL
	}

	return &RedisLedger{
		client: client,
		prefix: "notified:",
		ttl:    ttl,
	}
}

func (l *RedisLedger) key(helpID, userID string) string {
	return l.prefix + helpID + ":" + userID
}

// Claim reports whether the caller is the first to notify the user about the request
func (l *RedisLedger) Claim(ctx context.Context, helpID, userID string) (bool, error) {
	return l.client.SetNX(ctx, l.key(helpID, userID), time.Now().Unix(), l.ttl).Result()
}

// Release gives up a claim after a failed send
func (l *RedisLedger) Release(ctx context.Context, helpID, userID string) error {
	return l.client.Del(ctx, l.key(helpID, userID)).Err()
}

func (l *RedisLedger) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

func (l *RedisLedger) Close() error {
	return l.client.Close()
}
