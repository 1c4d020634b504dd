package background

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeHousekeeper struct {
	expiredAt   time.Time
	settleLimit int64
	err         error
}

func (f *fakeHousekeeper) ExpireHelpRequests(ctx context.Context, now time.Time) (int64, error) {
	f.expiredAt = now
	return 3, f.err
}

func (f *fakeHousekeeper) SettleCompleted(ctx context.Context, limit int64) (int, error) {
	f.settleLimit = limit
	return 1, f.err
}

func TestHousekeepingJobs(t *testing.T) {
	h := &fakeHousekeeper{}
	m := New(h, nil, 25)

	assert.NoError(t, m.ExpireHelpRequests())
	assert.WithinDuration(t, time.Now(), h.expiredAt, time.Minute)

	assert.NoError(t, m.SettleCompletedHelps())
	assert.Equal(t, int64(25), h.settleLimit)
}

func TestHousekeepingJobsFailure(t *testing.T) {
	h := &fakeHousekeeper{err: errors.New("mongo unavailable")}
	m := New(h, nil, 25)

	assert.Error(t, m.ExpireHelpRequests())
	assert.Error(t, m.SettleCompletedHelps())
}
