package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterIdleTimeout = 10 * time.Minute
	limiterSweepSize   = 10000
)

type callerEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// callerLimiter keeps one token bucket per caller
type callerLimiter struct {
	sync.Mutex

	limit   rate.Limit
	burst   int
	callers map[string]*callerEntry
	now     func() time.Time
}

func newCallerLimiter(limit rate.Limit, burst int) *callerLimiter {
	return &callerLimiter{
		limit:   limit,
		burst:   burst,
		callers: make(map[string]*callerEntry),
		now:     time.Now,
	}
}

func (l *callerLimiter) allow(caller string) bool {
	l.Lock()
	defer l.Unlock()

	now := l.now()
	if len(l.callers) >= limiterSweepSize {
		for id, e := range l.callers {
			if now.Sub(e.lastSeen) > limiterIdleTimeout {
				delete(l.callers, id)
			}
		}
	}

	e, ok := l.callers[caller]
	if !ok {
		e = &callerEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.callers[caller] = e
	}
	e.lastSeen = now

	return e.limiter.AllowN(now, 1)
}

// rateLimit rejects callers which exceed their request budget
func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.allow(c.GetString("requester")) {
			abortWithEncoding(c, http.StatusTooManyRequests, errorTooManyRequests)
			return
		}
		c.Next()
	}
}
