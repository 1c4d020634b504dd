package background

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/mutual-aid-api/consts"
	"github.com/bitmark-inc/mutual-aid-api/geo"
	"github.com/bitmark-inc/mutual-aid-api/schema"
	"github.com/bitmark-inc/mutual-aid-api/utils"
)

const maxConcurrentSends = 10

// DispatcherConfig tunes a Dispatcher. Zero values fall back to defaults.
type DispatcherConfig struct {
	// Timeout bounds each send as well as the address lookup
	Timeout  time.Duration
	Language string
	Timezone *time.Location
}

// Dispatcher fans a new help request out to its candidates. Each recipient
// succeeds or fails on its own and no failure is returned to the caller.
type Dispatcher struct {
	sender   Sender
	ledger   Ledger
	resolver geo.LocationResolver
	scope    tally.Scope
	config   DispatcherConfig
}

// NewDispatcher returns a dispatcher. ledger, resolver and scope are optional.
func NewDispatcher(sender Sender, ledger Ledger, resolver geo.LocationResolver, scope tally.Scope, config DispatcherConfig) *Dispatcher {
	if config.Timeout <= 0 {
		config.Timeout = consts.DefaultDispatchTimeout
	}
	if config.Language == "" {
		config.Language = utils.DefaultLanguage
	}
	if config.Timezone == nil {
		config.Timezone = time.UTC
	}
	if scope == nil {
		scope = tally.NoopScope
	}

	return &Dispatcher{
		sender:   sender,
		ledger:   ledger,
		resolver: resolver,
		scope:    scope.SubScope("notification"),
		config:   config,
	}
}

// Broadcast notifies every candidate about the request and waits for all sends
// to finish or time out
func (d *Dispatcher) Broadcast(ctx context.Context, help *schema.HelpRequest, candidates []geo.Candidate) Summary {
	var summary Summary
	if len(candidates) == 0 {
		return summary
	}

	address := d.address(ctx, help)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		sem     = make(chan struct{}, maxConcurrentSends)
		logger  = log.WithField("prefix", dispatcherLogPrefix).WithField("help_id", help.ID)
		started = time.Now()
	)

	for _, c := range candidates {
		wg.Add(1)
		sem <- struct{}{}

		go func(c geo.Candidate) {
			defer func() {
				<-sem
				wg.Done()
			}()

			reason := d.notify(ctx, help, c, address)
			if reason != "" {
				logger.WithField("recipient", c.User.ID).Warnf("notification not sent: %s", reason)
			}

			mu.Lock()
			summary.add(reason)
			mu.Unlock()
		}(c)
	}
	wg.Wait()

	d.scope.Timer("broadcast_latency").Record(time.Since(started))
	logger.WithFields(log.Fields{
		"sent":    summary.Sent,
		"failed":  summary.Failed,
		"skipped": summary.Skipped,
	}).Info("broadcast finished")

	return summary
}

// notify sends to one candidate and returns the reason it was not sent, if any
func (d *Dispatcher) notify(ctx context.Context, help *schema.HelpRequest, c geo.Candidate, address string) string {
	ctx, cancel := context.WithTimeout(ctx, d.config.Timeout)
	defer cancel()

	if d.ledger != nil {
		claimed, err := d.ledger.Claim(ctx, help.ID, c.User.ID)
		switch {
		case err != nil:
			log.WithField("prefix", dispatcherLogPrefix).Warnf("notify ledger unavailable: %s", err)
		case !claimed:
			d.count(ReasonDuplicate)
			return ReasonDuplicate
		}
	}

	fields, err := BroadcastFields(d.config.Language, d.config.Timezone, help, c.Distance, address)
	if err == nil {
		err = d.sender.Send(ctx, c.User.ID, fields)
	}
	if err == nil {
		d.count("")
		return ""
	}

	reason := Classify(err)
	d.count(reason)

	if d.ledger != nil {
		d.release(help.ID, c.User.ID)
	}

	if reason == ReasonFailed || reason == ReasonTemplateMissing {
		sentry.CaptureException(err)
	}
	return reason
}

// release frees the claim of a failed send. The send context may be expired
// already, so it gets a deadline of its own.
func (d *Dispatcher) release(helpID, userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), d.config.Timeout)
	defer cancel()

	if err := d.ledger.Release(ctx, helpID, userID); err != nil {
		log.WithField("prefix", dispatcherLogPrefix).Warnf("release notify claim with error: %s", err)
	}
}

func (d *Dispatcher) address(ctx context.Context, help *schema.HelpRequest) string {
	if d.resolver == nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, d.config.Timeout)
	defer cancel()

	address, err := d.resolver.Address(ctx, help.Location, d.config.Language)
	if err != nil {
		log.WithField("prefix", dispatcherLogPrefix).Debugf("no address for help %s: %s", help.ID, err)
		return ""
	}
	return address
}

func (d *Dispatcher) count(reason string) {
	switch reason {
	case "":
		d.scope.Counter("sent").Inc(1)
	case ReasonNotSubscribed, ReasonDuplicate:
		d.scope.Tagged(map[string]string{"reason": reason}).Counter("skipped").Inc(1)
	default:
		d.scope.Tagged(map[string]string{"reason": reason}).Counter("failed").Inc(1)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
