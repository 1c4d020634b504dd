package help

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-playground/validator"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/mutual-aid-api/background"
	"github.com/bitmark-inc/mutual-aid-api/consts"
	"github.com/bitmark-inc/mutual-aid-api/geo"
	"github.com/bitmark-inc/mutual-aid-api/schema"
	"github.com/bitmark-inc/mutual-aid-api/store"
	"github.com/bitmark-inc/mutual-aid-api/utils"
)

var log = logrus.WithField("prefix", "help")

const createAttempts = 3

// Broadcaster notifies candidates about a new request
type Broadcaster interface {
	Broadcast(ctx context.Context, help *schema.HelpRequest, candidates []geo.Candidate) background.Summary
}

// Config tunes the coordinator. Zero values fall back to the defaults in consts.
type Config struct {
	Expiry             time.Duration
	AutoReplyAfter     time.Duration
	RegistrationRadius float64
	BroadcastLimit     int
	Language           string
}

// Coordinator owns the help request lifecycle and the conversations tied to it.
// It keeps no state between calls; every transition is a conditional update in
// the store.
type Coordinator struct {
	store       store.MongoStore
	broadcaster Broadcaster
	scope       tally.Scope
	config      Config
	validate    *validator.Validate

	now   func() time.Time
	newID func() string
	async func(func())
}

// New returns a coordinator. broadcaster and scope are optional.
func New(s store.MongoStore, broadcaster Broadcaster, scope tally.Scope, config Config) *Coordinator {
	if config.Expiry <= 0 {
		config.Expiry = consts.HelpExpiry
	}
	if config.AutoReplyAfter <= 0 {
		config.AutoReplyAfter = consts.AutoReplyAfter
	}
	if config.RegistrationRadius <= 0 {
		config.RegistrationRadius = consts.RegistrationRadius
	}
	if config.Language == "" {
		config.Language = utils.DefaultLanguage
	}
	if scope == nil {
		scope = tally.NoopScope
	}

	return &Coordinator{
		store:       s,
		broadcaster: broadcaster,
		scope:       scope.SubScope("help"),
		config:      config,
		validate:    newValidator(),
		now:         func() time.Time { return time.Now().UTC() },
		newID:       func() string { return uuid.New().String() },
		async:       func(f func()) { go f() },
	}
}

// sideEffectFailed logs a best-effort step that failed. The primary transition
// stands regardless.
func sideEffectFailed(err error, entry *logrus.Entry, message string) {
	entry.WithError(err).Warn(message)
	sentry.CaptureException(err)
}

func (c *Coordinator) localize(id string, data map[string]interface{}) string {
	text, err := utils.Localize(c.config.Language, id, data)
	if err != nil {
		log.WithError(err).Warnf("missing message %s", id)
		return id
	}
	return text
}

// getVisibleHelp loads a request the caller may read. Requests the caller may
// not see are reported as not found.
func (c *Coordinator) getVisibleHelp(ctx context.Context, helpID, callerID string) (*schema.HelpRequest, error) {
	help, err := c.store.GetHelpRequest(ctx, helpID)
	if err != nil {
		return nil, dependencyError(err, "get help request")
	}

	if !help.VisibleTo(callerID) {
		return nil, notFound("help request not found")
	}
	return help, nil
}

// getRequesterHelp loads a request only its requester may act on
func (c *Coordinator) getRequesterHelp(ctx context.Context, helpID, callerID string) (*schema.HelpRequest, error) {
	help, err := c.getVisibleHelp(ctx, helpID, callerID)
	if err != nil {
		return nil, err
	}

	if help.RequesterID != callerID {
		return nil, unauthorized("only the requester could act on the help request")
	}
	return help, nil
}

// observeExpiry expires a pending request whose window elapsed. It returns the
// current state of the request.
func (c *Coordinator) observeExpiry(ctx context.Context, help *schema.HelpRequest) (*schema.HelpRequest, error) {
	now := c.now()
	if !help.ExpiredAt(now) {
		return help, nil
	}

	expired, err := c.store.ExpireHelpRequest(ctx, help.ID, now)
	if err != nil {
		return nil, dependencyError(err, "expire help request")
	}

	if !expired {
		// another transition happened first
		current, err := c.store.GetHelpRequest(ctx, help.ID)
		if err != nil {
			return nil, dependencyError(err, "get help request")
		}
		return current, nil
	}

	c.scope.Counter("expired").Inc(1)

	help.Status = schema.HelpExpired
	help.Open = false
	return help, nil
}

func (c *Coordinator) reload(ctx context.Context, helpID string) (*schema.HelpRequest, error) {
	help, err := c.store.GetHelpRequest(ctx, helpID)
	if err != nil {
		return nil, dependencyError(err, "get help request")
	}
	return help, nil
}
