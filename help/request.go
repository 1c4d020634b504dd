package help

import (
	"context"
	"strings"
	"time"

	"github.com/bitmark-inc/mutual-aid-api/geo"
	"github.com/bitmark-inc/mutual-aid-api/schema"
	"github.com/bitmark-inc/mutual-aid-api/store"
)

// Create opens a new help request and broadcasts it to nearby helpers. Any open
// request of the requester is superseded first. The broadcast runs in the
// background and never fails the creation.
func (c *Coordinator) Create(ctx context.Context, input CreateInput) (*schema.HelpRequest, error) {
	help, err := c.open(ctx, input)
	if err != nil {
		return nil, err
	}

	c.broadcast(ctx, help)

	return help, nil
}

// open stores a new pending request in place of the open ones of the requester
func (c *Coordinator) open(ctx context.Context, input CreateInput) (*schema.HelpRequest, error) {
	input.Note = strings.TrimSpace(input.Note)
	if err := c.check(input); err != nil {
		return nil, err
	}

	now := c.now()
	help := &schema.HelpRequest{
		RequesterID:  input.RequesterID,
		Kind:         input.Kind,
		Note:         input.Note,
		Location:     *input.Location,
		Status:       schema.HelpPending,
		CandidateIDs: []string{},
		CreatedAt:    now,
		ExpiresAt:    now.Add(c.config.Expiry),
	}

	created := false
	for attempt := 0; attempt < createAttempts && !created; attempt++ {
		if err := c.supersede(ctx, input.RequesterID, now); err != nil {
			return nil, err
		}

		help.ID = c.newID()
		switch err := c.store.CreateHelpRequest(ctx, help); err {
		case nil:
			created = true
		case store.ErrOpenRequestExists:
			log.WithField("requester", input.RequesterID).Info("open request created concurrently, retrying")
		default:
			return nil, dependencyError(err, "create help request")
		}
	}
	if !created {
		return nil, conflict("another help request is being created")
	}

	c.scope.Tagged(map[string]string{"kind": string(help.Kind)}).Counter("created").Inc(1)

	if err := c.store.TouchUser(ctx, input.RequesterID, now); err != nil {
		sideEffectFailed(err, log.WithField("requester", input.RequesterID), "touch requester")
	}

	return help, nil
}

// supersede closes every open request of the requester
func (c *Coordinator) supersede(ctx context.Context, requesterID string, now time.Time) error {
	open, err := c.store.GetOpenHelpRequests(ctx, requesterID)
	if err != nil {
		return dependencyError(err, "get open help requests")
	}

	for _, h := range open {
		if h.ExpiredAt(now) {
			if _, err := c.store.ExpireHelpRequest(ctx, h.ID, now); err != nil {
				return dependencyError(err, "expire help request")
			}
			continue
		}

		cancelled, err := c.store.CancelHelpRequest(ctx, h.ID, schema.CancelReasonSuperseded, now)
		if err != nil {
			return dependencyError(err, "cancel superseded help request")
		}
		if cancelled {
			c.scope.Tagged(map[string]string{"reason": "superseded"}).Counter("cancelled").Inc(1)
			if err := c.CancelCascade(ctx, h.ID); err != nil {
				sideEffectFailed(err, log.WithField("help_id", h.ID), "cancel sessions of superseded request")
			}
		}
	}
	return nil
}

// broadcast selects the candidates, records them and hands the notifications off
func (c *Coordinator) broadcast(ctx context.Context, help *schema.HelpRequest) {
	entry := log.WithField("help_id", help.ID)

	pool, err := c.store.NearbyUsers(ctx, help.Location, c.config.RegistrationRadius, help.RequesterID)
	if err != nil {
		sideEffectFailed(err, entry, "query broadcast candidates")
		return
	}

	candidates := geo.Select(geo.Origin{
		Location:    help.Location,
		RequesterID: help.RequesterID,
		Kind:        help.Kind,
	}, pool, c.config.RegistrationRadius, c.config.BroadcastLimit)
	if len(candidates) == 0 {
		entry.Info("no candidate nearby")
		return
	}

	ids := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		ids = append(ids, candidate.User.ID)
	}

	if err := c.store.SetHelpCandidates(ctx, help.ID, ids, len(ids)); err != nil {
		sideEffectFailed(err, entry, "record candidates")
		return
	}
	help.CandidateIDs = append(help.CandidateIDs, ids...)
	help.NotifiedCount += len(ids)

	if c.broadcaster == nil {
		return
	}

	snapshot := *help
	c.async(func() {
		summary := c.broadcaster.Broadcast(context.Background(), &snapshot, candidates)
		entry.WithField("summary", summary).Debug("broadcast dispatched")
	})
}

// GetStatus returns a request the caller may see, expiring it first if its
// window elapsed
func (c *Coordinator) GetStatus(ctx context.Context, helpID, callerID string) (*schema.HelpRequest, error) {
	help, err := c.getVisibleHelp(ctx, helpID, callerID)
	if err != nil {
		return nil, err
	}
	return c.observeExpiry(ctx, help)
}

// Cancel cancels an open request on behalf of its requester. Active sessions of
// the request are cancelled as well.
func (c *Coordinator) Cancel(ctx context.Context, helpID, callerID string) (*schema.HelpRequest, error) {
	help, err := c.getRequesterHelp(ctx, helpID, callerID)
	if err != nil {
		return nil, err
	}

	if help, err = c.observeExpiry(ctx, help); err != nil {
		return nil, err
	}
	if help.Status.Terminal() {
		return nil, invalidState("help request is already %s", help.Status)
	}

	now := c.now()
	cancelled, err := c.store.CancelHelpRequest(ctx, helpID, schema.CancelReasonRequester, now)
	if err != nil {
		return nil, dependencyError(err, "cancel help request")
	}
	if !cancelled {
		current, err := c.reload(ctx, helpID)
		if err != nil {
			return nil, err
		}
		return nil, invalidState("help request is already %s", current.Status)
	}

	c.scope.Tagged(map[string]string{"reason": "requester"}).Counter("cancelled").Inc(1)

	if err := c.CancelCascade(ctx, helpID); err != nil {
		sideEffectFailed(err, log.WithField("help_id", helpID), "cancel sessions of cancelled request")
	}

	help.Status = schema.HelpCancelled
	help.Open = false
	help.CancelReason = schema.CancelReasonRequester
	help.CancelledAt = &now
	return help, nil
}

// MarkMatched makes the helper the responder of a pending request. The first
// helper wins. A later helper is kept as a candidate and gets a ConflictError,
// while the winning helper calling again is a no-op.
func (c *Coordinator) MarkMatched(ctx context.Context, helpID, helperID string) (*schema.HelpRequest, error) {
	if helperID == "" {
		return nil, validationError("helper is required")
	}

	help, err := c.reload(ctx, helpID)
	if err != nil {
		return nil, err
	}
	if help.RequesterID == helperID {
		return nil, validationError("requester could not help itself")
	}

	if help, err = c.observeExpiry(ctx, help); err != nil {
		return nil, err
	}

	if help.Status == schema.HelpPending {
		matched, err := c.store.MatchHelpRequest(ctx, helpID, helperID, c.now())
		if err != nil {
			return nil, dependencyError(err, "match help request")
		}

		if help, err = c.reload(ctx, helpID); err != nil {
			return nil, err
		}
		if matched {
			c.scope.Counter("matched").Inc(1)
			return help, nil
		}
	}

	switch {
	case help.ActiveHelperID == helperID:
		return help, nil
	case help.Status == schema.HelpMatched || help.Status == schema.HelpActive:
		if err := c.store.AddHelpCandidate(ctx, helpID, helperID); err != nil {
			sideEffectFailed(err, log.WithField("help_id", helpID), "record late helper")
		}
		return help, conflict("someone else already helped")
	}

	return nil, invalidState("help request is %s", help.Status)
}

// Complete marks a matched or active request done. The requester and the helper
// of the winning session are credited once and the losing sessions are removed.
func (c *Coordinator) Complete(ctx context.Context, helpID, callerID string, input CompleteInput) (*schema.HelpRequest, error) {
	input.MeetingLocation = strings.TrimSpace(input.MeetingLocation)
	input.MeetingNotes = strings.TrimSpace(input.MeetingNotes)
	if err := c.check(input); err != nil {
		return nil, err
	}

	help, err := c.getRequesterHelp(ctx, helpID, callerID)
	if err != nil {
		return nil, err
	}
	if help, err = c.observeExpiry(ctx, help); err != nil {
		return nil, err
	}
	if help.Status != schema.HelpMatched && help.Status != schema.HelpActive {
		return nil, invalidState("help request is %s", help.Status)
	}

	session, err := c.winningSession(ctx, help, input.WinningSessionID)
	if err != nil {
		return nil, err
	}

	completion := schema.HelpCompletion{
		HelperID:        help.ActiveHelperID,
		MeetingLocation: input.MeetingLocation,
		MeetingNotes:    input.MeetingNotes,
	}
	if session != nil {
		completion.HelperID = session.Counterpart(help.RequesterID)
		completion.SessionID = session.ID
		if completion.MeetingLocation == "" {
			completion.MeetingLocation = session.MeetingPoint
		}
	}

	now := c.now()
	completed, err := c.store.CompleteHelpRequest(ctx, helpID, completion, now)
	if err != nil {
		return nil, dependencyError(err, "complete help request")
	}
	if !completed {
		current, err := c.reload(ctx, helpID)
		if err != nil {
			return nil, err
		}
		return nil, invalidState("help request is %s", current.Status)
	}

	c.scope.Counter("completed").Inc(1)

	help.Status = schema.HelpCompleted
	help.Open = false
	help.HelpedBy = completion.HelperID
	help.WinningSession = completion.SessionID
	help.MeetingLocation = completion.MeetingLocation
	help.MeetingNotes = completion.MeetingNotes
	help.CompletedAt = &now

	c.settle(ctx, help)

	return help, nil
}

// winningSession finds the session to keep on completion
func (c *Coordinator) winningSession(ctx context.Context, help *schema.HelpRequest, sessionID string) (*schema.Session, error) {
	if sessionID == "" {
		if help.ActiveHelperID == "" {
			return nil, nil
		}

		session, err := c.store.FindActiveSession(ctx, help.ID, schema.PairKey(help.RequesterID, help.ActiveHelperID))
		if err == store.ErrSessionNotFound {
			return nil, nil
		}
		if err != nil {
			return nil, dependencyError(err, "find winning session")
		}
		return session, nil
	}

	session, err := c.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, dependencyError(err, "get winning session")
	}
	if session.RelatedRequestID != help.ID || !session.HasParticipant(help.RequesterID) {
		return nil, validationError("session %s does not belong to the help request", sessionID)
	}
	if session.Status != schema.SessionActive {
		return nil, invalidState("session is %s", session.Status)
	}
	return session, nil
}

// settle applies the side effects of a completed request. Every step is
// idempotent, so a failed settlement is retried by SettleCompleted.
func (c *Coordinator) settle(ctx context.Context, help *schema.HelpRequest) bool {
	entry := log.WithField("help_id", help.ID)
	settled := true

	if _, err := c.store.RecordHelpStats(ctx, help.RequesterID, store.StatsRoleWasHelped, help.ID); err != nil {
		sideEffectFailed(err, entry, "record requester stats")
		settled = false
	}

	if help.HelpedBy != "" {
		if _, err := c.store.RecordHelpStats(ctx, help.HelpedBy, store.StatsRoleHelped, help.ID); err != nil {
			sideEffectFailed(err, entry, "record helper stats")
			settled = false
		}
	}

	if err := c.CompleteCascade(ctx, help.ID, help.WinningSession); err != nil {
		sideEffectFailed(err, entry, "clean up sessions of completed request")
		settled = false
	}

	if !settled {
		return false
	}

	if err := c.store.MarkHelpSettled(ctx, help.ID); err != nil {
		sideEffectFailed(err, entry, "mark help request settled")
		return false
	}
	help.Settled = true
	return true
}

// SettleCompleted retries the side effects of completed requests that did not
// settle. It returns how many requests settled.
func (c *Coordinator) SettleCompleted(ctx context.Context, limit int64) (int, error) {
	helps, err := c.store.GetUnsettledHelpRequests(ctx, limit)
	if err != nil {
		return 0, dependencyError(err, "get unsettled help requests")
	}

	count := 0
	for i := range helps {
		if c.settle(ctx, &helps[i]) {
			count++
		}
	}
	return count, nil
}

// ExpireHelpRequests expires every pending request whose window elapsed. Reads
// expire requests lazily, so this only keeps the collection tidy.
func (c *Coordinator) ExpireHelpRequests(ctx context.Context, now time.Time) (int64, error) {
	count, err := c.store.ExpireHelpRequests(ctx, now)
	if err != nil {
		return 0, dependencyError(err, "expire help requests")
	}

	c.scope.Counter("expired").Inc(count)
	return count, nil
}
