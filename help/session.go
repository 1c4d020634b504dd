package help

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bitmark-inc/mutual-aid-api/schema"
	"github.com/bitmark-inc/mutual-aid-api/store"
)

// SessionView is a session as listed to one of its participants
type SessionView struct {
	schema.Session
	CounterpartID string `json:"counterpart_id"`
	Unread        int    `json:"unread"`
}

// Contact opens the conversation between the caller and another user, tied to
// a help request when helpID is given. Contacting again returns the same active
// session. A pending request becomes matched to the helper of the pair.
func (c *Coordinator) Contact(ctx context.Context, callerID, otherID, helpID string) (*schema.Session, error) {
	if callerID == "" || otherID == "" {
		return nil, validationError("both participants are required")
	}
	if callerID == otherID || otherID == schema.SystemSenderID {
		return nil, validationError("could not contact %s", otherID)
	}

	participants := []string{callerID, otherID}

	var help *schema.HelpRequest
	if helpID != "" {
		h, err := c.reload(ctx, helpID)
		if err != nil {
			return nil, err
		}

		switch h.RequesterID {
		case callerID:
			participants = []string{callerID, otherID}
		case otherID:
			participants = []string{otherID, callerID}
		default:
			return nil, validationError("help request does not belong to either participant")
		}
		help = h
	}

	pairKey := schema.PairKey(callerID, otherID)
	if existing, err := c.store.FindActiveSession(ctx, helpID, pairKey); err == nil {
		return existing, nil
	} else if err != store.ErrSessionNotFound {
		return nil, dependencyError(err, "find session")
	}

	if help != nil {
		var err error
		if help, err = c.observeExpiry(ctx, help); err != nil {
			return nil, err
		}
		if help.Status.Terminal() {
			return nil, invalidState("help request is %s", help.Status)
		}
	}

	now := c.now()
	session := &schema.Session{
		ID:               c.newID(),
		RelatedRequestID: helpID,
		ParticipantIDs:   participants,
		PairKey:          pairKey,
		Status:           schema.SessionActive,
		UnreadCounts:     make([]int, len(participants)),
		CreatedAt:        now,
	}

	switch err := c.store.CreateSession(ctx, session); err {
	case nil:
	case store.ErrSessionExists:
		existing, err := c.store.FindActiveSession(ctx, helpID, pairKey)
		if err != nil {
			return nil, dependencyError(err, "find session")
		}
		return existing, nil
	default:
		return nil, dependencyError(err, "create session")
	}

	entry := log.WithField("session_id", session.ID)
	if err := c.insertSystemMessage(ctx, session.ID, c.localize("session.contact", nil), now); err != nil {
		sideEffectFailed(err, entry, "insert contact message")
	}

	if help != nil && help.Status == schema.HelpPending {
		helperID := participants[1]
		if _, err := c.MarkMatched(ctx, help.ID, helperID); err != nil {
			if KindOf(err) == KindConflict {
				entry.WithField("helper", helperID).Info("help request had been matched by another helper")
			} else {
				sideEffectFailed(err, entry, "match help request on contact")
			}
		}
	}

	return session, nil
}

// RequestResource asks a helper found on the map for a resource. A request for
// it is opened around the caller's last location, superseding any open one,
// and matched to the helper at once without a broadcast. It returns the
// request along with its conversation.
func (c *Coordinator) RequestResource(ctx context.Context, callerID, helperID, resource string) (*schema.HelpRequest, *schema.Session, error) {
	resource = strings.ToLower(strings.TrimSpace(resource))
	if err := c.check(resourceRequestInput{
		CallerID: callerID,
		HelperID: helperID,
		Resource: resource,
	}); err != nil {
		return nil, nil, err
	}

	if _, err := c.GetProfile(ctx, helperID); err != nil {
		return nil, nil, err
	}

	caller, err := c.GetProfile(ctx, callerID)
	if err != nil {
		return nil, nil, err
	}
	if caller.HomeLocation == nil {
		return nil, nil, validationError("location is required")
	}
	loc := caller.HomeLocation.Location

	help, err := c.open(ctx, CreateInput{
		RequesterID: callerID,
		Kind:        schema.HelpKindResource,
		Note:        c.localize("help.resource_request", map[string]interface{}{"Resource": resource}),
		Location:    &loc,
	})
	if err != nil {
		return nil, nil, err
	}

	session, err := c.Contact(ctx, callerID, helperID, help.ID)
	if err != nil {
		return nil, nil, err
	}

	if help, err = c.reload(ctx, help.ID); err != nil {
		return nil, nil, err
	}
	c.scope.Counter("resource_requested").Inc(1)

	return help, session, nil
}

// SendMessage appends a message to an active session the sender takes part in
func (c *Coordinator) SendMessage(ctx context.Context, sessionID, senderID, content string, kind schema.MessageKind) (*schema.Message, error) {
	if kind == "" {
		kind = schema.MessageText
	}
	content = strings.TrimSpace(content)

	if err := c.check(messageInput{
		SessionID: sessionID,
		SenderID:  senderID,
		Content:   content,
		Kind:      kind,
	}); err != nil {
		return nil, err
	}

	session, err := c.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, dependencyError(err, "get session")
	}

	senderIndex := session.ParticipantIndex(senderID)
	if senderIndex < 0 {
		return nil, invalidState("sender is not a participant of the session")
	}
	if session.Status != schema.SessionActive {
		return nil, invalidState("session is %s", session.Status)
	}

	now := c.now()
	msg := &schema.Message{
		ID:        c.newID(),
		SessionID: sessionID,
		SenderID:  senderID,
		Content:   content,
		Kind:      kind,
		CreatedAt: now,
	}
	if err := c.store.InsertMessage(ctx, msg); err != nil {
		return nil, dependencyError(err, "insert message")
	}

	entry := log.WithField("session_id", sessionID)
	recipientIndex := 1 - senderIndex
	if _, err := c.store.RecordSessionMessage(ctx, sessionID, recipientIndex, content, now); err != nil {
		sideEffectFailed(err, entry, "update session for message")
	}

	if err := c.store.TouchUser(ctx, senderID, now); err != nil {
		sideEffectFailed(err, entry, "touch sender")
	}

	if session.RelatedRequestID != "" {
		c.afterMessage(ctx, session, senderID, now)
	}

	return msg, nil
}

// afterMessage activates a matched request once its helper chats and injects
// the one-shot reminder when the contacted party has not replied in time
func (c *Coordinator) afterMessage(ctx context.Context, session *schema.Session, senderID string, now time.Time) {
	entry := log.WithField("help_id", session.RelatedRequestID)

	help, err := c.store.GetHelpRequest(ctx, session.RelatedRequestID)
	if err != nil {
		sideEffectFailed(err, entry, "get help request of session")
		return
	}

	if help.Status == schema.HelpMatched && session.HasParticipant(help.ActiveHelperID) {
		if _, err := c.store.ActivateHelpRequest(ctx, help.ID); err != nil {
			sideEffectFailed(err, entry, "activate help request")
		}
	}

	if help.AutoReplied || help.Status.Terminal() || now.Sub(help.CreatedAt) <= c.config.AutoReplyAfter {
		return
	}

	replied, err := c.store.HasMessageFrom(ctx, session.ID, session.Counterpart(senderID))
	if err != nil {
		sideEffectFailed(err, entry, "check reply")
		return
	}
	if replied {
		return
	}

	won, err := c.store.MarkHelpAutoReplied(ctx, help.ID)
	if err != nil {
		sideEffectFailed(err, entry, "mark auto replied")
		return
	}
	if !won {
		return
	}

	if err := c.insertSystemMessage(ctx, session.ID, c.localize("session.nudge", nil), now.Add(time.Millisecond)); err != nil {
		sideEffectFailed(err, entry, "insert reminder")
	}
}

// SetMeetingInfo records where and when the participants meet
func (c *Coordinator) SetMeetingInfo(ctx context.Context, sessionID, callerID, point string, meetingTime *time.Time) (*schema.Session, error) {
	point = strings.TrimSpace(point)
	if err := c.check(meetingInput{Point: point}); err != nil {
		return nil, err
	}

	session, err := c.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, dependencyError(err, "get session")
	}
	if !session.HasParticipant(callerID) {
		return nil, unauthorized("caller is not a participant of the session")
	}
	if session.Status != schema.SessionActive {
		return nil, invalidState("session is %s", session.Status)
	}

	updated, err := c.store.SetSessionMeeting(ctx, sessionID, point, meetingTime)
	if err != nil {
		return nil, dependencyError(err, "set meeting info")
	}
	if !updated {
		return nil, invalidState("session is no longer active")
	}

	session.MeetingPoint = point
	if meetingTime != nil {
		t := meetingTime.UTC()
		session.MeetingTime = &t
	}

	now := c.now()
	entry := log.WithField("session_id", sessionID)
	if err := c.insertSystemMessage(ctx, sessionID, c.localize("session.meeting", map[string]interface{}{"Point": point}), now); err != nil {
		sideEffectFailed(err, entry, "insert meeting message")
	}

	if session.RelatedRequestID != "" {
		help, err := c.store.GetHelpRequest(ctx, session.RelatedRequestID)
		switch {
		case err != nil:
			sideEffectFailed(err, entry, "get help request of session")
		case help.Status == schema.HelpMatched && session.HasParticipant(help.ActiveHelperID):
			if _, err := c.store.ActivateHelpRequest(ctx, help.ID); err != nil {
				sideEffectFailed(err, entry, "activate help request")
			}
		}
	}

	return session, nil
}

// CompleteCascade keeps the winning session as completed and removes every other
// session of the request along with its messages. It goes on after a failed step
// and may be called again.
func (c *Coordinator) CompleteCascade(ctx context.Context, helpID, winningSessionID string) error {
	sessions, err := c.store.GetRequestSessions(ctx, helpID, "")
	if err != nil {
		return dependencyError(err, "get sessions of help request")
	}

	now := c.now()
	var errs []error
	for _, s := range sessions {
		if s.ID == winningSessionID {
			if s.Status == schema.SessionActive {
				if _, err := c.store.CloseSession(ctx, s.ID, schema.SessionCompleted, now); err != nil {
					errs = append(errs, err)
				}
			}
			continue
		}

		if s.Status == schema.SessionActive {
			if _, err := c.store.CloseSession(ctx, s.ID, schema.SessionCancelled, now); err != nil {
				errs = append(errs, err)
				continue
			}
		}
		if err := c.store.DeleteSession(ctx, s.ID); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return dependencyError(errors.Join(errs...), "complete sessions")
	}
	return nil
}

// CancelCascade cancels the active sessions of a request. They are kept for audit.
func (c *Coordinator) CancelCascade(ctx context.Context, helpID string) error {
	sessions, err := c.store.GetRequestSessions(ctx, helpID, schema.SessionActive)
	if err != nil {
		return dependencyError(err, "get sessions of help request")
	}

	now := c.now()
	var errs []error
	for _, s := range sessions {
		if _, err := c.store.CloseSession(ctx, s.ID, schema.SessionCancelled, now); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return dependencyError(errors.Join(errs...), "cancel sessions")
	}
	return nil
}

// ListSessions returns the sessions of the caller, most recent activity first
func (c *Coordinator) ListSessions(ctx context.Context, callerID string) ([]SessionView, error) {
	sessions, err := c.store.GetUserSessions(ctx, callerID)
	if err != nil {
		return nil, dependencyError(err, "get sessions")
	}

	views := make([]SessionView, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, SessionView{
			Session:       s,
			CounterpartID: s.Counterpart(callerID),
			Unread:        s.UnreadFor(callerID),
		})
	}
	return views, nil
}

// ListMessages returns messages of a session in delivery order. A zero since
// returns the latest page.
func (c *Coordinator) ListMessages(ctx context.Context, sessionID, callerID string, since time.Time, limit int) ([]schema.Message, error) {
	if _, err := c.participantSession(ctx, sessionID, callerID); err != nil {
		return nil, err
	}

	size := int64(messagePageSize(limit))

	var (
		messages []schema.Message
		err      error
	)
	if since.IsZero() {
		messages, err = c.store.GetLatestMessages(ctx, sessionID, size)
	} else {
		messages, err = c.store.GetMessages(ctx, sessionID, since, size)
	}
	if err != nil {
		return nil, dependencyError(err, "get messages")
	}
	return messages, nil
}

// MarkRead clears the unread counter of the caller
func (c *Coordinator) MarkRead(ctx context.Context, sessionID, callerID string) error {
	session, err := c.participantSession(ctx, sessionID, callerID)
	if err != nil {
		return err
	}

	if _, err := c.store.MarkMessagesRead(ctx, sessionID, callerID); err != nil {
		return dependencyError(err, "mark messages read")
	}

	if err := c.store.ResetSessionUnread(ctx, sessionID, session.ParticipantIndex(callerID)); err != nil {
		return dependencyError(err, "reset unread counter")
	}
	return nil
}

// Session returns a session the caller takes part in
func (c *Coordinator) Session(ctx context.Context, sessionID, callerID string) (*schema.Session, error) {
	return c.participantSession(ctx, sessionID, callerID)
}

func (c *Coordinator) participantSession(ctx context.Context, sessionID, callerID string) (*schema.Session, error) {
	session, err := c.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, dependencyError(err, "get session")
	}
	if !session.HasParticipant(callerID) {
		return nil, notFound("session not found")
	}
	return session, nil
}

func (c *Coordinator) insertSystemMessage(ctx context.Context, sessionID, content string, at time.Time) error {
	return c.store.InsertMessage(ctx, &schema.Message{
		ID:        c.newID(),
		SessionID: sessionID,
		SenderID:  schema.SystemSenderID,
		Content:   content,
		Kind:      schema.MessageSystem,
		CreatedAt: at,
	})
}
