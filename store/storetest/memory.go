// Package storetest provides an in-memory MongoStore with the same conditional
// update semantics as the mongo implementation, for tests of its consumers.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bitmark-inc/mutual-aid-api/geo"
	"github.com/bitmark-inc/mutual-aid-api/schema"
	"github.com/bitmark-inc/mutual-aid-api/store"
)

// ErrWatchUnavailable is returned by WatchMessages when watching is disabled
var ErrWatchUnavailable = errors.New("change stream is not available")

var _ store.MongoStore = (*Memory)(nil)

// Memory is a MongoStore kept in memory
type Memory struct {
	sync.Mutex

	users    map[string]*schema.User
	helps    map[string]*schema.HelpRequest
	sessions map[string]*schema.Session
	messages []*schema.Message
	streams  map[string][]*memoryStream

	failures map[string]error
	watch    bool
}

// New returns an empty store with watching enabled
func New() *Memory {
	return &Memory{
		users:    make(map[string]*schema.User),
		helps:    make(map[string]*schema.HelpRequest),
		sessions: make(map[string]*schema.Session),
		streams:  make(map[string][]*memoryStream),
		failures: make(map[string]error),
		watch:    true,
	}
}

// FailOn makes every later call of the method return err. A nil err clears it.
func (m *Memory) FailOn(method string, err error) {
	m.Lock()
	defer m.Unlock()
	if err == nil {
		delete(m.failures, method)
		return
	}
	m.failures[method] = err
}

// SetWatch turns the change feed on or off. Turning it off closes the open
// streams with an error.
func (m *Memory) SetWatch(enabled bool) {
	m.Lock()
	defer m.Unlock()
	m.watch = enabled
	if !enabled {
		for id, streams := range m.streams {
			for _, s := range streams {
				s.fail(ErrWatchUnavailable)
			}
			delete(m.streams, id)
		}
	}
}

// PutUser stores a user as is
func (m *Memory) PutUser(u schema.User) {
	m.Lock()
	defer m.Unlock()
	m.users[u.ID] = copyUser(&u)
}

// PutHelpRequest stores a help request as is
func (m *Memory) PutHelpRequest(h schema.HelpRequest) {
	m.Lock()
	defer m.Unlock()
	h.Open = !h.Status.Terminal()
	m.helps[h.ID] = copyHelp(&h)
}

// PutMessages stores messages in the given order at once, notifying the
// open streams of each
func (m *Memory) PutMessages(messages ...schema.Message) {
	m.Lock()
	defer m.Unlock()
	for _, msg := range messages {
		stored := msg
		m.messages = append(m.messages, &stored)
		for _, s := range m.streams[msg.SessionID] {
			s.push(stored)
		}
	}
}

// CountMessages returns how many messages a session holds
func (m *Memory) CountMessages(sessionID string) int {
	m.Lock()
	defer m.Unlock()
	n := 0
	for _, msg := range m.messages {
		if msg.SessionID == sessionID {
			n++
		}
	}
	return n
}

func (m *Memory) fault(method string) error {
	return m.failures[method]
}

func (m *Memory) Ping() error {
	m.Lock()
	defer m.Unlock()
	return m.fault("Ping")
}

func (m *Memory) Close() {}

func (m *Memory) GetUser(ctx context.Context, userID string) (*schema.User, error) {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("GetUser"); err != nil {
		return nil, err
	}
	u, ok := m.users[userID]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return copyUser(u), nil
}

func (m *Memory) UpsertUser(ctx context.Context, userID, displayName string) (*schema.User, error) {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("UpsertUser"); err != nil {
		return nil, err
	}
	u := m.upsert(userID)
	u.DisplayName = displayName
	return copyUser(u), nil
}

func (m *Memory) UpdateUserLocation(ctx context.Context, userID string, loc schema.Location, at time.Time) error {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("UpdateUserLocation"); err != nil {
		return err
	}
	u := m.upsert(userID)
	u.Location = schema.NewGeoJSONPoint(loc)
	u.HomeLocation = &schema.TrackedLocation{Location: loc, UpdatedAt: at.UTC()}
	u.LastActiveAt = at.UTC()
	return nil
}

func (m *Memory) UpdateUserResources(ctx context.Context, userID string, resources []string) error {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("UpdateUserResources"); err != nil {
		return err
	}
	m.upsert(userID).OfferedResources = append([]string{}, resources...)
	return nil
}

func (m *Memory) UpdateUserVisibility(ctx context.Context, userID string, visible bool) error {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("UpdateUserVisibility"); err != nil {
		return err
	}
	m.upsert(userID).VisibleOnMap = visible
	return nil
}

func (m *Memory) UpdateUserPrivacyRadius(ctx context.Context, userID string, meters float64) error {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("UpdateUserPrivacyRadius"); err != nil {
		return err
	}
	m.upsert(userID).PrivacyRadius = meters
	return nil
}

func (m *Memory) TouchUser(ctx context.Context, userID string, at time.Time) error {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("TouchUser"); err != nil {
		return err
	}
	if u, ok := m.users[userID]; ok {
		u.LastActiveAt = at.UTC()
	}
	return nil
}

func (m *Memory) NearbyUsers(ctx context.Context, origin schema.Location, radius float64, excludeID string) ([]schema.User, error) {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("NearbyUsers"); err != nil {
		return nil, err
	}

	type entry struct {
		user     schema.User
		distance float64
	}
	entries := make([]entry, 0)
	for _, u := range m.users {
		if u.ID == excludeID || !u.VisibleOnMap || u.Deactivated || len(u.OfferedResources) == 0 || u.HomeLocation == nil {
			continue
		}
		d := geo.Distance(origin, u.HomeLocation.Location)
		if d > radius {
			continue
		}
		entries = append(entries, entry{*copyUser(u), d})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].distance < entries[j].distance })

	users := make([]schema.User, 0, len(entries))
	for _, e := range entries {
		users = append(users, e.user)
	}
	return users, nil
}

func (m *Memory) RecordHelpStats(ctx context.Context, userID, role, requestID string) (bool, error) {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("RecordHelpStats"); err != nil {
		return false, err
	}
	u, ok := m.users[userID]
	if !ok {
		return false, nil
	}
	key := schema.StatsKey(role, requestID)
	for _, counted := range u.Stats.Counted {
		if counted == key {
			return false, nil
		}
	}
	switch role {
	case store.StatsRoleHelped:
		u.Stats.Helped++
	case store.StatsRoleWasHelped:
		u.Stats.WasHelped++
	default:
		return false, fmt.Errorf("unknown role %s", role)
	}
	u.Stats.Counted = append(u.Stats.Counted, key)
	return true, nil
}

func (m *Memory) upsert(userID string) *schema.User {
	u, ok := m.users[userID]
	if !ok {
		now := time.Now().UTC()
		u = &schema.User{
			ID:               userID,
			OfferedResources: []string{},
			VisibleOnMap:     true,
			PrivacyRadius:    schema.DefaultPrivacyRadius,
			LastActiveAt:     now,
			CreatedAt:        now,
		}
		m.users[userID] = u
	}
	return u
}

func (m *Memory) CreateHelpRequest(ctx context.Context, help *schema.HelpRequest) error {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("CreateHelpRequest"); err != nil {
		return err
	}
	if help.CandidateIDs == nil {
		help.CandidateIDs = []string{}
	}
	help.Open = !help.Status.Terminal()
	for _, h := range m.helps {
		if h.ID == help.ID || (help.Open && h.Open && h.RequesterID == help.RequesterID) {
			return store.ErrOpenRequestExists
		}
	}
	m.helps[help.ID] = copyHelp(help)
	return nil
}

func (m *Memory) GetHelpRequest(ctx context.Context, helpID string) (*schema.HelpRequest, error) {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("GetHelpRequest"); err != nil {
		return nil, err
	}
	h, ok := m.helps[helpID]
	if !ok {
		return nil, store.ErrHelpRequestNotFound
	}
	return copyHelp(h), nil
}

func (m *Memory) GetOpenHelpRequests(ctx context.Context, requesterID string) ([]schema.HelpRequest, error) {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("GetOpenHelpRequests"); err != nil {
		return nil, err
	}
	helps := make([]schema.HelpRequest, 0)
	for _, h := range m.helps {
		if h.RequesterID == requesterID && !h.Status.Terminal() {
			helps = append(helps, *copyHelp(h))
		}
	}
	return helps, nil
}

func (m *Memory) SetHelpCandidates(ctx context.Context, helpID string, candidateIDs []string, notified int) error {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("SetHelpCandidates"); err != nil {
		return err
	}
	if h, ok := m.helps[helpID]; ok {
		for _, id := range candidateIDs {
			addToSet(&h.CandidateIDs, id)
		}
		h.NotifiedCount += notified
	}
	return nil
}

func (m *Memory) AddHelpCandidate(ctx context.Context, helpID, userID string) error {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("AddHelpCandidate"); err != nil {
		return err
	}
	if h, ok := m.helps[helpID]; ok {
		addToSet(&h.CandidateIDs, userID)
	}
	return nil
}

func (m *Memory) MatchHelpRequest(ctx context.Context, helpID, helperID string, at time.Time) (bool, error) {
	return m.transition("MatchHelpRequest", helpID, func(h *schema.HelpRequest) bool {
		if h.Status != schema.HelpPending || h.ActiveHelperID != "" || h.RequesterID == helperID || h.ExpiresAt.Before(at) {
			return false
		}
		t := at.UTC()
		h.Status = schema.HelpMatched
		h.ActiveHelperID = helperID
		h.MatchedAt = &t
		addToSet(&h.CandidateIDs, helperID)
		return true
	})
}

func (m *Memory) ActivateHelpRequest(ctx context.Context, helpID string) (bool, error) {
	return m.transition("ActivateHelpRequest", helpID, func(h *schema.HelpRequest) bool {
		if h.Status != schema.HelpMatched {
			return false
		}
		h.Status = schema.HelpActive
		return true
	})
}

func (m *Memory) CancelHelpRequest(ctx context.Context, helpID, reason string, at time.Time) (bool, error) {
	return m.transition("CancelHelpRequest", helpID, func(h *schema.HelpRequest) bool {
		if h.Status.Terminal() {
			return false
		}
		t := at.UTC()
		h.Status = schema.HelpCancelled
		h.Open = false
		h.CancelReason = reason
		h.CancelledAt = &t
		return true
	})
}

func (m *Memory) ExpireHelpRequest(ctx context.Context, helpID string, now time.Time) (bool, error) {
	return m.transition("ExpireHelpRequest", helpID, func(h *schema.HelpRequest) bool {
		if h.Status != schema.HelpPending || !h.ExpiresAt.Before(now) {
			return false
		}
		h.Status = schema.HelpExpired
		h.Open = false
		return true
	})
}

func (m *Memory) ExpireHelpRequests(ctx context.Context, now time.Time) (int64, error) {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("ExpireHelpRequests"); err != nil {
		return 0, err
	}
	var count int64
	for _, h := range m.helps {
		if h.Status == schema.HelpPending && h.ExpiresAt.Before(now) {
			h.Status = schema.HelpExpired
			h.Open = false
			count++
		}
	}
	return count, nil
}

func (m *Memory) CompleteHelpRequest(ctx context.Context, helpID string, completion schema.HelpCompletion, at time.Time) (bool, error) {
	return m.transition("CompleteHelpRequest", helpID, func(h *schema.HelpRequest) bool {
		if h.Status != schema.HelpMatched && h.Status != schema.HelpActive {
			return false
		}
		t := at.UTC()
		h.Status = schema.HelpCompleted
		h.Open = false
		h.Settled = false
		h.HelpedBy = completion.HelperID
		h.WinningSession = completion.SessionID
		h.MeetingLocation = completion.MeetingLocation
		h.MeetingNotes = completion.MeetingNotes
		h.CompletedAt = &t
		return true
	})
}

func (m *Memory) MarkHelpAutoReplied(ctx context.Context, helpID string) (bool, error) {
	return m.transition("MarkHelpAutoReplied", helpID, func(h *schema.HelpRequest) bool {
		if h.AutoReplied {
			return false
		}
		h.AutoReplied = true
		return true
	})
}

func (m *Memory) MarkHelpSettled(ctx context.Context, helpID string) error {
	_, err := m.transition("MarkHelpSettled", helpID, func(h *schema.HelpRequest) bool {
		if h.Status != schema.HelpCompleted {
			return false
		}
		h.Settled = true
		return true
	})
	return err
}

func (m *Memory) GetUnsettledHelpRequests(ctx context.Context, limit int64) ([]schema.HelpRequest, error) {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("GetUnsettledHelpRequests"); err != nil {
		return nil, err
	}
	helps := make([]schema.HelpRequest, 0)
	for _, h := range m.helps {
		if h.Status == schema.HelpCompleted && !h.Settled {
			helps = append(helps, *copyHelp(h))
		}
	}
	sort.Slice(helps, func(i, j int) bool { return helps[i].CompletedAt.Before(*helps[j].CompletedAt) })
	if limit > 0 && int64(len(helps)) > limit {
		helps = helps[:limit]
	}
	return helps, nil
}

func (m *Memory) transition(method, helpID string, apply func(h *schema.HelpRequest) bool) (bool, error) {
	m.Lock()
	defer m.Unlock()
	if err := m.fault(method); err != nil {
		return false, err
	}
	h, ok := m.helps[helpID]
	if !ok {
		return false, nil
	}
	return apply(h), nil
}

func (m *Memory) CreateSession(ctx context.Context, session *schema.Session) error {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("CreateSession"); err != nil {
		return err
	}
	if session.UnreadCounts == nil {
		session.UnreadCounts = make([]int, len(session.ParticipantIDs))
	}
	for _, s := range m.sessions {
		if s.ID == session.ID {
			return store.ErrSessionExists
		}
		if session.Status == schema.SessionActive && s.Status == schema.SessionActive &&
			s.RelatedRequestID == session.RelatedRequestID && s.PairKey == session.PairKey {
			return store.ErrSessionExists
		}
	}
	m.sessions[session.ID] = copySession(session)
	return nil
}

func (m *Memory) GetSession(ctx context.Context, sessionID string) (*schema.Session, error) {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("GetSession"); err != nil {
		return nil, err
	}
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, store.ErrSessionNotFound
	}
	return copySession(s), nil
}

func (m *Memory) FindActiveSession(ctx context.Context, requestID, pairKey string) (*schema.Session, error) {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("FindActiveSession"); err != nil {
		return nil, err
	}
	for _, s := range m.sessions {
		if s.RelatedRequestID == requestID && s.PairKey == pairKey && s.Status == schema.SessionActive {
			return copySession(s), nil
		}
	}
	return nil, store.ErrSessionNotFound
}

func (m *Memory) GetRequestSessions(ctx context.Context, requestID string, status schema.SessionStatus) ([]schema.Session, error) {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("GetRequestSessions"); err != nil {
		return nil, err
	}
	sessions := make([]schema.Session, 0)
	for _, s := range m.sessions {
		if s.RelatedRequestID == requestID && (status == "" || s.Status == status) {
			sessions = append(sessions, *copySession(s))
		}
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].CreatedAt.Before(sessions[j].CreatedAt) })
	return sessions, nil
}

func (m *Memory) GetUserSessions(ctx context.Context, userID string) ([]schema.Session, error) {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("GetUserSessions"); err != nil {
		return nil, err
	}
	sessions := make([]schema.Session, 0)
	for _, s := range m.sessions {
		if s.HasParticipant(userID) {
			sessions = append(sessions, *copySession(s))
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		a, b := lastActivity(&sessions[i]), lastActivity(&sessions[j])
		return a.After(b)
	})
	return sessions, nil
}

func (m *Memory) CloseSession(ctx context.Context, sessionID string, status schema.SessionStatus, at time.Time) (bool, error) {
	return m.updateSession("CloseSession", sessionID, func(s *schema.Session) bool {
		if s.Status != schema.SessionActive {
			return false
		}
		t := at.UTC()
		switch status {
		case schema.SessionCompleted:
			s.CompletedAt = &t
		case schema.SessionCancelled:
			s.CancelledAt = &t
		default:
			return false
		}
		s.Status = status
		return true
	})
}

func (m *Memory) DeleteSession(ctx context.Context, sessionID string) error {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("DeleteSession"); err != nil {
		return err
	}
	kept := m.messages[:0]
	for _, msg := range m.messages {
		if msg.SessionID != sessionID {
			kept = append(kept, msg)
		}
	}
	m.messages = kept
	delete(m.sessions, sessionID)
	return nil
}

func (m *Memory) SetSessionMeeting(ctx context.Context, sessionID, point string, meetingTime *time.Time) (bool, error) {
	return m.updateSession("SetSessionMeeting", sessionID, func(s *schema.Session) bool {
		if s.Status != schema.SessionActive {
			return false
		}
		s.MeetingPoint = point
		if meetingTime != nil {
			t := meetingTime.UTC()
			s.MeetingTime = &t
		}
		return true
	})
}

func (m *Memory) RecordSessionMessage(ctx context.Context, sessionID string, recipientIndex int, content string, at time.Time) (bool, error) {
	return m.updateSession("RecordSessionMessage", sessionID, func(s *schema.Session) bool {
		if s.Status != schema.SessionActive || recipientIndex < 0 || recipientIndex >= len(s.UnreadCounts) {
			return false
		}
		t := at.UTC()
		s.LastMessage = content
		s.LastMessageTime = &t
		s.UnreadCounts[recipientIndex]++
		return true
	})
}

func (m *Memory) ResetSessionUnread(ctx context.Context, sessionID string, participantIndex int) error {
	_, err := m.updateSession("ResetSessionUnread", sessionID, func(s *schema.Session) bool {
		if participantIndex < 0 || participantIndex >= len(s.UnreadCounts) {
			return false
		}
		s.UnreadCounts[participantIndex] = 0
		return true
	})
	return err
}

func (m *Memory) updateSession(method, sessionID string, apply func(s *schema.Session) bool) (bool, error) {
	m.Lock()
	defer m.Unlock()
	if err := m.fault(method); err != nil {
		return false, err
	}
	s, ok := m.sessions[sessionID]
	if !ok {
		return false, nil
	}
	return apply(s), nil
}

func (m *Memory) InsertMessage(ctx context.Context, msg *schema.Message) error {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("InsertMessage"); err != nil {
		return err
	}
	stored := *msg
	m.messages = append(m.messages, &stored)
	for _, s := range m.streams[msg.SessionID] {
		s.push(stored)
	}
	return nil
}

func (m *Memory) GetMessages(ctx context.Context, sessionID string, since time.Time, limit int64) ([]schema.Message, error) {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("GetMessages"); err != nil {
		return nil, err
	}
	messages := m.sorted(sessionID, func(msg *schema.Message) bool { return !msg.CreatedAt.Before(since) })
	if limit > 0 && int64(len(messages)) > limit {
		messages = messages[:limit]
	}
	return messages, nil
}

func (m *Memory) GetLatestMessages(ctx context.Context, sessionID string, limit int64) ([]schema.Message, error) {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("GetLatestMessages"); err != nil {
		return nil, err
	}
	messages := m.sorted(sessionID, func(*schema.Message) bool { return true })
	if limit > 0 && int64(len(messages)) > limit {
		messages = messages[int64(len(messages))-limit:]
	}
	return messages, nil
}

func (m *Memory) HasMessageFrom(ctx context.Context, sessionID, senderID string) (bool, error) {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("HasMessageFrom"); err != nil {
		return false, err
	}
	for _, msg := range m.messages {
		if msg.SessionID == sessionID && msg.SenderID == senderID {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) MarkMessagesRead(ctx context.Context, sessionID, readerID string) (int64, error) {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("MarkMessagesRead"); err != nil {
		return 0, err
	}
	var count int64
	for _, msg := range m.messages {
		if msg.SessionID == sessionID && msg.SenderID != readerID && !msg.Read {
			msg.Read = true
			count++
		}
	}
	return count, nil
}

func (m *Memory) WatchMessages(ctx context.Context, sessionID string) (store.MessageStream, error) {
	m.Lock()
	defer m.Unlock()
	if err := m.fault("WatchMessages"); err != nil {
		return nil, err
	}
	if !m.watch {
		return nil, ErrWatchUnavailable
	}
	s := &memoryStream{notify: make(chan struct{}, 1)}
	m.streams[sessionID] = append(m.streams[sessionID], s)
	return s, nil
}

func (m *Memory) sorted(sessionID string, keep func(*schema.Message) bool) []schema.Message {
	messages := make([]schema.Message, 0)
	for _, msg := range m.messages {
		if msg.SessionID == sessionID && keep(msg) {
			messages = append(messages, *msg)
		}
	}
	sort.SliceStable(messages, func(i, j int) bool {
		if !messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].CreatedAt.Before(messages[j].CreatedAt)
		}
		return messages[i].ID < messages[j].ID
	})
	return messages
}

// memoryStream buffers inserted messages until Next takes them
type memoryStream struct {
	sync.Mutex
	queue  []schema.Message
	err    error
	closed bool
	notify chan struct{}
}

func (s *memoryStream) push(msg schema.Message) {
	s.Lock()
	defer s.Unlock()
	if s.closed || s.err != nil {
		return
	}
	s.queue = append(s.queue, msg)
	s.signal()
}

func (s *memoryStream) fail(err error) {
	s.Lock()
	defer s.Unlock()
	s.err = err
	s.signal()
}

func (s *memoryStream) signal() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *memoryStream) Next(ctx context.Context) (*schema.Message, error) {
	for {
		s.Lock()
		if len(s.queue) > 0 {
			msg := s.queue[0]
			s.queue = s.queue[1:]
			s.Unlock()
			return &msg, nil
		}
		if s.err != nil {
			err := s.err
			s.Unlock()
			return nil, err
		}
		if s.closed {
			s.Unlock()
			return nil, store.ErrStreamClosed
		}
		s.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.notify:
		}
	}
}

func (s *memoryStream) Close(ctx context.Context) error {
	s.Lock()
	defer s.Unlock()
	s.closed = true
	s.signal()
	return nil
}

func lastActivity(s *schema.Session) time.Time {
	if s.LastMessageTime != nil {
		return *s.LastMessageTime
	}
	return s.CreatedAt
}

func addToSet(ids *[]string, id string) {
	for _, existing := range *ids {
		if existing == id {
			return
		}
	}
	*ids = append(*ids, id)
}

func copyUser(u *schema.User) *schema.User {
	c := *u
	c.OfferedResources = append([]string{}, u.OfferedResources...)
	c.Stats.Counted = append([]string{}, u.Stats.Counted...)
	if u.HomeLocation != nil {
		loc := *u.HomeLocation
		c.HomeLocation = &loc
	}
	return &c
}

func copyHelp(h *schema.HelpRequest) *schema.HelpRequest {
	c := *h
	c.CandidateIDs = append([]string{}, h.CandidateIDs...)
	return &c
}

func copySession(s *schema.Session) *schema.Session {
	c := *s
	c.ParticipantIDs = append([]string{}, s.ParticipantIDs...)
	c.UnreadCounts = append([]int{}, s.UnreadCounts...)
	return &c
}
