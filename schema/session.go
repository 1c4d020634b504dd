package schema

import (
	"sort"
	"strings"
	"time"
)

const (
	SessionCollection = "sessions"

	MeetingPointMaxLength = 100
)

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// Session is a private two-party conversation, optionally tied to a help request.
// UnreadCounts is aligned with ParticipantIDs.
type Session struct {
	ID               string        `json:"id" bson:"id"`
	RelatedRequestID string        `json:"related_request_id,omitempty" bson:"related_request_id"`
	ParticipantIDs   []string      `json:"participant_ids" bson:"participant_ids"`
	PairKey          string        `json:"-" bson:"pair_key"`
	Status           SessionStatus `json:"status" bson:"status"`
	MeetingPoint     string        `json:"meeting_point,omitempty" bson:"meeting_point,omitempty"`
	MeetingTime      *time.Time    `json:"meeting_time,omitempty" bson:"meeting_time,omitempty"`
	UnreadCounts     []int         `json:"unread_counts" bson:"unread_counts"`
	LastMessage      string        `json:"last_message,omitempty" bson:"last_message,omitempty"`
	LastMessageTime  *time.Time    `json:"last_message_time,omitempty" bson:"last_message_time,omitempty"`
	CreatedAt        time.Time     `json:"created_at" bson:"created_at"`
	CompletedAt      *time.Time    `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	CancelledAt      *time.Time    `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`
}

// PairKey returns an order-independent key of two participants
func PairKey(a, b string) string {
	ids := []string{a, b}
	sort.Strings(ids)
	return strings.Join(ids, "|")
}

// ParticipantIndex returns the position of the user in ParticipantIDs, or -1
func (s *Session) ParticipantIndex(userID string) int {
	for i, id := range s.ParticipantIDs {
		if id == userID {
			return i
		}
	}
	return -1
}

// HasParticipant reports whether the user takes part in the session
func (s *Session) HasParticipant(userID string) bool {
	return s.ParticipantIndex(userID) >= 0
}

// Counterpart returns the other participant
func (s *Session) Counterpart(userID string) string {
	for _, id := range s.ParticipantIDs {
		if id != userID {
			return id
		}
	}
	return ""
}

// UnreadFor returns the unread counter of a participant
func (s *Session) UnreadFor(userID string) int {
	i := s.ParticipantIndex(userID)
	if i < 0 || i >= len(s.UnreadCounts) {
		return 0
	}
	return s.UnreadCounts[i]
}
