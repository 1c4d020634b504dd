package schema

import (
	"time"
)

const (
	HelpRequestCollection = "help_requests"

	HelpNoteMaxLength = 500
)

type HelpKind string

const (
	HelpKindPad       HelpKind = "pad"
	HelpKindTissue    HelpKind = "tissue"
	HelpKindResource  HelpKind = "resource"
	HelpKindSafety    HelpKind = "safety"
	HelpKindEmotional HelpKind = "emotional"
	HelpKindOther     HelpKind = "other"
)

// Valid reports whether the kind is one of the supported kinds
func (k HelpKind) Valid() bool {
	switch k {
	case HelpKindPad, HelpKindTissue, HelpKindResource, HelpKindSafety, HelpKindEmotional, HelpKindOther:
		return true
	}
	return false
}

// Category folds item kinds into the resource category
func (k HelpKind) Category() HelpKind {
	switch k {
	case HelpKindPad, HelpKindTissue:
		return HelpKindResource
	}
	return k
}

type HelpStatus string

const (
	HelpPending   HelpStatus = "pending"
	HelpMatched   HelpStatus = "matched"
	HelpActive    HelpStatus = "active"
	HelpCompleted HelpStatus = "completed"
	HelpCancelled HelpStatus = "cancelled"
	HelpExpired   HelpStatus = "expired"
)

// OpenHelpStatuses are the non-terminal statuses of a help request
var OpenHelpStatuses = []HelpStatus{HelpPending, HelpMatched, HelpActive}

// Terminal reports whether no further transition is defined from the status
func (s HelpStatus) Terminal() bool {
	switch s {
	case HelpCompleted, HelpCancelled, HelpExpired:
		return true
	}
	return false
}

const (
	CancelReasonRequester  = "cancelled by requester"
	CancelReasonSuperseded = "superseded by a new request"
)

// HelpRequest is a short-lived broadcast asking nearby helpers for an item or company.
// Open mirrors !Status.Terminal() and backs the one-open-request-per-requester index.
type HelpRequest struct {
	ID              string     `json:"id" bson:"id"`
	RequesterID     string     `json:"requester_id" bson:"requester_id"`
	Kind            HelpKind   `json:"kind" bson:"kind"`
	Note            string     `json:"note" bson:"note"`
	Location        Location   `json:"location" bson:"location"`
	Status          HelpStatus `json:"status" bson:"status"`
	Open            bool       `json:"-" bson:"open"`
	CandidateIDs    []string   `json:"candidate_ids" bson:"candidate_ids"`
	NotifiedCount   int        `json:"notified_count" bson:"notified_count"`
	ActiveHelperID  string     `json:"active_helper_id,omitempty" bson:"active_helper_id"`
	HelpedBy        string     `json:"helped_by,omitempty" bson:"helped_by,omitempty"`
	CancelReason    string     `json:"cancel_reason,omitempty" bson:"cancel_reason,omitempty"`
	MeetingLocation string     `json:"meeting_location,omitempty" bson:"meeting_location,omitempty"`
	MeetingNotes    string     `json:"meeting_notes,omitempty" bson:"meeting_notes,omitempty"`
	WinningSession  string     `json:"winning_session_id,omitempty" bson:"winning_session_id,omitempty"`
	AutoReplied     bool       `json:"-" bson:"auto_replied"`
	Settled         bool       `json:"-" bson:"settled"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
	MatchedAt       *time.Time `json:"matched_at,omitempty" bson:"matched_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty" bson:"cancelled_at,omitempty"`
	ExpiresAt       time.Time  `json:"expires_at" bson:"expires_at"`
}

// ExpiredAt reports whether a pending request has outlived its window at t
func (h *HelpRequest) ExpiredAt(t time.Time) bool {
	return h.Status == HelpPending && t.After(h.ExpiresAt)
}

// IsCandidate reports whether the user was notified about (or responded to) the request
func (h *HelpRequest) IsCandidate(userID string) bool {
	for _, id := range h.CandidateIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// VisibleTo reports whether the user may read the request
func (h *HelpRequest) VisibleTo(userID string) bool {
	if userID == "" {
		return false
	}
	return h.RequesterID == userID || h.ActiveHelperID == userID || h.IsCandidate(userID)
}

// HelpCompletion carries what a completed request records about the encounter
type HelpCompletion struct {
	HelperID        string
	SessionID       string
	MeetingLocation string
	MeetingNotes    string
}
