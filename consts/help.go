package consts

import "time"

const (
	// HelpExpiry is the lifetime of a pending help request
	HelpExpiry = 30 * time.Minute

	// AutoReplyAfter is how long a request waits for the contacted party before
	// the one-shot reminder is injected into its conversation
	AutoReplyAfter = 10 * time.Minute

	// RegistrationRadius is the search radius in meters used when a new request
	// looks for helpers to notify
	RegistrationRadius = 10000.0

	// NearbyRadius is the search radius in meters of interactive nearby browsing
	NearbyRadius = 2000.0

	DefaultCandidateLimit = 20
	MaxCandidateLimit     = 50

	MinPrivacyRadius = 1.0
	MaxPrivacyRadius = 5000.0

	DefaultMessagePageSize = 50
	MaxMessagePageSize     = 50

	// NotifyNoteLength is the width in display units of the note shown in a broadcast
	NotifyNoteLength = 20
)

const (
	DefaultPollInterval     = 3 * time.Second
	DefaultDispatchTimeout  = 10 * time.Second
	DefaultSweepInterval    = time.Minute
	DefaultSettleBatchLimit = 100
)
