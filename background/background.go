package background

import (
	"errors"
)

const (
	dispatcherLogPrefix = "dispatcher"
	backgroundLogPrefix = "background"
)

var (
	ErrTemplateMissing = errors.New("notification template missing")
	ErrNotSubscribed   = errors.New("recipient not subscribed")
	ErrMalformedFields = errors.New("malformed notification fields")
)

const (
	ReasonTemplateMissing = "template_missing"
	ReasonNotSubscribed   = "not_subscribed"
	ReasonMalformed       = "malformed"
	ReasonTimeout         = "timeout"
	ReasonDuplicate       = "duplicate"
	ReasonFailed          = "failed"
)

// Classify returns the outcome reason of a failed send
func Classify(err error) string {
	switch {
	case errors.Is(err, ErrTemplateMissing):
		return ReasonTemplateMissing
	case errors.Is(err, ErrNotSubscribed):
		return ReasonNotSubscribed
	case errors.Is(err, ErrMalformedFields):
		return ReasonMalformed
	case isTimeout(err):
		return ReasonTimeout
	}
	return ReasonFailed
}

// Summary aggregates the per recipient outcomes of one broadcast
type Summary struct {
	Sent    int            `json:"sent"`
	Failed  int            `json:"failed"`
	Skipped int            `json:"skipped"`
	Reasons map[string]int `json:"reasons,omitempty"`
}

func (s *Summary) add(reason string) {
	if s.Reasons == nil {
		s.Reasons = make(map[string]int)
	}
	s.Reasons[reason]++

	switch reason {
	case "":
		s.Sent++
	case ReasonNotSubscribed, ReasonDuplicate:
		s.Skipped++
	default:
		s.Failed++
	}
}
