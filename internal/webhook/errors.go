package webhook

import (
	"errors"
	"fmt"
)

// Reason classifies why a payload could not be normalized.
type Reason string

const (
	ReasonUnknownProvider        Reason = "unknown_provider"
	ReasonInvalidEventType       Reason = "invalid_event_type"
	ReasonMalformedPayload       Reason = "malformed_payload"
	ReasonMissingField           Reason = "missing_field"
	ReasonInvalidCommitSHALength Reason = "invalid_commit_sha_length"
)

var (
	ErrUnknownProvider        = errors.New("unknown provider")
	ErrInvalidEventType       = errors.New("invalid event type")
	ErrMalformedPayload       = errors.New("malformed payload")
	ErrMissingField           = errors.New("missing field")
	ErrInvalidCommitSHALength = errors.New("invalid commit sha length")

	ErrUnknownRepository = errors.New("unknown repository")
	ErrSignatureMismatch = errors.New("invalid secret")
	ErrSignatureRequired = errors.New("signature header required")
	ErrRateLimited       = errors.New("rate limit exceeded")
	ErrIPNotAllowed      = errors.New("ip not allowed")
)

var reasonSentinels = map[Reason]error{
	ReasonUnknownProvider:        ErrUnknownProvider,
	ReasonInvalidEventType:       ErrInvalidEventType,
	ReasonMalformedPayload:       ErrMalformedPayload,
	ReasonMissingField:           ErrMissingField,
	ReasonInvalidCommitSHALength: ErrInvalidCommitSHALength,
}

// ValidationError reports the first precondition a push payload violated.
type ValidationError struct {
	Reason Reason
	// Field names the missing field for ReasonMissingField.
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonMissingField:
		return fmt.Sprintf("missing field: %s", e.Field)
	case ReasonUnknownProvider:
		return fmt.Sprintf("unknown provider: %q", e.Detail)
	case ReasonInvalidEventType:
		return fmt.Sprintf("invalid event type: %q", e.Detail)
	case ReasonInvalidCommitSHALength:
		return fmt.Sprintf("invalid commit sha length: %s", e.Detail)
	default:
		if e.Detail != "" {
			return fmt.Sprintf("malformed payload: %s", e.Detail)
		}
		return "malformed payload"
	}
}

// Is lets errors.Is match a ValidationError against its reason sentinel.
func (e *ValidationError) Is(target error) bool {
	return reasonSentinels[e.Reason] == target
}

func invalidEvent(got string) error {
	return &ValidationError{Reason: ReasonInvalidEventType, Detail: got}
}

func malformed(err error) error {
	return &ValidationError{Reason: ReasonMalformedPayload, Detail: err.Error()}
}

func missing(field string) error {
	return &ValidationError{Reason: ReasonMissingField, Field: field}
}
