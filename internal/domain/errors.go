package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput signals user-correctable input (empty, too long, unprintable).
	ErrInvalidInput = errors.New("invalid input")
	// ErrRateLimited signals an exhausted request quota for an identity.
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrModerationRejected signals content flagged by the moderation gate.
	ErrModerationRejected = errors.New("content flagged as inappropriate")
	// ErrConfiguration signals an operator-fixable misconfiguration (e.g. missing credential).
	ErrConfiguration = errors.New("service misconfigured")
	// ErrUpstream signals a failure of the external moderation/generation capability.
	ErrUpstream = errors.New("upstream error")
)

// ModerationRejectionError wraps ErrModerationRejected with the matched categories.
type ModerationRejectionError struct {
	Categories []string
}

func (e *ModerationRejectionError) Error() string {
	return "Content flagged as inappropriate: " + strings.Join(e.Categories, ", ")
}

func (e *ModerationRejectionError) Unwrap() error { return ErrModerationRejected }

// NewModerationRejection creates a moderation rejection naming the flagged categories.
func NewModerationRejection(categories []string) error {
	return &ModerationRejectionError{Categories: categories}
}

// UpstreamError wraps ErrUpstream with the raw upstream status for diagnostics.
// Message must never carry credentials.
type UpstreamError struct {
	Status  string
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: status %q: %s", ErrUpstream.Error(), e.Status, e.Message)
	}
	return fmt.Sprintf("%s: status %q", ErrUpstream.Error(), e.Status)
}

func (e *UpstreamError) Unwrap() error { return ErrUpstream }

// NewUpstreamError creates an upstream failure carrying the raw status.
func NewUpstreamError(status, message string) error {
	return &UpstreamError{Status: status, Message: message}
}
