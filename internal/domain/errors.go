package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	// ErrUserNotFound means the people database has no record for the
	// handle. Distinct from a present user with zero channels, which is
	// an empty result, not an error.
	ErrUserNotFound = errors.New("user not found")

	// ErrMissingUsername means the transport-level identity has no
	// public handle, so the people database cannot be queried at all.
	ErrMissingUsername = errors.New("account has no public username")
)

// ReadFailureKind classifies a failed remote collection read.
type ReadFailureKind string

const (
	ReadFailureNetwork   ReadFailureKind = "transient-network"
	ReadFailureServer    ReadFailureKind = "transient-server"
	ReadFailureMalformed ReadFailureKind = "malformed-response"
)

// RemoteReadError is a failed query against the content store. The
// reader never retries; callers decide what to surface.
type RemoteReadError struct {
	Kind     ReadFailureKind
	Database string
	Status   int
	Err      error
}

func (e *RemoteReadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("remote read %s (%s, status %d): %v", e.Database, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("remote read %s (%s): %v", e.Database, e.Kind, e.Err)
}

func (e *RemoteReadError) Unwrap() error { return e.Err }

// DeliveryError means both addressing forms of a channel id were
// rejected by the chat transport.
type DeliveryError struct {
	ChannelID string
	First     error
	Second    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery to channel %s failed: %v; broadcast form: %v", e.ChannelID, e.First, e.Second)
}

func (e *DeliveryError) Unwrap() error { return e.Second }
