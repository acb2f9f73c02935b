// Package fault defines the typed domain errors shared by the functional
// core and the service layer. Every rejected command carries a Kind plus the
// offending entity so callers can decide to retry, override, or pick a
// different port.
package fault

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the category of a domain rejection.
type Kind string

const (
	KindSessionAlreadyOpen     Kind = "session_already_open"
	KindSessionAlreadyClosed   Kind = "session_already_closed"
	KindPortConflict           Kind = "port_conflict"
	KindPhotosIncomplete       Kind = "photos_incomplete"
	KindSessionStillOpen       Kind = "session_still_open"
	KindAlreadyStaged          Kind = "already_staged"
	KindTeardownNotStarted     Kind = "teardown_not_started"
	KindTeardownIncomplete     Kind = "teardown_incomplete"
	KindInvalidPhaseTransition Kind = "invalid_phase_transition"
	KindAlreadyCompleted       Kind = "already_completed"
	KindDeploymentArchived     Kind = "deployment_archived"
	KindNotFound               Kind = "not_found"
	KindBusy                   Kind = "busy"
)

// Error is a domain rejection. EntityID names the entity the rejection is
// about (zone code, session id, port key). Offending lists further entity ids
// when the rejection involves a set, e.g. the connections missing photos.
type Error struct {
	Kind      Kind
	EntityID  string
	Reason    string
	Offending []string
}

func (e *Error) Error() string {
	if len(e.Offending) > 0 {
		return fmt.Sprintf("%s (%s)", e.Reason, strings.Join(e.Offending, ", "))
	}
	return e.Reason
}

// New builds a fault with a formatted reason.
func New(kind Kind, entityID, format string, args ...any) *Error {
	return &Error{Kind: kind, EntityID: entityID, Reason: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from an error chain, or "" if the error is not a
// domain fault.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// Retryable reports whether the caller may simply retry the same command.
func Retryable(err error) bool {
	return KindOf(err) == KindBusy
}
