package services

import (
	"errors"
	"fmt"
)

// Sentinel errors the handlers map onto HTTP status codes.
var (
	ErrEventNotFound        = errors.New("event not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrMarathonNotFound     = errors.New("marathon registration not found")
	ErrMediaNotFound        = errors.New("media not found")
	ErrAdminNotFound        = errors.New("admin not found")

	ErrRegistrationClosed = errors.New("registration is closed for this event")
	ErrEventFull          = errors.New("event has reached maximum participants")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrSelfDelete         = errors.New("cannot delete your own account")

	ErrEventHasRegistrations = errors.New("event has registrations; archive it instead of deleting")
)

// DuplicateRegistrationError reports an (event, email) or marathon email conflict
// and carries the existing registration number so the response can echo it.
type DuplicateRegistrationError struct {
	RegistrationNumber string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("already registered with registration number %s", e.RegistrationNumber)
}

// CategoryConflictError identifies the event already occupying a sport category.
type CategoryConflictError struct {
	EventID   string
	EventName string
	Category  string
}

func (e *CategoryConflictError) Error() string {
	return fmt.Sprintf("an event for category %q already exists: %s (%s)", e.Category, e.EventName, e.EventID)
}

// RequestContext carries per-request audit data into the intake services instead
// of reading ambient HTTP state inside business logic.
type RequestContext struct {
	IPAddress string
	UserAgent string
}
