package entity

import "errors"

// Rejected mutations surface as typed errors so callers cannot silently
// ignore them.
var (
	ErrNegativePoints   = errors.New("points amount must not be negative")
	ErrInsufficientRank = errors.New("verification level below sevak")
	ErrAlreadyAttending = errors.New("user already attends this event")
	ErrNotAttending     = errors.New("user does not attend this event")
	ErrNotAuthorized    = errors.New("identity lacks the required capability")
	ErrLevelDowngrade   = errors.New("verification level may only increase")
	ErrInvalidLevel     = errors.New("unknown verification level")
)
