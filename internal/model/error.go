package model

import "errors"

var (
	// ErrVerificationRejected: the processor did not confirm the notification.
	ErrVerificationRejected = errors.New("verification rejected")
	// ErrBusinessRule: a verified event failed currency, merchant, status or fee checks.
	ErrBusinessRule = errors.New("business rule violation")
	// ErrTransient marks failures that are retried on the next cycle.
	ErrTransient = errors.New("transient external failure")
	// ErrMalformedRecord: remote data is missing a field or cannot be parsed.
	ErrMalformedRecord = errors.New("malformed remote record")
	// ErrPersistence: the ledger could not be written; nothing is committed.
	ErrPersistence   = errors.New("ledger persistence failed")
	ErrDuplicateID   = errors.New("duplicate id")
	ErrLockHeld      = errors.New("job lock held by another instance")
	ErrUnknownKind   = errors.New("unknown entity kind")
	ErrInvalidConfig = errors.New("invalid configuration")
)
