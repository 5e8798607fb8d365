package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
)

// Verification-flow sentinels. ErrNoPendingCode covers never-issued,
// expired and already-consumed alike so responses never reveal code
// lifecycle state.
var (
	ErrAlreadyPending    = errors.New("verification code already pending")
	ErrNoPendingCode     = errors.New("no pending verification code")
	ErrInvalidCode       = errors.New("invalid verification code")
	ErrIdentityExists    = errors.New("identity already registered")
	ErrIdentityNotFound  = errors.New("identity not registered")
	ErrDuplicateIdentity = errors.New("duplicate identity")
)
