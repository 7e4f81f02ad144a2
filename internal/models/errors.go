package models

import "errors"

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotAuthorized is returned when the requester is not a member of
	// the resource they are trying to access.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrInvalidInput is returned for malformed or missing required fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmailTaken is returned when registering an already-used email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAlreadyMatched is returned by the match store when inserting a
	// pair that already has a match. Callers recover by loading the
	// existing match; it is never surfaced to clients.
	ErrAlreadyMatched = errors.New("pair already matched")
)
