package auth

import "errors"

// Failure taxonomy. Validation failures never reach the network; everything
// else wraps the underlying client error so status and server message
// survive for display.
var (
	// ErrInvalidInput means phone/password failed client-side format checks.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials means the API rejected a phone+password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateIdentity means the phone is already registered.
	ErrDuplicateIdentity = errors.New("phone already registered")

	// ErrInvalidCode means the API rejected a one-time code.
	ErrInvalidCode = errors.New("invalid code")

	// ErrNoPendingChallenge means the verification handle does not match
	// the outstanding challenge (none exists, or it was superseded).
	ErrNoPendingChallenge = errors.New("no pending verification")

	// ErrExpiredChallenge means the outstanding challenge outlived its TTL.
	ErrExpiredChallenge = errors.New("verification expired")

	// ErrDispatch means the one-time code could not be dispatched
	// (transport failure or bounded-wait timeout).
	ErrDispatch = errors.New("could not send code")
)
