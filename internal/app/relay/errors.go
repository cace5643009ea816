package relay

import "errors"

// Sentinel errors for the relay core, checked with errors.Is. The chat wire
// protocol is plain text, so these never reach a client as structured data;
// the HTTP layer keeps its own coded errors.
var (
	// ErrNameTaken is returned by TryRegister when the name is already in use.
	ErrNameTaken = errors.New("username already taken")

	// ErrUserNotFound is returned by Lookup for an unregistered name.
	ErrUserNotFound = errors.New("user not found")

	// ErrMailboxClosed reports an enqueue on a mailbox whose outbound drain
	// has already exited. Callers treat it as "recipient unreachable".
	ErrMailboxClosed = errors.New("mailbox closed")

	// ErrMalformedMessage reports an inbound frame without a target delimiter.
	ErrMalformedMessage = errors.New("malformed message")
)
