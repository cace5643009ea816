/*
Package user contains the core identity type for chat participants.

A User couples a registered display name with the capability to enqueue
outbound text for that participant's connection. The handle is a plain
value: copying it is cheap and every copy points at the same outbox.
*/
package user

import "github.com/google/uuid"

// Outbox is the capability to enqueue outbound text payloads for one
// participant's connection. An implementation reports a closed outbox with
// an error; callers treat that as "recipient unreachable" and move on.
type Outbox interface {
	// Put enqueues one text payload, blocking while the outbox is full.
	Put(text string) error

	// Close revokes the capability. Pending payloads may still be drained.
	Close()
}

// User represents one registered chat participant.
type User struct {
	// ID uniquely identifies the user. Assigned once at registration.
	ID uuid.UUID

	// Username is the display name and the registry key. Immutable for the
	// duration of the session.
	Username string

	// Outbox enqueues outbound text for this user's connection.
	Outbox Outbox
}
