/*
Package relay implements the connection-lifecycle and message-routing core
of the chat server: the per-connection actor that decouples inbound and
outbound I/O, the shared user registry, the line router, and the session
supervisor that drives one connection from negotiation to closure.
*/
package relay

import "sync"

// MailboxCapacity bounds the number of pending outbound payloads per
// connection. A full mailbox blocks producers instead of dropping, so
// enqueue order toward a slow peer is preserved.
const MailboxCapacity = 100

// Mailbox is the bounded, ordered queue of outbound text payloads for one
// connection. Any number of producers (router deliveries, broadcasts,
// lifecycle announcements) enqueue through Put; the connection's actor is
// the single consumer.
type Mailbox struct {
	ch        chan string
	done      chan struct{}
	closeOnce sync.Once
}

// NewMailbox creates an open mailbox with capacity MailboxCapacity.
func NewMailbox() *Mailbox {
	return &Mailbox{
		ch:   make(chan string, MailboxCapacity),
		done: make(chan struct{}),
	}
}

// Put enqueues text for delivery, blocking while the mailbox is full.
// It returns ErrMailboxClosed once the mailbox has been closed, including
// when Close releases a blocked producer.
func (m *Mailbox) Put(text string) error {
	select {
	case <-m.done:
		return ErrMailboxClosed
	default:
	}

	select {
	case m.ch <- text:
		return nil
	case <-m.done:
		return ErrMailboxClosed
	}
}

// Close marks the mailbox closed and releases any blocked producers.
// Payloads already queued remain available to the consumer. Close is
// idempotent.
func (m *Mailbox) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
	})
}
