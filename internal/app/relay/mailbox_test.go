package relay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain empties a mailbox without blocking and returns what was queued.
func drain(m *Mailbox) []string {
	var out []string
	for {
		select {
		case text := <-m.ch:
			out = append(out, text)
		default:
			return out
		}
	}
}

func TestMailboxPreservesOrder(t *testing.T) {
	m := NewMailbox()

	require.NoError(t, m.Put("one"))
	require.NoError(t, m.Put("two"))
	require.NoError(t, m.Put("three"))

	assert.Equal(t, []string{"one", "two", "three"}, drain(m))
}

func TestMailboxPutAfterClose(t *testing.T) {
	m := NewMailbox()
	m.Close()

	assert.ErrorIs(t, m.Put("late"), ErrMailboxClosed)
}

func TestMailboxCloseIsIdempotent(t *testing.T) {
	m := NewMailbox()

	m.Close()
	m.Close()

	assert.ErrorIs(t, m.Put("late"), ErrMailboxClosed)
}

func TestMailboxQueuedPayloadsSurviveClose(t *testing.T) {
	m := NewMailbox()

	require.NoError(t, m.Put("queued"))
	m.Close()

	assert.Equal(t, []string{"queued"}, drain(m))
}

func TestMailboxCloseReleasesBlockedProducer(t *testing.T) {
	m := NewMailbox()
	for i := 0; i < MailboxCapacity; i++ {
		require.NoError(t, m.Put("fill"))
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- m.Put("overflow")
	}()

	select {
	case err := <-errCh:
		t.Fatalf("Put on a full mailbox returned early: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	m.Close()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrMailboxClosed)
	case <-time.After(time.Second):
		t.Fatal("blocked Put was not released by Close")
	}
}

func TestMailboxConsumerReleasesBlockedProducer(t *testing.T) {
	m := NewMailbox()
	for i := 0; i < MailboxCapacity; i++ {
		require.NoError(t, m.Put("fill"))
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- m.Put("overflow")
	}()

	// one consumed slot is enough to unblock the producer
	<-m.ch

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("blocked Put was not released by the consumer")
	}
}
