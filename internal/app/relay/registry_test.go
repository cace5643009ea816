package relay

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msgrelay/internal/app/user"
)

// registerUser registers name with a fresh mailbox, failing the test on error.
func registerUser(t *testing.T, r *Registry, name string) (user.User, *Mailbox) {
	t.Helper()

	m := NewMailbox()
	u, err := r.TryRegister(name, m)
	require.NoError(t, err)
	return u, m
}

func TestTryRegisterConcurrentUniqueness(t *testing.T) {
	r := NewRegistry()

	const attempts = 32

	var wg sync.WaitGroup
	var successes atomic.Int32

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := r.TryRegister("highlander", NewMailbox())
			if err == nil {
				successes.Add(1)
			} else {
				assert.ErrorIs(t, err, ErrNameTaken)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, successes.Load())
	assert.Equal(t, []string{"highlander"}, r.ListNames())
}

func TestTryRegisterAssignsUniqueIDs(t *testing.T) {
	r := NewRegistry()

	alice, _ := registerUser(t, r, "alice")
	bob, _ := registerUser(t, r, "bob")

	assert.NotEqual(t, alice.ID, bob.ID)
	assert.Equal(t, "alice", alice.Username)
}

func TestRemoveIsIdempotent(t *testing.T) {
	r := NewRegistry()
	registerUser(t, r, "alice")
	registerUser(t, r, "bob")

	r.Remove("alice")
	r.Remove("alice")
	r.Remove("never-joined")

	assert.Equal(t, []string{"bob"}, r.ListNames())
}

func TestLookup(t *testing.T) {
	r := NewRegistry()
	registerUser(t, r, "alice")

	tests := []struct {
		name    string
		lookup  string
		wantErr error
	}{
		{name: "registered user", lookup: "alice", wantErr: nil},
		{name: "unknown user", lookup: "carol", wantErr: ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := r.Lookup(tt.lookup)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.lookup, u.Username)
		})
	}
}

func TestLookupReturnsUsableHandle(t *testing.T) {
	r := NewRegistry()
	_, aliceBox := registerUser(t, r, "alice")

	u, err := r.Lookup("alice")
	require.NoError(t, err)
	require.NoError(t, u.Outbox.Put("through the handle"))

	assert.Equal(t, []string{"through the handle"}, drain(aliceBox))
}

func TestListNamesSortedSnapshot(t *testing.T) {
	r := NewRegistry()
	registerUser(t, r, "carol")
	registerUser(t, r, "alice")
	registerUser(t, r, "bob")

	assert.Equal(t, []string{"alice", "bob", "carol"}, r.ListNames())
}

func TestBroadcastReachesAllCurrentMembers(t *testing.T) {
	r := NewRegistry()
	_, aliceBox := registerUser(t, r, "alice")
	_, bobBox := registerUser(t, r, "bob")
	_, carolBox := registerUser(t, r, "carol")

	r.Broadcast("hello")

	assert.Equal(t, []string{"hello"}, drain(aliceBox))
	assert.Equal(t, []string{"hello"}, drain(bobBox))
	assert.Equal(t, []string{"hello"}, drain(carolBox))
}

func TestBroadcastSkipsClosedMailbox(t *testing.T) {
	r := NewRegistry()
	_, aliceBox := registerUser(t, r, "alice")
	_, bobBox := registerUser(t, r, "bob")

	bobBox.Close()
	r.Broadcast("hello")

	assert.Equal(t, []string{"hello"}, drain(aliceBox))
	assert.Empty(t, drain(bobBox))
}

func TestShutdownClosesAllMailboxes(t *testing.T) {
	r := NewRegistry()
	_, aliceBox := registerUser(t, r, "alice")
	_, bobBox := registerUser(t, r, "bob")

	r.Shutdown()

	assert.ErrorIs(t, aliceBox.Put("late"), ErrMailboxClosed)
	assert.ErrorIs(t, bobBox.Put("late"), ErrMailboxClosed)
	assert.Empty(t, r.ListNames())
}

func TestFullMailboxDoesNotBlockRegistry(t *testing.T) {
	r := NewRegistry()
	_, slowBox := registerUser(t, r, "slow")
	bob, bobBox := registerUser(t, r, "bob")

	// the slow peer stops draining and its mailbox fills up
	for i := 0; i < MailboxCapacity; i++ {
		require.NoError(t, slowBox.Put("backlog"))
	}

	done := make(chan struct{})
	go func() {
		defer close(done)

		_, err := r.TryRegister("carol", NewMailbox())
		assert.NoError(t, err)
		_, err = r.Lookup("slow")
		assert.NoError(t, err)
		r.Remove("carol")
		assert.NoError(t, bob.Outbox.Put("direct"))
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("registry operations blocked behind a full mailbox")
	}

	assert.Equal(t, []string{"direct"}, drain(bobBox))
}
