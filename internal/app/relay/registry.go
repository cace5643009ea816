package relay

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"msgrelay/internal/app/user"
	"msgrelay/internal/pkg/logx"
)

// Registry is the single source of truth for who is currently connected.
// Every operation serializes through one mutex. The mutex is never held
// across an enqueue: Put can block on a full mailbox, and one slow receiver
// must not stall routing for everyone else.
type Registry struct {
	mu     sync.Mutex
	users  map[string]user.User
	logger zerolog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	registryLogger := logx.Logger().With().Str("component", "registry").Logger()

	return &Registry{
		users:  make(map[string]user.User),
		logger: registryLogger,
	}
}

// TryRegister atomically checks name uniqueness and inserts. Under
// concurrent attempts with the same name exactly one caller wins; the rest
// get ErrNameTaken and the registry is left untouched.
func (r *Registry) TryRegister(name string, outbox user.Outbox) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[name]; exists {
		r.logger.Debug().Str("username", name).Msg("Registration rejected, name in use")
		return user.User{}, ErrNameTaken
	}

	u := user.User{
		ID:       uuid.New(),
		Username: name,
		Outbox:   outbox,
	}
	r.users[name] = u

	r.logger.Info().
		Str("username", name).
		Str("user_id", u.ID.String()).
		Int("total_users", len(r.users)).
		Msg("User registered")

	return u, nil
}

// Lookup returns a copy of the named user's handle, or ErrUserNotFound.
func (r *Registry) Lookup(name string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[name]
	if !ok {
		return user.User{}, ErrUserNotFound
	}

	return u, nil
}

// Remove deregisters name. Removing an absent name is a no-op, which covers
// races between an explicit leave and duplicate cleanup.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[name]; !ok {
		return
	}

	delete(r.users, name)

	r.logger.Info().
		Str("username", name).
		Int("total_users", len(r.users)).
		Msg("User removed")
}

// ListNames returns a sorted snapshot of the registered names.
func (r *Registry) ListNames() []string {
	r.mu.Lock()
	names := make([]string, 0, len(r.users))
	for name := range r.users {
		names = append(names, name)
	}
	r.mu.Unlock()

	sort.Strings(names)
	return names
}

// Broadcast enqueues text to every user registered at the moment of the
// snapshot. Delivery is best effort: users joining or leaving mid-broadcast
// may or may not receive it, and a closed mailbox is skipped.
func (r *Registry) Broadcast(text string) {
	r.mu.Lock()
	targets := make([]user.User, 0, len(r.users))
	for _, u := range r.users {
		targets = append(targets, u)
	}
	r.mu.Unlock()

	for _, u := range targets {
		if err := u.Outbox.Put(text); err != nil {
			r.logger.Debug().
				Err(err).
				Str("username", u.Username).
				Msg("Broadcast delivery skipped")
		}
	}
}

// Shutdown closes every registered mailbox so the outbound drains exit,
// then clears the registry. Used during graceful server shutdown; sessions
// finish their own cleanup when their transports close.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	targets := make([]user.User, 0, len(r.users))
	for _, u := range r.users {
		targets = append(targets, u)
	}
	r.users = make(map[string]user.User)
	r.mu.Unlock()

	for _, u := range targets {
		u.Outbox.Close()
	}

	r.logger.Info().Int("closed", len(targets)).Msg("Registry shut down")
}
