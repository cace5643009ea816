package relay

import (
	"strings"

	"github.com/rs/zerolog"

	"msgrelay/internal/app/user"
	"msgrelay/internal/pkg/logx"
)

// rejectionNotice is written during negotiation when the proposed name is
// already registered.
const rejectionNotice = "Username already taken."

// Session supervises the full lifecycle of one connection: name
// negotiation, registration, the concurrent inbound/outbound task pair,
// and deregistration with a departure announcement. A session only moves
// forward; a failure in any phase proceeds toward closure, never back.
type Session struct {
	registry *Registry
	router   *Router
	conn     Conn
	logger   zerolog.Logger
}

// NewSession binds a freshly-accepted connection to the shared registry.
func NewSession(registry *Registry, conn Conn) *Session {
	sessionLogger := logx.Logger().With().Str("component", "session").Logger()

	return &Session{
		registry: registry,
		router:   NewRouter(registry),
		conn:     conn,
		logger:   sessionLogger,
	}
}

// Run drives the session to completion and blocks until both halves of the
// connection have stopped. Every terminal condition is an expected part of
// the lifecycle, so Run has nothing to return.
func (s *Session) Run() {
	mailbox := NewMailbox()

	u, ok := s.negotiate(mailbox)
	if !ok {
		mailbox.Close()
		if err := s.conn.Close(); err != nil {
			s.logger.Debug().Err(err).Msg("Connection close after failed negotiation")
		}
		return
	}

	s.logger = s.logger.With().
		Str("username", u.Username).
		Str("user_id", u.ID.String()).
		Logger()
	s.logger.Info().Msg("Session active")

	actor := NewActor(s.conn, mailbox, s.logger)
	go actor.Run()

	s.registry.Broadcast(u.Username + " has joined the chat")

	s.readLoop(u)

	// Inbound stream ended: stop the outbound drain and wait for it before
	// the departure announcement and deregistration.
	mailbox.Close()
	actor.Wait()

	s.registry.Broadcast(u.Username + " has left the chat")
	s.registry.Remove(u.Username)

	s.logger.Info().Msg("Session closed")
}

// negotiate reads frames until a non-empty one registers as this session's
// name. A name collision gets one rejection notice and ends the session;
// the client reconnects to try another name.
func (s *Session) negotiate(mailbox *Mailbox) (user.User, bool) {
	for {
		frame, err := s.conn.ReadText()
		if err != nil {
			s.logger.Debug().Err(err).Msg("Connection ended during negotiation")
			return user.User{}, false
		}

		name := strings.TrimSpace(frame)
		if name == "" {
			continue
		}

		u, err := s.registry.TryRegister(name, mailbox)
		if err != nil {
			s.logger.Info().Str("username", name).Msg("Negotiation rejected, name in use")

			if werr := s.conn.WriteText(rejectionNotice); werr != nil {
				s.logger.Debug().Err(werr).Msg("Failed to write rejection notice")
			}

			return user.User{}, false
		}

		return u, true
	}
}

// readLoop feeds inbound frames to the router until the transport ends.
// Routing failures are handled inside the router and never end the loop.
func (s *Session) readLoop(u user.User) {
	for {
		line, err := s.conn.ReadText()
		if err != nil {
			s.logger.Info().Msg("Inbound stream ended")
			return
		}

		_ = s.router.Route(u, line)
	}
}
