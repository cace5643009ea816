package relay

import (
	"strings"

	"github.com/rs/zerolog"

	"msgrelay/internal/app/user"
	"msgrelay/internal/pkg/logx"
)

const (
	// TargetDelimiter separates target from body in an inbound frame.
	TargetDelimiter = "::"

	// BroadcastTarget addresses every registered user.
	BroadcastTarget = "all"
)

// Router interprets inbound lines from registered users and resolves each
// to at most one delivery action. Every routing failure is logged and
// dropped; none of them may end the sender's session.
type Router struct {
	registry *Registry
	logger   zerolog.Logger
}

// NewRouter creates a router over the given registry.
func NewRouter(registry *Registry) *Router {
	routerLogger := logx.Logger().With().Str("component", "router").Logger()

	return &Router{
		registry: registry,
		logger:   routerLogger,
	}
}

// Route handles one inbound line from sender. The line splits on the first
// "::" into target and body. Target "all" fans out to every registered
// user; anything else is a directed delivery, confirmed back to the sender
// as "<target>: <body>". An unknown recipient is dropped without any
// delivery. The returned error describes why a line went nowhere; callers
// may ignore it.
func (rt *Router) Route(sender user.User, line string) error {
	target, body, found := strings.Cut(line, TargetDelimiter)
	if !found {
		rt.logger.Warn().
			Str("from", sender.Username).
			Msg("Dropped frame without target delimiter")
		return ErrMalformedMessage
	}

	if target == BroadcastTarget {
		rt.registry.Broadcast(body)
		return nil
	}

	to, err := rt.registry.Lookup(target)
	if err != nil {
		rt.logger.Info().
			Str("from", sender.Username).
			Str("to", target).
			Msg("Dropped message for unknown recipient")
		return err
	}

	if err := to.Outbox.Put(body); err != nil {
		rt.logger.Info().
			Err(err).
			Str("from", sender.Username).
			Str("to", target).
			Msg("Recipient unreachable, message dropped")
		return err
	}

	if err := sender.Outbox.Put(target + ": " + body); err != nil {
		rt.logger.Debug().
			Err(err).
			Str("from", sender.Username).
			Msg("Sender confirmation dropped")
	}

	return nil
}
