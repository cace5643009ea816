package relay

import (
	"errors"
	"net"
	"time"

	"github.com/rs/zerolog"
)

// pingPeriod is the heartbeat interval for the outbound drain loop. It must
// be shorter than the transport's read deadline so pongs arrive in time
// (the WebSocket adapter waits 60 seconds).
const pingPeriod = 54 * time.Second

// Conn is the duplex text-frame stream a session runs over. The transport
// layer (WebSocket upgrade, framing, deadlines) supplies the implementation;
// the core only ever reads and writes whole text frames.
type Conn interface {
	// ReadText blocks for the next inbound text frame. Any error, including
	// a normal peer close, is terminal for the stream.
	ReadText() (string, error)

	// WriteText writes one outbound text frame. A dead connection is
	// reported with an error wrapping net.ErrClosed; any other error means
	// only that single frame failed.
	WriteText(text string) error

	// Ping sends a transport-level heartbeat.
	Ping() error

	// Close tears down the underlying connection.
	Close() error
}

// Actor owns the outbound half of one connection. It drains the mailbox
// onto the conn so that a slow or blocked peer never stalls the registry
// or other users' deliveries.
type Actor struct {
	conn    Conn
	mailbox *Mailbox
	logger  zerolog.Logger
	done    chan struct{}
}

// NewActor pairs a connection's write side with its mailbox.
func NewActor(conn Conn, mailbox *Mailbox, logger zerolog.Logger) *Actor {
	return &Actor{
		conn:    conn,
		mailbox: mailbox,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

// Run drains the mailbox onto the connection until the mailbox is closed
// and empty. A failed write is logged and skipped; only a dead connection
// ends the loop early. Run is meant for its own goroutine; on exit it
// closes the mailbox so producers stop blocking, and closes the connection.
func (a *Actor) Run() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		a.mailbox.Close()

		if err := a.conn.Close(); err != nil {
			a.logger.Debug().Err(err).Msg("Connection close after outbound drain")
		}

		close(a.done)
	}()

	for {
		select {
		case text := <-a.mailbox.ch:
			if !a.write(text) {
				return
			}

		case <-a.mailbox.done:
			a.flush()
			return

		case <-ticker.C:
			if err := a.conn.Ping(); err != nil {
				a.logger.Info().Err(err).Msg("Heartbeat failed, stopping outbound drain")
				return
			}
		}
	}
}

// Wait blocks until Run has finished.
func (a *Actor) Wait() {
	<-a.done
}

// flush writes out whatever was queued before the mailbox closed.
func (a *Actor) flush() {
	for {
		select {
		case text := <-a.mailbox.ch:
			if !a.write(text) {
				return
			}
		default:
			return
		}
	}
}

// write reports false only when the connection itself is gone.
func (a *Actor) write(text string) bool {
	err := a.conn.WriteText(text)
	if err == nil {
		return true
	}

	if errors.Is(err, net.ErrClosed) {
		a.logger.Info().Err(err).Msg("Connection closed, stopping outbound drain")
		return false
	}

	a.logger.Warn().Err(err).Msg("Dropped one outbound frame")
	return true
}
