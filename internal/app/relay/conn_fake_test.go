package relay

import (
	"fmt"
	"io"
	"net"
	"sync"
)

// fakeConn is an in-memory Conn for tests: scripted inbound frames and a
// recorded outbound log.
type fakeConn struct {
	inbound chan string

	mu       sync.Mutex
	outbound []string

	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		inbound: make(chan string, 16),
		closed:  make(chan struct{}),
	}
}

func (c *fakeConn) ReadText() (string, error) {
	select {
	case line, ok := <-c.inbound:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	case <-c.closed:
		return "", net.ErrClosed
	}
}

func (c *fakeConn) WriteText(text string) error {
	select {
	case <-c.closed:
		return fmt.Errorf("fake write: %w", net.ErrClosed)
	default:
	}

	c.mu.Lock()
	c.outbound = append(c.outbound, text)
	c.mu.Unlock()
	return nil
}

func (c *fakeConn) Ping() error {
	return nil
}

func (c *fakeConn) Close() error {
	c.closeOnce.Do(func() {
		close(c.closed)
	})
	return nil
}

// frames returns a copy of everything written so far.
func (c *fakeConn) frames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.outbound...)
}

func (c *fakeConn) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}
