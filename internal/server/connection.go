package server

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/drawpoker/internal/protocol"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Replies queued per connection before it is considered stuck
	sendBufferSize = 256
)

var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrSendBufferFull   = errors.New("send buffer full")
)

// Connection is a newline framed TCP client.
type Connection struct {
	id        string
	conn      net.Conn
	send      chan string
	done      chan struct{}
	closeOnce sync.Once
	maxBytes  int
	logger    *log.Logger
	clock     quartz.Clock
	opened    time.Time
}

func newConnection(conn net.Conn, maxBytes int, logger *log.Logger, clock quartz.Clock) *Connection {
	id := uuid.NewString()
	return &Connection{
		id:       id,
		conn:     conn,
		send:     make(chan string, sendBufferSize),
		done:     make(chan struct{}),
		maxBytes: maxBytes,
		logger:   logger.WithPrefix("conn").With("peer", id),
		clock:    clock,
		opened:   clock.Now(),
	}
}

func (c *Connection) ID() string { return c.id }

func (c *Connection) RemoteAddr() string { return c.conn.RemoteAddr().String() }

// Send queues msg for the write pump. A connection that cannot keep up is
// closed rather than stalling the event loop.
func (c *Connection) Send(msg string) error {
	select {
	case <-c.done:
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrSendBufferFull
	}
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.conn.Close()
		c.logger.Debug("Connection closed", "duration", c.clock.Since(c.opened).Round(time.Millisecond))
	})
	return err
}

// readPump feeds every complete line to the server until the peer goes away
// or sends an oversized frame.
func (c *Connection) readPump(s *Server) {
	defer func() {
		_ = c.Close()
		s.submit(event{kind: eventDisconnect, peer: c})
	}()

	scanner := protocol.NewScanner(c.conn, c.maxBytes)
	for scanner.Scan() {
		if !s.submit(event{kind: eventMessage, peer: c, line: scanner.Text()}) {
			return
		}
	}

	err := scanner.Err()
	switch {
	case protocol.IsFrameTooLong(err):
		c.logger.Warn("Frame too long, closing connection", "limit", c.maxBytes)
	case err != nil && !errors.Is(err, net.ErrClosed):
		c.logger.Debug("Read failed", "error", err)
	}
}

// writePump writes queued replies until the connection closes.
func (c *Connection) writePump() {
	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if _, err := c.conn.Write(protocol.Frame(msg)); err != nil {
				c.logger.Debug("Failed to write message", "error", err)
				_ = c.Close()
				return
			}
		case <-c.done:
			return
		}
	}
}
