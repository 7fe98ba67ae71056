package server

import (
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10
)

// wsConnection carries the line protocol over WebSocket text frames. Each
// frame holds one message; a frame with embedded newlines is split into
// several.
type wsConnection struct {
	id        string
	conn      *websocket.Conn
	send      chan string
	done      chan struct{}
	closeOnce sync.Once
	maxBytes  int
	logger    *log.Logger
	clock     quartz.Clock
	opened    time.Time
}

func newWSConnection(conn *websocket.Conn, maxBytes int, logger *log.Logger, clock quartz.Clock) *wsConnection {
	id := uuid.NewString()
	return &wsConnection{
		id:       id,
		conn:     conn,
		send:     make(chan string, sendBufferSize),
		done:     make(chan struct{}),
		maxBytes: maxBytes,
		logger:   logger.WithPrefix("ws").With("peer", id),
		clock:    clock,
		opened:   clock.Now(),
	}
}

func (c *wsConnection) ID() string { return c.id }

func (c *wsConnection) RemoteAddr() string { return c.conn.RemoteAddr().String() }

func (c *wsConnection) Send(msg string) error {
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

func (c *wsConnection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		err = c.conn.Close()
		c.logger.Debug("Connection closed", "duration", c.clock.Since(c.opened).Round(time.Millisecond))
	})
	return err
}

func (c *wsConnection) readPump(s *Server) {
	defer func() {
		_ = c.Close()
		s.submit(event{kind: eventDisconnect, peer: c})
	}()

	c.conn.SetReadLimit(int64(c.maxBytes))
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		kind, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Debug("WebSocket error", "error", err)
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		for _, line := range strings.Split(strings.TrimRight(string(data), "\r\n"), "\n") {
			if !s.submit(event{kind: eventMessage, peer: c, line: strings.TrimSuffix(line, "\r")}) {
				return
			}
		}
	}
}

func (c *wsConnection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				c.logger.Debug("Failed to write message", "error", err)
				_ = c.Close()
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = c.Close()
				return
			}

		case <-c.done:
			return
		}
	}
}
