package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vncsmyrnk/votemap/internal/core/domain"
	"github.com/vncsmyrnk/votemap/internal/core/ports"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type action string

const (
	actionSubscribe   action = "subscribe"
	actionUnsubscribe action = "unsubscribe"
)

type clientFrame struct {
	Action  action `json:"action"`
	TopicID int64  `json:"topic_id"`
}

type errorFrame struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}

// client is one WebSocket connection. The hub only ever calls Deliver; the
// read and write pumps own the connection.
type client struct {
	conn   *websocket.Conn
	hub    ports.SubscriptionHub
	send   chan any
	logger *slog.Logger

	closeOnce sync.Once
	done      chan struct{}
}

func newClient(conn *websocket.Conn, hub ports.SubscriptionHub, buffer int, logger *slog.Logger) *client {
	return &client{
		conn:   conn,
		hub:    hub,
		send:   make(chan any, buffer),
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Deliver queues event without blocking. A full buffer means the client is
// too slow; the connection is closed and false is returned.
func (c *client) Deliver(event domain.Event) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- event:
		return true
	default:
		c.close()
		return false
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// readPump handles subscribe and unsubscribe frames until the peer goes away.
func (c *client) readPump() {
	defer func() {
		c.hub.Remove(c)
		c.close()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket closed unexpectedly", "error", err)
			}
			return
		}

		var frame clientFrame
		if err := json.Unmarshal(data, &frame); err != nil || frame.TopicID <= 0 {
			c.reply(errorFrame{Event: "error", Message: "expected {\"action\":\"subscribe\",\"topic_id\":<id>}"})
			continue
		}

		switch frame.Action {
		case actionSubscribe:
			c.hub.Subscribe(c, frame.TopicID)
		case actionUnsubscribe:
			c.hub.Unsubscribe(c, frame.TopicID)
		default:
			c.reply(errorFrame{Event: "error", Message: "unknown action"})
		}
	}
}

func (c *client) reply(frame any) {
	select {
	case c.send <- frame:
	default:
	}
}

// writePump is the only writer on the connection.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				c.close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
