package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"portmon/internal/combat"
	"portmon/internal/logging"
)

const (
	sendBuffer = 256
	writeWait  = 10 * time.Second
)

type wsMsg struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// client is one websocket watching a session. Only writeLoop writes to
// the connection.
type client struct {
	conn    *websocket.Conn
	session *Session
	send    chan wsMsg
	done    chan struct{}
	once    sync.Once
}

func newClient(conn *websocket.Conn, s *Session) *client {
	return &client{conn: conn, session: s, send: make(chan wsMsg, sendBuffer), done: make(chan struct{})}
}

// push queues m without blocking. A client that cannot keep up is dropped.
func (c *client) push(m wsMsg) {
	select {
	case c.send <- m:
	case <-c.done:
	default:
		logging.Info("dropping slow websocket client", logging.Fields{"session": c.session.ID})
		c.stop()
	}
}

func (c *client) onEvent(ev combat.Event) { c.push(wsMsg{Type: "event", Data: ev}) }

func (c *client) stop() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}

// writeLoop sends queued messages and follows each burst of events with
// a fresh snapshot.
func (c *client) writeLoop() {
	defer c.stop()
	if err := c.write(wsMsg{Type: "snapshot", Data: c.session.Battle.Snapshot()}); err != nil {
		return
	}
	for {
		select {
		case m := <-c.send:
			if err := c.write(m); err != nil {
				return
			}
			if m.Type == "event" && len(c.send) == 0 {
				if err := c.write(wsMsg{Type: "snapshot", Data: c.session.Battle.Snapshot()}); err != nil {
					return
				}
			}
		case <-c.done:
			return
		}
	}
}

func (c *client) write(m wsMsg) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(m)
}

type clientIn struct {
	Type string    `json:"type"`
	Data inputBody `json:"data"`
}

// readLoop applies inputs from the socket until it closes.
func (c *client) readLoop() {
	defer c.stop()
	for {
		var in clientIn
		if err := c.conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Error("websocket read", err, logging.Fields{"session": c.session.ID})
			}
			return
		}
		c.session.touch(time.Now())
		ok, err := apply(c.session.Battle, in.Type, in.Data)
		if err != nil {
			c.push(wsMsg{Type: "error", Data: err.Error()})
			continue
		}
		if !ok {
			c.push(wsMsg{Type: "rejected", Data: in.Type})
		}
	}
}
