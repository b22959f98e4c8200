package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/coder/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024
)

// Client pumps websocket frames in and out of a session.
type Client struct {
	session  *Session
	conn     *websocket.Conn
	send     chan []byte
	ClientID string
}

func NewClient(s *Session, conn *websocket.Conn, clientID string) *Client {
	return &Client{
		session:  s,
		conn:     conn,
		send:     make(chan []byte, 256),
		ClientID: clientID,
	}
}

// Welcome queues the greeting carrying the session and client ids.
func (c *Client) Welcome() {
	c.Send(&Message{Type: TypeWelcome, SessionID: c.session.ID, ClientID: c.ClientID})
}

// ReadPump forwards each inbound message to the session and queues its
// reply. It returns when the connection or ctx ends.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		close(c.send)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			slog.Debug("read error", "error", err, "client", c.ClientID)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("invalid message", "error", err, "client", c.ClientID)
			c.Send(errorMessage(err))
			continue
		}
		msg.ClientID = c.ClientID

		reply, err := c.session.Do(ctx, &msg)
		if err != nil {
			slog.Debug("session unavailable", "error", err, "client", c.ClientID)
			return
		}
		c.Send(reply)
	}
}

func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				slog.Debug("write error", "error", err, "client", c.ClientID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "error", err)
		return
	}

	select {
	case c.send <- data:
	default:
		slog.Warn("client send buffer full, dropping message", "client", c.ClientID)
	}
}
