package network

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Ping period must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Inbound messages are short JSON commands; anything bigger is abuse.
	maxMessageSize = 64 * 1024
)

// Client is the server-side representation of one connected player: the
// websocket connection plus its outbound queue. The opaque id is the only
// identity the game layer ever sees.
type Client struct {
	id   string
	conn *websocket.Conn
	hub  *Hub

	// mu orders Send against closeSend: timers and evaluation goroutines
	// enqueue messages while the hub goroutine tears the client down.
	mu     sync.Mutex
	closed bool

	// Buffered so a broadcast never blocks on a slow reader.
	send chan Message
}

// ID returns the opaque per-connection identifier.
func (c *Client) ID() string {
	return c.id
}

// Send enqueues a message for the writeLoop without ever blocking or
// panicking. Reports whether the message was queued; a departed client or a
// saturated buffer drops it.
func (c *Client) Send(msg Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// closeSend marks the client dead and closes the outbound queue, stopping
// the writeLoop. Only the hub calls this; Send stays safe afterwards.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Client) readLoop() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Network] unexpected close from client %s: %v", c.id, err)
			}
			break
		}
		c.hub.incoming <- clientMessage{client: c, msg: msg}
	}
}

// writeLoop pumps messages from the send channel to the websocket and keeps
// the connection alive with periodic pings.
func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The Hub closed the channel: the client was unregistered.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				log.Printf("[Network] write error on client %s: %v", c.id, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
