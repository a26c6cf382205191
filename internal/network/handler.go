package network

// EventHandler is the seam between the transport and the game logic. All
// three callbacks are invoked from the Hub goroutine, one at a time, so
// implementations may mutate their own state without extra locking.
type EventHandler interface {
	// OnConnect is called after a client finishes the websocket upgrade.
	OnConnect(c *Client)

	// OnDisconnect is called once when a client goes away, for any reason.
	OnDisconnect(c *Client)

	// OnMessage is called for every inbound message from a client.
	OnMessage(c *Client, msg Message)
}
