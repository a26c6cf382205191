package network

// clientMessage pairs an inbound message with the client that sent it, so
// the Hub can hand both to the EventHandler.
type clientMessage struct {
	client *Client
	msg    Message
}

// Hub owns the set of connected clients and routes every connection event
// and inbound message to the EventHandler. The clients map is touched only
// by the Hub goroutine.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client

	// incoming is fed by every client's readLoop.
	incoming chan clientMessage

	handler EventHandler
}

func NewHub(handler EventHandler) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan clientMessage),
		handler:    handler,
	}
}

// Run is the Hub's event loop. It is the single execution context for all
// game-logic callbacks: events are handled strictly in arrival order.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.handler.OnConnect(client)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.closeSend()
				h.handler.OnDisconnect(client)
			}

		case clientMsg := <-h.incoming:
			h.handler.OnMessage(clientMsg.client, clientMsg.msg)
		}
	}
}
