package network

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Server upgrades HTTP requests into websocket clients and feeds them to the
// Hub. The HTTP routing itself lives with the caller; the server only
// provides the upgrade handler.
type Server struct {
	hub *Hub
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers connect from anywhere; identity is the connection itself.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// NewServer creates a server whose events are delivered to handler.
func NewServer(handler EventHandler) *Server {
	return &Server{hub: NewHub(handler)}
}

// Start launches the Hub goroutine. Call once, before serving connections.
func (s *Server) Start() {
	go s.hub.Run()
}

// WSHandler is the websocket entry point. Each accepted connection gets a
// fresh opaque id and its own read/write goroutines.
func (s *Server) WSHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Network] websocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		id:   uuid.NewString(),
		conn: conn,
		hub:  s.hub,
		send: make(chan Message, 256),
	}

	client.hub.register <- client

	go client.writeLoop()
	go client.readLoop()
}
