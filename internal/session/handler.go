package session

import (
	"encoding/json"
	"log"

	"cityduel/internal/network"
	"cityduel/internal/session/message"
)

// CommandHandlerFunc is the signature shared by all inbound command
// handlers: the game handler, the caller's connection state and the raw
// payload still to be decoded.
type CommandHandlerFunc func(h *GameHandler, cs *clientSession, payload json.RawMessage)

// clientSession is what the handler knows about one connection: which match
// it joined, if any. The connection id doubles as the player id.
type clientSession struct {
	client  *network.Client
	matchID string
}

// GameHandler implements network.EventHandler and is the session lifecycle
// controller: it binds connections to matches and routes commands into
// them. All callbacks run on the hub goroutine, so the sessions map needs
// no lock.
type GameHandler struct {
	registry *Registry
	sessions map[*network.Client]*clientSession
	router   map[string]CommandHandlerFunc
}

// NewGameHandler builds the handler and registers the command router.
func NewGameHandler(registry *Registry) *GameHandler {
	h := &GameHandler{
		registry: registry,
		sessions: make(map[*network.Client]*clientSession),
		router:   make(map[string]CommandHandlerFunc),
	}
	h.registerMatchHandlers()
	return h
}

// OnConnect tracks the new connection. Players identify a match explicitly
// in their commands, so there is nothing to send yet.
func (h *GameHandler) OnConnect(c *network.Client) {
	h.sessions[c] = &clientSession{client: c}
	log.Printf("[GameHandler] client %s connected (%d online)", c.ID(), len(h.sessions))
}

// OnDisconnect removes the departed player from its match and tears the
// match down when it empties out. A lone remaining player keeps playing;
// the round deadline takes care of unanswered turns.
func (h *GameHandler) OnDisconnect(c *network.Client) {
	cs, ok := h.sessions[c]
	if !ok {
		return
	}
	if cs.matchID != "" {
		if m, found := h.registry.Get(cs.matchID); found {
			if remaining := m.Leave(c.ID()); remaining == 0 {
				h.registry.Remove(cs.matchID)
				log.Printf("[GameHandler] match %s emptied, removed", cs.matchID)
			}
		}
	}
	delete(h.sessions, c)
	log.Printf("[GameHandler] client %s disconnected (%d online)", c.ID(), len(h.sessions))
}

// OnMessage dispatches a command to its handler. Unknown commands earn the
// sender an error; a missing session is silently ignored.
func (h *GameHandler) OnMessage(c *network.Client, msg network.Message) {
	cs, ok := h.sessions[c]
	if !ok {
		return
	}
	handler, found := h.router[msg.Type]
	if !found {
		message.SendError(cs.client, "unknown command: %s", msg.Type)
		return
	}
	handler(h, cs, msg.Payload)
}
