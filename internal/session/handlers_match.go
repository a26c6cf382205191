package session

import (
	"encoding/json"

	"cityduel/internal/session/message"
)

// Inbound command types.
const (
	cmdCreateMatch  = "CREATE_MATCH"
	cmdJoinMatch    = "JOIN_MATCH"
	cmdSubmitAnswer = "SUBMIT_ANSWER"
)

// handleCreateMatch creates a fresh match and auto-joins the creator. Only
// the creator learns the id; sharing it is up to the frontend.
func handleCreateMatch(h *GameHandler, cs *clientSession, payload json.RawMessage) {
	var req struct {
		Nickname string `json:"nickname"`
	}
	// Nickname is optional; a bad payload just means the default name.
	json.Unmarshal(payload, &req)

	if cs.matchID != "" {
		message.SendError(cs.client, "already in match %s", cs.matchID)
		return
	}

	name := req.Nickname
	if name == "" {
		name = "Player 1"
	}

	m := h.registry.Create("")
	cs.matchID = m.ID
	m.Join(&PlayerState{ID: cs.client.ID(), Name: name}, cs.client)
	cs.client.Send(message.MatchCreated(m.ID))
}

// handleJoinMatch adds the caller to an existing match. Joining is
// idempotent for the same connection, so a duplicate join cannot restart
// the round loop.
func handleJoinMatch(h *GameHandler, cs *clientSession, payload json.RawMessage) {
	var req struct {
		GameID   string `json:"gameId"`
		Nickname string `json:"nickname"`
	}
	if err := json.Unmarshal(payload, &req); err != nil || req.GameID == "" {
		message.SendError(cs.client, "invalid payload: 'gameId' is required")
		return
	}

	// One match per connection. Rejoining the same match stays allowed and
	// idempotent; switching matches would leave a ghost player behind that
	// disconnect cleanup never finds.
	if cs.matchID != "" && cs.matchID != req.GameID {
		message.SendError(cs.client, "already in match %s", cs.matchID)
		return
	}

	m, ok := h.registry.Get(req.GameID)
	if !ok {
		// Only the joining connection hears about it.
		message.SendError(cs.client, "Game not found")
		return
	}

	name := req.Nickname
	if name == "" {
		name = "Player"
	}

	cs.matchID = req.GameID
	m.Join(&PlayerState{ID: cs.client.ID(), Name: name}, cs.client)
}

// handleSubmitAnswer forwards an answer into the match. A missing match is
// a silent no-op, mirroring the rest of the event surface.
func handleSubmitAnswer(h *GameHandler, cs *clientSession, payload json.RawMessage) {
	var req struct {
		GameID string `json:"gameId"`
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		message.SendError(cs.client, "invalid payload: expected 'gameId' and 'answer'")
		return
	}

	m, ok := h.registry.Get(req.GameID)
	if !ok {
		return
	}
	m.SubmitAnswer(cs.client.ID(), req.Answer)
}

func (h *GameHandler) registerMatchHandlers() {
	h.router[cmdCreateMatch] = handleCreateMatch
	h.router[cmdJoinMatch] = handleJoinMatch
	h.router[cmdSubmitAnswer] = handleSubmitAnswer
}
