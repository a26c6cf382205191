// Package message builds the server -> client event messages. Payload
// shapes here are the wire contract with the frontend.
package message

import (
	"encoding/json"
	"time"

	"cityduel/internal/network"
)

// Outbound event types.
const (
	TypeMatchCreated = "MATCH_CREATED"
	TypePlayerJoined = "PLAYER_JOINED"
	TypeMatchStart   = "MATCH_START"
	TypeNewTurn      = "NEW_TURN"
	TypeTurnResult   = "TURN_RESULT"
	TypeGameOver     = "GAME_OVER"
	TypeError        = "ERROR"
)

// PlayerSummary is the roster entry clients render in scoreboards.
type PlayerSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type matchCreatedPayload struct {
	GameID string `json:"gameId"`
}

type playerJoinedPayload struct {
	Players []PlayerSummary `json:"players"`
}

type newTurnPayload struct {
	TurnIndex       int    `json:"turnIndex"`
	SourceCity      string `json:"sourceCity"`
	DurationSeconds int    `json:"durationSeconds"`
	// ServerTime lets the client reconcile its countdown with the
	// authoritative round start.
	ServerTime int64 `json:"serverTime"`
}

type turnResultPayload struct {
	TurnIndex int             `json:"turnIndex"`
	Record    any             `json:"record"`
	Players   []PlayerSummary `json:"players"`
}

type gameOverPayload struct {
	History any             `json:"history"`
	Players []PlayerSummary `json:"players"`
}

type errorPayload struct {
	Error string `json:"error"`
}

func build(msgType string, payload any) network.Message {
	if payload == nil {
		return network.Message{Type: msgType}
	}
	payloadBytes, _ := json.Marshal(payload)
	return network.Message{Type: msgType, Payload: payloadBytes}
}

// MatchCreated confirms a CREATE_MATCH to the creator only.
func MatchCreated(gameID string) network.Message {
	return build(TypeMatchCreated, matchCreatedPayload{GameID: gameID})
}

// PlayerJoined carries the updated roster to the whole session.
func PlayerJoined(players []PlayerSummary) network.Message {
	return build(TypePlayerJoined, playerJoinedPayload{Players: players})
}

// MatchStart announces that both players are present and rounds begin.
func MatchStart() network.Message {
	return build(TypeMatchStart, nil)
}

// NewTurn announces a round: its index, the prompt city and the deadline.
func NewTurn(turnIndex int, sourceCity string, durationSeconds int, serverTime time.Time) network.Message {
	return build(TypeNewTurn, newTurnPayload{
		TurnIndex:       turnIndex,
		SourceCity:      sourceCity,
		DurationSeconds: durationSeconds,
		ServerTime:      serverTime.UnixMilli(),
	})
}

// TurnResult carries the per-player breakdown and updated scores. The record
// is declared by the session package; it is passed through untyped to keep
// this package free of upward imports.
func TurnResult(turnIndex int, record any, players []PlayerSummary) network.Message {
	return build(TypeTurnResult, turnResultPayload{
		TurnIndex: turnIndex,
		Record:    record,
		Players:   players,
	})
}

// GameOver carries the full history and final scores.
func GameOver(history any, players []PlayerSummary) network.Message {
	return build(TypeGameOver, gameOverPayload{History: history, Players: players})
}

// Error notifies a single connection of a failed request.
func Error(text string) network.Message {
	return build(TypeError, errorPayload{Error: text})
}
