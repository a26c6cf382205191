package network

import "encoding/json"

// Message is the envelope for everything that crosses the websocket, in both
// directions. Type routes the payload; Payload stays raw JSON until the
// destination handler decodes it.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}
