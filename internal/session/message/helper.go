package message

import (
	"fmt"

	"cityduel/internal/network"
)

// Sender is anything that can accept an outbound message. It decouples the
// session logic from concrete network clients, which also keeps the game
// loop testable without a websocket. Send must never block or panic; it
// reports whether the message was queued, and a dead or saturated
// destination simply drops it.
type Sender interface {
	Send(msg network.Message) bool
}

// SendError formats and delivers an error message to a single sender.
func SendError(sender Sender, format string, args ...any) {
	sender.Send(Error(fmt.Sprintf(format, args...)))
}
