package session

// PlayerState is one participant inside a single match. The ID is the
// opaque connection id handed out by the network layer; nothing else about
// a player's identity is known or kept.
type PlayerState struct {
	ID    string
	Name  string
	Score int

	// lastAnswer is the trimmed answer for the current round. It is reset
	// when a new round starts and means "not answered yet" while empty.
	lastAnswer string
}
