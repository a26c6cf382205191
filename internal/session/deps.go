package session

import (
	"context"

	"cityduel/internal/game/city"
	"cityduel/internal/session/message"
)

// Resolver supplies externally sourced city facts. Implementations absorb
// their own failures: Resolve never errors, it degrades to an empty record,
// so fact lookup can never abort a round.
type Resolver interface {
	// Resolve returns the facts for a city name. An empty or whitespace
	// name must short-circuit to an empty record without any external call.
	Resolve(ctx context.Context, name string) city.Facts

	// Validate reports whether the name looks like a real city. On oracle
	// failure it errs on the side of the player and returns true.
	Validate(ctx context.Context, name string) bool

	// Equivalent reports whether two names refer to the same city. On
	// oracle failure it returns false.
	Equivalent(ctx context.Context, a, b string) bool
}

// EventSink receives match lifecycle notifications. Implementations must be
// best-effort and non-blocking; a sink failure never touches a match.
type EventSink interface {
	MatchCreated(id string)
	MatchStarted(id string)
	MatchFinished(id string, players []message.PlayerSummary)
}

// discardSink is the sink used when no event broker is configured.
type discardSink struct{}

func (discardSink) MatchCreated(string)                           {}
func (discardSink) MatchStarted(string)                           {}
func (discardSink) MatchFinished(string, []message.PlayerSummary) {}
