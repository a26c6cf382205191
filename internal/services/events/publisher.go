// Package events publishes match lifecycle notifications over NATS for
// anything listening outside the process (dashboards, matchmaking, bots).
// Publication is strictly best effort: a broker hiccup is logged and
// forgotten, it never touches a running match.
package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"cityduel/internal/session/message"
)

// Subjects, one per lifecycle transition.
const (
	SubjectMatchCreated  = "cityduel.match.created"
	SubjectMatchStarted  = "cityduel.match.started"
	SubjectMatchFinished = "cityduel.match.finished"
)

// Publisher implements session.EventSink on top of a NATS connection.
type Publisher struct {
	nc *nats.Conn
}

// Connect dials the broker. The connection reconnects forever on its own;
// a publish during an outage is simply dropped.
func Connect(url string) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("cityduel-server"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}
	log.Printf("[Events] connected to NATS at %s", nc.ConnectedUrl())
	return &Publisher{nc: nc}, nil
}

// Close drains the connection.
func (p *Publisher) Close() {
	p.nc.Drain()
}

type matchEvent struct {
	GameID  string                  `json:"gameId"`
	At      int64                   `json:"at"`
	Players []message.PlayerSummary `json:"players,omitempty"`
}

func (p *Publisher) publish(subject string, event matchEvent) {
	event.At = time.Now().UnixMilli()
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Events] failed to marshal %s: %v", subject, err)
		return
	}
	if err := p.nc.Publish(subject, data); err != nil {
		log.Printf("[Events] failed to publish %s: %v", subject, err)
	}
}

func (p *Publisher) MatchCreated(id string) {
	p.publish(SubjectMatchCreated, matchEvent{GameID: id})
}

func (p *Publisher) MatchStarted(id string) {
	p.publish(SubjectMatchStarted, matchEvent{GameID: id})
}

func (p *Publisher) MatchFinished(id string, players []message.PlayerSummary) {
	p.publish(SubjectMatchFinished, matchEvent{GameID: id, Players: players})
}
