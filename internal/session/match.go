package session

import (
	"context"
	"log"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"cityduel/internal/game/city"
	"cityduel/internal/network"
	"cityduel/internal/session/message"
)

// Match status values.
const (
	StatusWaiting  = "waiting"
	StatusPlaying  = "playing"
	StatusFinished = "finished"
)

// Match is one game between two players: the session state plus the turn
// scheduler that drives it.
//
// Every exported method locks mu; everything between lock and unlock is one
// atomic step of the state machine. Evaluation is the only path that
// releases the lock mid-flight (around the fact lookups), which is why it
// is fenced by the evaluating flag and a turn token: a deadline firing and
// an answer completing may both try to evaluate the same round, and exactly
// one of them may win.
type Match struct {
	ID string

	mu          sync.Mutex
	players     map[string]*PlayerState
	playerOrder []string
	group       map[string]message.Sender
	status      string
	currentTurn int
	turnsTotal  int
	promptCity  string
	turnStarted time.Time
	history     []*TurnRecord

	// deadline is the single armed round timer. Invariants: at most one
	// armed deadline per match, and evaluating=true implies none is armed.
	deadline   *time.Timer
	evaluating bool

	turnDuration time.Duration
	resolver     Resolver
	events       EventSink
	rng          *rand.Rand
}

// NewMatch creates a waiting match. The id is taken as-is; the registry
// decides how ids are generated.
func NewMatch(id string, turnsTotal int, turnDuration time.Duration, resolver Resolver, events EventSink) *Match {
	if events == nil {
		events = discardSink{}
	}
	return &Match{
		ID:           id,
		players:      make(map[string]*PlayerState),
		group:        make(map[string]message.Sender),
		status:       StatusWaiting,
		turnsTotal:   turnsTotal,
		turnDuration: turnDuration,
		resolver:     resolver,
		events:       events,
		rng:          rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(time.Now().UnixNano())>>1)),
	}
}

// AddPlayer inserts or overwrites a player. The join order is recorded once
// per player id, so the call is idempotent.
func (m *Match) AddPlayer(p *PlayerState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addPlayerLocked(p)
}

func (m *Match) addPlayerLocked(p *PlayerState) {
	if _, known := m.players[p.ID]; !known {
		m.playerOrder = append(m.playerOrder, p.ID)
	}
	m.players[p.ID] = p
}

// Join adds a player to the match and its broadcast group, announces the new
// roster and, when the second player arrives, starts the round loop. The
// two-player transition fires at most once: a rejoin finds the status
// already past waiting and cannot restart the loop.
func (m *Match) Join(p *PlayerState, sender message.Sender) {
	m.mu.Lock()
	m.addPlayerLocked(p)
	if sender != nil {
		m.group[p.ID] = sender
	}
	m.broadcastLocked(message.PlayerJoined(m.summariesLocked()))

	started := len(m.players) == 2 && m.status == StatusWaiting
	if started {
		m.status = StatusPlaying
		log.Printf("[Match %s] both players connected, starting", m.ID)
		m.broadcastLocked(message.MatchStart())
		m.startRoundLocked()
	}
	m.mu.Unlock()

	if started {
		m.events.MatchStarted(m.ID)
	}
}

// SubmitAnswer stores a player's trimmed answer for the current round. When
// every connected player has a non-empty answer and a prompt is set, the
// deadline is disarmed and evaluation starts immediately. An answer from an
// unknown player, or outside an active round, changes nothing.
func (m *Match) SubmitAnswer(playerID, answer string) {
	m.mu.Lock()
	p, ok := m.players[playerID]
	if !ok {
		m.mu.Unlock()
		return
	}
	p.lastAnswer = strings.TrimSpace(answer)

	// Answers arriving before the prompt is configured must not trigger
	// evaluation; neither may a second trigger while one is in flight.
	ready := m.status == StatusPlaying && m.promptCity != "" && !m.evaluating && m.allAnsweredLocked()
	turn := m.currentTurn
	if ready {
		m.disarmDeadlineLocked()
	}
	m.mu.Unlock()

	if ready {
		go m.evaluateTurn(turn)
	}
}

// Leave removes a player from the match and its broadcast group. Returns
// the number of players still present; the caller tears the match down at
// zero. A lone remaining player mid-round needs no special handling: the
// armed deadline will fire and evaluate the round without the departed
// player.
func (m *Match) Leave(playerID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.players[playerID]; !ok {
		return len(m.players)
	}
	delete(m.players, playerID)
	delete(m.group, playerID)
	for i, id := range m.playerOrder {
		if id == playerID {
			m.playerOrder = append(m.playerOrder[:i], m.playerOrder[i+1:]...)
			break
		}
	}
	if len(m.players) == 0 {
		m.disarmDeadlineLocked()
	}
	return len(m.players)
}

// Status returns the current lifecycle status.
func (m *Match) Status() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// History returns a snapshot of the completed rounds.
func (m *Match) History() []*TurnRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*TurnRecord, len(m.history))
	copy(out, m.history)
	return out
}

// --- round scheduling -------------------------------------------------

// startRoundLocked begins the next round: picks a prompt, clears answers,
// announces the turn and arms the deadline. No-op while an evaluation is in
// flight or after the match finished, so a duplicate trigger cannot start
// a second concurrent round.
func (m *Match) startRoundLocked() {
	if m.evaluating || m.status == StatusFinished {
		return
	}
	m.disarmDeadlineLocked()

	m.promptCity = city.RandomPrompt(m.rng)
	for _, p := range m.players {
		p.lastAnswer = ""
	}
	m.turnStarted = time.Now()
	log.Printf("[Match %s] turn %d started, prompt %q", m.ID, m.currentTurn, m.promptCity)

	seconds := int(m.turnDuration / time.Second)
	m.broadcastLocked(message.NewTurn(m.currentTurn, m.promptCity, seconds, m.turnStarted))

	// The callback carries the turn it was armed for; a stale fire after
	// the round advanced is ignored.
	turn := m.currentTurn
	m.deadline = time.AfterFunc(m.turnDuration, func() {
		m.deadlineFired(turn)
	})
}

// deadlineFired is the timer callback: trigger evaluation if the round it
// was armed for is still the live one and still has a prompt.
func (m *Match) deadlineFired(turn int) {
	m.mu.Lock()
	stale := m.currentTurn != turn || m.promptCity == "" || m.evaluating || m.status != StatusPlaying
	if !stale {
		m.deadline = nil
	}
	m.mu.Unlock()

	if stale {
		return
	}
	log.Printf("[Match %s] turn %d deadline reached", m.ID, turn)
	m.evaluateTurn(turn)
}

// disarmDeadlineLocked cancels any armed round timer. Always called before
// arming a new one and on entering evaluation.
func (m *Match) disarmDeadlineLocked() {
	if m.deadline != nil {
		m.deadline.Stop()
		m.deadline = nil
	}
}

// evaluateTurn scores the given round at most once, no matter how many
// triggers race for it. It holds the lock for the check-and-set of the
// evaluating flag, releases it around the fact lookups, then re-acquires it
// to apply the results and advance the state machine.
func (m *Match) evaluateTurn(turn int) {
	m.mu.Lock()
	if m.evaluating || m.status != StatusPlaying || m.currentTurn != turn {
		m.mu.Unlock()
		return
	}
	m.evaluating = true
	m.disarmDeadlineLocked()

	if m.promptCity == "" {
		// Defensive recovery: nothing to score. Clear the guard and leave
		// the round to the next trigger instead of crashing the session.
		m.evaluating = false
		m.mu.Unlock()
		log.Printf("[Match %s] evaluation aborted: no prompt set", m.ID)
		return
	}

	prompt := m.promptCity
	order := make([]string, len(m.playerOrder))
	copy(order, m.playerOrder)
	answers := make(map[string]string, len(order))
	for _, id := range order {
		answers[id] = m.players[id].lastAnswer
	}
	m.mu.Unlock()

	// Suspension point: external lookups. Only this match waits on them.
	ctx := context.Background()
	promptFacts := m.resolver.Resolve(ctx, prompt)

	details := make(map[string]*TurnResultDetail, len(order))
	for _, id := range order {
		answer := answers[id]
		detail := &TurnResultDetail{PlayerAnswer: answer}
		if answer == "" {
			// No answer: score against a neutral record, no lookup.
			detail.CityInfo = city.EmptyFacts(answer)
		} else {
			detail.CityInfo = m.resolver.Resolve(ctx, answer)
			detail.IsValidCity = m.resolver.Validate(ctx, answer)
			detail.IsEquivalentCity = m.resolver.Equivalent(ctx, prompt, answer)
		}
		outcome := city.Score(prompt, answer, promptFacts, detail.CityInfo)
		detail.Checks = outcome.Checks
		detail.PointsGained = outcome.Points
		details[id] = detail
	}

	m.mu.Lock()
	record := &TurnRecord{SourceCity: prompt, Results: make(map[string]*TurnResultDetail)}
	for _, id := range order {
		p, ok := m.players[id]
		if !ok {
			// Left while we were looking up facts; absent from the record.
			continue
		}
		p.Score += details[id].PointsGained
		record.Results[id] = details[id]
	}
	m.history = append(m.history, record)
	m.promptCity = ""

	m.broadcastLocked(message.TurnResult(turn, record, m.summariesLocked()))
	m.evaluating = false
	m.currentTurn++

	finished := m.currentTurn >= m.turnsTotal
	var finalPlayers []message.PlayerSummary
	if finished {
		m.finishLocked()
		finalPlayers = m.summariesLocked()
	} else {
		m.startRoundLocked()
	}
	m.mu.Unlock()

	if finished {
		m.events.MatchFinished(m.ID, finalPlayers)
	}
}

// finishLocked is terminal: no more timers, no more scoring.
func (m *Match) finishLocked() {
	m.status = StatusFinished
	m.disarmDeadlineLocked()
	log.Printf("[Match %s] game over after %d turns", m.ID, len(m.history))
	m.broadcastLocked(message.GameOver(m.history, m.summariesLocked()))
}

// --- helpers ----------------------------------------------------------

func (m *Match) allAnsweredLocked() bool {
	if len(m.players) == 0 {
		return false
	}
	for _, p := range m.players {
		if p.lastAnswer == "" {
			return false
		}
	}
	return true
}

func (m *Match) summariesLocked() []message.PlayerSummary {
	out := make([]message.PlayerSummary, 0, len(m.playerOrder))
	for _, id := range m.playerOrder {
		p := m.players[id]
		out = append(out, message.PlayerSummary{ID: p.ID, Name: p.Name, Score: p.Score})
	}
	return out
}

func (m *Match) broadcastLocked(msg network.Message) {
	for _, id := range m.playerOrder {
		sender, ok := m.group[id]
		if !ok {
			continue
		}
		if !sender.Send(msg) {
			log.Printf("[Match %s] dropped %s for player %s", m.ID, msg.Type, id)
		}
	}
}
