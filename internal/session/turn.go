package session

import "cityduel/internal/game/city"

// TurnResultDetail is one player's outcome for one round, kept for display
// and audit: the literal answer, the rule breakdown, the facts the answer
// resolved to and the oracle's validity/equivalence verdicts.
type TurnResultDetail struct {
	PlayerAnswer     string      `json:"playerAnswer"`
	Checks           city.Checks `json:"checks"`
	PointsGained     int         `json:"pointsGained"`
	CityInfo         city.Facts  `json:"cityInfo"`
	IsValidCity      bool        `json:"isValidCity"`
	IsEquivalentCity bool        `json:"isEquivalentCity"`
}

// TurnRecord is the completed history entry for one round. Players who left
// before the round was evaluated are absent from Results.
type TurnRecord struct {
	SourceCity string                       `json:"sourceCity"`
	Results    map[string]*TurnResultDetail `json:"results"`
}
