package city

// Facts is the externally sourced record about a named city. Every field
// except Name may be unknown; an unknown value simply withholds the checks
// that need it, it never fails a round.
type Facts struct {
	Name        string   `json:"city"`
	Country     *string  `json:"country"`
	Languages   []string `json:"languages"`
	Population  *int64   `json:"population"`
	FoundedYear *int     `json:"foundedYear"`
}

// EmptyFacts returns the neutral record used for empty answers and for
// lookups that failed.
func EmptyFacts(name string) Facts {
	return Facts{Name: name}
}
