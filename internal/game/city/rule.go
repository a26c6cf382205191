package city

import "strings"

// MaxPoints is the ceiling a single round can award: all seven checks true.
const MaxPoints = 9

// Checks is the per-rule breakdown echoed to clients with every turn result,
// so they can display why an answer scored what it did.
type Checks struct {
	StartsWith         bool `json:"startsWith"`
	EndsWith           bool `json:"endsWith"`
	SameLength         bool `json:"sameLength"`
	SameCountry        bool `json:"sameCountry"`
	SharedLanguage     bool `json:"sharedLanguage"`
	PopulationSimilar  bool `json:"populationSimilar"`
	FoundedSameCentury bool `json:"foundedSameCentury"`
}

// Outcome is the result of scoring one prompt/answer pair.
type Outcome struct {
	Points int    `json:"points"`
	Checks Checks `json:"checks"`
}

// Score compares a prompt city against a player's answer and awards points
// for each rule that holds. The rules are independent and additive; missing
// data withholds a rule's points, it never subtracts. Pure and deterministic.
func Score(promptName, answerName string, promptFacts, answerFacts Facts) Outcome {
	var out Outcome

	prompt := normalize(promptName)
	answer := normalize(answerName)

	promptRunes := []rune(prompt)
	answerRunes := []rune(answer)

	// First character match: 1 point.
	if len(promptRunes) > 0 && len(answerRunes) > 0 && answerRunes[0] == promptRunes[0] {
		out.Checks.StartsWith = true
		out.Points++
	}

	// Last character match: 1 point.
	if len(promptRunes) > 0 && len(answerRunes) > 0 &&
		answerRunes[len(answerRunes)-1] == promptRunes[len(promptRunes)-1] {
		out.Checks.EndsWith = true
		out.Points++
	}

	// Same length after stripping internal whitespace: 1 point.
	if len(stripSpaces(answer)) == len(stripSpaces(prompt)) {
		out.Checks.SameLength = true
		out.Points++
	}

	// Same country, case-insensitive: 1 point.
	if hasString(promptFacts.Country) && hasString(answerFacts.Country) &&
		strings.EqualFold(*promptFacts.Country, *answerFacts.Country) {
		out.Checks.SameCountry = true
		out.Points++
	}

	// At least one language in common, case-insensitive: 1 point.
	if sharesLanguage(promptFacts.Languages, answerFacts.Languages) {
		out.Checks.SharedLanguage = true
		out.Points++
	}

	// Populations within 20% of the larger one: 2 points.
	if hasPopulation(promptFacts.Population) && hasPopulation(answerFacts.Population) {
		a := float64(*promptFacts.Population)
		b := float64(*answerFacts.Population)
		larger := a
		diff := a - b
		if b > a {
			larger = b
			diff = b - a
		}
		if diff/larger <= 0.20 {
			out.Checks.PopulationSimilar = true
			out.Points += 2
		}
	}

	// Founded in the same century: 3 points.
	if hasYear(promptFacts.FoundedYear) && hasYear(answerFacts.FoundedYear) &&
		century(*promptFacts.FoundedYear) == century(*answerFacts.FoundedYear) {
		out.Checks.FoundedSameCentury = true
		out.Points += 3
	}

	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func stripSpaces(s string) []rune {
	return []rune(strings.Join(strings.Fields(s), ""))
}

func hasString(s *string) bool {
	return s != nil && *s != ""
}

// Population and founding year treat zero as unknown, the same way the
// lookup treats an absent field.
func hasPopulation(p *int64) bool {
	return p != nil && *p != 0
}

func hasYear(y *int) bool {
	return y != nil && *y != 0
}

func sharesLanguage(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	for _, la := range a {
		for _, lb := range b {
			if strings.EqualFold(la, lb) {
				return true
			}
		}
	}
	return false
}

// century maps a year to its century number: 1-100 is century 1, 101-200 is
// century 2. Floored division so BC years land in the right bucket too.
func century(year int) int {
	y := year - 1
	d := y / 100
	if y%100 != 0 && y < 0 {
		d--
	}
	return d + 1
}
