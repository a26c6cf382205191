package city

import "testing"

func strPtr(s string) *string { return &s }
func i64Ptr(v int64) *int64   { return &v }
func intPtr(v int) *int       { return &v }

func TestScoreParisLyon(t *testing.T) {
	promptFacts := Facts{
		Name:        "Paris",
		Country:     strPtr("France"),
		Languages:   []string{"French"},
		Population:  i64Ptr(2148000),
		FoundedYear: intPtr(500),
	}
	answerFacts := Facts{
		Name:        "Lyon",
		Country:     strPtr("France"),
		Languages:   []string{"French"},
		Population:  i64Ptr(513275),
		FoundedYear: intPtr(43),
	}

	out := Score("Paris", "Lyon", promptFacts, answerFacts)

	want := Checks{SameCountry: true, SharedLanguage: true}
	if out.Checks != want {
		t.Errorf("checks = %+v, want %+v", out.Checks, want)
	}
	if out.Points != 2 {
		t.Errorf("points = %d, want 2", out.Points)
	}
}

func TestScoreIdenticalFactsMaxPoints(t *testing.T) {
	facts := Facts{
		Name:        "Paris",
		Country:     strPtr("France"),
		Languages:   []string{"French"},
		Population:  i64Ptr(2148000),
		FoundedYear: intPtr(500),
	}

	out := Score("Paris", "Paris", facts, facts)

	if out.Points != MaxPoints {
		t.Errorf("points = %d, want %d", out.Points, MaxPoints)
	}
	all := Checks{
		StartsWith: true, EndsWith: true, SameLength: true,
		SameCountry: true, SharedLanguage: true,
		PopulationSimilar: true, FoundedSameCentury: true,
	}
	if out.Checks != all {
		t.Errorf("checks = %+v, want all true", out.Checks)
	}
}

func TestScoreEmptyAnswerScoresZero(t *testing.T) {
	promptFacts := Facts{Name: "Paris", Country: strPtr("France")}

	out := Score("Paris", "", promptFacts, EmptyFacts(""))

	if out.Points != 0 {
		t.Errorf("points = %d, want 0", out.Points)
	}
	if out.Checks != (Checks{}) {
		t.Errorf("checks = %+v, want all false", out.Checks)
	}
}

func TestScoreNormalizesCaseAndWhitespace(t *testing.T) {
	out := Score("  PARIS ", "paris", Facts{}, Facts{})

	if !out.Checks.StartsWith || !out.Checks.EndsWith || !out.Checks.SameLength {
		t.Errorf("string checks should all pass, got %+v", out.Checks)
	}
	if out.Points != 3 {
		t.Errorf("points = %d, want 3", out.Points)
	}
}

func TestScoreSameLengthIgnoresInternalWhitespace(t *testing.T) {
	out := Score("New York", "Newyorks", Facts{}, Facts{})

	// "newyork" (7) vs "newyorks" (8): different.
	if out.Checks.SameLength {
		t.Error("sameLength should not hold for 7 vs 8 characters")
	}

	// "newyork" (7) vs "chicago" (7): equal once spaces are stripped.
	out = Score("New York", "Chicago", Facts{}, Facts{})
	if !out.Checks.SameLength {
		t.Error("sameLength should hold once internal whitespace is stripped")
	}
}

func TestScorePopulationSimilarBoundary(t *testing.T) {
	tests := []struct {
		name    string
		a, b    int64
		similar bool
	}{
		{"exactly 20 percent", 100, 80, true},
		{"just over 20 percent", 100, 79, false},
		{"equal", 500, 500, true},
		{"order independent", 80, 100, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Facts{Population: i64Ptr(tc.a)}
			a := Facts{Population: i64Ptr(tc.b)}
			out := Score("a", "b", p, a)
			if out.Checks.PopulationSimilar != tc.similar {
				t.Errorf("populationSimilar = %v, want %v", out.Checks.PopulationSimilar, tc.similar)
			}
		})
	}
}

func TestScoreFoundedSameCentury(t *testing.T) {
	tests := []struct {
		name string
		a, b int
		same bool
	}{
		{"both 20th century", 1901, 2000, true},
		{"century boundary", 2000, 2001, false},
		{"first century", 1, 100, true},
		{"antiquity vs middle ages", 43, 500, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Facts{FoundedYear: intPtr(tc.a)}
			a := Facts{FoundedYear: intPtr(tc.b)}
			out := Score("a", "b", p, a)
			if out.Checks.FoundedSameCentury != tc.same {
				t.Errorf("foundedSameCentury = %v, want %v", out.Checks.FoundedSameCentury, tc.same)
			}
		})
	}
}

func TestScoreZeroValuesCountAsUnknown(t *testing.T) {
	p := Facts{Population: i64Ptr(0), FoundedYear: intPtr(0)}
	a := Facts{Population: i64Ptr(0), FoundedYear: intPtr(0)}

	out := Score("a", "b", p, a)

	if out.Checks.PopulationSimilar || out.Checks.FoundedSameCentury {
		t.Errorf("zero population/year must withhold points, got %+v", out.Checks)
	}
}

func TestScoreMissingDataNeverSubtracts(t *testing.T) {
	out := Score("Paris", "Lyon", Facts{}, Facts{})
	if out.Points < 0 {
		t.Errorf("points = %d, must never be negative", out.Points)
	}
}

func TestScoreDeterministic(t *testing.T) {
	p := Facts{Country: strPtr("France"), Languages: []string{"French"}}
	a := Facts{Country: strPtr("france"), Languages: []string{"FRENCH", "Arpitan"}}

	first := Score("Paris", "Lyon", p, a)
	second := Score("Paris", "Lyon", p, a)

	if first != second {
		t.Errorf("score not deterministic: %+v vs %+v", first, second)
	}
	if !first.Checks.SameCountry || !first.Checks.SharedLanguage {
		t.Errorf("case-insensitive comparisons should hold, got %+v", first.Checks)
	}
}
