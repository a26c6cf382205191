package city

import "math/rand/v2"

// promptCatalog is the fixed pool of prompt cities. Selection is uniform;
// there is no re-roll against repeats.
var promptCatalog = []string{
	"Madrid",
	"Paris",
	"New York",
	"Tokyo",
	"Buenos Aires",
	"Cairo",
	"Sydney",
	"Moscow",
	"Barcelona",
	"Lisbon",
}

// Catalog returns a copy of the prompt pool.
func Catalog() []string {
	out := make([]string, len(promptCatalog))
	copy(out, promptCatalog)
	return out
}

// RandomPrompt picks one catalog entry uniformly at random.
func RandomPrompt(rng *rand.Rand) string {
	return promptCatalog[rng.IntN(len(promptCatalog))]
}
