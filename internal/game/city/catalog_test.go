package city

import (
	"math/rand/v2"
	"testing"
)

func TestRandomPromptComesFromCatalog(t *testing.T) {
	pool := make(map[string]bool)
	for _, name := range Catalog() {
		pool[name] = true
	}

	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 100; i++ {
		prompt := RandomPrompt(rng)
		if !pool[prompt] {
			t.Fatalf("RandomPrompt returned %q, not in catalog", prompt)
		}
	}
}

func TestCatalogReturnsCopy(t *testing.T) {
	first := Catalog()
	first[0] = "Atlantis"

	second := Catalog()
	if second[0] == "Atlantis" {
		t.Error("mutating the returned slice leaked into the catalog")
	}
}
