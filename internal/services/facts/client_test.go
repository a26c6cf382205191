package facts

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// oracleStub serves a chat-completions endpoint answering with a fixed
// message content and counts the requests it sees.
func oracleStub(t *testing.T, status int, content string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header = %q", got)
		}
		w.WriteHeader(status)
		if status == http.StatusOK {
			fmt.Fprintf(w, `{"choices":[{"message":{"content":%q}}]}`, content)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newTestClient(baseURL string) *Client {
	return NewClient(Config{APIKey: "test-key", BaseURL: baseURL})
}

func TestResolveParsesOracleJSON(t *testing.T) {
	content := `{"city":"Paris","country":"France","languages":["French"],"population":2148000,"foundedYear":500}`
	srv, calls := oracleStub(t, http.StatusOK, content)
	c := newTestClient(srv.URL)

	f := c.Resolve(context.Background(), "Paris")

	if f.Name != "Paris" {
		t.Errorf("name = %q, want Paris", f.Name)
	}
	if f.Country == nil || *f.Country != "France" {
		t.Errorf("country = %v, want France", f.Country)
	}
	if f.Population == nil || *f.Population != 2148000 {
		t.Errorf("population = %v, want 2148000", f.Population)
	}
	if f.FoundedYear == nil || *f.FoundedYear != 500 {
		t.Errorf("foundedYear = %v, want 500", f.FoundedYear)
	}
	if calls.Load() != 1 {
		t.Errorf("oracle calls = %d, want 1", calls.Load())
	}
}

func TestResolveExtractsJSONFromProse(t *testing.T) {
	content := `Sure, here are the facts: {"city":"Lyon","country":"France","languages":["French"],"population":null,"foundedYear":null}`
	srv, _ := oracleStub(t, http.StatusOK, content)
	c := newTestClient(srv.URL)

	f := c.Resolve(context.Background(), "Lyon")

	if f.Name != "Lyon" {
		t.Errorf("name = %q, want Lyon", f.Name)
	}
	if f.Country == nil || *f.Country != "France" {
		t.Errorf("country = %v, want France", f.Country)
	}
	if f.Population != nil {
		t.Errorf("population = %v, want nil", f.Population)
	}
}

func TestResolveDegradesOnGarbageContent(t *testing.T) {
	srv, _ := oracleStub(t, http.StatusOK, "I cannot answer that.")
	c := newTestClient(srv.URL)

	f := c.Resolve(context.Background(), "Paris")

	if f.Name != "Paris" {
		t.Errorf("name = %q, want the queried name back", f.Name)
	}
	if f.Country != nil || f.Population != nil || f.FoundedYear != nil || len(f.Languages) != 0 {
		t.Errorf("facts not empty on parse failure: %+v", f)
	}
}

func TestResolveDegradesOnServerError(t *testing.T) {
	srv, _ := oracleStub(t, http.StatusInternalServerError, "")
	c := newTestClient(srv.URL)

	f := c.Resolve(context.Background(), "Paris")

	if f.Name != "Paris" || f.Country != nil {
		t.Errorf("expected empty record on server error, got %+v", f)
	}
}

func TestResolveEmptyNameSkipsNetwork(t *testing.T) {
	srv, calls := oracleStub(t, http.StatusOK, "{}")
	c := newTestClient(srv.URL)

	f := c.Resolve(context.Background(), "   ")

	if f.Name != "" {
		t.Errorf("name = %q, want empty", f.Name)
	}
	if calls.Load() != 0 {
		t.Errorf("oracle calls = %d, want 0 for a blank name", calls.Load())
	}
}

func TestValidateParsesVerdict(t *testing.T) {
	srv, _ := oracleStub(t, http.StatusOK, " True ")
	c := newTestClient(srv.URL)
	if !c.Validate(context.Background(), "Paris") {
		t.Error("Validate = false for a 'true' verdict")
	}

	srv2, _ := oracleStub(t, http.StatusOK, "false")
	c2 := newTestClient(srv2.URL)
	if c2.Validate(context.Background(), "Narnia") {
		t.Error("Validate = true for a 'false' verdict")
	}
}

func TestValidateShortNameFailsLocally(t *testing.T) {
	srv, calls := oracleStub(t, http.StatusOK, "true")
	c := newTestClient(srv.URL)

	if c.Validate(context.Background(), "x") {
		t.Error("single-rune name validated as a city")
	}
	if calls.Load() != 0 {
		t.Errorf("oracle calls = %d, want 0 for a too-short name", calls.Load())
	}
}

func TestValidateFavorsPlayerOnFailure(t *testing.T) {
	srv, _ := oracleStub(t, http.StatusInternalServerError, "")
	c := newTestClient(srv.URL)

	if !c.Validate(context.Background(), "Paris") {
		t.Error("Validate = false on oracle failure, want true")
	}
}

func TestEquivalentFalseOnFailure(t *testing.T) {
	srv, _ := oracleStub(t, http.StatusInternalServerError, "")
	c := newTestClient(srv.URL)

	if c.Equivalent(context.Background(), "Paris", "Lutetia") {
		t.Error("Equivalent = true on oracle failure, want false")
	}
}

func TestFakeModeAnswersLocally(t *testing.T) {
	c := NewClient(Config{Fake: true})

	f := c.Resolve(context.Background(), "Paris")
	if f.Name != "Paris" || f.Country == nil || f.Population == nil {
		t.Errorf("fake facts incomplete: %+v", f)
	}

	if !c.Validate(context.Background(), "Paris") {
		t.Error("fake Validate = false for a normal name")
	}
	if c.Validate(context.Background(), "x") {
		t.Error("fake Validate = true for a single rune")
	}

	if !c.Equivalent(context.Background(), " paris", "PARIS ") {
		t.Error("fake Equivalent should fold case and whitespace")
	}
	if c.Equivalent(context.Background(), "Paris", "Lyon") {
		t.Error("fake Equivalent = true for different names")
	}
}
