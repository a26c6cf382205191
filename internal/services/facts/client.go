// Package facts talks to the external fact-lookup oracle: an
// OpenAI-compatible chat-completions endpoint asked for structured city
// facts. Lookups are best effort by contract; every failure mode collapses
// into an empty record so a round can always complete.
package facts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"cityduel/internal/game/city"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini-2024-07-18"
)

// Config for the oracle client. Fake mode answers locally with canned data
// so the server runs without an API key.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Fake    bool
}

// Client is the fact-lookup adapter. Safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Resolve returns the facts for a city name. An empty name short-circuits
// to a neutral record without touching the network; so does any lookup
// failure. Resolve never errors and is never retried — the round proceeds
// with whatever came back.
func (c *Client) Resolve(ctx context.Context, name string) city.Facts {
	name = strings.TrimSpace(name)
	if name == "" {
		return city.EmptyFacts("")
	}
	f, err := c.lookup(ctx, name)
	if err != nil {
		log.Printf("[Facts] lookup %q failed: %v", name, err)
		return city.EmptyFacts(name)
	}
	return f
}

// Validate reports whether the name plausibly denotes a real city. Very
// short names fail locally; an oracle failure counts in the player's favor.
func (c *Client) Validate(ctx context.Context, name string) bool {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < 2 {
		return false
	}
	if c.cfg.Fake {
		return true
	}
	prompt := fmt.Sprintf("Determine if %q is the name of a real city or town. "+
		"Consider official city names in any language, historical names, "+
		"well-known towns and municipalities, and capital cities. "+
		"Return ONLY \"true\" if it is a real city/town, or \"false\" if it is not "+
		"(e.g., countries, regions, landmarks, fictional places, or random words).", name)
	verdict, err := c.boolQuery(ctx, prompt)
	if err != nil {
		log.Printf("[Facts] validation of %q failed: %v", name, err)
		return true
	}
	return verdict
}

// Equivalent reports whether two names refer to the same city (translations,
// alternative spellings, historical renames). An oracle failure means "not
// equivalent".
func (c *Client) Equivalent(ctx context.Context, a, b string) bool {
	if c.cfg.Fake {
		return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
	}
	prompt := fmt.Sprintf("Analyze if these two city names refer to the same city. "+
		"City 1: %q City 2: %q. Consider different language names, alternative "+
		"spellings, abbreviations and historical name changes. "+
		"Return ONLY \"true\" if they refer to the same city, or \"false\" otherwise.", a, b)
	verdict, err := c.boolQuery(ctx, prompt)
	if err != nil {
		log.Printf("[Facts] equivalence of %q vs %q failed: %v", a, b, err)
		return false
	}
	return verdict
}

// --- wire plumbing ----------------------------------------------------

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens,omitempty"`
	ResponseFormat any           `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// factsSchema forces the model into the exact shape of city.Facts.
var factsSchema = map[string]any{
	"type": "json_schema",
	"json_schema": map[string]any{
		"name": "city_schema",
		"schema": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"city":        map[string]any{"type": "string"},
				"country":     map[string]any{"type": []string{"string", "null"}},
				"languages":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"population":  map[string]any{"type": []string{"integer", "null"}},
				"foundedYear": map[string]any{"type": []string{"integer", "null"}},
			},
			"required": []string{"city", "country", "languages", "population", "foundedYear"},
		},
	},
}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

func fakeFacts(name string) city.Facts {
	country := "Unknown"
	population := int64(100000)
	founded := 1500
	return city.Facts{
		Name:        name,
		Country:     &country,
		Languages:   []string{"Unknown"},
		Population:  &population,
		FoundedYear: &founded,
	}
}

func (c *Client) lookup(ctx context.Context, name string) (city.Facts, error) {
	if c.cfg.Fake {
		return fakeFacts(name), nil
	}

	prompt := fmt.Sprintf("Return VALID JSON following the schema. "+
		"If a value is unknown, set null.\n\nCity: %q", name)
	content, err := c.complete(ctx, chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "Return ONLY JSON."},
			{Role: "user", Content: prompt},
		},
		Temperature:    0,
		ResponseFormat: factsSchema,
	})
	if err != nil {
		return city.Facts{}, err
	}

	var f city.Facts
	if err := json.Unmarshal([]byte(content), &f); err == nil {
		return f, nil
	}
	// The model sometimes wraps the JSON in prose; extract the first object.
	if raw := jsonObjectPattern.FindString(content); raw != "" {
		if err := json.Unmarshal([]byte(raw), &f); err == nil {
			return f, nil
		}
	}
	return city.Facts{}, fmt.Errorf("no parseable JSON in oracle response")
}

func (c *Client) boolQuery(ctx context.Context, prompt string) (bool, error) {
	content, err := c.complete(ctx, chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a geography expert. Return only 'true' or 'false'."},
			{Role: "user", Content: prompt},
		},
		Temperature: 0,
		MaxTokens:   10,
	})
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(strings.ToLower(content)) == "true", nil
}

func (c *Client) complete(ctx context.Context, reqBody chatRequest) (string, error) {
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal oracle request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/chat/completions", bytes.NewBuffer(data))
	if err != nil {
		return "", fmt.Errorf("failed to create oracle request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("oracle returned status %s", resp.Status)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode oracle response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("oracle response has no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
