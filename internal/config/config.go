package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port        int
	ServiceName string

	// Game pacing.
	TurnsTotal  int
	TurnSeconds int

	// Fact-lookup oracle.
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
	FakeFacts     bool

	// Optional integrations; empty means disabled.
	NATSURL    string
	ConsulAddr string
}

// Load reads the configuration from environment variables, with defaults
// that run a standalone dev server out of the box.
func Load() (*Config, error) {
	port, err := intEnv("PORT", 8080)
	if err != nil {
		return nil, err
	}
	turnsTotal, err := intEnv("TURNS_TOTAL", 5)
	if err != nil {
		return nil, err
	}
	turnSeconds, err := intEnv("TURN_SECONDS", 20)
	if err != nil {
		return nil, err
	}

	fakeFacts := false
	if raw := os.Getenv("FAKE_OPENAI"); raw != "" {
		fakeFacts, err = strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid FAKE_OPENAI: %w", err)
		}
	}

	cfg := &Config{
		Port:          port,
		ServiceName:   getEnv("SERVICE_NAME", "cityduel"),
		TurnsTotal:    turnsTotal,
		TurnSeconds:   turnSeconds,
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   os.Getenv("OPENAI_MODEL"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		FakeFacts:     fakeFacts,
		NATSURL:       os.Getenv("NATS_URL"),
		ConsulAddr:    os.Getenv("CONSUL_HTTP_ADDR"),
	}

	if cfg.TurnsTotal <= 0 {
		return nil, fmt.Errorf("TURNS_TOTAL must be positive, got %d", cfg.TurnsTotal)
	}
	if cfg.TurnSeconds <= 0 {
		return nil, fmt.Errorf("TURN_SECONDS must be positive, got %d", cfg.TurnSeconds)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func intEnv(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
