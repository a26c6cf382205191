package main

import (
	"fmt"
	"log"
	"time"

	"cityduel/internal/api"
	"cityduel/internal/config"
	"cityduel/internal/network"
	"cityduel/internal/services/cluster"
	"cityduel/internal/services/events"
	"cityduel/internal/services/facts"
	"cityduel/internal/session"
)

func main() {
	// 1. CONFIGURATION
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Fatal: failed to load configuration: %v", err)
	}
	log.Printf("[Main] configuration loaded: Port=%d, TurnsTotal=%d, TurnSeconds=%d, FakeFacts=%v",
		cfg.Port, cfg.TurnsTotal, cfg.TurnSeconds, cfg.FakeFacts)

	// 2. FACT-LOOKUP ORACLE
	resolver := facts.NewClient(facts.Config{
		APIKey:  cfg.OpenAIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
		Fake:    cfg.FakeFacts,
	})
	if cfg.OpenAIKey == "" && !cfg.FakeFacts {
		log.Printf("[Main] WARN: no OPENAI_API_KEY and fake mode off; rounds will score without facts")
	}

	// 3. LIFECYCLE EVENTS (optional)
	var sink session.EventSink
	if cfg.NATSURL != "" {
		publisher, err := events.Connect(cfg.NATSURL)
		if err != nil {
			log.Printf("[Main] WARN: NATS unavailable, lifecycle events disabled: %v", err)
		} else {
			defer publisher.Close()
			sink = publisher
		}
	}

	// 4. GAME CORE
	registry := session.NewRegistry(cfg.TurnsTotal,
		time.Duration(cfg.TurnSeconds)*time.Second, resolver, sink)
	gameHandler := session.NewGameHandler(registry)
	log.Println("[Main] game handler created.")

	server := network.NewServer(gameHandler)
	server.Start()
	log.Println("[Main] network hub running.")

	// 5. HTTP SURFACE
	router := api.NewRouter(registry, server)

	// 6. SERVICE DISCOVERY (optional)
	if cfg.ConsulAddr != "" {
		log.Printf("[Main] registering service %q in consul...", cfg.ServiceName)
		if err := cluster.RegisterServiceInConsul(cfg.ServiceName, cfg.Port, cfg.Port, cfg.ConsulAddr); err != nil {
			log.Fatalf("Fatal: consul registration failed: %v", err)
		}
	}

	// 7. SERVE
	address := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	log.Printf("[Main] server (WebSocket & HTTP) listening on %s", address)
	if err := router.Run(address); err != nil {
		log.Fatalf("Fatal: server stopped: %v", err)
	}
}
