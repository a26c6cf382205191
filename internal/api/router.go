// Package api is the HTTP surface: match creation, health, and the
// websocket upgrade, all on one gin router.
package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"cityduel/internal/network"
	"cityduel/internal/services/cluster"
	"cityduel/internal/session"
)

// CreateResponse is the contract of POST /create: the id the second player
// needs to join.
type CreateResponse struct {
	ID string `json:"id"`
}

// NewRouter assembles the HTTP routes around the registry and the
// websocket server.
func NewRouter(registry *session.Registry, ws *network.Server) *gin.Engine {
	router := gin.Default()

	router.POST("/create", createMatchHandler(registry))
	router.GET("/health", gin.WrapF(cluster.NewBasicHealthHandler()))
	router.GET("/ws", gin.WrapF(ws.WSHandler))

	return router
}

func createMatchHandler(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		m := registry.Create("")
		log.Printf("[API] match created via HTTP: %s", m.ID)
		c.JSON(http.StatusCreated, CreateResponse{ID: m.ID})
	}
}
