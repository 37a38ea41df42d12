package http

import (
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"uno-server/internal/session"
	"uno-server/internal/store"
)

// NewRouter wires the read-only HTTP surface plus the websocket attach
// point. Nothing here touches match state directly; game reads go
// through the session and persistence reads through the store.
func NewRouter(sess *session.Session, st store.Store, logger *log.Logger) *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", HealthHandler(sess))

	api := r.Group("/api")
	api.GET("/history/:username", HistoryHandler(st))
	api.GET("/leaderboard", LeaderboardHandler(st))

	// WebSocket clients speak the same line protocol as TCP ones.
	r.GET("/ws", WSHandler(sess, logger))

	return r
}
