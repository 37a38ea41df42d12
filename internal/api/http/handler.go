package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"uno-server/internal/session"
	"uno-server/internal/store"
)

func HealthHandler(sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"session": sess.ID,
			"state":   sess.State().String(),
		})
	}
}

// HistoryHandler lists a user's recorded wins.
func HistoryHandler(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")
		records, err := st.HistoryOf(c.Request.Context(), username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if records == nil {
			records = []store.GameRecord{}
		}
		c.JSON(http.StatusOK, gin.H{"username": username, "wins": records})
	}
}

// LeaderboardHandler lists users ordered by wins.
func LeaderboardHandler(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		stats, err := st.Leaderboard(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if stats == nil {
			stats = []store.PlayerStats{}
		}
		c.JSON(http.StatusOK, gin.H{"players": stats})
	}
}
