package http

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"uno-server/internal/session"
	"uno-server/internal/transport"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// WSHandler upgrades the request and joins the websocket client to the
// session exactly like a TCP client: one text frame per protocol line.
func WSHandler(sess *session.Session, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", "err", err)
			return
		}
		logger.Info("websocket connection established", "remote", conn.RemoteAddr())
		go sess.Join(transport.NewWSConn(conn))
	}
}
