package transport

import (
	"sync"

	"github.com/gorilla/websocket"
)

// wsConn carries the line protocol over websocket text frames: one
// frame per logical message, so the framing contract holds without a
// delimiter.
type wsConn struct {
	conn *websocket.Conn

	writeMu sync.Mutex
}

// NewWSConn wraps an upgraded websocket connection.
func NewWSConn(c *websocket.Conn) Conn {
	return &wsConn{conn: c}
}

func (w *wsConn) ReadLine() (string, error) {
	for {
		kind, data, err := w.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		if kind != websocket.TextMessage {
			continue
		}
		return string(data), nil
	}
}

func (w *wsConn) WriteLine(text string) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	return w.conn.WriteMessage(websocket.TextMessage, []byte(text))
}

func (w *wsConn) Close() error {
	return w.conn.Close()
}

func (w *wsConn) RemoteAddr() string {
	return w.conn.RemoteAddr().String()
}
