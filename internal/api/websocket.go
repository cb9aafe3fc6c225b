// internal/api/websocket.go
package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/chukainspires/coachsite/internal/services"
	"github.com/chukainspires/coachsite/internal/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The content feed is public read-only data; any origin may listen.
		return true
	},
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// updateMessage is what connected pages receive when content republishes.
type updateMessage struct {
	Type string `json:"type"`
}

// UpdateHub pushes a content_updated event to every connected page whenever
// new content is published, so open tabs re-fetch without polling.
type UpdateHub struct {
	logger *utils.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]chan []byte
}

// NewUpdateHub creates the hub and starts forwarding publishes from the
// content service.
func NewUpdateHub(content *services.ContentService, logger *utils.Logger) *UpdateHub {
	hub := &UpdateHub{
		logger:  logger,
		clients: make(map[*websocket.Conn]chan []byte),
	}

	updates := content.SubscribeUpdates()
	go func() {
		for range updates {
			hub.broadcast(updateMessage{Type: "content_updated"})
		}
	}()

	return hub
}

func (h *UpdateHub) broadcast(msg updateMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("encoding update message failed", map[string]interface{}{"error": err})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, send := range h.clients {
		select {
		case send <- payload:
		default:
			// Slow client: drop the event, the next publish repeats it.
		}
	}
}

// Serve upgrades the request and streams update events until the client
// disconnects.
func (h *UpdateHub) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", map[string]interface{}{"error": err})
		return
	}

	send := make(chan []byte, 8)
	h.mu.Lock()
	h.clients[conn] = send
	h.mu.Unlock()

	go h.writePump(conn, send)
	h.readPump(conn)
}

// readPump discards inbound frames and detects disconnects.
func (h *UpdateHub) readPump(conn *websocket.Conn) {
	defer h.drop(conn)

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump sends queued events and keepalive pings.
func (h *UpdateHub) writePump(conn *websocket.Conn, send chan []byte) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		h.drop(conn)
	}()

	for {
		select {
		case payload, ok := <-send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// drop unregisters and closes a client connection.
func (h *UpdateHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	send, ok := h.clients[conn]
	if ok {
		delete(h.clients, conn)
	}
	h.mu.Unlock()

	if ok {
		close(send)
	}
	conn.Close()
}
