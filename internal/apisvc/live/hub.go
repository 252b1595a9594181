// Package live pushes record-change events to browsers over websockets.
package live

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sgsc/sgsc-services/internal/comm"
	log "github.com/sirupsen/logrus"
)

const writeWait = 10 * time.Second

// client serialises writes; gorilla connections allow one writer at a time.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

type Hub struct {
	connMap  sync.Map // socketId -> *client
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *Hub) StoreConnection(socketId string, conn *websocket.Conn) {
	h.connMap.Store(socketId, &client{conn: conn})
}

func (h *Hub) HandleDisconnect(socketId string) {
	h.connMap.Delete(socketId)
}

// Count returns the number of connected sockets.
func (h *Hub) Count() int {
	n := 0
	h.connMap.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Broadcast sends msg to every connected socket. Sockets failing the write
// are dropped.
func (h *Hub) Broadcast(msg *comm.WSMessage) {
	h.connMap.Range(func(key, value any) bool {
		c := value.(*client)
		if err := c.write(msg); err != nil {
			log.Warnf("dropping socket %s: %s", key, err)
			c.conn.Close()
			h.connMap.Delete(key)
		}
		return true
	})
}

// HandleWebSocket upgrades the request and keeps the socket registered
// until the browser goes away.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	socketId := uuid.New().String()
	h.StoreConnection(socketId, conn)

	log.Infof("New WebSocket connection established: %s", socketId)

	go h.handleConnection(conn, socketId)
}

func (h *Hub) handleConnection(conn *websocket.Conn, socketId string) {
	defer func() {
		log.Infof("Closing WebSocket connection: %s", socketId)
		conn.Close()
		h.HandleDisconnect(socketId)
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Errorf("WebSocket unexpected close error for socket %s: %v", socketId, err)
			}
			return
		}

		message := &comm.WSMessage{}
		if err := json.Unmarshal(raw, message); err != nil {
			h.reply(socketId, map[string]string{"type": comm.TypeError, "error": "Invalid message format"})
			continue
		}

		switch message.Type {
		case comm.TypePing:
			h.reply(socketId, &comm.WSMessage{Type: comm.TypePong, SocketId: socketId})
		default:
			log.Debugf("ignoring %s message from socket %s", message.Type, socketId)
		}
	}
}

func (h *Hub) reply(socketId string, v any) {
	value, ok := h.connMap.Load(socketId)
	if !ok {
		return
	}
	if err := value.(*client).write(v); err != nil {
		log.Errorf("Failed to send message to socket %s: %v", socketId, err)
	}
}
