package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Event is the payload pushed to connected admin dashboards when the
// catalog changes.
type Event struct {
	Type    string      `json:"type"`
	Action  string      `json:"action"`
	Product interface{} `json:"product,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Hub fans catalog events out to every connected dashboard socket.
type Hub struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		broadcast:  make(chan []byte, 16),
	}
}

// Add hands a freshly upgraded connection to the hub.
func (h *Hub) Add(conn *websocket.Conn) {
	h.register <- conn
}

// Remove detaches a connection and closes it.
func (h *Hub) Remove(conn *websocket.Conn) {
	h.unregister <- conn
}

// Publish marshals the event and queues it for every connected client.
func (h *Hub) Publish(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Println("WS marshal error:", err)
		return
	}
	h.broadcast <- payload
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mutex.Lock()
			h.clients[conn] = true
			h.mutex.Unlock()
			log.Println("New WS Client Connected")

		case conn := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
