package hub

import (
	"encoding/json"
	"log"
	"sync"
)

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client represents a single client connection (a participant watching a
// room). It's essentially a channel that the SSE handler will listen to.
type Client chan []byte

// Hub manages all active rooms and their connected clients. It is the
// engine's event sink: Publish is fire-and-forget and never reports
// failure back to the caller.
type Hub struct {
	rooms map[uint]map[Client]bool
	mu    sync.RWMutex
}

// GlobalHub is the singleton instance of our Hub.
var GlobalHub = NewHub()

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[uint]map[Client]bool),
	}
}

// Subscribe adds a new client to a specific room.
func (h *Hub) Subscribe(roomID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[Client]bool)
	}
	h.rooms[roomID][client] = true
}

// Unsubscribe removes a client from a room.
func (h *Hub) Unsubscribe(roomID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.rooms[roomID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client) // Close the channel to signal the SSE handler to stop.
			if len(clients) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}
}

// Publish implements the engine's notifier contract. Marshal or delivery
// problems are logged here and never surface to the publishing operation.
func (h *Hub) Publish(roomID uint, kind string, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.rooms[roomID]
	if !ok {
		return
	}

	messageBytes, err := json.Marshal(Event{Type: kind, Payload: payload})
	if err != nil {
		log.Printf("hub: dropping %s event for room %d: %v", kind, roomID, err)
		return
	}

	for client := range clients {
		// Non-blocking send so a slow client never stalls the hub.
		select {
		case client <- messageBytes:
		default:
			// Channel full; the unsubscribe path cleans this client up.
		}
	}
}
