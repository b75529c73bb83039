package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/wricardo/ludo-server/game/service"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// Client is one connected participant. The player ID is generated at
// upgrade time and identifies the participant everywhere in the game core;
// it is not tied to the connection handle.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	playerID string

	// roomCode is the room this client currently occupies, guarded by the
	// hub lock. Empty while in the lobby.
	roomCode string

	// closed marks the send channel as closed, guarded by the hub lock.
	closed bool
}

// Hub maintains the set of active clients, their room membership, and
// routes inbound game actions to the service.
type Hub struct {
	service  service.GameService
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*Client          // by player ID
	rooms   map[string]map[*Client]bool // by room code

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client
}

// NewHub creates a hub that dispatches game actions to the given service.
func NewHub(svc service.GameService, origins []string) *Hub {
	h := &Hub{
		service:    svc,
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(origins),
	}
	return h
}

// originChecker allows every origin when the list is empty (development),
// otherwise only listed ones.
func originChecker(origins []string) func(r *http.Request) bool {
	if len(origins) == 0 {
		return func(r *http.Request) bool { return true }
	}
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		return allowed[r.Header.Get("Origin")]
	}
}

// Run starts the hub's event loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

// ServeWS handles WebSocket upgrade requests. Each connection gets a fresh
// player identity and an initial "connected" frame carrying it.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:      h,
		conn:     conn,
		send:     make(chan []byte, 256),
		playerID: uuid.NewString(),
	}

	h.register <- client

	go client.writePump()
	go client.readPump()

	client.sendEvent(service.Event{
		Type:    "connected",
		Payload: map[string]string{"player_id": client.playerID},
	})
}

// registerClient adds a client to the lobby.
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client.playerID] = client
	total := len(h.clients)
	h.mu.Unlock()

	log.Printf("Client %s connected (total clients: %d)", client.playerID, total)
}

// unregisterClient removes a client and treats the disconnect as a leave:
// the player is removed from their room under the same serialization as any
// player-issued action, and the departure is broadcast to whoever remains.
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.playerID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client.playerID)
	h.removeFromRoomLocked(client)
	client.closed = true
	close(client.send)
	remaining := len(h.clients)
	h.mu.Unlock()

	log.Printf("Client %s disconnected (remaining clients: %d)", client.playerID, remaining)

	client.dispatchDisconnect()
}

// joinRoom records a client's room membership. Callers must not hold the
// hub lock.
func (h *Hub) joinRoom(client *Client, code string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client.roomCode != "" {
		h.removeFromRoomLocked(client)
	}
	if h.rooms[code] == nil {
		h.rooms[code] = make(map[*Client]bool)
	}
	h.rooms[code][client] = true
	client.roomCode = code
}

// leaveRoom clears a client's room membership.
func (h *Hub) leaveRoom(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeFromRoomLocked(client)
}

// removeFromRoomLocked drops the client from its room map entry and cleans
// up empty rooms. Callers hold the hub lock.
func (h *Hub) removeFromRoomLocked(client *Client) {
	if client.roomCode == "" {
		return
	}
	if clients, ok := h.rooms[client.roomCode]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.rooms, client.roomCode)
		}
	}
	client.roomCode = ""
}

// BroadcastToRoom sends an event to every client in a room.
func (h *Hub) BroadcastToRoom(code string, event service.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal broadcast event: %v", err)
		return
	}

	// Sends stay under the read lock so they cannot race the close of a
	// send channel, which happens under the write lock. They never block.
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.rooms[code] {
		if client.closed {
			continue
		}
		select {
		case client.send <- data:
		default:
			// Client's send channel is full, drop the connection.
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

// RoomClientCount reports how many connections a room currently has.
func (h *Hub) RoomClientCount(code string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[code])
}

// sendEvent delivers an event to this client only.
func (c *Client) sendEvent(event service.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal event: %v", err)
		return
	}
	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// readPump pumps messages from the WebSocket connection into the dispatcher.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
		c.dispatch(raw)
	}
}

// writePump pumps messages from the hub to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
