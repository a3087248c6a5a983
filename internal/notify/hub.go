package notify

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MikeMC777/bebidas-delivery/internal/order"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 16
)


type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub keeps one room of websocket clients per establishment.
type Hub struct {
	mu       sync.Mutex
	rooms    map[string]map[*client]struct{}
	upgrader websocket.Upgrader
}

// NewHub accepts connections from the given browser origins, the same list
// the HTTP API allows. With no origins every origin is accepted.
func NewHub(origins ...string) *Hub {
	h := &Hub{rooms: make(map[string]map[*client]struct{})}
	if len(origins) == 0 {
		h.upgrader.CheckOrigin = func(*http.Request) bool { return true }
		return h
	}
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(o, "/")] = true
	}
	h.upgrader.CheckOrigin = func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		// non-browser clients send no Origin
		return origin == "" || allowed[origin]
	}
	return h
}

// Publish pushes the event to every client of the event's establishment.
// Clients that cannot keep up are dropped.
func (h *Hub) Publish(_ context.Context, e order.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.rooms[e.EstablishmentID] {
		select {
		case c.send <- data:
		default:
			log.Printf("[ws] dropping slow client establishment=%s", e.EstablishmentID)
			h.removeLocked(e.EstablishmentID, c)
		}
	}
	return nil
}

func (h *Hub) Clients(establishmentID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[establishmentID])
}

func (h *Hub) add(room string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*client]struct{})
	}
	h.rooms[room][c] = struct{}{}
}

func (h *Hub) remove(room string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(room, c)
}

func (h *Hub) removeLocked(room string, c *client) {
	if _, ok := h.rooms[room][c]; !ok {
		return
	}
	delete(h.rooms[room], c)
	close(c.send)
	if len(h.rooms[room]) == 0 {
		delete(h.rooms, room)
	}
}

// Serve upgrades the request and streams the establishment's order events
// until the client goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, establishmentID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.add(establishmentID, c)
	log.Printf("[ws] client joined establishment=%s", establishmentID)

	go c.writeLoop()
	c.readLoop()

	h.remove(establishmentID, c)
	log.Printf("[ws] client left establishment=%s", establishmentID)
	return nil
}

// readLoop discards client messages; it only notices disconnects and pongs.
func (c *client) readLoop() {
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("[ws] write error: %v", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
