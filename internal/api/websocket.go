package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

const (
	// MaxWSConnectionsTotal is the maximum number of WebSocket connections allowed.
	MaxWSConnectionsTotal = 500

	// MaxWSConnectionsPerIP is the maximum WebSocket connections per IP.
	MaxWSConnectionsPerIP = 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if IsAllowedOrigin(origin) {
			return true
		}
		log.Printf("WebSocket connection rejected from origin: %s", origin)
		RecordConnectionRejected("origin")
		return false
	},
}

// wsClient tracks a WebSocket connection, its source IP, and which match
// it wants live snapshots for ("" subscribes to every running match).
type wsClient struct {
	conn    *websocket.Conn
	ip      string
	matchID string
}

type wsBroadcast struct {
	matchID string
	payload []byte
}

// WebSocketHub manages all WebSocket connections with DoS protection and
// fans out per-match snapshot events pushed in by the match runner —
// there is no polling loop here, a broadcast only happens when a match
// actually produces a new snapshot.
type WebSocketHub struct {
	clients    map[*websocket.Conn]*wsClient
	broadcast  chan wsBroadcast
	register   chan *wsClient
	unregister chan *websocket.Conn
	mu         sync.RWMutex

	wsLimiter *WebSocketRateLimiter
}

// NewWebSocketHub creates a new hub with connection limiting.
func NewWebSocketHub() *WebSocketHub {
	return &WebSocketHub{
		clients:    make(map[*websocket.Conn]*wsClient),
		broadcast:  make(chan wsBroadcast, 256),
		register:   make(chan *wsClient),
		unregister: make(chan *websocket.Conn),
		wsLimiter:  NewWebSocketRateLimiter(MaxWSConnectionsPerIP),
	}
}

// Run starts the hub's dispatch loop; call it once in its own goroutine.
func (h *WebSocketHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.conn] = client
			h.mu.Unlock()
			count := len(h.clients)
			log.Printf("client connected from %s for match %q (%d total)", client.ip, client.matchID, count)
			UpdateWSConnections(count)

		case conn := <-h.unregister:
			h.mu.Lock()
			if client, ok := h.clients[conn]; ok {
				h.wsLimiter.Release(client.ip)
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()
			count := len(h.clients)
			log.Printf("client disconnected (%d remaining)", count)
			UpdateWSConnections(count)

		case msg := <-h.broadcast:
			h.mu.RLock()
			var stale []*websocket.Conn
			for conn, client := range h.clients {
				if client.matchID != "" && client.matchID != msg.matchID {
					continue
				}
				if err := conn.WriteMessage(websocket.TextMessage, msg.payload); err != nil {
					stale = append(stale, conn)
				}
			}
			h.mu.RUnlock()
			IncrementWSMessages()

			if len(stale) > 0 {
				h.mu.Lock()
				for _, conn := range stale {
					if client, ok := h.clients[conn]; ok {
						h.wsLimiter.Release(client.ip)
						delete(h.clients, conn)
					}
				}
				h.mu.Unlock()
			}
		}
	}
}

// Broadcast sends event/data to every client subscribed to matchID (or
// subscribed to all matches).
func (h *WebSocketHub) Broadcast(matchID, event string, data interface{}) {
	msg := map[string]interface{}{
		"event":   event,
		"matchId": matchID,
		"data":    data,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case h.broadcast <- wsBroadcast{matchID: matchID, payload: payload}:
	default:
		// channel full, drop under backpressure rather than block the caller
	}
}

// ClientCount returns the number of connected clients.
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleWebSocket upgrades the connection and registers it against the
// "match" query parameter (empty subscribes to every running match).
func (h *WebSocketHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ip := GetClientIP(r)

	h.mu.RLock()
	total := len(h.clients)
	h.mu.RUnlock()
	if total >= MaxWSConnectionsTotal {
		log.Printf("WebSocket connection rejected: total limit reached (%d)", total)
		RecordConnectionRejected("ws_total_limit")
		http.Error(w, "Too many connections", http.StatusServiceUnavailable)
		return
	}

	if !h.wsLimiter.Allow(ip) {
		log.Printf("WebSocket connection rejected from %s: per-IP limit reached", ip)
		RecordConnectionRejected("ws_ip_limit")
		http.Error(w, "Too many connections from your IP", http.StatusTooManyRequests)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		h.wsLimiter.Release(ip)
		return
	}

	client := &wsClient{conn: conn, ip: ip, matchID: r.URL.Query().Get("match")}
	h.register <- client

	go func() {
		defer func() { h.unregister <- conn }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
			// Clients only subscribe; no inbound commands are accepted.
		}
	}()
}
