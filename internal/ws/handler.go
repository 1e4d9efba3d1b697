package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dynbilliards/backend/internal/auth"
	"github.com/dynbilliards/backend/internal/billiards"
	"github.com/dynbilliards/backend/internal/config"
	"github.com/dynbilliards/backend/internal/engine"
	"github.com/dynbilliards/backend/internal/runs"
	"github.com/dynbilliards/backend/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	maxMessage = 4096
)

// Server owns the WebSocket edit surface. Every connection owns exactly one
// configuration session, which dies with the connection.
type Server struct {
	cfg      *config.Config
	catalog  *billiards.Catalog
	engines  *engine.Registry
	journal  *runs.Journal
	tracker  *session.Tracker
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewServer(cfg *config.Config, catalog *billiards.Catalog, engines *engine.Registry, journal *runs.Journal, tracker *session.Tracker) *Server {
	return &Server{
		cfg:     cfg,
		catalog: catalog,
		engines: engines,
		journal: journal,
		tracker: tracker,
		hub:     NewHub(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // origin is checked by middleware.WebSocketCORSCheck
			},
		},
	}
}

func (s *Server) Hub() *Hub { return s.hub }

// Client is one connected configuration session.
type Client struct {
	conn    *websocket.Conn
	srv     *Server
	session *billiards.Session
	send    chan []byte

	sendMu sync.Mutex
	closed bool
}

// Hub tracks connected sessions so lifecycle events can reach them.
type Hub struct {
	clients map[string]*Client
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

// register fails when the session already has a connection.
func (h *Hub) register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.clients[c.session.ID]; exists {
		return false
	}
	h.clients[c.session.ID] = c
	return true
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	if cur, ok := h.clients[c.session.ID]; ok && cur == c {
		delete(h.clients, c.session.ID)
	}
	h.mu.Unlock()
	c.closeSend()
}

func (h *Hub) Connected(sessionID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[sessionID]
	return ok
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Expire notifies and disconnects the session's client, if connected.
func (h *Hub) Expire(sessionID, message string) {
	h.mu.RLock()
	c, ok := h.clients[sessionID]
	h.mu.RUnlock()
	if !ok {
		log.Printf("[WS] no client for expired session %s", sessionID)
		return
	}
	c.sendJSON(map[string]interface{}{"type": "session_expired", "message": message})
	h.unregister(c)
}

// HandleWebSocket upgrades a connection that presents a valid ticket and
// starts a fresh configuration session for it.
func (s *Server) HandleWebSocket(c *gin.Context) {
	raw := c.Query("ticket")
	if raw == "" {
		raw = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticket required"})
		return
	}

	ticket, err := auth.ParseTicket(s.cfg.JWTSecret, raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid ticket"})
		return
	}
	table, err := s.catalog.Lookup(billiards.TableType(ticket.TableType))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
		return
	}
	if s.hub.Connected(ticket.SessionID) {
		c.JSON(http.StatusConflict, gin.H{"error": "session already connected"})
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	client := &Client{
		conn:    conn,
		srv:     s,
		session: billiards.NewSession(ticket.SessionID, table, s.cfg.DefaultPlaybackFPS),
		send:    make(chan []byte, 64),
	}
	if !s.hub.register(client) {
		conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "session already connected"), time.Now().Add(writeWait))
		conn.Close()
		return
	}

	log.Printf("[WS] Session %s connected (table=%s)", ticket.SessionID, table.Type)
	s.tracker.Touch(context.Background(), ticket.SessionID)

	go client.writePump()
	client.sendState()
	go client.readPump()
}

func (c *Client) closeSend() {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// sendJSON queues v for the write pump, dropping it if the buffer is full.
func (c *Client) sendJSON(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[WS] Error marshaling message: %v", err)
		return
	}
	c.sendMu.Lock()
	defer c.sendMu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("[WS] send buffer full for session %s, dropping message", c.session.ID)
	}
}

func (c *Client) sendError(message string) {
	c.sendJSON(map[string]interface{}{
		"type":    "error",
		"message": message,
	})
}

func (c *Client) sendState() {
	c.sendJSON(map[string]interface{}{
		"type":  "session_state",
		"state": c.session.State(),
	})
}

// writePump writes queued messages and keeps the connection alive with pings.
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
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WS] write error for session %s: %v", c.session.ID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] ping error for session %s: %v", c.session.ID, err)
				return
			}
		}
	}
}

// readPump applies incoming events one at a time. It is the only goroutine
// touching the session.
func (c *Client) readPump() {
	defer func() {
		c.srv.hub.unregister(c)
		c.srv.tracker.Forget(context.Background(), c.session.ID)
		c.conn.Close()
		log.Printf("[WS] Session %s closed", c.session.ID)
	}()

	c.conn.SetReadLimit(maxMessage)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] unexpected close for session %s: %v", c.session.ID, err)
			}
			return
		}

		c.srv.tracker.Touch(context.Background(), c.session.ID)

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.sendError("Invalid message")
			continue
		}
		c.handleMessage(msg)
	}
}
