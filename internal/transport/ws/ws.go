package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// TypeConsoleUpdated tags pushes carrying a console's new view.
const TypeConsoleUpdated = "console_updated"

// ConsoleUpdate is pushed whenever an open console's state changes.
type ConsoleUpdate struct {
	Type      string `json:"type"`
	ConsoleID string `json:"consoleId"`
	View      any    `json:"view"`
}

// client is one browser connection. A non-empty console restricts console
// pushes to that console; agent events always go to everyone.
type client struct {
	console string
}

type Hub struct {
	clients map[*websocket.Conn]client
	// gorilla connections allow one concurrent writer, so writes hold mu exclusively.
	mu sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]client),
	}
}

func (h *Hub) Register(rg *gin.RouterGroup) {
	rg.GET("", h.handleWS)
}

func (h *Hub) handleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	console := c.Query("console")
	h.mu.Lock()
	h.clients[conn] = client{console: console}
	h.mu.Unlock()
	slog.Debug("websocket client connected", "console", console, "clients", h.Clients())

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
		slog.Debug("websocket client disconnected", "console", console, "clients", h.Clients())
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Clients is the number of connected browsers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Watching reports whether any client is subscribed to consoleID alone.
func (h *Hub) Watching(consoleID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, cl := range h.clients {
		if cl.console == consoleID {
			return true
		}
	}
	return false
}

// Broadcast sends v to every connected client.
func (h *Hub) Broadcast(v any) {
	h.send(v, func(client) bool { return true })
}

// BroadcastConsole pushes a console view to clients watching that console or
// watching all consoles.
func (h *Hub) BroadcastConsole(consoleID string, view any) {
	msg := ConsoleUpdate{Type: TypeConsoleUpdated, ConsoleID: consoleID, View: view}
	h.send(msg, func(cl client) bool {
		return cl.console == "" || cl.console == consoleID
	})
}

func (h *Hub) send(v any, want func(client) bool) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("websocket broadcast marshal failed", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn, cl := range h.clients {
		if !want(cl) {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			slog.Error("websocket write failed", "error", err)
		}
	}
}
