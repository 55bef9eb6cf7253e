package server

import (
	"encoding/base64"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"

	"hdfview/internal/models"
	"hdfview/pkg/render"
)

// Hub fans rendered frames out to every connected browser. It is the
// reconciler's output sink: each Show call becomes one JSON message pushed
// over the websocket, binary panes base64-encoded.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewHub builds an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]bool)}
}

// Handle registers the connection and blocks until the peer closes it.
// The read loop exists only to observe the close; all traffic is
// server-to-client.
func (h *Hub) Handle(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		c.Close()
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}

// broadcast sends one message to every client, dropping clients whose
// connection has failed.
func (h *Hub) broadcast(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			c.Close()
			delete(h.clients, c)
		}
	}
}

type message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func pngField(png []byte) string {
	if len(png) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(png)
}

func (h *Hub) ShowValue(text string) {
	h.broadcast(message{Type: "value", Data: text})
}

func (h *Hub) ShowImage(png []byte) {
	h.broadcast(message{Type: "image", Data: pngField(png)})
}

func (h *Hub) ShowAux(png []byte) {
	h.broadcast(message{Type: "aux", Data: pngField(png)})
}

func (h *Hub) ShowPlot(png []byte) {
	h.broadcast(message{Type: "plot", Data: pngField(png)})
}

func (h *Hub) ShowTable(t *render.TableModel) {
	h.broadcast(message{Type: "table", Data: t})
}

func (h *Hub) ShowStats(rows []render.StatRow, histogram []byte) {
	h.broadcast(message{Type: "stats", Data: map[string]interface{}{
		"rows":      rows,
		"histogram": pngField(histogram),
	}})
}

func (h *Hub) SetSliceBound(max int) {
	h.broadcast(message{Type: "slice_bound", Data: max})
}

func (h *Hub) SetAvailability(a models.Availability) {
	h.broadcast(message{Type: "availability", Data: a})
}

func (h *Hub) Notify(msg string) {
	h.broadcast(message{Type: "notice", Data: msg})
}

func (h *Hub) Clear(keepDisplay bool) {
	h.broadcast(message{Type: "clear", Data: keepDisplay})
}
