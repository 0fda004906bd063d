package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/snapshot"
)

const (
	clientSendBuf = 16
	writeDeadline = 5 * time.Second
	pongWait      = 60 * time.Second
	pingInterval  = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// RefreshEvent is the message pushed to websocket clients when a refresh
// publishes a new snapshot.
type RefreshEvent struct {
	Event            string    `json:"event"`
	SnapshotID       string    `json:"snapshot_id"`
	Season           int       `json:"season"`
	Plays            int       `json:"plays"`
	MaxCompletedWeek int       `json:"max_completed_week"`
	FetchedAt        time.Time `json:"fetched_at"`
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

// Hub fans refresh events out to connected websocket clients. Slow clients
// drop messages rather than stalling the broadcaster.
type Hub struct {
	log     *log.Entry
	mu      sync.Mutex
	clients map[*wsClient]struct{}
}

// NewHub creates an empty hub
func NewHub(logger *log.Entry) *Hub {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Hub{
		log:     logger,
		clients: make(map[*wsClient]struct{}),
	}
}

// NotifyRefresh satisfies the refresh service's notifier hook. It runs on
// the refresher's goroutine, so sends never block.
func (h *Hub) NotifyRefresh(snap *snapshot.Snapshot) {
	data, err := json.Marshal(RefreshEvent{
		Event:            "refresh_completed",
		SnapshotID:       snap.ID.String(),
		Season:           snap.Season,
		Plays:            len(snap.Plays),
		MaxCompletedWeek: snap.MaxCompletedWeek,
		FetchedAt:        snap.FetchedAt,
	})
	if err != nil {
		h.log.WithError(err).Warn("Failed to marshal refresh event")
		return
	}
	h.broadcast(data)
}

func (h *Hub) broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.log.Warn("Dropping refresh event for slow websocket client")
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// HandleWS upgrades the request and registers the client
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("Websocket upgrade failed")
		return
	}

	c := &wsClient{
		conn: conn,
		send: make(chan []byte, clientSendBuf),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.log.WithField("remote", r.RemoteAddr).Info("Websocket client connected")

	go h.writePump(c)
	go h.readPump(c)
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		c.conn.Close()
	}
}

// writePump drains the client's send channel and writes to the connection.
// It owns the client lifecycle: on exit it removes the client from the map
// (so broadcast never sends to a stale channel) and closes the connection.
func (h *Hub) writePump(c *wsClient) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		h.removeClient(c)
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-c.done:
			return
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump keeps the connection alive by reading pongs and close frames.
// Clients never send upstream messages. On exit it signals writePump via
// c.done.
func (h *Hub) readPump(c *wsClient) {
	defer close(c.done)

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) removeClient(c *wsClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	h.log.Info("Websocket client disconnected")
}
