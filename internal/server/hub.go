package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait bounds a single WebSocket write.
	writeWait = 10 * time.Second

	// pongWait is how long to wait for a pong before dropping the client.
	pongWait = 60 * time.Second

	// pingPeriod must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// sendBuffer is the per-client outbound queue; slow clients that
	// fall this far behind are dropped.
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dev server only; same-origin enforcement is not useful on localhost.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// hub fans navigation state messages out to connected WebSocket clients.
type hub struct {
	logger *slog.Logger

	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	messages   chan []byte
	done       chan struct{}
}

type client struct {
	hub  *hub
	conn *websocket.Conn
	send chan []byte
}

func newHub(logger *slog.Logger) *hub {
	return &hub{
		logger:     logger,
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		messages:   make(chan []byte, sendBuffer),
		done:       make(chan struct{}),
	}
}

// run owns the client set; register, unregister and broadcast all
// funnel through here.
func (h *hub) run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}

		case msg := <-h.messages:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					h.logger.Debug("dropping slow websocket client")
					delete(h.clients, c)
					close(c.send)
				}
			}

		case <-h.done:
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return
		}
	}
}

// broadcast queues a message for all clients. Nil and overflow messages
// are dropped; navigation state is a stream of snapshots, not a log.
func (h *hub) broadcast(msg []byte) {
	if msg == nil {
		return
	}
	select {
	case h.messages <- msg:
	case <-h.done:
	default:
	}
}

func (h *hub) close() {
	select {
	case <-h.done:
	default:
		close(h.done)
	}
}

// handleWS upgrades the connection and streams navigation state.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	c := &client{hub: s.hub, conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case s.hub.register <- c:
	case <-s.hub.done:
		conn.Close()
		return
	}

	// Send the current snapshot immediately so new clients don't wait
	// for the next navigation.
	if msg := encodeSnapshot(s.nav.Current()); msg != nil {
		select {
		case c.send <- msg:
		default:
		}
	}

	go c.writePump()
	go c.readPump()
}

// readPump discards inbound messages; the socket is server-to-client.
// Reading is still required to process control frames and detect close.
func (c *client) readPump() {
	defer func() {
		// After close() the hub no longer drains unregister; don't block on
		// a stopped hub.
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
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

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
