// Package websocket fans newly recorded results out to connected dashboards.
package websocket

import (
	"context"
	"time"

	"github.com/anjiri1684/institute_manager/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// writeWait bounds how long one slow dashboard can hold up a broadcast.
const writeWait = 10 * time.Second

// Conn is the subset of *websocket.Conn the hub writes to.
type Conn interface {
	SetWriteDeadline(t time.Time) error
	WriteJSON(v interface{}) error
	Close() error
}

type Client struct {
	ID   uuid.UUID
	Conn Conn
}

type ResultEvent struct {
	Type   string           `json:"type"`
	Result models.ResultRow `json:"result"`
}

type Hub struct {
	clients    map[uuid.UUID]Conn
	register   chan *Client
	unregister chan *Client
	broadcast  chan ResultEvent
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]Conn),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan ResultEvent, 64),
		done:       make(chan struct{}),
	}
}

// Results is the process-wide hub; main starts it with Run.
var Results = NewHub()

// Register reports false once the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish never blocks the submission path; a full queue drops the event.
func (h *Hub) Publish(r models.ResultRow) {
	select {
	case h.broadcast <- ResultEvent{Type: "result.recorded", Result: r}:
	default:
		log.Warn().Uint("result_id", r.ID).Msg("result feed queue full, event dropped")
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for id, conn := range h.clients {
				conn.Close()
				delete(h.clients, id)
			}
			return
		case client := <-h.register:
			h.clients[client.ID] = client.Conn
			log.Debug().Str("client", client.ID.String()).Msg("result feed client registered")
		case client := <-h.unregister:
			if conn, ok := h.clients[client.ID]; ok && conn == client.Conn {
				delete(h.clients, client.ID)
			}
		case event := <-h.broadcast:
			for id, conn := range h.clients {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(event); err != nil {
					log.Warn().Err(err).Str("client", id.String()).Msg("dropping result feed client")
					conn.Close()
					delete(h.clients, id)
				}
			}
		}
	}
}
