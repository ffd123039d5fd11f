package event

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/vantran/live-auction-BE/internal/monitoring"
)

type directMessage struct {
	connID  string
	payload []byte
}

// Hub owns every websocket client and serializes all membership changes and
// deliveries through its run loop, so no map access ever needs a lock. A
// client that cannot keep up with its send buffer is dropped rather than
// allowed to stall the hub.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	direct     chan directMessage
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		direct:     make(chan directMessage, 256),
	}
}

// Run is the hub's main loop. Start it in a goroutine before serving.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client.ID] = client
			monitoring.WebsocketClients.Inc()
			log.Info().Str("conn_id", client.ID).Int("clients", len(h.clients)).Msg("client connected")

		case client := <-h.unregister:
			if _, ok := h.clients[client.ID]; ok {
				h.drop(client)
			}

		case payload := <-h.broadcast:
			for _, client := range h.clients {
				h.deliver(client, payload)
			}

		case msg := <-h.direct:
			if client, ok := h.clients[msg.connID]; ok {
				h.deliver(client, msg.payload)
			}
		}
	}
}

func (h *Hub) deliver(client *Client, payload []byte) {
	select {
	case client.send <- payload:
	default:
		// Slow consumer; cut it loose instead of blocking everyone else.
		log.Warn().Str("conn_id", client.ID).Msg("send buffer full, dropping client")
		h.drop(client)
	}
}

// drop must only be called from the run loop.
func (h *Hub) drop(client *Client) {
	delete(h.clients, client.ID)
	close(client.send)
	monitoring.WebsocketClients.Dec()
	log.Info().Str("conn_id", client.ID).Int("clients", len(h.clients)).Msg("client disconnected")
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast sends an event to every connected client.
func (h *Hub) Broadcast(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("event", ev.Type).Msg("failed to marshal event")
		return
	}
	h.broadcast <- payload
}

// SendTo sends an event to one connection. Unknown handles are ignored:
// the target may have disconnected between the trigger and the delivery.
func (h *Hub) SendTo(connID string, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("event", ev.Type).Msg("failed to marshal event")
		return
	}
	h.direct <- directMessage{connID: connID, payload: payload}
}
