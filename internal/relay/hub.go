package relay

import (
	"encoding/json"
	"log"
	"time"

	"github.com/sya-pos/possyncgo/internal/metrics"
)

// envelope is the wire frame for every relay message, both directions.
type envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type joinRequest struct {
	client   *Client
	branchID uint
}

type identifyRequest struct {
	client     *Client
	clientType string
}

type publication struct {
	event    string
	branchID uint
	payload  map[string]interface{}
}

// Hub is the branch-room relay. A single Run loop owns all room membership
// and fans every publication out in arrival order, which is what gives
// per-room delivery ordering. There is no persistence: a member that is not
// connected at publish time never sees the event.
type Hub struct {
	// rooms map: branch ID -> set of member connections
	rooms map[uint]map[*Client]bool

	// clients tracks every registered connection and its current room
	// (0 = not joined yet)
	clients map[*Client]uint

	register   chan *Client
	unregister chan *Client
	join       chan joinRequest
	identify   chan identifyRequest
	publish    chan publication

	presence *Presence
}

// NewHub creates a new Hub instance with fresh presence counters.
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[uint]map[*Client]bool),
		clients:    make(map[*Client]uint),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan joinRequest),
		identify:   make(chan identifyRequest),
		publish:    make(chan publication, 64),
		presence:   NewPresence(),
	}
}

// Presence returns the hub's presence tracker.
func (h *Hub) Presence() *Presence {
	return h.presence
}

// PublishToBranch republishes an event to every connection currently in the
// branch's room, the publisher included. Safe to call from any goroutine;
// the Run loop serializes delivery.
func (h *Hub) PublishToBranch(branchID uint, event string, payload map[string]interface{}) {
	h.publish <- publication{event: event, branchID: branchID, payload: payload}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	presence := h.presence
	for {
		select {
		case client := <-h.register:
			h.clients[client] = 0
			presence.ClientConnected()

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.leaveRoom(client)
				delete(h.clients, client)
				close(client.send)
				presence.ClientDisconnected(client.clientType)
				log.Printf("📴 Relay client disconnected (%s)", client.clientType)
			}

		case req := <-h.join:
			if _, ok := h.clients[req.client]; !ok {
				break
			}
			// Membership is the latest join: re-joining moves the
			// connection out of its previous room.
			h.leaveRoom(req.client)
			if h.rooms[req.branchID] == nil {
				h.rooms[req.branchID] = make(map[*Client]bool)
			}
			h.rooms[req.branchID][req.client] = true
			h.clients[req.client] = req.branchID
			log.Printf("📱 Relay client joined branch %d", req.branchID)
			req.client.enqueue(envelope{Event: "joined_branch", Data: map[string]interface{}{
				"branchId": req.branchID,
				"message":  "joined branch room",
			}})

		case req := <-h.identify:
			if _, ok := h.clients[req.client]; !ok {
				break
			}
			req.client.clientType = req.clientType
			presence.Identify(req.clientType)

		case pub := <-h.publish:
			h.fanOut(pub)
		}
	}
}

// fanOut stamps the server receipt time and re-emits the event verbatim to
// every current room member. A member whose send buffer is full simply
// misses the event; this path has no delivery guarantee.
func (h *Hub) fanOut(pub publication) {
	pub.payload["receivedAt"] = time.Now().UTC().Format(time.RFC3339Nano)

	msg, err := json.Marshal(envelope{Event: pub.event, Data: pub.payload})
	if err != nil {
		log.Printf("[Relay] ⚠️ Dropping unmarshalable %s event: %v", pub.event, err)
		return
	}

	metrics.EventsRelayed.WithLabelValues(pub.event).Inc()

	for client := range h.rooms[pub.branchID] {
		select {
		case client.send <- msg:
		default:
			// Buffer full or client dead
		}
	}
}

// leaveRoom removes the client from its current room, if any. Only the Run
// loop calls this.
func (h *Hub) leaveRoom(client *Client) {
	branchID := h.clients[client]
	if branchID == 0 {
		return
	}
	if room, ok := h.rooms[branchID]; ok {
		delete(room, client)
		if len(room) == 0 {
			delete(h.rooms, branchID)
		}
	}
	h.clients[client] = 0
}
