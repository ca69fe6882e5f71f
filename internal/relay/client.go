package relay

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512 * 1024 // 512KB
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins; auth happens at the HTTP boundary before upgrade
	CheckOrigin: func(r *http.Request) bool { return true },
}

// relayedEvents are the domain signals a connection may publish into its
// branch room. Anything else is logged and dropped.
var relayedEvents = map[string]bool{
	"scale_alert":        true,
	"scale_connected":    true,
	"scale_disconnected": true,
	"sale_completed":     true,
	"weight_update":      true,
	"shift_started":      true,
	"shift_ended":        true,
}

// Client is a middleman between one websocket connection and the hub.
type Client struct {
	hub *Hub

	// The websocket connection.
	conn *websocket.Conn

	// Buffered channel of outbound messages.
	send chan []byte

	// clientType is set by the hub loop when the connection identifies.
	clientType string
}

// inbound is a client→server frame before its data is interpreted.
type inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// readPump pumps messages from the websocket connection to the hub.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Relay] WS error: %v", err)
			}
			break
		}

		var msg inbound
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("[Relay] ⚠️ Dropping malformed frame: %v", err)
			continue
		}

		switch msg.Event {
		case "join_branch":
			var data struct {
				BranchID uint `json:"branchId"`
			}
			if err := json.Unmarshal(msg.Data, &data); err != nil || data.BranchID == 0 {
				log.Printf("[Relay] ⚠️ Dropping join_branch without branchId")
				continue
			}
			c.hub.join <- joinRequest{client: c, branchID: data.BranchID}

		case "identify_client":
			var data struct {
				Type       string                 `json:"type"`
				DeviceInfo map[string]interface{} `json:"deviceInfo"`
			}
			if err := json.Unmarshal(msg.Data, &data); err != nil || data.Type == "" {
				log.Printf("[Relay] ⚠️ Dropping identify_client without type")
				continue
			}
			c.hub.identify <- identifyRequest{client: c, clientType: data.Type}

		case "get_stats":
			c.enqueue(envelope{Event: "stats", Data: c.hub.Presence().Snapshot()})

		default:
			c.relayDomainEvent(msg)
		}
	}
}

// relayDomainEvent forwards a domain signal into its branch room. The
// payload is republished verbatim; only receivedAt is added by the hub.
func (c *Client) relayDomainEvent(msg inbound) {
	if !relayedEvents[msg.Event] {
		log.Printf("[Relay] ⚠️ Dropping unknown event %q", msg.Event)
		return
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		log.Printf("[Relay] ⚠️ Dropping malformed %s payload: %v", msg.Event, err)
		return
	}
	branchID, ok := branchIDFrom(payload)
	if !ok {
		log.Printf("[Relay] ⚠️ Dropping %s without branchId", msg.Event)
		return
	}

	// Weight readings stream continuously; they are relayed but not counted.
	if msg.Event != "weight_update" {
		c.hub.Presence().EventRelayed()
	}
	c.hub.PublishToBranch(branchID, msg.Event, payload)
}

// branchIDFrom pulls the branch id out of a raw event payload. JSON numbers
// decode as float64; some terminals send the id as a string.
func branchIDFrom(payload map[string]interface{}) (uint, bool) {
	switch v := payload["branchId"].(type) {
	case float64:
		if v > 0 {
			return uint(v), true
		}
	case string:
		if n, err := strconv.ParseUint(v, 10, 32); err == nil && n > 0 {
			return uint(n), true
		}
	}
	return 0, false
}

// writePump pumps messages from the hub to the websocket connection.
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
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
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

// enqueue marshals and queues a message for the client without blocking.
func (c *Client) enqueue(v interface{}) {
	msg, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

// ServeWS handles websocket upgrade requests from terminals and observers.
func ServeWS(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	client := &Client{hub: hub, conn: conn, send: make(chan []byte, 256), clientType: ClientTypeUnknown}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}
