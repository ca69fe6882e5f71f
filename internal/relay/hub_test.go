package relay

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"
)

func startHub() *Hub {
	h := NewHub()
	go h.Run()
	return h
}

func newTestClient() *Client {
	return &Client{send: make(chan []byte, 16), clientType: ClientTypeUnknown}
}

// connectAndJoin registers the client and puts it in the branch room,
// consuming the joined_branch ack so tests only see domain events.
func connectAndJoin(t *testing.T, h *Hub, c *Client, branchID uint) {
	t.Helper()
	h.register <- c
	h.join <- joinRequest{client: c, branchID: branchID}
	ack := recvEnvelope(t, c)
	if ack.Event != "joined_branch" {
		t.Fatalf("Expected joined_branch ack, got %q", ack.Event)
	}
}

func recvEnvelope(t *testing.T, c *Client) envelope {
	t.Helper()
	select {
	case msg, ok := <-c.send:
		if !ok {
			t.Fatal("Send channel closed while waiting for a message")
		}
		var env envelope
		if err := json.Unmarshal(msg, &env); err != nil {
			t.Fatalf("Failed to decode relay frame: %v", err)
		}
		return env
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for relay message")
	}
	return envelope{}
}

func payloadOf(t *testing.T, env envelope) map[string]interface{} {
	t.Helper()
	payload, ok := env.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Expected object payload, got %T", env.Data)
	}
	return payload
}

func TestHubRoomIsolation(t *testing.T) {
	h := startHub()
	branch1 := newTestClient()
	branch2 := newTestClient()
	connectAndJoin(t, h, branch1, 1)
	connectAndJoin(t, h, branch2, 2)

	h.PublishToBranch(1, "sale_completed", map[string]interface{}{"ticket": 1})
	h.PublishToBranch(2, "shift_started", map[string]interface{}{"shift": 9})

	if env := recvEnvelope(t, branch1); env.Event != "sale_completed" {
		t.Errorf("Branch 1 member expected sale_completed, got %q", env.Event)
	}
	// Branch 2's first and only delivery must be its own event: had the
	// branch 1 publish leaked, it would arrive first.
	if env := recvEnvelope(t, branch2); env.Event != "shift_started" {
		t.Errorf("Branch 2 member expected shift_started, got %q", env.Event)
	}
}

func TestHubFanOutReachesEveryMember(t *testing.T) {
	h := startHub()
	members := []*Client{newTestClient(), newTestClient(), newTestClient()}
	for _, c := range members {
		connectAndJoin(t, h, c, 5)
	}

	// The publisher is a room member too and hears its own event back.
	h.PublishToBranch(5, "scale_connected", map[string]interface{}{"branchId": 5})

	for i, c := range members {
		if env := recvEnvelope(t, c); env.Event != "scale_connected" {
			t.Errorf("Member %d expected scale_connected, got %q", i, env.Event)
		}
	}
}

func TestHubLatestJoinWins(t *testing.T) {
	h := startHub()
	mover := newTestClient()
	connectAndJoin(t, h, mover, 1)

	// Re-joining moves the connection; it must stop hearing branch 1.
	h.join <- joinRequest{client: mover, branchID: 2}
	if ack := recvEnvelope(t, mover); ack.Event != "joined_branch" {
		t.Fatalf("Expected joined_branch ack, got %q", ack.Event)
	}

	h.PublishToBranch(1, "sale_completed", map[string]interface{}{"ticket": 1})
	h.PublishToBranch(2, "weight_update", map[string]interface{}{"weight": 1.25})

	if env := recvEnvelope(t, mover); env.Event != "weight_update" {
		t.Errorf("Moved client expected only branch 2 traffic, got %q", env.Event)
	}
}

func TestHubStampsReceivedAt(t *testing.T) {
	h := startHub()
	c := newTestClient()
	connectAndJoin(t, h, c, 3)

	h.PublishToBranch(3, "scale_alert", map[string]interface{}{"severity": "high"})

	payload := payloadOf(t, recvEnvelope(t, c))
	stamp, ok := payload["receivedAt"].(string)
	if !ok {
		t.Fatalf("Expected receivedAt string, got %v", payload["receivedAt"])
	}
	if _, err := time.Parse(time.RFC3339Nano, stamp); err != nil {
		t.Errorf("receivedAt should be RFC3339: %v", err)
	}
	if payload["severity"] != "high" {
		t.Error("Original payload fields should pass through verbatim")
	}
}

func TestHubDeliversInPublishOrder(t *testing.T) {
	h := startHub()
	c := newTestClient()
	connectAndJoin(t, h, c, 4)

	const n = 10
	for i := 0; i < n; i++ {
		h.PublishToBranch(4, "weight_update", map[string]interface{}{"seq": fmt.Sprintf("%d", i)})
	}

	for i := 0; i < n; i++ {
		payload := payloadOf(t, recvEnvelope(t, c))
		if payload["seq"] != fmt.Sprintf("%d", i) {
			t.Fatalf("Out-of-order delivery: expected seq %d, got %v", i, payload["seq"])
		}
	}
}

func TestHubUnregisterClosesSendAndLeavesRoom(t *testing.T) {
	h := startHub()
	leaver := newTestClient()
	stayer := newTestClient()
	connectAndJoin(t, h, leaver, 6)
	connectAndJoin(t, h, stayer, 6)

	h.unregister <- leaver

	// The hub closes the send channel once the unregister is processed.
	select {
	case _, ok := <-leaver.send:
		if ok {
			t.Fatal("Expected closed send channel, got a message")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for send channel to close")
	}

	// Remaining members keep receiving.
	h.PublishToBranch(6, "shift_ended", map[string]interface{}{"shift": 1})
	if env := recvEnvelope(t, stayer); env.Event != "shift_ended" {
		t.Errorf("Remaining member expected shift_ended, got %q", env.Event)
	}
}

func TestBranchIDFrom(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		want  uint
		ok    bool
	}{
		{"json number", float64(7), 7, true},
		{"string id", "12", 12, true},
		{"zero", float64(0), 0, false},
		{"negative string", "-3", 0, false},
		{"garbage", "branch-1", 0, false},
		{"missing", nil, 0, false},
	}
	for _, c := range cases {
		payload := map[string]interface{}{}
		if c.value != nil {
			payload["branchId"] = c.value
		}
		got, ok := branchIDFrom(payload)
		if got != c.want || ok != c.ok {
			t.Errorf("%s: branchIDFrom = (%d, %v), want (%d, %v)", c.name, got, ok, c.want, c.ok)
		}
	}
}
