package session

import (
	"encoding/json"
	"testing"
	"time"

	"arenagame/protocol"
)

func testClient() *Client {
	return newClient(nil, "arena-1", "local-player")
}

func TestCallThrottlesPerName(t *testing.T) {
	c := testClient()
	now := time.UnixMilli(1_600_000_000_000)
	c.now = func() time.Time { return now }

	opts := &protocol.CallOptions{ThrottleMs: 50}
	c.Call("updatePlayerPosition", protocol.PlayerUpdate{}, opts)
	now = now.Add(20 * time.Millisecond)
	c.Call("updatePlayerPosition", protocol.PlayerUpdate{}, opts)
	if got := c.Pending(); got != 1 {
		t.Fatalf("pending = %d, want 1 (second call throttled)", got)
	}

	// A different name is throttled independently.
	c.Call("playerAttack", protocol.PlayerAttack{}, opts)
	if got := c.Pending(); got != 2 {
		t.Fatalf("pending = %d, want 2", got)
	}

	now = now.Add(50 * time.Millisecond)
	c.Call("updatePlayerPosition", protocol.PlayerUpdate{}, opts)
	if got := c.Pending(); got != 3 {
		t.Fatalf("pending = %d, want 3 after the window elapsed", got)
	}
}

func TestDispatchRoutesEventsAndState(t *testing.T) {
	c := testClient()

	var fired []protocol.ProjectileFired
	c.Subscribe("arena-1", protocol.EventProjectileFired, func(data []byte) {
		var msg protocol.ProjectileFired
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatal(err)
		}
		fired = append(fired, msg)
	})
	var states []protocol.RoomState
	c.SubscribeState("arena-1", func(state protocol.RoomState) {
		states = append(states, state)
	})

	payload, _ := json.Marshal(protocol.ProjectileFired{ID: "shot-1", OwnerID: "enemy"})
	c.inbound <- protocol.Envelope{Event: protocol.EventProjectileFired, Data: payload}
	statePayload, _ := json.Marshal(protocol.RoomState{Obstacles: []protocol.Obstacle{{X: 96, Y: 96}}})
	c.inbound <- protocol.Envelope{Event: protocol.EventState, Data: statePayload}

	c.Dispatch()

	if len(fired) != 1 || fired[0].ID != "shot-1" {
		t.Fatalf("fired = %+v, want the one shot", fired)
	}
	if len(states) != 1 || len(states[0].Obstacles) != 1 {
		t.Fatalf("states = %+v, want one state with one obstacle", states)
	}
}

func TestSubscribeRejectsForeignRoom(t *testing.T) {
	c := testClient()
	c.Subscribe("other-room", "whatever", func([]byte) {
		t.Fatal("handler for a foreign room must never fire")
	})

	c.inbound <- protocol.Envelope{Event: "whatever"}
	c.Dispatch()
}

func TestDispatchSkipsMalformedState(t *testing.T) {
	c := testClient()
	called := false
	c.SubscribeState("arena-1", func(protocol.RoomState) { called = true })

	c.inbound <- protocol.Envelope{Event: protocol.EventState, Data: []byte("not-json")}
	c.Dispatch()
	if called {
		t.Fatal("malformed state must be skipped")
	}
}
