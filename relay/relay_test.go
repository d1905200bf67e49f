package relay

import (
	"encoding/json"
	"testing"

	"arenagame/protocol"
)

func join(t *testing.T, r *Relay, account string) *subscriber {
	t.Helper()
	sub := &subscriber{messages: make(chan protocol.Envelope, 64), conn: nil}
	r.addSubscriber(sub)

	data, _ := json.Marshal(protocol.Join{Account: account, Name: account})
	r.onEnvelope(sub, protocol.Envelope{Event: protocol.EventJoin, Sender: account, Data: data})
	return sub
}

func newTestRelay() *Relay {
	return &Relay{
		subscribers: make(map[*subscriber]struct{}),
		players:     make(map[string]*playerState),
		obstacles:   scatterObstacles(4),
		powerups:    make(map[string]protocol.Powerup),
	}
}

func TestJoinSeedsRosterAndSendsObstaclesOnce(t *testing.T) {
	r := newTestRelay()
	sub := join(t, r, "p1")

	if r.players["p1"] == nil {
		t.Fatal("join should seed the roster")
	}

	select {
	case envelope := <-sub.messages:
		if envelope.Event != protocol.EventObstacles {
			t.Fatalf("first message = %s, want obstacles", envelope.Event)
		}
		var obstacles []protocol.Obstacle
		if err := json.Unmarshal(envelope.Data, &obstacles); err != nil {
			t.Fatal(err)
		}
		if len(obstacles) != 4 {
			t.Fatalf("obstacles = %d, want 4", len(obstacles))
		}
	default:
		t.Fatal("join should trigger the one-shot obstacle delivery")
	}
}

func TestReportedHitsApplyToRoster(t *testing.T) {
	r := newTestRelay()
	attacker := join(t, r, "p1")
	join(t, r, "p2")

	data, _ := json.Marshal(protocol.PlayerHit{TargetID: "p2", AttackerID: "p1", Damage: 30})
	r.onEnvelope(attacker, protocol.Envelope{Event: protocol.CallPlayerHit, Sender: "p1", Data: data})

	if got := r.players["p2"].health; got != 70 {
		t.Fatalf("p2 health = %d, want 70", got)
	}
}

func TestCombatEventsFanOutToOthersOnly(t *testing.T) {
	r := newTestRelay()
	shooter := join(t, r, "p1")
	other := join(t, r, "p2")
	drain(shooter)
	drain(other)

	data, _ := json.Marshal(protocol.ProjectileFired{ID: "shot-1", OwnerID: "p1"})
	r.onEnvelope(shooter, protocol.Envelope{Event: protocol.CallProjectileFire, Sender: "p1", Data: data})

	if len(shooter.messages) != 0 {
		t.Fatal("sender must not receive its own combat event back")
	}
	if len(other.messages) != 1 {
		t.Fatalf("other subscriber got %d messages, want 1", len(other.messages))
	}
}

func TestDisconnectDropsPlayerFromRoster(t *testing.T) {
	r := newTestRelay()
	sub := join(t, r, "p1")

	r.removeSubscriber(sub)
	if _, ok := r.players["p1"]; ok {
		t.Fatal("disconnect should remove the player from the roster")
	}
}

func drain(sub *subscriber) {
	for {
		select {
		case <-sub.messages:
		default:
			return
		}
	}
}
