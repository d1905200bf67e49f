package engine

import (
	"testing"

	"arenagame/geom"
	"arenagame/protocol"
)

func borderBlocks(cfg Config) int {
	cols := int(cfg.ArenaWidth / cfg.TileSize)
	rows := int(cfg.ArenaHeight / cfg.TileSize)
	return 2*cols + 2*(rows-2)
}

func TestBootstrapIsIdempotent(t *testing.T) {
	e, _ := newTestEngine()

	first := []protocol.Obstacle{{X: 96, Y: 96}, {X: 160, Y: 96}}
	e.TryBootstrap(first)
	if !e.Bootstrapped() {
		t.Fatal("engine should be bootstrapped after the first source")
	}

	want := borderBlocks(e.cfg) + len(first)
	if got := len(e.space.Obstacles()); got != want {
		t.Fatalf("obstacle count = %d, want %d", got, want)
	}
	snapshot := append([]geom.Rect(nil), e.space.Obstacles()...)

	// The second asynchronous source delivers a different list; it must
	// be a no-op.
	e.TryBootstrap([]protocol.Obstacle{{X: 500, Y: 500}})
	after := e.space.Obstacles()
	if len(after) != len(snapshot) {
		t.Fatalf("obstacle count changed: %d -> %d", len(snapshot), len(after))
	}
	for i := range snapshot {
		if after[i] != snapshot[i] {
			t.Fatalf("obstacle %d changed: %+v -> %+v", i, snapshot[i], after[i])
		}
	}
}

func TestBootstrapRequiresWorldReady(t *testing.T) {
	sess := &fakeSession{}
	e := New(DefaultConfig(), geom.NewSpace(), sess, "arena-1", localID, "tester")

	e.TryBootstrap([]protocol.Obstacle{{X: 96, Y: 96}})
	if e.Bootstrapped() {
		t.Fatal("bootstrap before world resources are ready must be a no-op")
	}
	if len(e.space.Obstacles()) != 0 {
		t.Fatal("premature bootstrap must not create geometry")
	}

	// Not queued either: readiness alone does not replay the dropped call.
	e.SetWorldReady()
	if e.Bootstrapped() {
		t.Fatal("dropped bootstrap must not be retried")
	}
}

func TestBootstrapRegistersCollidersForKnownParticipants(t *testing.T) {
	e, _ := newTestEngine()
	e.ApplyRosterSnapshot([]protocol.RosterEntry{entry("p1", 200, 200)})

	e.TryBootstrap(nil)

	// The local participant now collides with the border.
	e.Local().Pos = geom.Vector{X: 40, Y: 100}
	e.space.SetPosition(localID, 40, 100)
	e.MoveLocal(-30, 0)
	if got := e.Local().Pos.X; got != 40 {
		t.Fatalf("local x = %f, want 40 (blocked by border)", got)
	}
}

func TestParticipantCreatedAfterBootstrapGetsCollider(t *testing.T) {
	e, _ := newTestEngine()
	e.TryBootstrap(nil)

	e.ApplyRosterSnapshot([]protocol.RosterEntry{entry("p1", 40, 100)})
	e.space.Move("p1", -30, 0)
	if got := e.space.Body("p1").X; got != 40 {
		t.Fatalf("p1 x = %f, want 40 (collider registered on creation)", got)
	}
}
