package engine

import (
	"time"

	"arenagame/geom"
	"arenagame/protocol"
)

const localID = "local-player"

type sessionCall struct {
	name string
	args any
}

// fakeSession records outbound calls and ignores subscriptions; tests
// drive the engine's handlers directly.
type fakeSession struct {
	calls []sessionCall
}

func (s *fakeSession) Subscribe(room, event string, handler func(data []byte)) {}

func (s *fakeSession) SubscribeState(room string, handler func(state protocol.RoomState)) {}

func (s *fakeSession) Call(name string, args any, opts *protocol.CallOptions) {
	s.calls = append(s.calls, sessionCall{name: name, args: args})
}

func (s *fakeSession) named(name string) []sessionCall {
	var out []sessionCall
	for _, c := range s.calls {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

func newTestEngine() (*Engine, *fakeSession) {
	sess := &fakeSession{}
	e := New(DefaultConfig(), geom.NewSpace(), sess, "arena-1", localID, "tester")
	e.SetWorldReady()
	return e, sess
}

func intptr(v int) *int { return &v }

var t0 = time.UnixMilli(1_600_000_000_000)

func entry(id string, x, y float64) protocol.RosterEntry {
	return protocol.RosterEntry{Account: id, X: x, Y: y}
}
