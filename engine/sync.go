package engine

import (
	"time"

	"arenagame/protocol"
)

// maybePush sends the local participant's state to the server, at most
// once per PositionInterval of simulated time since the last push. Safe
// to call every tick regardless of frame rate.
func (e *Engine) maybePush(now time.Time) {
	if !e.lastPush.IsZero() && now.Sub(e.lastPush) < e.cfg.PositionInterval {
		return
	}
	e.session.Call(protocol.CallPlayerUpdate, protocol.PlayerUpdate{
		X:      e.local.Pos.X,
		Y:      e.local.Pos.Y,
		Angle:  e.local.Angle,
		Health: e.local.Health,
		Name:   e.local.Name,
	}, &protocol.CallOptions{ThrottleMs: int(e.cfg.PositionInterval.Milliseconds())})
	e.lastPush = now
}
