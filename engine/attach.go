package engine

import (
	"encoding/json"
	"log"
	"time"

	"arenagame/protocol"
)

// Attach wires the engine's inbound subscriptions. Handlers run on the
// session's dispatch loop, which is the same goroutine that calls Tick.
// Undecodable payloads are logged and skipped; nothing is retried.
func (e *Engine) Attach() {
	e.session.Subscribe(e.room, protocol.EventProjectileFired, func(data []byte) {
		var msg protocol.ProjectileFired
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("bad projectileFired payload: %v", err)
			return
		}
		e.HandleProjectileFired(time.Now(), msg)
	})

	e.session.Subscribe(e.room, protocol.EventPowerupSpawned, func(data []byte) {
		var msg protocol.PowerupSpawned
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("bad powerupSpawned payload: %v", err)
			return
		}
		e.HandlePowerupSpawned(msg)
	})

	e.session.Subscribe(e.room, protocol.EventObstacles, func(data []byte) {
		var obstacles []protocol.Obstacle
		if err := json.Unmarshal(data, &obstacles); err != nil {
			log.Printf("bad obstacles payload: %v", err)
			return
		}
		e.TryBootstrap(obstacles)
	})

	e.session.Subscribe(e.room, protocol.EventRoster, func(data []byte) {
		var snapshot []protocol.RosterEntry
		if err := json.Unmarshal(data, &snapshot); err != nil {
			log.Printf("bad roster payload: %v", err)
			return
		}
		e.ApplyRosterSnapshot(snapshot)
	})

	e.session.SubscribeState(e.room, func(state protocol.RoomState) {
		if len(state.Obstacles) > 0 {
			e.TryBootstrap(state.Obstacles)
		}
		e.mergePowerups(state.Powerups)
	})
}
