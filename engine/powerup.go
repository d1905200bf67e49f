package engine

import (
	"arenagame/geom"
	"arenagame/protocol"
)

// Powerup is a pickup dropped into the arena by the server.
type Powerup struct {
	ID   string
	Type string
	Pos  geom.Vector
}

const powerupSize = 16

const PowerupHealth = "health"

func (e *Engine) HandlePowerupSpawned(msg protocol.PowerupSpawned) {
	if msg.ID == "" {
		return
	}
	e.addPowerup(protocol.Powerup{ID: msg.ID, Type: msg.Type, X: msg.X, Y: msg.Y})
}

// mergePowerups folds a room-state powerup list in. Consumed ids stay
// consumed: a state rebroadcast cannot locally respawn a pickup.
func (e *Engine) mergePowerups(powerups []protocol.Powerup) {
	for _, p := range powerups {
		e.addPowerup(p)
	}
}

func (e *Engine) addPowerup(p protocol.Powerup) {
	if p.ID == "" {
		return
	}
	if _, gone := e.consumed[p.ID]; gone {
		return
	}
	if _, ok := e.powerups[p.ID]; ok {
		return
	}
	e.powerups[p.ID] = &Powerup{ID: p.ID, Type: p.Type, Pos: geom.Vector{X: p.X, Y: p.Y}}
}

func (e *Engine) ForEachPowerup(callback func(*Powerup)) {
	for _, p := range e.powerups {
		callback(p)
	}
}

// tickPowerups consumes any pickup the local participant is standing on.
func (e *Engine) tickPowerups() {
	local := e.localRect()
	for id, p := range e.powerups {
		r := geom.Rect{X: p.Pos.X, Y: p.Pos.Y, W: powerupSize, H: powerupSize}
		if !r.Overlaps(local) {
			continue
		}
		delete(e.powerups, id)
		e.consumed[id] = struct{}{}
		if p.Type == PowerupHealth {
			e.local.Health += e.cfg.PowerupHeal
			if e.local.Health > e.cfg.MaxHealth {
				e.local.Health = e.cfg.MaxHealth
			}
		}
	}
}
