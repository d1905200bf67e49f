package engine

import (
	"time"

	"arenagame/geom"
	"arenagame/protocol"
)

// hitSet records targets an attack or projectile has already damaged, so
// repeated overlap checks within one event apply damage at most once.
// Its lifetime equals the event's lifetime.
type hitSet map[string]struct{}

// CanHit reports whether target may still be hit by this event, and
// records the hit when it may.
func (h hitSet) CanHit(target string) bool {
	if _, ok := h[target]; ok {
		return false
	}
	h[target] = struct{}{}
	return true
}

// AttackEvent is a live melee swing: a hitbox held in front of the
// attacker for a fixed visible duration, with a fresh hit set per swing.
type AttackEvent struct {
	ID        int64
	Owner     string
	Origin    geom.Vector
	Direction int
	Hitbox    geom.Rect
	hits      hitSet
}

func (a *AttackEvent) CanHit(target string) bool {
	return a.hits.CanHit(target)
}

// SpawnAttack starts a melee swing for the local participant. The
// cooldown flag is the sole guard against re-triggering; the previous
// hitbox, if still live, is destroyed first so only one exists per
// attacker. Returns nil while cooling down.
func (e *Engine) SpawnAttack(now time.Time) *AttackEvent {
	if e.attackCooling {
		return nil
	}
	e.attack = nil

	origin := e.local.Pos
	attack := &AttackEvent{
		ID:        now.UnixMilli(),
		Owner:     e.local.ID,
		Origin:    origin,
		Direction: e.local.Facing,
		Hitbox:    e.hitboxAt(origin, e.local.Facing),
		hits:      make(hitSet),
	}
	e.attack = attack
	e.attackCooling = true

	e.tasks.After(now.Add(e.cfg.HitboxLifetime), func() {
		if e.attack == attack {
			e.attack = nil
		}
	})
	e.tasks.After(now.Add(e.cfg.AttackCooldown), func() {
		e.attackCooling = false
	})

	e.session.Call(protocol.CallPlayerAttack, protocol.PlayerAttack{
		ID:        attack.ID,
		X:         origin.X,
		Y:         origin.Y,
		Direction: attack.Direction,
		OwnerID:   e.local.ID,
		OwnerName: e.local.Name,
	}, nil)
	return attack
}

// Attack returns the live local hitbox, or nil.
func (e *Engine) Attack() *AttackEvent { return e.attack }

// hitboxAt places the hitbox directly in front of the attacker, offset by
// the facing sign.
func (e *Engine) hitboxAt(origin geom.Vector, direction int) geom.Rect {
	x := origin.X + e.cfg.BodyWidth
	if direction < 0 {
		x = origin.X - e.cfg.HitboxWidth
	}
	return geom.Rect{
		X: x,
		Y: origin.Y + (e.cfg.BodyHeight-e.cfg.HitboxHeight)/2,
		W: e.cfg.HitboxWidth,
		H: e.cfg.HitboxHeight,
	}
}

// sweepMelee tests the live hitbox against every remote participant.
// Runs every tick while the hitbox is alive; the hit set keeps a target
// from being damaged twice by the same swing.
func (e *Engine) sweepMelee() {
	if e.attack == nil {
		return
	}
	for id, p := range e.remotes {
		if e.attack.Hitbox.Overlaps(e.rect(p)) && e.attack.CanHit(id) {
			e.damageRemote(p, e.cfg.MeleeDamage, "")
		}
	}
}

// damageRemote applies locally observed damage to a remote participant:
// clamp, record the overlay override, report the hit, and report the
// death if this damage was the one that reached zero.
func (e *Engine) damageRemote(target *Participant, damage int, projectileID string) {
	target.Health = clampHealth(target.Health - damage)
	e.overlay.Record(target.ID, target.Health)

	e.session.Call(protocol.CallPlayerHit, protocol.PlayerHit{
		TargetID:     target.ID,
		AttackerID:   e.local.ID,
		ProjectileID: projectileID,
		Damage:       damage,
	}, nil)
	if target.Health == 0 {
		e.session.Call(protocol.CallPlayerDied, protocol.PlayerDied{
			PlayerID: target.ID,
			KillerID: e.local.ID,
		}, nil)
	}
}

// damageLocal applies a hit taken by the local participant.
func (e *Engine) damageLocal(damage int, attackerID, projectileID string) {
	e.local.Health = clampHealth(e.local.Health - damage)

	e.session.Call(protocol.CallPlayerHit, protocol.PlayerHit{
		TargetID:     e.local.ID,
		AttackerID:   attackerID,
		ProjectileID: projectileID,
		Damage:       damage,
	}, nil)
	if e.local.Health == 0 {
		e.session.Call(protocol.CallPlayerDied, protocol.PlayerDied{
			PlayerID: e.local.ID,
			KillerID: attackerID,
		}, nil)
	}
}
