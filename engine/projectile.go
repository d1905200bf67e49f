package engine

import (
	"math"
	"time"

	"arenagame/geom"
	"arenagame/protocol"

	"github.com/segmentio/ksuid"
)

// Projectile is a fired shot. Velocity is a unit direction derived once
// from the launch angle; Created anchors the time-to-live.
type Projectile struct {
	ID       string
	Owner    string
	Pos      geom.Vector
	Velocity geom.Vector
	Created  time.Time
	hits     hitSet
}

const projectileSize = 8

func (p *Projectile) rect() geom.Rect {
	return geom.Rect{
		X: p.Pos.X - projectileSize/2,
		Y: p.Pos.Y - projectileSize/2,
		W: projectileSize,
		H: projectileSize,
	}
}

// FireProjectile launches a shot from the local participant toward a
// target point and broadcasts the fired event. The local copy is created
// here, which is why HandleProjectileFired drops self-owned echoes.
func (e *Engine) FireProjectile(now time.Time, targetX, targetY float64) *Projectile {
	origin := e.localRect().Center()
	p := e.spawnProjectile(ksuid.New().String(), e.local.ID, origin, targetX, targetY, now)

	e.session.Call(protocol.CallProjectileFire, protocol.ProjectileFired{
		X:       origin.X,
		Y:       origin.Y,
		TargetX: targetX,
		TargetY: targetY,
		ID:      p.ID,
		OwnerID: p.Owner,
	}, nil)
	return p
}

// HandleProjectileFired materializes a remote participant's shot. Events
// owned by the local id are ignored: that projectile already exists from
// the moment of firing.
func (e *Engine) HandleProjectileFired(now time.Time, msg protocol.ProjectileFired) {
	if msg.ID == "" || msg.OwnerID == "" {
		return
	}
	if msg.OwnerID == e.local.ID {
		return
	}
	e.spawnProjectile(msg.ID, msg.OwnerID, geom.Vector{X: msg.X, Y: msg.Y}, msg.TargetX, msg.TargetY, now)
}

func (e *Engine) spawnProjectile(id, owner string, origin geom.Vector, targetX, targetY float64, now time.Time) *Projectile {
	angle := math.Atan2(targetY-origin.Y, targetX-origin.X)
	p := &Projectile{
		ID:      id,
		Owner:   owner,
		Pos:     origin,
		Velocity: geom.Vector{
			X: math.Cos(angle),
			Y: math.Sin(angle),
		},
		Created: now,
		hits:    make(hitSet),
	}
	e.projectiles[id] = p
	return p
}

// Projectiles returns the live set, keyed by id.
func (e *Engine) Projectiles() map[string]*Projectile { return e.projectiles }

// tickProjectiles advances every live projectile and evaluates its three
// destruction conditions — world geometry, the local participant when not
// self-owned, and the time-to-live — exactly once each.
func (e *Engine) tickProjectiles(now time.Time, dt float64) {
	for id, p := range e.projectiles {
		p.Pos.X += p.Velocity.X * e.cfg.ProjectileSpeed * dt
		p.Pos.Y += p.Velocity.Y * e.cfg.ProjectileSpeed * dt

		r := p.rect()
		hitWorld := e.space.HitsObstacle(r)
		hitLocal := p.Owner != e.local.ID && r.Overlaps(e.localRect())
		expired := now.Sub(p.Created) >= e.cfg.ProjectileTTL

		if hitLocal && p.hits.CanHit(e.local.ID) {
			e.damageLocal(e.cfg.ProjectileDamage, p.Owner, p.ID)
		}
		if hitWorld || hitLocal || expired {
			delete(e.projectiles, id)
		}
	}
}
